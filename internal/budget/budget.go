package budget

import (
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

// Level classifies how much of a budget has been used.
type Level string

const (
	LevelGood    Level = "good"
	LevelWarning Level = "warning"
	LevelDanger  Level = "danger"
)

const (
	warningThreshold = 70
	dangerThreshold  = 90
)

// LevelFor maps a usage percentage to a Level. Every place that colours or labels budget usage goes
// through here so the thresholds cannot drift apart.
func LevelFor(percentage float64) Level {
	switch {
	case percentage >= dangerThreshold:
		return LevelDanger
	case percentage >= warningThreshold:
		return LevelWarning
	}

	return LevelGood
}

// Status is the evaluation of one category's spending against its ceiling.
type Status struct {
	Category     expense.Category
	Budget       decimal.Decimal
	Spent        decimal.Decimal
	Percentage   float64 // rounded to one decimal
	Remaining    decimal.Decimal
	IsOverBudget bool
	Level        Level
}

var hundred = decimal.NewFromInt(100)

// Evaluate computes the status of spent against ceiling. ceiling must be positive.
func Evaluate(category expense.Category, ceiling, spent decimal.Decimal) Status {
	pct := spent.Div(ceiling).Mul(hundred)

	return Status{
		Category:     category,
		Budget:       ceiling,
		Spent:        spent,
		Percentage:   pct.Round(1).InexactFloat64(),
		Remaining:    ceiling.Sub(spent).Abs(),
		IsOverBudget: spent.GreaterThan(ceiling),
		Level:        LevelFor(pct.InexactFloat64()),
	}
}

const (
	FieldCategory = "category"
	FieldAmount   = "amount"
)

// MaxAmount is the largest monthly ceiling a category may carry.
var MaxAmount = decimal.NewFromInt(9_999_999)

// Validate checks a budget entry before it is saved.
func Validate(category expense.Category, amount decimal.Decimal) validation.Errors {
	errs := validation.Errors{}

	if !category.Valid() {
		errs.Add(FieldCategory, "Please select a category")
	}

	switch {
	case !amount.IsPositive():
		errs.Add(FieldAmount, "Please enter a valid amount")
	case amount.GreaterThan(MaxAmount):
		errs.Add(FieldAmount, "Budget amount cannot exceed 9,999,999")
	}

	return errs
}

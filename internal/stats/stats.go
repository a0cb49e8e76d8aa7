// Package stats derives dashboard figures from a sequence of expense records.
// Every function is pure and defined for empty input.
package stats

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

// NoValue is shown in place of a figure that cannot be computed from an empty sequence.
const NoValue = "-"

// Total sums the amounts of records.
func Total(records []expense.Expense) decimal.Decimal {
	total := decimal.Zero
	for _, e := range records {
		total = total.Add(e.Amount)
	}

	return total
}

// UniqueDays counts the distinct dates in records, floored at 1.
func UniqueDays(records []expense.Expense) int {
	days := make(map[time.Time]struct{}, len(records))
	for _, e := range records {
		days[expense.Day(e.Date)] = struct{}{}
	}

	return max(len(days), 1)
}

// AverageDaily is the total spent per active day.
func AverageDaily(records []expense.Expense) decimal.Decimal {
	if len(records) == 0 {
		return decimal.Zero
	}

	return Total(records).Div(decimal.NewFromInt(int64(UniqueDays(records))))
}

// TopCategory returns the display name of the category with the highest total.
// On a tie the category that appears first in records wins.
func TopCategory(records []expense.Expense) string {
	if len(records) == 0 {
		return NoValue
	}

	var (
		order  []expense.Category
		totals = make(map[expense.Category]decimal.Decimal)
	)

	for _, e := range records {
		if _, seen := totals[e.Category]; !seen {
			order = append(order, e.Category)
		}

		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	top := order[0]
	for _, c := range order[1:] {
		if totals[c].GreaterThan(totals[top]) {
			top = c
		}
	}

	return top.Name()
}

// PaymentRatio renders the share of cash and card transactions by count as "cash% : card%".
// The cash share is rounded half up and the card share is its complement.
func PaymentRatio(records []expense.Expense) string {
	n := len(records)
	if n == 0 {
		return NoValue
	}

	cash := 0

	for _, e := range records {
		if e.PaymentMethod == expense.PaymentCash {
			cash++
		}
	}

	switch cash {
	case 0:
		return "0% : 100%"
	case n:
		return "100% : 0%"
	}

	cashPct := (cash*200 + n) / (2 * n)

	return fmt.Sprintf("%d%% : %d%%", cashPct, 100-cashPct)
}

// CategoryTotals sums amounts per category. Categories without records are absent.
func CategoryTotals(records []expense.Expense) map[expense.Category]decimal.Decimal {
	totals := make(map[expense.Category]decimal.Decimal)
	for _, e := range records {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}

	return totals
}

type CategoryTotal struct {
	Category expense.Category
	Total    decimal.Decimal
}

// SortedCategoryTotals returns the non-empty category totals in display order.
func SortedCategoryTotals(records []expense.Expense) []CategoryTotal {
	totals := CategoryTotals(records)

	out := make([]CategoryTotal, 0, len(totals))

	for _, c := range expense.Categories() {
		if t, ok := totals[c]; ok {
			out = append(out, CategoryTotal{Category: c, Total: t})
			delete(totals, c)
		}
	}

	// Unknown categories from older documents are folded into others.
	for _, t := range totals {
		if len(out) > 0 && out[len(out)-1].Category == expense.CategoryOthers {
			out[len(out)-1].Total = out[len(out)-1].Total.Add(t)
			continue
		}

		out = append(out, CategoryTotal{Category: expense.CategoryOthers, Total: t})
	}

	return out
}

// GroupByCategory partitions records by category, keeping their relative order.
func GroupByCategory(records []expense.Expense) map[expense.Category][]expense.Expense {
	groups := make(map[expense.Category][]expense.Expense)
	for _, e := range records {
		groups[e.Category] = append(groups[e.Category], e)
	}

	return groups
}

// InRange returns the records dated between from and to, both inclusive.
func InRange(records []expense.Expense, from, to time.Time) []expense.Expense {
	return expense.Apply(records, expense.Filter{From: &from, To: &to}, expense.Sort{})
}

// Percentage returns part as a share of total, rounded to one decimal. A zero total yields 0.
func Percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}

	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}

// Summary holds the dashboard figures.
type Summary struct {
	Total        decimal.Decimal
	AverageDaily decimal.Decimal
	TopCategory  string
	PaymentRatio string
	Count        int
}

func Summarize(records []expense.Expense) Summary {
	return Summary{
		Total:        Total(records),
		AverageDaily: AverageDaily(records),
		TopCategory:  TopCategory(records),
		PaymentRatio: PaymentRatio(records),
		Count:        len(records),
	}
}

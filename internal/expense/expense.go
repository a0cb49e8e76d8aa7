package expense

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Category is one of the fixed spending categories.
type Category string

const (
	CategoryFood          Category = "food"
	CategoryTransport     Category = "transport"
	CategoryEntertainment Category = "entertainment"
	CategoryShopping      Category = "shopping"
	CategoryBills         Category = "bills"
	CategoryOthers        Category = "others"
)

var categories = []Category{
	CategoryFood,
	CategoryTransport,
	CategoryEntertainment,
	CategoryShopping,
	CategoryBills,
	CategoryOthers,
}

// Categories returns every category in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)

	return out
}

func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}

	return false
}

// Name returns the display name. Unknown categories display as "Others".
func (c Category) Name() string {
	switch c {
	case CategoryFood:
		return "Food"
	case CategoryTransport:
		return "Transport"
	case CategoryEntertainment:
		return "Entertainment"
	case CategoryShopping:
		return "Shopping"
	case CategoryBills:
		return "Bills"
	}

	return "Others"
}

func (c Category) Icon() string {
	switch c {
	case CategoryFood:
		return "🍕"
	case CategoryTransport:
		return "🚗"
	case CategoryEntertainment:
		return "🎬"
	case CategoryShopping:
		return "🛍️"
	case CategoryBills:
		return "💡"
	}

	return "📋"
}

// PaymentMethod is how an expense was paid.
type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// PaymentMethods returns every payment method in display order.
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCash, PaymentCard}
}

func (p PaymentMethod) Valid() bool {
	return p == PaymentCash || p == PaymentCard
}

func (p PaymentMethod) Name() string {
	switch p {
	case PaymentCash:
		return "Cash"
	case PaymentCard:
		return "Card"
	}

	return string(p)
}

// Expense is a single logged expense.
type Expense struct {
	ID            int64
	Amount        decimal.Decimal
	Category      Category
	Date          time.Time // calendar date at UTC midnight
	Description   string
	PaymentMethod PaymentMethod
	CreatedAt     time.Time
}

// Input carries the user-supplied fields of an expense. The repository assigns ID and CreatedAt.
type Input struct {
	Amount        decimal.Decimal
	Category      Category
	Date          time.Time
	Description   string
	PaymentMethod PaymentMethod
}

// Input returns the user-editable fields of e.
func (e Expense) Input() Input {
	return Input{
		Amount:        e.Amount,
		Category:      e.Category,
		Date:          e.Date,
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
	}
}

// Day truncates t to its calendar date at UTC midnight.
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate parses a YYYY-MM-DD string into a calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}

	return t, nil
}

// FormatDate formats a calendar date as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(time.DateOnly)
}

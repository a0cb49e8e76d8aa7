package expense

import (
	"slices"
	"strings"
	"time"
)

// Filter narrows a query. Zero-valued fields are inactive; active fields are combined with AND.
type Filter struct {
	Search        string // case-insensitive substring of description or category
	Category      Category
	PaymentMethod PaymentMethod
	From          *time.Time // inclusive
	To            *time.Time // inclusive
}

// IsZero reports whether no criterion is active.
func (f Filter) IsZero() bool {
	return strings.TrimSpace(f.Search) == "" && f.Category == "" && f.PaymentMethod == "" && f.From == nil && f.To == nil
}

// SortField is a field a query can be ordered by.
type SortField string

const (
	SortNone          SortField = ""
	SortDate          SortField = "date"
	SortAmount        SortField = "amount"
	SortCategory      SortField = "category"
	SortDescription   SortField = "description"
	SortPaymentMethod SortField = "paymentMethod"
)

// SortFields lists the sortable fields in column order.
var SortFields = []SortField{SortDate, SortDescription, SortCategory, SortPaymentMethod, SortAmount}

func (f SortField) Valid() bool {
	return slices.Contains(SortFields, f)
}

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Toggle returns the opposite direction.
func (d Direction) Toggle() Direction {
	if d == Asc {
		return Desc
	}

	return Asc
}

// Sort orders a query. An empty Field keeps insertion order.
type Sort struct {
	Field     SortField
	Direction Direction
}

// Match reports whether e satisfies every active criterion of f.
func (f Filter) Match(e Expense) bool {
	if term := strings.ToLower(strings.TrimSpace(f.Search)); term != "" {
		if !strings.Contains(strings.ToLower(e.Description), term) &&
			!strings.Contains(strings.ToLower(string(e.Category)), term) {
			return false
		}
	}

	if f.Category != "" && e.Category != f.Category {
		return false
	}

	if f.PaymentMethod != "" && e.PaymentMethod != f.PaymentMethod {
		return false
	}

	if f.From != nil && e.Date.Before(Day(*f.From)) {
		return false
	}

	if f.To != nil && e.Date.After(Day(*f.To)) {
		return false
	}

	return true
}

// Apply filters then sorts records into a new slice; records itself is left untouched.
func Apply(records []Expense, f Filter, s Sort) []Expense {
	out := make([]Expense, 0, len(records))

	for _, e := range records {
		if f.Match(e) {
			out = append(out, e)
		}
	}

	if !s.Field.Valid() {
		return out
	}

	slices.SortStableFunc(out, func(a, b Expense) int {
		c := compare(a, b, s.Field)
		if s.Direction == Desc {
			return -c
		}

		return c
	})

	return out
}

func compare(a, b Expense, field SortField) int {
	switch field {
	case SortAmount:
		return a.Amount.Cmp(b.Amount)
	case SortDate:
		return a.Date.Compare(b.Date)
	case SortCategory:
		return compareText(string(a.Category), string(b.Category))
	case SortDescription:
		return compareText(a.Description, b.Description)
	case SortPaymentMethod:
		return compareText(string(a.PaymentMethod), string(b.PaymentMethod))
	}

	return 0
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

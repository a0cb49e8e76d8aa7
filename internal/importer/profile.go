package importer

import (
	"strings"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

// Profile describes one accepted CSV layout. Column names are matched case-insensitively. A profile
// without a category or payment column fills in DefaultCategory or DefaultPayment.
type Profile struct {
	Name        string
	Comma       rune
	DateCol     string
	DescCol     string
	CategoryCol string
	PaymentCol  string
	AmountCol   string

	DefaultCategory expense.Category
	DefaultPayment  expense.PaymentMethod

	// DebitsOnly marks signed statement amounts: negative rows become expenses, everything else is skipped.
	DebitsOnly bool
}

func (p Profile) requiredCols() []string {
	var cols []string

	for _, c := range []string{p.DateCol, p.DescCol, p.CategoryCol, p.PaymentCol, p.AmountCol} {
		if c != "" {
			cols = append(cols, c)
		}
	}

	return cols
}

// profiles is tried in order. The first is the layout written by the exporter.
var profiles = []Profile{
	{
		Name:        "spendbook",
		Comma:       ',',
		DateCol:     "date",
		DescCol:     "description",
		CategoryCol: "category",
		PaymentCol:  "payment_method",
		AmountCol:   "amount",
	},
	{
		Name:        "spreadsheet",
		Comma:       ';',
		DateCol:     "Date",
		DescCol:     "Description",
		CategoryCol: "Category",
		PaymentCol:  "Payment",
		AmountCol:   "Amount",
	},
	{
		Name:            "bank-statement",
		Comma:           ';',
		DateCol:         "Data mov.",
		DescCol:         "Descrição",
		AmountCol:       "Montante",
		DefaultCategory: expense.CategoryOthers,
		DefaultPayment:  expense.PaymentCard,
		DebitsOnly:      true,
	},
}

// colIndex maps a lower-cased column name to its position in a row.
type colIndex map[string]int

func indexHeader(row []string) colIndex {
	cols := make(colIndex, len(row))

	for i, cell := range row {
		name := strings.ToLower(strings.TrimSpace(cell))
		if _, dup := cols[name]; name != "" && !dup {
			cols[name] = i
		}
	}

	return cols
}

func (c colIndex) matches(p Profile) bool {
	for _, name := range p.requiredCols() {
		if _, ok := c[strings.ToLower(name)]; !ok {
			return false
		}
	}

	return true
}

func (c colIndex) cell(row []string, name string) string {
	if name == "" {
		return ""
	}

	idx, ok := c[strings.ToLower(name)]
	if !ok || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

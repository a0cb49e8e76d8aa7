package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

// normalizeAmount rewrites "1.234,56", "1,234.56", "12,5" and "12.5" to a plain decimal string. When both
// separators appear the last one is the decimal separator. Values that still do not parse are returned
// unchanged so validation can report them.
func normalizeAmount(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(strings.TrimPrefix(s, "€"), "€")
	s = strings.TrimSpace(strings.ReplaceAll(s, " ", ""))

	clean := s

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0 && comma > dot:
		clean = strings.ReplaceAll(s, ".", "")
		clean = strings.ReplaceAll(clean, ",", ".")
	case dot >= 0 && comma >= 0:
		clean = strings.ReplaceAll(s, ",", "")
	case comma >= 0:
		clean = strings.ReplaceAll(s, ",", ".")
	}

	d, err := decimal.NewFromString(clean)
	if err != nil {
		return s
	}

	return d.String()
}

// debitAmount returns the absolute value of a negative statement amount. Credits, zero and values that
// do not parse (balance or footer lines) report false.
func debitAmount(normalized string) (string, bool) {
	d, err := decimal.NewFromString(normalized)
	if err != nil || !d.IsNegative() {
		return "", false
	}

	return d.Abs().String(), true
}

var dateLayouts = []string{time.DateOnly, "02-01-2006", "02/01/2006", "2006/01/02", "02.01.2006"}

// normalizeDate rewrites any accepted layout to YYYY-MM-DD. Unparsable values are returned unchanged.
func normalizeDate(s string) string {
	s = strings.TrimSpace(s)

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return expense.FormatDate(t)
		}
	}

	return s
}

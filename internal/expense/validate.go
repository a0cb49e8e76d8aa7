package expense

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

// Field names used as keys in validation errors.
const (
	FieldAmount        = "amount"
	FieldCategory      = "category"
	FieldDate          = "date"
	FieldDescription   = "description"
	FieldPaymentMethod = "paymentMethod"
)

const minDescriptionLen = 3

// MaxAmount is the largest amount a single expense may carry.
var MaxAmount = decimal.NewFromInt(999_999)

// Form is raw, unparsed expense input as typed by a user.
type Form struct {
	Amount        string
	Category      string
	Date          string
	Description   string
	PaymentMethod string
}

// FormFrom renders an existing expense back into form values, e.g. to prefill an edit form.
func FormFrom(e Expense) Form {
	return Form{
		Amount:        e.Amount.String(),
		Category:      string(e.Category),
		Date:          FormatDate(e.Date),
		Description:   e.Description,
		PaymentMethod: string(e.PaymentMethod),
	}
}

// ParseForm converts raw form values into an Input and validates it against now.
// Every failing field is reported, including values that could not be parsed.
func ParseForm(f Form, now time.Time) (Input, validation.Errors) {
	errs := validation.Errors{}

	var in Input

	if s := strings.TrimSpace(f.Amount); s != "" {
		amount, err := ParseAmount(s)
		if err != nil {
			errs.Add(FieldAmount, "Please enter a valid amount")
		}

		in.Amount = amount
	}

	if s := strings.TrimSpace(f.Date); s != "" {
		date, err := ParseDate(s)
		if err != nil {
			errs.Add(FieldDate, "Please select a valid date")
		}

		in.Date = date
	}

	in.Category = Category(strings.TrimSpace(f.Category))
	in.Description = strings.TrimSpace(f.Description)
	in.PaymentMethod = PaymentMethod(strings.TrimSpace(f.PaymentMethod))

	for field, msg := range Validate(in, now) {
		errs.Add(field, msg)
	}

	return in, errs
}

var errAmbiguousAmount = errors.New("ambiguous thousands separator")

// ParseAmount accepts either '.' or ',' as the decimal separator. When both appear the last one is the
// decimal separator and the other groups thousands; a separator repeated on its own groups thousands.
// A lone separator followed by exactly three digits ("1,000", "2.500") is rejected as ambiguous.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)

	dot, comma := strings.LastIndex(s, "."), strings.LastIndex(s, ",")

	switch {
	case dot >= 0 && comma >= 0:
		decimalSep, groupSep := ".", ","
		if comma > dot {
			decimalSep, groupSep = ",", "."
		}

		if strings.Count(s, decimalSep) > 1 {
			return decimal.Zero, fmt.Errorf("parsing amount %q: repeated decimal separator", s)
		}

		s = strings.ReplaceAll(s, groupSep, "")
		s = strings.Replace(s, decimalSep, ".", 1)
	case dot >= 0 || comma >= 0:
		sep, at := ".", dot
		if comma >= 0 {
			sep, at = ",", comma
		}

		if strings.Count(s, sep) > 1 {
			s = strings.ReplaceAll(s, sep, "")
			break
		}

		if looksGrouped(s[:at], s[at+1:]) {
			return decimal.Zero, fmt.Errorf("parsing amount %q: %w", s, errAmbiguousAmount)
		}

		s = strings.Replace(s, sep, ".", 1)
	}

	return decimal.NewFromString(s)
}

// looksGrouped reports whether whole and fraction read equally well as a thousands group.
func looksGrouped(whole, fraction string) bool {
	whole = strings.TrimPrefix(whole, "-")

	return len(fraction) == 3 && len(whole) >= 1 && len(whole) <= 3 && whole[0] != '0'
}

// Validate checks in against the expense invariants. A date is valid up to the end of now's calendar day.
func Validate(in Input, now time.Time) validation.Errors {
	errs := validation.Errors{}

	switch {
	case !in.Amount.IsPositive():
		errs.Add(FieldAmount, "Please enter a valid amount")
	case in.Amount.GreaterThan(MaxAmount):
		errs.Add(FieldAmount, "Amount cannot exceed 999,999")
	}

	if !in.Category.Valid() {
		errs.Add(FieldCategory, "Please select a category")
	}

	switch {
	case in.Date.IsZero():
		errs.Add(FieldDate, "Please select a date")
	case Day(in.Date).After(Day(now)):
		errs.Add(FieldDate, "Date cannot be in the future")
	}

	desc := strings.TrimSpace(in.Description)

	switch {
	case desc == "":
		errs.Add(FieldDescription, "Please enter a description")
	case utf8.RuneCountInString(desc) < minDescriptionLen:
		errs.Add(FieldDescription, "Description must be at least 3 characters")
	}

	if !in.PaymentMethod.Valid() {
		errs.Add(FieldPaymentMethod, "Please select a payment method")
	}

	return errs
}

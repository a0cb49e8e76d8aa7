package expense_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

func validForm() expense.Form {
	return expense.Form{
		Amount:        "12.50",
		Category:      "food",
		Date:          "2024-03-15",
		Description:   "Lunch",
		PaymentMethod: "card",
	}
}

func TestParseForm_CommaAmount(t *testing.T) {
	f := validForm()
	f.Amount = "7,25"

	in, errs := expense.ParseForm(f, now)

	assert.True(t, errs.Valid())
	assert.Equal(t, "7.25", in.Amount.String())
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	in := input(0, expense.CategoryFood, expense.PaymentCash, date(2024, 3, 1), "")

	errs := expense.Validate(in, now)

	assert.Equal(t, []string{expense.FieldAmount, expense.FieldDescription}, errs.Fields())
}

func TestParseForm(t *testing.T) {
	type testCase struct {
		name       string
		mutate     func(f *expense.Form)
		wantFields []string
		wantMsg    map[string]string
	}

	tests := []testCase{
		{
			name:   "Valid",
			mutate: func(*expense.Form) {},
		},
		{
			name:   "CommaDecimalSeparator",
			mutate: func(f *expense.Form) { f.Amount = "12,50" },
		},
		{
			name:       "AmountTooLarge",
			mutate:     func(f *expense.Form) { f.Amount = "1000000" },
			wantFields: []string{expense.FieldAmount},
			wantMsg:    map[string]string{expense.FieldAmount: "Amount cannot exceed 999,999"},
		},
		{
			name:   "AmountAtCeiling",
			mutate: func(f *expense.Form) { f.Amount = "999999" },
		},
		{
			name:       "NegativeAmount",
			mutate:     func(f *expense.Form) { f.Amount = "-3" },
			wantFields: []string{expense.FieldAmount},
		},
		{
			name:       "UnparsableAmount",
			mutate:     func(f *expense.Form) { f.Amount = "abc" },
			wantFields: []string{expense.FieldAmount},
			wantMsg:    map[string]string{expense.FieldAmount: "Please enter a valid amount"},
		},
		{
			name:   "TodayIsAllowed",
			mutate: func(f *expense.Form) { f.Date = "2024-03-15" },
		},
		{
			name:       "FutureDate",
			mutate:     func(f *expense.Form) { f.Date = "2024-03-16" },
			wantFields: []string{expense.FieldDate},
			wantMsg:    map[string]string{expense.FieldDate: "Date cannot be in the future"},
		},
		{
			name:       "ShortDescriptionAfterTrim",
			mutate:     func(f *expense.Form) { f.Description = "  ab  " },
			wantFields: []string{expense.FieldDescription},
			wantMsg:    map[string]string{expense.FieldDescription: "Description must be at least 3 characters"},
		},
		{
			name: "EverythingMissing",
			mutate: func(f *expense.Form) {
				*f = expense.Form{}
			},
			wantFields: []string{
				expense.FieldAmount,
				expense.FieldCategory,
				expense.FieldDate,
				expense.FieldDescription,
				expense.FieldPaymentMethod,
			},
		},
		{
			name:       "UnknownCategoryAndPayment",
			mutate:     func(f *expense.Form) { f.Category = "travel"; f.PaymentMethod = "crypto" },
			wantFields: []string{expense.FieldCategory, expense.FieldPaymentMethod},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validForm()
			tt.mutate(&f)

			in, errs := expense.ParseForm(f, now)

			if len(tt.wantFields) == 0 {
				assert.True(t, errs.Valid(), errs)
				assert.True(t, in.Amount.IsPositive())

				return
			}

			assert.Equal(t, tt.wantFields, errs.Fields())

			for field, msg := range tt.wantMsg {
				assert.Equal(t, msg, errs[field])
			}
		})
	}
}

func TestParseAmount(t *testing.T) {
	type testCase struct {
		name    string
		in      string
		want    string
		wantErr bool
	}

	tests := []testCase{
		{name: "Dot", in: "12.5", want: "12.5"},
		{name: "Comma", in: "12,50", want: "12.5"},
		{name: "Integer", in: " 40 ", want: "40"},
		{name: "EuropeanGrouping", in: "1.234,56", want: "1234.56"},
		{name: "EnglishGrouping", in: "1,234.56", want: "1234.56"},
		{name: "RepeatedGrouping", in: "1.000.000", want: "1000000"},
		{name: "LeadingZeroFraction", in: "0,125", want: "0.125"},
		{name: "AmbiguousComma", in: "1,000", wantErr: true},
		{name: "AmbiguousDot", in: "2.500", wantErr: true},
		{name: "RepeatedDecimal", in: "1,000.50.2", wantErr: true},
		{name: "Garbage", in: "abc", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := expense.ParseAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			assert.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseForm_AmbiguousThousands(t *testing.T) {
	f := validForm()
	f.Amount = "1,000"

	_, errs := expense.ParseForm(f, now)

	assert.Equal(t, []string{expense.FieldAmount}, errs.Fields())
}

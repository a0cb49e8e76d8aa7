package expense_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

func ids(records []expense.Expense) []int64 {
	out := make([]int64, len(records))
	for i, r := range records {
		out[i] = r.ID
	}

	return out
}

func sample() []expense.Expense {
	return []expense.Expense{
		{ID: 1, Amount: decimal.NewFromInt(30), Category: expense.CategoryFood, PaymentMethod: expense.PaymentCash, Date: date(2024, 3, 10), Description: "Pizza night"},
		{ID: 2, Amount: decimal.NewFromInt(10), Category: expense.CategoryFood, PaymentMethod: expense.PaymentCard, Date: date(2024, 3, 2), Description: "bakery"},
		{ID: 3, Amount: decimal.NewFromInt(20), Category: expense.CategoryTransport, PaymentMethod: expense.PaymentCard, Date: date(2024, 2, 20), Description: "Train ticket"},
	}
}

func TestApply_NoFilterNoSort_KeepsInsertionOrder(t *testing.T) {
	assert.Equal(t, []int64{1, 2, 3}, ids(expense.Apply(sample(), expense.Filter{}, expense.Sort{})))
}

func TestApply_Filter(t *testing.T) {
	from := date(2024, 3, 2)
	to := date(2024, 3, 10)

	type testCase struct {
		name   string
		filter expense.Filter
		want   []int64
	}

	tests := []testCase{
		{
			name:   "ConjunctiveCategoryAndPayment",
			filter: expense.Filter{Category: expense.CategoryFood, PaymentMethod: expense.PaymentCard},
			want:   []int64{2},
		},
		{
			name:   "SearchDescriptionCaseInsensitive",
			filter: expense.Filter{Search: "PIZZA"},
			want:   []int64{1},
		},
		{
			name:   "SearchMatchesCategory",
			filter: expense.Filter{Search: "trans"},
			want:   []int64{3},
		},
		{
			name:   "InclusiveDateRange",
			filter: expense.Filter{From: &from, To: &to},
			want:   []int64{1, 2},
		},
		{
			name:   "SearchAndPaymentMustBothHold",
			filter: expense.Filter{Search: "pizza", PaymentMethod: expense.PaymentCard},
			want:   []int64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(expense.Apply(sample(), tt.filter, expense.Sort{})))
		})
	}
}

func TestApply_Sort(t *testing.T) {
	type testCase struct {
		name string
		sort expense.Sort
		want []int64
	}

	tests := []testCase{
		{name: "AmountAsc", sort: expense.Sort{Field: expense.SortAmount, Direction: expense.Asc}, want: []int64{2, 3, 1}},
		{name: "AmountDesc", sort: expense.Sort{Field: expense.SortAmount, Direction: expense.Desc}, want: []int64{1, 3, 2}},
		{name: "DateAsc", sort: expense.Sort{Field: expense.SortDate, Direction: expense.Asc}, want: []int64{3, 2, 1}},
		{name: "DescriptionIgnoresCase", sort: expense.Sort{Field: expense.SortDescription, Direction: expense.Asc}, want: []int64{2, 1, 3}},
		{name: "CategoryStable", sort: expense.Sort{Field: expense.SortCategory, Direction: expense.Asc}, want: []int64{1, 2, 3}},
		{name: "PaymentMethodDesc", sort: expense.Sort{Field: expense.SortPaymentMethod, Direction: expense.Desc}, want: []int64{1, 2, 3}},
		{name: "UnknownFieldKeepsOrder", sort: expense.Sort{Field: "colour", Direction: expense.Asc}, want: []int64{1, 2, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(expense.Apply(sample(), expense.Filter{}, tt.sort)))
		})
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	records := sample()

	expense.Apply(records, expense.Filter{}, expense.Sort{Field: expense.SortAmount, Direction: expense.Asc})

	assert.Equal(t, []int64{1, 2, 3}, ids(records))
}

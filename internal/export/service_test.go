package export_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/export"
	"github.com/MrJamesThe3rd/spendbook/internal/importer"
)

func items() []expense.Expense {
	return []expense.Expense{
		{
			ID:            1,
			Amount:        decimal.RequireFromString("12.5"),
			Category:      expense.CategoryFood,
			Date:          time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
			Description:   "Lunch, with team",
			PaymentMethod: expense.PaymentCash,
		},
		{
			ID:            2,
			Amount:        decimal.NewFromInt(40),
			Category:      expense.CategoryBills,
			Date:          time.Date(2024, time.March, 3, 0, 0, 0, 0, time.UTC),
			Description:   "Power",
			PaymentMethod: expense.PaymentCard,
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteCSV(&buf, items()))

	want := "date,description,category,payment_method,amount\n" +
		"2024-03-01,\"Lunch, with team\",food,cash,12.50\n" +
		"2024-03-03,Power,bills,card,40.00\n"
	assert.Equal(t, want, buf.String())
}

func TestWriteCSV_ReadsBack(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, export.WriteCSV(&buf, items()))

	rows, err := importer.NewParser().Parse(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Lunch, with team", rows[0].Form.Description)
	assert.Equal(t, "12.5", rows[0].Form.Amount)
	assert.Equal(t, "card", rows[1].Form.PaymentMethod)
}

func TestService_Export(t *testing.T) {
	ctrl := gomock.NewController(t)
	q := export.NewMockQuerier(ctrl)

	filter := expense.Filter{Category: expense.CategoryFood}
	q.EXPECT().
		Query(filter, expense.Sort{Field: expense.SortDate, Direction: expense.Asc}).
		Return(items()[:1])

	dir := filepath.Join(t.TempDir(), "exports")

	res, err := export.NewService(q).Export(context.Background(), filter, dir)
	require.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Equal(t, dir, filepath.Dir(res.Path))

	data, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "date,description,category,payment_method,amount\n"))
	assert.Contains(t, string(data), "12.50")
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "spendbook-20240315-103000.csv", export.Filename(time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)))
}

func TestGenerateSummary(t *testing.T) {
	got := export.GenerateSummary(items())

	assert.Contains(t, got, "* 2024-03-01 | Lunch, with team | Food | Cash | 12.50 €\n")
	assert.Contains(t, got, "* 2024-03-03 | Power | Bills | Card | 40.00 €\n")
	assert.Contains(t, got, "2 expenses, total 52.50 €, top category Bills, cash : card 50% : 50%")
}

func TestGenerateSummary_Empty(t *testing.T) {
	assert.Equal(t, "\n0 expenses, total 0.00 €, top category -, cash : card -\n", export.GenerateSummary(nil))
}

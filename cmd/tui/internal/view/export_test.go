package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

func TestExportValues_Filter(t *testing.T) {
	type testCase struct {
		name     string
		values   exportValues
		wantFrom string
		wantTo   string
	}

	now := time.Date(2024, time.March, 31, 18, 0, 0, 0, time.UTC)

	tests := []testCase{
		{name: "last month", values: exportValues{period: expense.PeriodLastMonth}, wantFrom: "2024-02-01", wantTo: "2024-02-29"},
		{name: "this week", values: exportValues{period: expense.PeriodThisWeek}, wantFrom: "2024-03-25", wantTo: "2024-03-31"},
		{name: "custom", values: exportValues{period: expense.PeriodCustom, from: "2024-01-05", to: "2024-01-20"}, wantFrom: "2024-01-05", wantTo: "2024-01-20"},
		{name: "all time", values: exportValues{period: expense.PeriodAll}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := tc.values.filter(now)

			if tc.wantFrom == "" {
				assert.True(t, f.IsZero())
				return
			}

			require.NotNil(t, f.From)
			require.NotNil(t, f.To)
			assert.Equal(t, tc.wantFrom, expense.FormatDate(*f.From))
			assert.Equal(t, tc.wantTo, expense.FormatDate(*f.To))
		})
	}
}

func TestExportValues_Validate(t *testing.T) {
	v := &exportValues{period: expense.PeriodCustom, from: "2024-03-10"}

	assert.NoError(t, v.validateFrom("2024-03-10"))
	assert.Error(t, v.validateFrom("10/03/2024"))

	assert.NoError(t, v.validateTo("2024-03-10"))
	assert.NoError(t, v.validateTo("2024-03-12"))
	assert.EqualError(t, v.validateTo("2024-03-09"), "end date is before start date")
	assert.Error(t, v.validateTo(""))
}

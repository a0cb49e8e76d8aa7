package view

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/budget"
	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

const dbTimeout = 5 * time.Second

// FormatAmount renders an amount with two decimals and the currency sign.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2) + " €"
}

func FormatDate(t time.Time) string {
	return expense.FormatDate(t)
}

// DbCtx returns a context with a standard timeout for storage operations.
func DbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), dbTimeout)
}

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("46"))
	faintStyle   = lipgloss.NewStyle().Faint(true)
)

// pageStyle frames a whole screen.
var pageStyle = lipgloss.NewStyle().Padding(1)

func newSpinner() spinner.Model {
	return spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("205"))),
	)
}

func activeStyle(s string) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(s)
}

// LevelColor is the colour used for budget usage at the given level.
func LevelColor(l budget.Level) lipgloss.Color {
	switch l {
	case budget.LevelDanger:
		return lipgloss.Color("196")
	case budget.LevelWarning:
		return lipgloss.Color("214")
	}

	return lipgloss.Color("46")
}

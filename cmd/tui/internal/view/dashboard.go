package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendbook/internal/budget"
	"github.com/MrJamesThe3rd/spendbook/internal/stats"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

const chartWidth = 30

type DashboardModel struct {
	CommonModel
	svc *tracker.Service

	summary stats.Summary
	totals  []stats.CategoryTotal
	budgets []budget.Status
}

func NewDashboardModel(svc *tracker.Service) DashboardModel {
	return DashboardModel{svc: svc}
}

func (m DashboardModel) Title() string     { return "Dashboard" }
func (m DashboardModel) ShortHelp() string { return "Esc: back | r: refresh" }

func (m DashboardModel) Init() tea.Cmd {
	return m.loadCmd()
}

type dashboardLoadedMsg struct {
	summary stats.Summary
	totals  []stats.CategoryTotal
	budgets []budget.Status
}

func (m DashboardModel) loadCmd() tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		return dashboardLoadedMsg{
			summary: svc.Dashboard(),
			totals:  svc.Chart(),
			budgets: svc.Budgets(),
		}
	}
}

func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case dashboardLoadedMsg:
		m.summary = msg.summary
		m.totals = msg.totals
		m.budgets = msg.budgets

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, Back
		case "r":
			return m, m.loadCmd()
		}
	}

	return m, nil
}

func (m DashboardModel) View() string {
	card := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("63")).
		Padding(0, 2).
		MarginRight(1)

	cards := lipgloss.JoinHorizontal(lipgloss.Top,
		card.Render("Total Spent\n"+activeStyle(FormatAmount(m.summary.Total))),
		card.Render("Daily Average\n"+activeStyle(FormatAmount(m.summary.AverageDaily))),
		card.Render("Top Category\n"+activeStyle(m.summary.TopCategory)),
		card.Render("Cash : Card\n"+activeStyle(m.summary.PaymentRatio)),
	)

	sections := []string{
		lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Dashboard (%d expenses)", m.summary.Count)),
		"",
		cards,
		"",
		m.chartView(),
	}

	if alerts := m.alertsView(); alerts != "" {
		sections = append(sections, "", alerts)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m DashboardModel) chartView() string {
	if len(m.totals) == 0 {
		return faintStyle.Render("No expenses recorded yet.")
	}

	var sb strings.Builder

	sb.WriteString("Spending by category\n\n")

	for _, ct := range m.totals {
		pct := stats.Percentage(ct.Total, m.summary.Total)
		sb.WriteString(fmt.Sprintf("%s %-14s %s %5.1f%%  %s\n",
			ct.Category.Icon(),
			ct.Category.Name(),
			Bar(pct, chartWidth, lipgloss.Color("63")),
			pct,
			FormatAmount(ct.Total),
		))
	}

	return sb.String()
}

// alertsView lists the budgets that have reached the warning threshold.
func (m DashboardModel) alertsView() string {
	var lines []string

	for _, st := range m.budgets {
		if st.Level == budget.LevelGood {
			continue
		}

		msg := fmt.Sprintf("%s %s: %.1f%% of budget used", st.Category.Icon(), st.Category.Name(), st.Percentage)
		if st.IsOverBudget {
			msg = fmt.Sprintf("%s %s: over budget by %s", st.Category.Icon(), st.Category.Name(), FormatAmount(st.Remaining))
		}

		lines = append(lines, lipgloss.NewStyle().Foreground(LevelColor(st.Level)).Render(msg))
	}

	if len(lines) == 0 {
		return ""
	}

	return "Budget alerts\n\n" + strings.Join(lines, "\n")
}

// Bar renders a horizontal bar filled to pct of width. pct is clamped to [0, 100].
func Bar(pct float64, width int, color lipgloss.Color) string {
	filled := int(min(max(pct, 0), 100) / 100 * float64(width))

	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("█", filled)) +
		faintStyle.Render(strings.Repeat("░", width-filled))
}

package view

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendbook/internal/budget"
	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

const budgetBarWidth = 30

type budgetsState int

const (
	budgetsStateList budgetsState = iota
	budgetsStateForm
)

// budgetValues is shared by copies of the model so the form can write into it.
type budgetValues struct {
	category string
	amount   string
}

type BudgetsModel struct {
	CommonModel
	svc *tracker.Service

	state    budgetsState
	statuses []budget.Status
	cursor   int

	form     *huh.Form
	values   *budgetValues
	formErrs validation.Errors

	status string
}

func NewBudgetsModel(svc *tracker.Service) BudgetsModel {
	return BudgetsModel{
		svc:      svc,
		statuses: svc.Budgets(),
	}
}

func (m BudgetsModel) Title() string { return "Budgets" }

func (m BudgetsModel) ShortHelp() string {
	if m.state == budgetsStateForm {
		return "Enter/Tab: navigate form | Esc: cancel"
	}

	return "↑/↓: select | s: set budget | x: delete | Esc: back"
}

func (m BudgetsModel) Init() tea.Cmd {
	return nil
}

func (m BudgetsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case budgetSavedMsg:
		var errs validation.Errors
		if errors.As(msg.err, &errs) {
			m.formErrs = errs
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.state = budgetsStateList
		m.form = nil
		m.formErrs = nil

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Budget for %s set to %s.", msg.status.Category.Name(), FormatAmount(msg.status.Budget))
		}

		m.reload()

		return m, nil

	case budgetDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Budget for %s removed.", msg.category.Name())
		}

		m.reload()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	if m.state == budgetsStateForm {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.statuses)-1 {
			m.cursor++
		}
	case "s":
		return m.openForm()
	case "x":
		if m.cursor < len(m.statuses) {
			return m, m.deleteCmd(m.statuses[m.cursor].Category)
		}
	}

	return m, nil
}

func (m BudgetsModel) openForm() (tea.Model, tea.Cmd) {
	m.values = &budgetValues{category: string(expense.CategoryFood)}

	if m.cursor < len(m.statuses) {
		st := m.statuses[m.cursor]
		m.values.category = string(st.Category)
		m.values.amount = st.Budget.String()
	}

	m.formErrs = nil
	m.form = m.buildForm()
	m.state = budgetsStateForm

	return m, m.form.Init()
}

func (m BudgetsModel) buildForm() *huh.Form {
	options := make([]huh.Option[string], 0, len(expense.Categories()))
	for _, c := range expense.Categories() {
		options = append(options, huh.NewOption(c.Icon()+" "+c.Name(), string(c)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Key(budget.FieldCategory).
				Title("Category").
				Options(options...).
				Value(&m.values.category),

			huh.NewInput().
				Key(budget.FieldAmount).
				Title("Monthly budget (€)").
				Placeholder("0.00").
				Value(&m.values.amount),
		),
	).WithWidth(40).WithShowHelp(false)
}

func (m BudgetsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = budgetsStateList
			m.form = nil
			m.formErrs = nil

			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	return m, m.saveCmd()
}

func (m BudgetsModel) View() string {
	var sb strings.Builder

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Monthly Budgets") + "\n\n")

	if len(m.statuses) == 0 {
		sb.WriteString(faintStyle.Render("No budgets set. Press s to add one.") + "\n")
	}

	for i, st := range m.statuses {
		cursor := "  "
		if i == m.cursor {
			cursor = activeStyle("> ")
		}

		sb.WriteString(cursor + budgetLine(st) + "\n")
	}

	content := sb.String()

	if m.state == budgetsStateForm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render("Set Budget\n\n" + formErrorsView(m.formErrs) + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// budgetLine renders one status with a progress bar coloured by its level.
func budgetLine(st budget.Status) string {
	bar := progress.New(
		progress.WithSolidFill(string(LevelColor(st.Level))),
		progress.WithWidth(budgetBarWidth),
		progress.WithoutPercentage(),
	)

	remaining := fmt.Sprintf("%s left", FormatAmount(st.Remaining))
	if st.IsOverBudget {
		remaining = errorStyle.Render(fmt.Sprintf("%s over", FormatAmount(st.Remaining)))
	}

	return fmt.Sprintf("%s %-14s %s %5.1f%%  %s / %s  %s",
		st.Category.Icon(),
		st.Category.Name(),
		bar.ViewAs(st.Percentage/100),
		st.Percentage,
		FormatAmount(st.Spent),
		FormatAmount(st.Budget),
		remaining,
	)
}

func (m *BudgetsModel) reload() {
	m.statuses = m.svc.Budgets()
	m.cursor = min(m.cursor, max(len(m.statuses)-1, 0))
}

// Messages

type budgetSavedMsg struct {
	status budget.Status
	err    error
}

type budgetDeletedMsg struct {
	category expense.Category
	err      error
}

func (m BudgetsModel) saveCmd() tea.Cmd {
	svc := m.svc
	values := *m.values

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		st, err := svc.SetBudget(ctx, values.category, values.amount)

		return budgetSavedMsg{status: st, err: err}
	}
}

func (m BudgetsModel) deleteCmd(category expense.Category) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return budgetDeletedMsg{category: category, err: svc.DeleteBudget(ctx, string(category))}
	}
}

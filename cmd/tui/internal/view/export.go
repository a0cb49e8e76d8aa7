package view

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/export"
)

const exportTimeout = 2 * time.Minute

type exportState int

const (
	exportStateForm exportState = iota
	exportStateExporting
	exportStateResult
)

// exportValues backs the export form. It is shared by pointer so copies of the model see form input.
type exportValues struct {
	period expense.Period
	from   string
	to     string
	dir    string
}

// filter turns the chosen period into an expense filter relative to now.
func (v *exportValues) filter(now time.Time) expense.Filter {
	if v.period != expense.PeriodCustom {
		return v.period.Apply(expense.Filter{}, now)
	}

	from, _ := expense.ParseDate(v.from)
	to, _ := expense.ParseDate(v.to)

	return expense.Filter{From: &from, To: &to}
}

func (v *exportValues) validateFrom(s string) error {
	if _, err := expense.ParseDate(s); err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	return nil
}

func (v *exportValues) validateTo(s string) error {
	to, err := expense.ParseDate(s)
	if err != nil {
		return errors.New("use YYYY-MM-DD")
	}

	if from, err := expense.ParseDate(v.from); err == nil && to.Before(from) {
		return errors.New("end date is before start date")
	}

	return nil
}

type ExportModel struct {
	CommonModel
	exportService *export.Service

	state   exportState
	values  *exportValues
	form    *huh.Form
	spinner spinner.Model

	file    string
	summary string
	err     error
}

func NewExportModel(svc *export.Service) ExportModel {
	values := &exportValues{period: expense.PeriodThisMonth, dir: "./exports"}

	return ExportModel{
		exportService: svc,
		values:        values,
		form:          newExportForm(values),
		spinner:       newSpinner(),
	}
}

func newExportForm(v *exportValues) *huh.Form {
	options := make([]huh.Option[expense.Period], 0, len(expense.Periods()))
	for _, p := range expense.Periods() {
		options = append(options, huh.NewOption(p.Label(), p))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[expense.Period]().
				Title("Period").
				Options(options...).
				Value(&v.period),
		),
		huh.NewGroup(
			huh.NewInput().Title("From").Placeholder("YYYY-MM-DD").Value(&v.from).Validate(v.validateFrom),
			huh.NewInput().Title("To").Placeholder("YYYY-MM-DD").Value(&v.to).Validate(v.validateTo),
		).WithHideFunc(func() bool { return v.period != expense.PeriodCustom }),
		huh.NewGroup(
			huh.NewInput().
				Title("Output directory").
				Description("Created if it doesn't exist").
				Value(&v.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m ExportModel) Title() string { return "Export Expenses" }

func (m ExportModel) ShortHelp() string {
	switch m.state {
	case exportStateResult:
		return "Esc: back to menu"
	case exportStateExporting:
		return "Exporting..."
	}

	return "Esc: back | Enter: confirm"
}

func (m ExportModel) Init() tea.Cmd {
	return m.form.Init()
}

func (m ExportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc && m.state != exportStateExporting {
		return m, Back
	}

	switch m.state {
	case exportStateForm:
		form, cmd := m.form.Update(msg)
		if f, ok := form.(*huh.Form); ok {
			m.form = f
		}

		if m.form.State != huh.StateCompleted {
			return m, cmd
		}

		m.state = exportStateExporting

		return m, tea.Batch(m.spinner.Tick, m.runExportCmd(m.values.filter(m.exportService.Now()), m.values.dir))

	case exportStateExporting:
		if result, ok := msg.(exportResultMsg); ok {
			m.state = exportStateResult
			m.err = result.err
			m.file = result.path
			m.summary = result.body

			return m, nil
		}

		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m ExportModel) View() string {
	switch m.state {
	case exportStateForm:
		return pageStyle.Render(m.form.View())
	case exportStateExporting:
		return pageStyle.Render(m.spinner.View() + " Exporting expenses...")
	}

	if m.err != nil {
		return pageStyle.Render(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	return pageStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		successStyle.Bold(true).Render("Export complete"),
		"",
		"Written to "+m.file,
		"",
		m.summary,
	))
}

type exportResultMsg struct {
	path string
	body string
	err  error
}

func (m ExportModel) runExportCmd(filter expense.Filter, dir string) tea.Cmd {
	svc := m.exportService

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), exportTimeout)
		defer cancel()

		res, err := svc.Export(ctx, filter, dir)
		if err != nil {
			return exportResultMsg{err: err}
		}

		return exportResultMsg{path: res.Path, body: export.GenerateSummary(res.Items)}
	}
}

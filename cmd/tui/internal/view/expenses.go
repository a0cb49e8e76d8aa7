package view

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/listing"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

type expensesState int

const (
	expensesStateBrowse expensesState = iota
	expensesStateSearch
	expensesStateForm
	expensesStateConfirm
)

type ExpensesModel struct {
	CommonModel
	svc *tracker.Service

	state   expensesState
	listing listing.State
	page    listing.Page
	table   table.Model
	search  textinput.Model

	form      *huh.Form
	values    *expense.Form
	editingID int64
	formErrs  validation.Errors

	deleting *expense.Expense
	status   string
}

func NewExpensesModel(svc *tracker.Service, pageSize int) ExpensesModel {
	t := table.New(
		table.WithColumns(expenseColumns(listing.DefaultSort)),
		table.WithFocused(true),
		table.WithHeight(pageSize+1),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	si := textinput.New()
	si.Placeholder = "description or category"
	si.Prompt = "Search: "
	si.CharLimit = 50

	m := ExpensesModel{
		svc:     svc,
		listing: listing.New(pageSize),
		table:   t,
		search:  si,
	}
	m.reload()

	return m
}

func (m ExpensesModel) Title() string { return "Expenses" }

func (m ExpensesModel) ShortHelp() string {
	switch m.state {
	case expensesStateSearch:
		return "Enter: apply | Esc: cancel"
	case expensesStateForm:
		return "Enter/Tab: navigate form | Esc: cancel"
	case expensesStateConfirm:
		return "y: delete | n: keep"
	}

	return "←/→: page | s: sort | d: direction | /: search | c: category | p: payment | r: reset filters | a: add | e: edit | x: delete | Esc: back"
}

func (m ExpensesModel) Init() tea.Cmd {
	return nil
}

func (m ExpensesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case expenseSavedMsg:
		var errs validation.Errors
		if errors.As(msg.err, &errs) {
			m.formErrs = errs
			m.form = m.buildForm()

			return m, m.form.Init()
		}

		m.state = expensesStateBrowse
		m.form = nil
		m.formErrs = nil
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error saving: %v", msg.err)
		} else {
			m.status = fmt.Sprintf("Saved %q.", msg.expense.Description)
		}

		m.reload()

		return m, nil

	case expenseDeletedMsg:
		m.state = expensesStateBrowse
		m.table.Focus()

		if msg.err != nil {
			m.status = fmt.Sprintf("Error deleting: %v", msg.err)
		} else {
			m.status = "Expense deleted."
		}

		m.reload()

		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		return m, nil
	}

	switch m.state {
	case expensesStateBrowse:
		return m.updateBrowse(msg)
	case expensesStateSearch:
		return m.updateSearch(msg)
	case expensesStateForm:
		return m.updateForm(msg)
	case expensesStateConfirm:
		return m.updateConfirm(msg)
	}

	return m, nil
}

func (m ExpensesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "left", "h":
			m.goToPage(m.page.Page - 1)
			return m, nil
		case "right", "l":
			m.goToPage(m.page.Page + 1)
			return m, nil
		case "s":
			m.listing = m.listing.WithSort(nextSortField(m.listing.Sort.Field))
			m.reload()

			return m, nil
		case "d":
			m.listing = m.listing.WithSort(m.listing.Sort.Field)
			m.reload()

			return m, nil
		case "/":
			m.state = expensesStateSearch
			m.search.SetValue(m.listing.Filter.Search)
			m.table.Blur()

			return m, m.search.Focus()
		case "c":
			f := m.listing.Filter
			f.Category = nextCategory(f.Category)
			m.listing = m.listing.WithFilter(f)
			m.reload()

			return m, nil
		case "p":
			f := m.listing.Filter
			f.PaymentMethod = nextPaymentMethod(f.PaymentMethod)
			m.listing = m.listing.WithFilter(f)
			m.reload()

			return m, nil
		case "r":
			m.listing = m.listing.ClearFilters()
			m.reload()

			return m, nil
		case "a":
			return m.openForm(nil)
		case "e":
			if e, ok := m.selected(); ok {
				return m.openForm(&e)
			}

			return m, nil
		case "x":
			if e, ok := m.selected(); ok {
				m.deleting = &e
				m.state = expensesStateConfirm
			}

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m ExpensesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.state = expensesStateBrowse
			m.search.Blur()
			m.table.Focus()

			return m, nil
		case tea.KeyEnter:
			f := m.listing.Filter
			f.Search = strings.TrimSpace(m.search.Value())
			m.listing = m.listing.WithFilter(f)
			m.state = expensesStateBrowse
			m.search.Blur()
			m.table.Focus()
			m.reload()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)

	return m, cmd
}

func (m ExpensesModel) openForm(e *expense.Expense) (tea.Model, tea.Cmd) {
	m.editingID = 0
	m.values = &expense.Form{
		Date:          expense.FormatDate(time.Now()),
		Category:      string(expense.CategoryFood),
		PaymentMethod: string(expense.PaymentCard),
	}

	if e != nil {
		m.editingID = e.ID
		values := expense.FormFrom(*e)
		m.values = &values
	}

	m.formErrs = nil
	m.form = m.buildForm()
	m.state = expensesStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m ExpensesModel) buildForm() *huh.Form {
	categories := make([]huh.Option[string], 0, len(expense.Categories()))
	for _, c := range expense.Categories() {
		categories = append(categories, huh.NewOption(c.Icon()+" "+c.Name(), string(c)))
	}

	methods := make([]huh.Option[string], 0, len(expense.PaymentMethods()))
	for _, p := range expense.PaymentMethods() {
		methods = append(methods, huh.NewOption(p.Name(), string(p)))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key(expense.FieldAmount).
				Title("Amount (€)").
				Placeholder("0.00").
				Value(&m.values.Amount),

			huh.NewSelect[string]().
				Key(expense.FieldCategory).
				Title("Category").
				Options(categories...).
				Value(&m.values.Category),

			huh.NewInput().
				Key(expense.FieldDate).
				Title("Date").
				Placeholder("YYYY-MM-DD").
				Value(&m.values.Date),

			huh.NewInput().
				Key(expense.FieldDescription).
				Title("Description").
				Value(&m.values.Description),

			huh.NewSelect[string]().
				Key(expense.FieldPaymentMethod).
				Title("Payment Method").
				Options(methods...).
				Value(&m.values.PaymentMethod),
		),
	).WithWidth(45).WithShowHelp(false)
}

func (m ExpensesModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = expensesStateBrowse
			m.form = nil
			m.formErrs = nil
			m.table.Focus()

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

func (m ExpensesModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "y", "Y":
		return m, m.deleteCmd(m.deleting.ID)
	case "n", "N", "esc":
		m.state = expensesStateBrowse
		m.deleting = nil
		m.table.Focus()
	}

	return m, nil
}

func (m ExpensesModel) View() string {
	f := m.listing.Filter

	category := "All"
	if f.Category != "" {
		category = f.Category.Name()
	}

	payment := "All"
	if f.PaymentMethod != "" {
		payment = f.PaymentMethod.Name()
	}

	search := "-"
	if f.Search != "" {
		search = f.Search
	}

	header := fmt.Sprintf(
		"[/] Search: %s | [c] Category: %s | [p] Payment: %s | [s] Sort: %s %s",
		activeStyle(search),
		activeStyle(category),
		activeStyle(payment),
		activeStyle(string(m.listing.Sort.Field)),
		activeStyle(string(m.listing.Sort.Direction)),
	)

	body := m.table.View()
	if m.page.Total == 0 {
		body = faintStyle.Render("No expenses found.")
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(body)

	sections := []string{lipgloss.NewStyle().PaddingBottom(1).Render(header)}

	if m.state == expensesStateSearch {
		sections = append(sections, m.search.View(), "")
	}

	sections = append(sections, tableView, m.pagerView())

	content := lipgloss.JoinVertical(lipgloss.Left, sections...)

	switch {
	case m.state == expensesStateForm && m.form != nil:
		title := "Add Expense"
		if m.editingID != 0 {
			title = "Edit Expense"
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(50).
			Render(title + "\n\n" + formErrorsView(m.formErrs) + m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)

	case m.state == expensesStateConfirm && m.deleting != nil:
		content += "\n\n" + errorStyle.Render(fmt.Sprintf(
			"Delete %q (%s)? [y/n]", m.deleting.Description, FormatAmount(m.deleting.Amount),
		))
	}

	if m.status != "" {
		content = faintStyle.Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m ExpensesModel) pagerView() string {
	if m.page.TotalPages <= 1 {
		return faintStyle.Render(fmt.Sprintf("%d expenses", m.page.Total))
	}

	parts := make([]string, 0, m.page.TotalPages)

	for _, p := range listing.Window(m.page.Page, m.page.TotalPages) {
		switch p {
		case listing.Ellipsis:
			parts = append(parts, "…")
		case m.page.Page:
			parts = append(parts, activeStyle("["+strconv.Itoa(p)+"]"))
		default:
			parts = append(parts, strconv.Itoa(p))
		}
	}

	return fmt.Sprintf("%s  %s", strings.Join(parts, " "),
		faintStyle.Render(fmt.Sprintf("%d expenses", m.page.Total)))
}

func formErrorsView(errs validation.Errors) string {
	if errs.Valid() {
		return ""
	}

	var sb strings.Builder
	for _, field := range errs.Fields() {
		sb.WriteString(errorStyle.Render("• "+errs[field]) + "\n")
	}

	return sb.String() + "\n"
}

func (m *ExpensesModel) goToPage(page int) {
	if next, ok := m.listing.WithPage(page, m.page.Total); ok {
		m.listing = next
		m.reload()
	}
}

func (m *ExpensesModel) reload() {
	m.page = m.svc.ListExpenses(m.listing)
	m.listing.Page = m.page.Page

	rows := make([]table.Row, 0, len(m.page.Items))
	for _, e := range m.page.Items {
		rows = append(rows, table.Row{
			FormatDate(e.Date),
			e.Description,
			e.Category.Icon() + " " + e.Category.Name(),
			e.PaymentMethod.Name(),
			FormatAmount(e.Amount),
		})
	}

	m.table.SetColumns(expenseColumns(m.listing.Sort))
	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m ExpensesModel) selected() (expense.Expense, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.page.Items) {
		return expense.Expense{}, false
	}

	return m.page.Items[idx], true
}

// expenseColumns marks the sorted column with an arrow.
func expenseColumns(order expense.Sort) []table.Column {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Description", Width: 32},
		{Title: "Category", Width: 18},
		{Title: "Payment", Width: 9},
		{Title: "Amount", Width: 14},
	}

	for i, field := range expense.SortFields {
		if field != order.Field {
			continue
		}

		arrow := " ▲"
		if order.Direction == expense.Desc {
			arrow = " ▼"
		}

		columns[i].Title += arrow
	}

	return columns
}

func nextSortField(current expense.SortField) expense.SortField {
	idx := slices.Index(expense.SortFields, current)
	return expense.SortFields[(idx+1)%len(expense.SortFields)]
}

// nextCategory cycles through every category and back to no filter.
func nextCategory(current expense.Category) expense.Category {
	categories := expense.Categories()

	idx := slices.Index(categories, current)
	if idx == len(categories)-1 {
		return ""
	}

	return categories[idx+1]
}

func nextPaymentMethod(current expense.PaymentMethod) expense.PaymentMethod {
	methods := expense.PaymentMethods()

	idx := slices.Index(methods, current)
	if idx == len(methods)-1 {
		return ""
	}

	return methods[idx+1]
}

// Messages

type expenseSavedMsg struct {
	expense expense.Expense
	err     error
}

type expenseDeletedMsg struct {
	err error
}

func (m ExpensesModel) saveCmd() tea.Cmd {
	svc := m.svc
	id := m.editingID
	values := *m.values

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		if id == 0 {
			e, err := svc.AddExpense(ctx, values)
			return expenseSavedMsg{expense: e, err: err}
		}

		e, err := svc.UpdateExpense(ctx, id, values)

		return expenseSavedMsg{expense: e, err: err}
	}
}

func (m ExpensesModel) deleteCmd(id int64) tea.Cmd {
	svc := m.svc

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return expenseDeletedMsg{err: svc.DeleteExpense(ctx, id)}
	}
}

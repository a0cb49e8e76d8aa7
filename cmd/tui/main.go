package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/spendbook/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/spendbook/internal/config"
	"github.com/MrJamesThe3rd/spendbook/internal/database"
	"github.com/MrJamesThe3rd/spendbook/internal/export"
	"github.com/MrJamesThe3rd/spendbook/internal/importer"
	"github.com/MrJamesThe3rd/spendbook/internal/logger"
	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

const logFile = "spendbook-tui.log"

type model struct {
	appName       string
	pageSize      int
	svc           *tracker.Service
	parser        *importer.Parser
	exportService *export.Service

	currentView View

	dashboardView view.DashboardModel
	expensesView  view.ExpensesModel
	budgetsView   view.BudgetsModel
	importView    view.ImportModel
	exportView    view.ExportModel
}

type View int

const (
	ViewMenu      View = 0
	ViewDashboard View = 1
	ViewExpenses  View = 2
	ViewBudgets   View = 3
	ViewImport    View = 4
	ViewExport    View = 5
)

func initialModel(cfg *config.Config, svc *tracker.Service) model {
	parser := importer.NewParser()
	expSvc := export.NewService(svc)

	return model{
		appName:       cfg.App.Name,
		pageSize:      cfg.App.PageSize,
		svc:           svc,
		parser:        parser,
		exportService: expSvc,
		currentView:   ViewMenu,
		dashboardView: view.NewDashboardModel(svc),
		expensesView:  view.NewExpensesModel(svc, cfg.App.PageSize),
		budgetsView:   view.NewBudgetsModel(svc),
		importView:    view.NewImportModel(svc, parser),
		exportView:    view.NewExportModel(expSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewDashboard
				m.dashboardView = view.NewDashboardModel(m.svc)

				return m, m.dashboardView.Init()
			case "2":
				m.currentView = ViewExpenses
				m.expensesView = view.NewExpensesModel(m.svc, m.pageSize)

				return m, m.expensesView.Init()
			case "3":
				m.currentView = ViewBudgets
				m.budgetsView = view.NewBudgetsModel(m.svc)

				return m, m.budgetsView.Init()
			case "4":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.svc, m.parser)

				return m, m.importView.Init()
			case "5":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService)

				return m, m.exportView.Init()
			}
		}
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewDashboard:
		var newModel tea.Model
		newModel, cmd = m.dashboardView.Update(msg)
		m.dashboardView = newModel.(view.DashboardModel)
	case ViewExpenses:
		var newModel tea.Model
		newModel, cmd = m.expensesView.Update(msg)
		m.expensesView = newModel.(view.ExpensesModel)
	case ViewBudgets:
		var newModel tea.Model
		newModel, cmd = m.budgetsView.Update(msg)
		m.budgetsView = newModel.(view.BudgetsModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

func (m model) View() string {
	var current view.View

	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			m.appName + "\n\n" +
				"1. Dashboard\n" +
				"2. Expenses\n" +
				"3. Budgets\n" +
				"4. Import Expenses\n" +
				"5. Export Expenses\n\n" +
				"q. Quit",
		)
	case ViewDashboard:
		current = m.dashboardView
	case ViewExpenses:
		current = m.expensesView
	case ViewBudgets:
		current = m.budgetsView
	case ViewImport:
		current = m.importView
	case ViewExport:
		current = m.exportView
	default:
		return "Unknown View"
	}

	help := lipgloss.NewStyle().Faint(true).PaddingLeft(1).Render(current.ShortHelp())

	return lipgloss.JoinVertical(lipgloss.Left, current.View(), help)
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	f, err := tea.LogToFile(logFile, "")
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer f.Close()

	slog.SetDefault(logger.New(f, cfg.Log.Level, cfg.Log.Format))

	ctx, cancel := view.DbCtx()
	defer cancel()

	backend, closeBackend, err := database.Open(ctx, cfg)
	if err != nil {
		slog.Error("failed to open storage", "driver", cfg.Storage.Driver, "error", err)
		os.Exit(1)
	}
	defer closeBackend()

	svc := tracker.Load(ctx, storage.New(backend))

	p := tea.NewProgram(initialModel(cfg, svc), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}

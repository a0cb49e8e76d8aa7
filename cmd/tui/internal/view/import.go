package view

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/filepicker"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/spendbook/internal/importer"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

const importTimeout = 2 * time.Minute

// maxRejectedShown caps the rejected rows listed on the result screen.
const maxRejectedShown = 10

type importState int

const (
	importStateFilePick importState = iota
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	svc    *tracker.Service
	parser *importer.Parser

	state      importState
	filePicker filepicker.Model
	spinner    spinner.Model
	path       string

	imported int
	rejected []rejectedLine

	status string
	err    error
}

type rejectedLine struct {
	line   int
	reason string
}

func NewImportModel(svc *tracker.Service, parser *importer.Parser) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.AllowedTypes = []string{".csv"}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		svc:        svc,
		parser:     parser,
		filePicker: fp,
		spinner:    newSpinner(),
	}
}

func (m ImportModel) Title() string { return "Import Expenses" }

func (m ImportModel) ShortHelp() string {
	if m.state == importStateResult {
		return "Esc: import another file"
	}

	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

	case importResultMsg:
		m.state = importStateResult

		if msg.err != nil {
			m.err = msg.err
			m.status = fmt.Sprintf("Error: %v", msg.err)

			return m, nil
		}

		m.imported = len(msg.result.Imported)
		m.rejected = rejectedLines(msg.rows, msg.result)
		m.status = fmt.Sprintf("Imported %d expenses from %s.", m.imported, m.path)

		return m, nil
	}

	switch m.state {
	case importStateImporting:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd

	case importStateResult:
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.path = path

		return m, tea.Batch(m.spinner.Tick, m.importCmd(path))
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	if m.state == importStateResult {
		m.state = importStateFilePick
		m.err = nil
		m.status = ""
		m.rejected = nil

		return m, m.filePicker.Init()
	}

	return m, Back
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFilePick:
		return pageStyle.Render(fmt.Sprintf("Select CSV file to import:\n\n%s", m.filePicker.View()))
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(
			fmt.Sprintf("%s Importing from %s...", m.spinner.View(), m.path),
		)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	var sb strings.Builder

	sb.WriteString(successStyle.Render(m.status))

	if len(m.rejected) > 0 {
		sb.WriteString("\n\n" + errorStyle.Render(fmt.Sprintf("%d rows rejected:", len(m.rejected))) + "\n")

		for i, r := range m.rejected {
			if i == maxRejectedShown {
				sb.WriteString(faintStyle.Render(fmt.Sprintf("  ... and %d more", len(m.rejected)-maxRejectedShown)) + "\n")
				break
			}

			sb.WriteString(fmt.Sprintf("  line %d: %s\n", r.line, r.reason))
		}
	}

	sb.WriteString("\n(Esc to go back)")

	return style.Render(sb.String())
}

// rejectedLines maps rejected rows back to their line in the file.
func rejectedLines(rows []importer.Row, result tracker.ImportResult) []rejectedLine {
	out := make([]rejectedLine, 0, len(result.Rejected))

	for _, rej := range result.Rejected {
		msgs := make([]string, 0, len(rej.Errors))
		for _, field := range rej.Errors.Fields() {
			msgs = append(msgs, rej.Errors[field])
		}

		out = append(out, rejectedLine{
			line:   rows[rej.Row-1].Line,
			reason: strings.Join(msgs, "; "),
		})
	}

	return out
}

// Messages

type importResultMsg struct {
	rows   []importer.Row
	result tracker.ImportResult
	err    error
}

func (m ImportModel) importCmd(path string) tea.Cmd {
	svc := m.svc
	parser := m.parser

	return func() tea.Msg {
		f, err := os.Open(path)
		if err != nil {
			return importResultMsg{err: err}
		}
		defer f.Close()

		rows, err := parser.Parse(f)
		if err != nil {
			return importResultMsg{err: err}
		}

		ctx, cancel := context.WithTimeout(context.Background(), importTimeout)
		defer cancel()

		return importResultMsg{rows: rows, result: svc.Import(ctx, importer.Forms(rows))}
	}
}

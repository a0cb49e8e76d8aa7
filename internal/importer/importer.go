// Package importer reads expenses from CSV files. The layout is recognised from the header row, which may
// be preceded by free-form preamble lines.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/MrJamesThe3rd/spendbook/internal/encoding"
	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

var ErrNoHeader = errors.New("no recognised header row")

// Row is one data row as raw form values. Line is the 1-based line of the row in the file.
type Row struct {
	Line int
	Form expense.Form
}

type Parser struct{}

func NewParser() *Parser {
	return &Parser{}
}

// Parse decodes r to UTF-8, detects the layout and returns every non-blank data row. Values are normalised
// but not validated.
func (p *Parser) Parse(r io.Reader) ([]Row, error) {
	utf8r, charset, err := encoding.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	data, err := io.ReadAll(utf8r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	for _, profile := range profiles {
		rows, err := parseWith(profile, string(data))
		if errors.Is(err, ErrNoHeader) {
			continue
		}

		if err != nil {
			return nil, err
		}

		slog.Debug("parsed csv", "profile", profile.Name, "charset", charset, "rows", len(rows))

		return rows, nil
	}

	return nil, fmt.Errorf("%w: expected columns %s", ErrNoHeader, strings.Join(profiles[0].requiredCols(), ", "))
}

func parseWith(p Profile, data string) ([]Row, error) {
	reader := csv.NewReader(strings.NewReader(data))
	reader.Comma = p.Comma
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		cols colIndex
		out  []Row
	)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		if err != nil {
			if cols == nil {
				return nil, ErrNoHeader
			}

			return nil, fmt.Errorf("read csv: %w", err)
		}

		if cols == nil {
			if h := indexHeader(record); h.matches(p) {
				cols = h
			}

			continue
		}

		if blank(record) {
			continue
		}

		line, _ := reader.FieldPos(0)

		amount := normalizeAmount(cols.cell(record, p.AmountCol))

		if p.DebitsOnly {
			debit, ok := debitAmount(amount)
			if !ok {
				continue
			}

			amount = debit
		}

		out = append(out, Row{
			Line: line,
			Form: expense.Form{
				Amount:        amount,
				Category:      orDefault(strings.ToLower(cols.cell(record, p.CategoryCol)), string(p.DefaultCategory)),
				Date:          normalizeDate(cols.cell(record, p.DateCol)),
				Description:   cols.cell(record, p.DescCol),
				PaymentMethod: orDefault(strings.ToLower(cols.cell(record, p.PaymentCol)), string(p.DefaultPayment)),
			},
		})
	}

	if cols == nil {
		return nil, ErrNoHeader
	}

	return out, nil
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}

	return v
}

func blank(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}

	return true
}

// Forms returns the form values of rows, in order.
func Forms(rows []Row) []expense.Form {
	out := make([]expense.Form, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Form)
	}

	return out
}

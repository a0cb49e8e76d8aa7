package export

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/stats"
)

// Header is the first row of every exported file. The importer reads files in this layout back.
var Header = []string{"date", "description", "category", "payment_method", "amount"}

// order lists exported expenses oldest first.
var order = expense.Sort{Field: expense.SortDate, Direction: expense.Asc}

//go:generate mockgen -source=service.go -destination=querier_mock.go -package=export
type Querier interface {
	Query(f expense.Filter, s expense.Sort) []expense.Expense
}

// Result describes a finished export.
type Result struct {
	Path  string
	Items []expense.Expense
}

type Service struct {
	expenses Querier
	now      func() time.Time
}

type Option func(*Service)

// WithClock overrides the clock used to name export files.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(expenses Querier, opts ...Option) *Service {
	s := &Service{expenses: expenses, now: time.Now}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

func (s *Service) Now() time.Time {
	return s.now()
}

// Export writes the expenses matching filter to a new CSV file inside dir, creating dir if needed.
func (s *Service) Export(ctx context.Context, filter expense.Filter, dir string) (Result, error) {
	items := s.Items(filter)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return Result{}, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, Filename(s.now()))

	f, err := os.Create(path)
	if err != nil {
		return Result{}, fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	if err := WriteCSV(f, items); err != nil {
		return Result{}, err
	}

	return Result{Path: path, Items: items}, nil
}

// Items returns the expenses matching filter in export order.
func (s *Service) Items(filter expense.Filter) []expense.Expense {
	return s.expenses.Query(filter, order)
}

// Filename names an export file after the moment it was taken.
func Filename(now time.Time) string {
	return fmt.Sprintf("spendbook-%s.csv", now.Format("20060102-150405"))
}

// WriteCSV writes Header followed by one row per expense.
func WriteCSV(w io.Writer, expenses []expense.Expense) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, e := range expenses {
		row := []string{
			expense.FormatDate(e.Date),
			e.Description,
			string(e.Category),
			string(e.PaymentMethod),
			e.Amount.StringFixed(2),
		}

		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing expense %d: %w", e.ID, err)
		}
	}

	cw.Flush()

	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing csv: %w", err)
	}

	return nil
}

// GenerateSummary renders one line per expense followed by the totals of the set.
func GenerateSummary(items []expense.Expense) string {
	var sb strings.Builder

	for _, e := range items {
		sb.WriteString(fmt.Sprintf("* %s | %s | %s | %s | %s €\n",
			expense.FormatDate(e.Date), e.Description, e.Category.Name(), e.PaymentMethod.Name(), e.Amount.StringFixed(2)))
	}

	sum := stats.Summarize(items)

	sb.WriteString(fmt.Sprintf("\n%d expenses, total %s €, top category %s, cash : card %s\n",
		sum.Count, sum.Total.StringFixed(2), sum.TopCategory, sum.PaymentRatio))

	return sb.String()
}

// Package tracker is the application layer shared by the HTTP API and the terminal UI. It validates user
// input, applies it to the expense repository and the budget ledger, and derives the figures both surfaces
// display.
package tracker

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/budget"
	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/listing"
	"github.com/MrJamesThe3rd/spendbook/internal/stats"
	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

var ErrNotFound = errors.New("not found")

type Service struct {
	expenses *expense.Repository
	budgets  *budget.Ledger
}

func NewService(expenses *expense.Repository, budgets *budget.Ledger) *Service {
	return &Service{expenses: expenses, budgets: budgets}
}

// Now returns the current time of the expense clock.
func (s *Service) Now() time.Time {
	return s.expenses.Now()
}

// Load reads both documents through gw and returns a service that writes every change back through it.
func Load(ctx context.Context, gw *storage.Gateway, opts ...expense.Option) *Service {
	return NewService(
		expense.NewRepository(gw, gw.LoadExpenses(ctx), opts...),
		budget.NewLedger(gw, gw.LoadBudgets(ctx)),
	)
}

// AddExpense validates f and records it. Invalid input is returned as validation.Errors.
func (s *Service) AddExpense(ctx context.Context, f expense.Form) (expense.Expense, error) {
	in, errs := expense.ParseForm(f, s.expenses.Now())
	if !errs.Valid() {
		return expense.Expense{}, errs
	}

	return s.expenses.Add(ctx, in), nil
}

// UpdateExpense replaces the editable fields of an existing expense, keeping its id and creation time.
func (s *Service) UpdateExpense(ctx context.Context, id int64, f expense.Form) (expense.Expense, error) {
	if _, ok := s.expenses.Find(id); !ok {
		return expense.Expense{}, ErrNotFound
	}

	in, errs := expense.ParseForm(f, s.expenses.Now())
	if !errs.Valid() {
		return expense.Expense{}, errs
	}

	e, ok := s.expenses.Update(ctx, id, in)
	if !ok {
		return expense.Expense{}, ErrNotFound
	}

	return e, nil
}

func (s *Service) DeleteExpense(ctx context.Context, id int64) error {
	if !s.expenses.Remove(ctx, id) {
		return ErrNotFound
	}

	return nil
}

func (s *Service) Expense(id int64) (expense.Expense, error) {
	e, ok := s.expenses.Find(id)
	if !ok {
		return expense.Expense{}, ErrNotFound
	}

	return e, nil
}

// Query returns every expense matching f in the order given by o.
func (s *Service) Query(f expense.Filter, o expense.Sort) []expense.Expense {
	return s.expenses.Query(f, o)
}

// ListExpenses returns the page of expenses described by state.
func (s *Service) ListExpenses(state listing.State) listing.Page {
	return state.Paginate(s.expenses.Query(state.Filter, state.Sort))
}

// SetBudget parses amount and sets it as the monthly ceiling of category.
func (s *Service) SetBudget(ctx context.Context, category, amount string) (budget.Status, error) {
	c := expense.Category(strings.TrimSpace(category))

	// An unparsable amount stays zero and is reported by Validate.
	value, _ := expense.ParseAmount(amount)

	if errs := budget.Validate(c, value); !errs.Valid() {
		return budget.Status{}, errs
	}

	s.budgets.Set(ctx, c, value)

	st, _ := s.budgets.Status(c, s.spentThisMonth()[c])

	return st, nil
}

func (s *Service) DeleteBudget(ctx context.Context, category string) error {
	if !s.budgets.Delete(ctx, expense.Category(category)) {
		return ErrNotFound
	}

	return nil
}

// Budgets evaluates every ceiling against this month's spending, in category display order.
func (s *Service) Budgets() []budget.Status {
	spent := s.spentThisMonth()
	categories := s.budgets.Categories()

	out := make([]budget.Status, 0, len(categories))

	for _, c := range categories {
		if st, ok := s.budgets.Status(c, spent[c]); ok {
			out = append(out, st)
		}
	}

	return out
}

func (s *Service) spentThisMonth() map[expense.Category]decimal.Decimal {
	return stats.CategoryTotals(s.expenses.CurrentMonth())
}

// Dashboard summarises every recorded expense.
func (s *Service) Dashboard() stats.Summary {
	return stats.Summarize(s.expenses.All())
}

// Chart returns spending per category over every recorded expense.
func (s *Service) Chart() []stats.CategoryTotal {
	return stats.SortedCategoryTotals(s.expenses.All())
}

// RowError reports why one imported row was rejected. Row counts data rows from 1.
type RowError struct {
	Row    int
	Errors validation.Errors
}

type ImportResult struct {
	Imported []expense.Expense
	Rejected []RowError
}

// Import validates each row on its own and records the valid ones. A bad row never blocks the others.
func (s *Service) Import(ctx context.Context, rows []expense.Form) ImportResult {
	var res ImportResult

	now := s.expenses.Now()

	for i, f := range rows {
		in, errs := expense.ParseForm(f, now)
		if !errs.Valid() {
			res.Rejected = append(res.Rejected, RowError{Row: i + 1, Errors: errs})
			continue
		}

		res.Imported = append(res.Imported, s.expenses.Add(ctx, in))
	}

	return res
}

// Reset removes every expense and every budget.
func (s *Service) Reset(ctx context.Context) {
	s.expenses.Reset(ctx)
	s.budgets.Reset(ctx)
}

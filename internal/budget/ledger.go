package budget

import (
	"context"
	"log/slog"
	"maps"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

//go:generate mockgen -source=ledger.go -destination=store_mock.go -package=budget
type Store interface {
	SaveBudgets(ctx context.Context, budgets map[expense.Category]decimal.Decimal) error
}

// Ledger owns the category to monthly ceiling mapping and writes it through to a Store on every change.
type Ledger struct {
	mu      sync.RWMutex
	store   Store
	budgets map[expense.Category]decimal.Decimal
}

// NewLedger builds a ledger from previously loaded ceilings, skipping entries Set would reject.
func NewLedger(store Store, initial map[expense.Category]decimal.Decimal) *Ledger {
	budgets := make(map[expense.Category]decimal.Decimal, len(initial))

	for c, amount := range initial {
		if !c.Valid() || !amount.IsPositive() {
			slog.Warn("skipping invalid budget", "category", c, "amount", amount.String())
			continue
		}

		budgets[c] = amount
	}

	return &Ledger{store: store, budgets: budgets}
}

// Set stores amount as the ceiling for category. It rejects unknown categories and non-positive amounts
// without touching the ledger.
func (l *Ledger) Set(ctx context.Context, category expense.Category, amount decimal.Decimal) bool {
	if !category.Valid() || !amount.IsPositive() {
		return false
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.budgets[category] = amount
	l.persist(ctx)

	return true
}

func (l *Ledger) Delete(ctx context.Context, category expense.Category) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.budgets[category]; !ok {
		return false
	}

	delete(l.budgets, category)
	l.persist(ctx)

	return true
}

func (l *Ledger) Get(category expense.Category) (decimal.Decimal, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	amount, ok := l.budgets[category]

	return amount, ok
}

// All returns a copy of every ceiling.
func (l *Ledger) All() map[expense.Category]decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return maps.Clone(l.budgets)
}

func (l *Ledger) HasAny() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.budgets) > 0
}

// Categories returns the categories that have a ceiling, in display order.
func (l *Ledger) Categories() []expense.Category {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var out []expense.Category

	for _, c := range expense.Categories() {
		if _, ok := l.budgets[c]; ok {
			out = append(out, c)
		}
	}

	return out
}

// Status evaluates spent against the ceiling of category. ok is false when no positive ceiling is set.
func (l *Ledger) Status(category expense.Category, spent decimal.Decimal) (Status, bool) {
	ceiling, ok := l.Get(category)
	if !ok || !ceiling.IsPositive() {
		return Status{}, false
	}

	return Evaluate(category, ceiling, spent), true
}

// Reset removes every ceiling.
func (l *Ledger) Reset(ctx context.Context) {
	l.mu.Lock()
	defer l.mu.Unlock()

	clear(l.budgets)
	l.persist(ctx)
}

// persist must be called with mu held.
func (l *Ledger) persist(ctx context.Context) {
	if err := l.store.SaveBudgets(ctx, maps.Clone(l.budgets)); err != nil {
		slog.Error("failed to persist budgets", "error", err, "count", len(l.budgets))
	}
}

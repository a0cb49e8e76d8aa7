package expense

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"time"
)

//go:generate mockgen -source=repository.go -destination=store_mock.go -package=expense
type Store interface {
	SaveExpenses(ctx context.Context, expenses []Expense) error
}

// Repository owns the in-memory expense collection and writes it through to a Store on every mutation.
// Persistence failures are logged and swallowed: memory stays authoritative and the next mutation
// writes the full collection again.
type Repository struct {
	mu       sync.RWMutex
	store    Store
	expenses []Expense
	lastID   int64
	now      func() time.Time
}

type Option func(*Repository)

// WithClock overrides the wall clock used for ids, timestamps and the current month.
func WithClock(now func() time.Time) Option {
	return func(r *Repository) {
		r.now = now
	}
}

// NewRepository builds a repository seeded with previously loaded records.
func NewRepository(store Store, initial []Expense, opts ...Option) *Repository {
	r := &Repository{
		store:    store,
		expenses: slices.Clone(initial),
		now:      time.Now,
	}

	for _, opt := range opts {
		opt(r)
	}

	for _, e := range r.expenses {
		r.lastID = max(r.lastID, e.ID)
	}

	return r
}

// Add stores a new record built from already validated input.
func (r *Repository) Add(ctx context.Context, in Input) Expense {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()

	e := Expense{
		ID:            r.nextID(now),
		Amount:        in.Amount,
		Category:      in.Category,
		Date:          Day(in.Date),
		Description:   strings.TrimSpace(in.Description),
		PaymentMethod: in.PaymentMethod,
		CreatedAt:     now.UTC(),
	}

	r.expenses = append(r.expenses, e)
	r.persist(ctx)

	return e
}

// nextID derives the id from the creation time, bumping it when two records share a millisecond.
func (r *Repository) nextID(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= r.lastID {
		id = r.lastID + 1
	}

	r.lastID = id

	return id
}

// Update replaces the editable fields of the record with the given id, keeping its id and creation time.
func (r *Repository) Update(ctx context.Context, id int64, in Input) (Expense, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return Expense{}, false
	}

	e := &r.expenses[idx]
	e.Amount = in.Amount
	e.Category = in.Category
	e.Date = Day(in.Date)
	e.Description = strings.TrimSpace(in.Description)
	e.PaymentMethod = in.PaymentMethod

	r.persist(ctx)

	return *e, true
}

// Remove deletes the record with the given id and reports whether one existed.
func (r *Repository) Remove(ctx context.Context, id int64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return false
	}

	r.expenses = slices.Delete(r.expenses, idx, idx+1)
	r.persist(ctx)

	return true
}

func (r *Repository) Find(id int64) (Expense, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx := r.indexOf(id)
	if idx < 0 {
		return Expense{}, false
	}

	return r.expenses[idx], true
}

// Query returns the records matching f, ordered by s.
func (r *Repository) Query(f Filter, s Sort) []Expense {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return Apply(r.expenses, f, s)
}

// All returns every record in insertion order.
func (r *Repository) All() []Expense {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return slices.Clone(r.expenses)
}

// CurrentMonth returns the records dated in the clock's current calendar month.
func (r *Repository) CurrentMonth() []Expense {
	r.mu.RLock()
	defer r.mu.RUnlock()

	year, month, _ := r.now().Date()

	var out []Expense

	for _, e := range r.expenses {
		if e.Date.Year() == year && e.Date.Month() == month {
			out = append(out, e)
		}
	}

	return out
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.expenses)
}

// Reset drops every record.
func (r *Repository) Reset(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.expenses = nil
	r.persist(ctx)
}

// Now returns the repository clock's current time.
func (r *Repository) Now() time.Time {
	return r.now()
}

func (r *Repository) indexOf(id int64) int {
	return slices.IndexFunc(r.expenses, func(e Expense) bool { return e.ID == id })
}

// persist must be called with mu held.
func (r *Repository) persist(ctx context.Context) {
	if err := r.store.SaveExpenses(ctx, slices.Clone(r.expenses)); err != nil {
		slog.Error("failed to persist expenses", "error", err, "count", len(r.expenses))
	}
}

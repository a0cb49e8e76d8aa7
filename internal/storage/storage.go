// Package storage persists the expense collection and the budget mapping as two independent JSON documents
// over a key-value Backend.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

const (
	KeyExpenses = "expenses"
	KeyBudgets  = "budgets"
)

// ErrNotFound is returned by a Backend when no document is stored under a key.
var ErrNotFound = errors.New("document not found")

// Backend stores opaque documents by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}

// Gateway encodes and decodes the two documents. Loads never fail: a missing or unreadable document
// yields an empty collection.
type Gateway struct {
	backend Backend
}

func New(backend Backend) *Gateway {
	return &Gateway{backend: backend}
}

type expenseDocument struct {
	ID            int64       `json:"id"`
	Amount        json.Number `json:"amount"`
	Category      string      `json:"category"`
	Date          string      `json:"date"`
	Description   string      `json:"description"`
	PaymentMethod string      `json:"paymentMethod"`
	Timestamp     time.Time   `json:"timestamp"`
}

func toDocument(e expense.Expense) expenseDocument {
	return expenseDocument{
		ID:            e.ID,
		Amount:        json.Number(e.Amount.String()),
		Category:      string(e.Category),
		Date:          expense.FormatDate(e.Date),
		Description:   e.Description,
		PaymentMethod: string(e.PaymentMethod),
		Timestamp:     e.CreatedAt,
	}
}

func (d expenseDocument) toExpense() (expense.Expense, error) {
	amount, err := decimal.NewFromString(d.Amount.String())
	if err != nil {
		return expense.Expense{}, fmt.Errorf("parsing amount of expense %d: %w", d.ID, err)
	}

	date, err := expense.ParseDate(d.Date)
	if err != nil {
		return expense.Expense{}, fmt.Errorf("parsing date of expense %d: %w", d.ID, err)
	}

	return expense.Expense{
		ID:            d.ID,
		Amount:        amount,
		Category:      expense.Category(d.Category),
		Date:          date,
		Description:   d.Description,
		PaymentMethod: expense.PaymentMethod(d.PaymentMethod),
		CreatedAt:     d.Timestamp,
	}, nil
}

// EncodeExpenses renders the collection in its persisted layout.
func EncodeExpenses(expenses []expense.Expense) ([]byte, error) {
	docs := make([]expenseDocument, 0, len(expenses))
	for _, e := range expenses {
		docs = append(docs, toDocument(e))
	}

	data, err := json.Marshal(docs)
	if err != nil {
		return nil, fmt.Errorf("encoding expenses: %w", err)
	}

	return data, nil
}

// DecodeExpenses parses a persisted collection. Any malformed record rejects the whole document.
func DecodeExpenses(data []byte) ([]expense.Expense, error) {
	var docs []expenseDocument
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("decoding expenses: %w", err)
	}

	out := make([]expense.Expense, 0, len(docs))

	for _, d := range docs {
		e, err := d.toExpense()
		if err != nil {
			return nil, fmt.Errorf("decoding expenses: %w", err)
		}

		out = append(out, e)
	}

	return out, nil
}

func EncodeBudgets(budgets map[expense.Category]decimal.Decimal) ([]byte, error) {
	doc := make(map[string]json.Number, len(budgets))
	for c, amount := range budgets {
		doc[string(c)] = json.Number(amount.String())
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encoding budgets: %w", err)
	}

	return data, nil
}

// DecodeBudgets parses a persisted ceiling map. Entries for unknown categories or with a non-positive
// amount are dropped.
func DecodeBudgets(data []byte) (map[expense.Category]decimal.Decimal, error) {
	var doc map[string]json.Number
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decoding budgets: %w", err)
	}

	out := make(map[expense.Category]decimal.Decimal, len(doc))

	for c, n := range doc {
		amount, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil, fmt.Errorf("decoding budget %q: %w", c, err)
		}

		category := expense.Category(c)
		if !category.Valid() || !amount.IsPositive() {
			slog.Warn("skipping invalid budget", "category", c, "amount", n.String())
			continue
		}

		out[category] = amount
	}

	return out, nil
}

// LoadExpenses returns the stored collection, or an empty one when it is missing or corrupt.
func (g *Gateway) LoadExpenses(ctx context.Context) []expense.Expense {
	data, ok := g.get(ctx, KeyExpenses)
	if !ok {
		return []expense.Expense{}
	}

	expenses, err := DecodeExpenses(data)
	if err != nil {
		slog.Warn("discarding corrupt document", "key", KeyExpenses, "error", err)
		return []expense.Expense{}
	}

	return expenses
}

func (g *Gateway) SaveExpenses(ctx context.Context, expenses []expense.Expense) error {
	data, err := EncodeExpenses(expenses)
	if err != nil {
		return err
	}

	if err := g.backend.Put(ctx, KeyExpenses, data); err != nil {
		return fmt.Errorf("saving expenses: %w", err)
	}

	return nil
}

// LoadBudgets returns the stored mapping, or an empty one when it is missing or corrupt.
func (g *Gateway) LoadBudgets(ctx context.Context) map[expense.Category]decimal.Decimal {
	data, ok := g.get(ctx, KeyBudgets)
	if !ok {
		return map[expense.Category]decimal.Decimal{}
	}

	budgets, err := DecodeBudgets(data)
	if err != nil {
		slog.Warn("discarding corrupt document", "key", KeyBudgets, "error", err)
		return map[expense.Category]decimal.Decimal{}
	}

	return budgets
}

func (g *Gateway) SaveBudgets(ctx context.Context, budgets map[expense.Category]decimal.Decimal) error {
	data, err := EncodeBudgets(budgets)
	if err != nil {
		return err
	}

	if err := g.backend.Put(ctx, KeyBudgets, data); err != nil {
		return fmt.Errorf("saving budgets: %w", err)
	}

	return nil
}

func (g *Gateway) get(ctx context.Context, key string) ([]byte, bool) {
	data, err := g.backend.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			slog.Warn("failed to read document", "key", key, "error", err)
		}

		return nil, false
	}

	return data, true
}

package expense_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

var now = time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func input(amount int64, cat expense.Category, pm expense.PaymentMethod, d time.Time, desc string) expense.Input {
	return expense.Input{
		Amount:        decimal.NewFromInt(amount),
		Category:      cat,
		Date:          d,
		Description:   desc,
		PaymentMethod: pm,
	}
}

func newRepo(t *testing.T, initial ...expense.Expense) (*expense.Repository, *expense.MockStore) {
	t.Helper()

	ctrl := gomock.NewController(t)
	store := expense.NewMockStore(ctrl)

	return expense.NewRepository(store, initial, expense.WithClock(clock)), store
}

func TestRepository_AddThenFind(t *testing.T) {
	repo, store := newRepo(t)
	store.EXPECT().SaveExpenses(gomock.Any(), gomock.Len(1)).Return(nil)

	in := input(42, expense.CategoryFood, expense.PaymentCash, date(2024, 3, 14), "  Groceries ")
	got := repo.Add(context.Background(), in)

	found, ok := repo.Find(got.ID)
	require.True(t, ok)
	assert.Equal(t, got, found)

	assert.Equal(t, now.UnixMilli(), found.ID)
	assert.Equal(t, now, found.CreatedAt)
	assert.True(t, in.Amount.Equal(found.Amount))
	assert.Equal(t, expense.CategoryFood, found.Category)
	assert.Equal(t, date(2024, 3, 14), found.Date)
	assert.Equal(t, "Groceries", found.Description)
	assert.Equal(t, expense.PaymentCash, found.PaymentMethod)
}

func TestRepository_Add_UniqueIncreasingIDs(t *testing.T) {
	repo, store := newRepo(t, expense.Expense{ID: now.UnixMilli() + 5})
	store.EXPECT().SaveExpenses(gomock.Any(), gomock.Any()).Return(nil).Times(3)

	ctx := context.Background()
	in := input(10, expense.CategoryBills, expense.PaymentCard, date(2024, 3, 1), "Power bill")

	a := repo.Add(ctx, in)
	b := repo.Add(ctx, in)
	c := repo.Add(ctx, in)

	assert.Equal(t, now.UnixMilli()+6, a.ID)
	assert.Equal(t, a.ID+1, b.ID)
	assert.Equal(t, b.ID+1, c.ID)
}

func TestRepository_Add_PersistFailureIsSwallowed(t *testing.T) {
	repo, store := newRepo(t)
	store.EXPECT().SaveExpenses(gomock.Any(), gomock.Any()).Return(errors.New("disk full"))

	got := repo.Add(context.Background(), input(5, expense.CategoryOthers, expense.PaymentCash, date(2024, 3, 2), "Stamps"))

	assert.NotZero(t, got.ID)
	assert.Equal(t, 1, repo.Len())
}

func TestRepository_Remove_Idempotent(t *testing.T) {
	existing := expense.Expense{ID: 7, Description: "Taxi", Category: expense.CategoryTransport}
	repo, store := newRepo(t, existing)
	store.EXPECT().SaveExpenses(gomock.Any(), gomock.Len(0)).Return(nil).Times(1)

	ctx := context.Background()

	assert.True(t, repo.Remove(ctx, 7))
	assert.False(t, repo.Remove(ctx, 7))

	_, ok := repo.Find(7)
	assert.False(t, ok)
}

func TestRepository_Update_PreservesIdentity(t *testing.T) {
	created := time.Date(2024, 3, 1, 8, 0, 0, 0, time.UTC)
	existing := expense.Expense{
		ID:            99,
		Amount:        decimal.NewFromInt(10),
		Category:      expense.CategoryFood,
		Date:          date(2024, 3, 1),
		Description:   "Coffee",
		PaymentMethod: expense.PaymentCash,
		CreatedAt:     created,
	}

	repo, store := newRepo(t, existing)
	store.EXPECT().SaveExpenses(gomock.Any(), gomock.Any()).Return(nil)

	updated, ok := repo.Update(context.Background(), 99,
		input(12, expense.CategoryEntertainment, expense.PaymentCard, date(2024, 3, 2), "Cinema"))
	require.True(t, ok)

	assert.Equal(t, int64(99), updated.ID)
	assert.Equal(t, created, updated.CreatedAt)
	assert.Equal(t, "Cinema", updated.Description)
	assert.Equal(t, expense.CategoryEntertainment, updated.Category)

	_, ok = repo.Update(context.Background(), 100, expense.Input{})
	assert.False(t, ok)
}

func TestRepository_All_IsACopy(t *testing.T) {
	repo, _ := newRepo(t, expense.Expense{ID: 1, Description: "Bus"})

	all := repo.All()
	all[0].Description = "changed"

	found, ok := repo.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Bus", found.Description)
}

func TestRepository_CurrentMonth(t *testing.T) {
	repo, _ := newRepo(t,
		expense.Expense{ID: 1, Date: date(2024, 3, 1)},
		expense.Expense{ID: 2, Date: date(2024, 2, 29)},
		expense.Expense{ID: 3, Date: date(2023, 3, 15)},
		expense.Expense{ID: 4, Date: date(2024, 3, 31)},
	)

	got := repo.CurrentMonth()

	require.Len(t, got, 2)
	assert.Equal(t, int64(1), got[0].ID)
	assert.Equal(t, int64(4), got[1].ID)
}

func TestRepository_Reset(t *testing.T) {
	repo, store := newRepo(t, expense.Expense{ID: 1}, expense.Expense{ID: 2})
	store.EXPECT().SaveExpenses(gomock.Any(), gomock.Len(0)).Return(nil)

	repo.Reset(context.Background())

	assert.Zero(t, repo.Len())
	assert.Empty(t, repo.All())
}

package expense_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	handler "github.com/MrJamesThe3rd/spendbook/internal/http/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/storage"
	"github.com/MrJamesThe3rd/spendbook/internal/storage/memory"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

var now = time.Date(2024, time.March, 15, 10, 0, 0, 0, time.UTC)

func newRouter(t *testing.T) (http.Handler, *tracker.Service) {
	t.Helper()

	svc := tracker.Load(context.Background(), storage.New(memory.New()), expense.WithClock(func() time.Time { return now }))

	r := chi.NewRouter()
	handler.NewHandler(svc, 5).Routes(r)

	return r, svc
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	return rec
}

func seed(t *testing.T, svc *tracker.Service, amount, category, date, desc, method string) expense.Expense {
	t.Helper()

	e, err := svc.AddExpense(context.Background(), expense.Form{
		Amount: amount, Category: category, Date: date, Description: desc, PaymentMethod: method,
	})
	require.NoError(t, err)

	return e
}

func TestHandler_Create(t *testing.T) {
	type testCase struct {
		name       string
		body       string
		wantStatus int
		wantErrors []string
	}

	tests := []testCase{
		{
			name:       "valid expense",
			body:       `{"amount":12.5,"category":"food","date":"2024-03-14","description":"Lunch","payment_method":"cash"}`,
			wantStatus: http.StatusCreated,
		},
		{
			name:       "missing fields",
			body:       `{"amount":0,"category":"food","date":"2024-03-14","description":"Lunch"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: []string{"amount", "payment_method"},
		},
		{
			name:       "future date",
			body:       `{"amount":3,"category":"food","date":"2024-03-16","description":"Lunch","payment_method":"card"}`,
			wantStatus: http.StatusUnprocessableEntity,
			wantErrors: []string{"date"},
		},
		{
			name:       "malformed body",
			body:       `{"amount":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h, svc := newRouter(t)

			rec := do(t, h, http.MethodPost, "/", tc.body)
			require.Equal(t, tc.wantStatus, rec.Code)

			switch tc.wantStatus {
			case http.StatusCreated:
				var got map[string]any
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, 12.5, got["amount"])
				assert.Equal(t, "Food", got["category_name"])
				assert.Equal(t, "2024-03-14", got["date"])
				assert.Equal(t, "cash", got["payment_method"])
				assert.Len(t, svc.Query(expense.Filter{}, expense.Sort{}), 1)

			case http.StatusUnprocessableEntity:
				var got struct {
					Errors map[string]string `json:"errors"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

				for _, field := range tc.wantErrors {
					assert.Contains(t, got.Errors, field)
				}

				assert.Len(t, got.Errors, len(tc.wantErrors))
				assert.Empty(t, svc.Query(expense.Filter{}, expense.Sort{}))
			}
		})
	}
}

func TestHandler_Get(t *testing.T) {
	h, svc := newRouter(t)
	e := seed(t, svc, "4", "transport", "2024-03-10", "Bus ticket", "card")

	rec := do(t, h, http.MethodGet, fmt.Sprintf("/%d", e.ID), "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"description":"Bus ticket"`)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodGet, "/42", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, "/abc", "").Code)
}

func TestHandler_Update(t *testing.T) {
	h, svc := newRouter(t)
	e := seed(t, svc, "4", "transport", "2024-03-10", "Bus ticket", "card")

	body := `{"amount":"5.20","category":"transport","date":"2024-03-11","description":"Train ticket","payment_method":"cash"}`

	rec := do(t, h, http.MethodPut, fmt.Sprintf("/%d", e.ID), body)
	require.Equal(t, http.StatusOK, rec.Code)

	got, err := svc.Expense(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "5.2", got.Amount.String())
	assert.Equal(t, "Train ticket", got.Description)
	assert.Equal(t, e.CreatedAt, got.CreatedAt)

	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodPut, "/42", body).Code)
}

func TestHandler_Delete(t *testing.T) {
	h, svc := newRouter(t)
	e := seed(t, svc, "4", "transport", "2024-03-10", "Bus ticket", "card")

	assert.Equal(t, http.StatusNoContent, do(t, h, http.MethodDelete, fmt.Sprintf("/%d", e.ID), "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, h, http.MethodDelete, fmt.Sprintf("/%d", e.ID), "").Code)
}

func TestHandler_List(t *testing.T) {
	h, svc := newRouter(t)

	for i := 1; i <= 7; i++ {
		seed(t, svc, fmt.Sprint(i), "food", fmt.Sprintf("2024-03-%02d", i), fmt.Sprintf("Meal %d", i), "card")
	}

	seed(t, svc, "30", "shopping", "2024-03-08", "Shoes", "cash")

	type listResponse struct {
		Items []struct {
			Description string  `json:"description"`
			Amount      float64 `json:"amount"`
		} `json:"items"`
		Total      int   `json:"total"`
		Page       int   `json:"page"`
		TotalPages int   `json:"total_pages"`
		Pages      []int `json:"pages"`
	}

	type testCase struct {
		name      string
		target    string
		wantTotal int
		wantPage  int
		wantFirst string
		wantCount int
	}

	tests := []testCase{
		{name: "default order is newest first", target: "/", wantTotal: 8, wantPage: 1, wantFirst: "Shoes", wantCount: 5},
		{name: "second page", target: "/?page=2", wantTotal: 8, wantPage: 2, wantFirst: "Meal 3", wantCount: 3},
		{name: "page past the end is clamped", target: "/?page=9", wantTotal: 8, wantPage: 2, wantFirst: "Meal 3", wantCount: 3},
		{name: "category filter", target: "/?category=shopping", wantTotal: 1, wantPage: 1, wantFirst: "Shoes", wantCount: 1},
		{name: "search", target: "/?search=meal+7", wantTotal: 1, wantPage: 1, wantFirst: "Meal 7", wantCount: 1},
		{name: "sort by amount", target: "/?sort=amount&direction=desc&page_size=2", wantTotal: 8, wantPage: 1, wantFirst: "Shoes", wantCount: 2},
		{name: "date range", target: "/?from=2024-03-02&to=2024-03-03&sort=date", wantTotal: 2, wantPage: 1, wantFirst: "Meal 2", wantCount: 2},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, tc.target, "")
			require.Equal(t, http.StatusOK, rec.Code)

			var got listResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))

			assert.Equal(t, tc.wantTotal, got.Total)
			assert.Equal(t, tc.wantPage, got.Page)
			require.Len(t, got.Items, tc.wantCount)
			assert.Equal(t, tc.wantFirst, got.Items[0].Description)
		})
	}
}

func TestHandler_List_BadQuery(t *testing.T) {
	h, _ := newRouter(t)

	for _, target := range []string{"/?category=pets", "/?sort=colour", "/?page=0", "/?from=yesterday"} {
		t.Run(target, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, do(t, h, http.MethodGet, target, "").Code)
		})
	}
}

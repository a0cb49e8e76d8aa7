package expense

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/http/query"
	"github.com/MrJamesThe3rd/spendbook/internal/listing"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

const maxPageSize = 100

type Handler struct {
	svc      *tracker.Service
	pageSize int
}

func NewHandler(svc *tracker.Service, pageSize int) *Handler {
	return &Handler{svc: svc, pageSize: pageSize}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Post("/", h.create)
	r.Get("/{id}", h.get)
	r.Put("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type expenseRequest struct {
	Amount        json.Number `json:"amount"`
	Category      string      `json:"category"`
	Date          string      `json:"date"`
	Description   string      `json:"description"`
	PaymentMethod string      `json:"payment_method"`
}

func (req expenseRequest) form() expense.Form {
	return expense.Form{
		Amount:        req.Amount.String(),
		Category:      req.Category,
		Date:          req.Date,
		Description:   req.Description,
		PaymentMethod: req.PaymentMethod,
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	v := r.URL.Query()

	filter, err := query.Filter(v, h.svc.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	order, sorted, err := query.Sort(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := query.Int(v, "page", 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	pageSize, err := query.Int(v, "page_size", h.pageSize)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	state := listing.New(min(pageSize, maxPageSize)).WithFilter(filter)
	if sorted {
		state = state.WithOrder(order)
	}

	state.Page = page

	writeJSON(w, http.StatusOK, toPageResponse(h.svc.ListExpenses(state), state.PageSize))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.AddExpense(r.Context(), req.form())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, toResponse(e))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	e, err := h.svc.Expense(id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req expenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	e, err := h.svc.UpdateExpense(r.Context(), id, req.form())
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(e))
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.DeleteExpense(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeError(w http.ResponseWriter, err error) {
	var errs validation.Errors

	switch {
	case errors.As(err, &errs):
		writeJSON(w, http.StatusUnprocessableEntity, toValidationResponse(errs))
	case errors.Is(err, tracker.ErrNotFound):
		http.Error(w, "expense not found", http.StatusNotFound)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

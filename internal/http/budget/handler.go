package budget

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendbook/internal/budget"
	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
	r.Put("/{category}", h.set)
	r.Delete("/{category}", h.delete)
}

type setRequest struct {
	Amount json.Number `json:"amount"`
}

type statusResponse struct {
	Category     expense.Category `json:"category"`
	CategoryName string           `json:"category_name"`
	Icon         string           `json:"icon"`
	Budget       float64          `json:"budget"`
	Spent        float64          `json:"spent"`
	Percentage   float64          `json:"percentage"`
	Remaining    float64          `json:"remaining"`
	IsOverBudget bool             `json:"is_over_budget"`
	Level        budget.Level     `json:"level"`
}

func toResponse(s budget.Status) statusResponse {
	return statusResponse{
		Category:     s.Category,
		CategoryName: s.Category.Name(),
		Icon:         s.Category.Icon(),
		Budget:       s.Budget.InexactFloat64(),
		Spent:        s.Spent.InexactFloat64(),
		Percentage:   s.Percentage,
		Remaining:    s.Remaining.InexactFloat64(),
		IsOverBudget: s.IsOverBudget,
		Level:        s.Level,
	}
}

func (h *Handler) list(w http.ResponseWriter, _ *http.Request) {
	statuses := h.svc.Budgets()

	resp := make([]statusResponse, 0, len(statuses))
	for _, s := range statuses {
		resp = append(resp, toResponse(s))
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) set(w http.ResponseWriter, r *http.Request) {
	var req setRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	status, err := h.svc.SetBudget(r.Context(), chi.URLParam(r, "category"), req.Amount.String())

	var errs validation.Errors
	if errors.As(err, &errs) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)

		if err := json.NewEncoder(w).Encode(map[string]validation.Errors{"errors": errs}); err != nil {
			slog.Error("failed to encode response", "error", err)
		}

		return
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(status)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	err := h.svc.DeleteBudget(r.Context(), chi.URLParam(r, "category"))
	if errors.Is(err, tracker.ErrNotFound) {
		http.Error(w, "budget not found", http.StatusNotFound)
		return
	}

	if err != nil {
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

package stats

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/stats"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.summary)
}

type categoryResponse struct {
	Category   expense.Category `json:"category"`
	Name       string           `json:"name"`
	Icon       string           `json:"icon"`
	Total      float64          `json:"total"`
	Percentage float64          `json:"percentage"`
}

type summaryResponse struct {
	Total        float64            `json:"total"`
	AverageDaily float64            `json:"average_daily"`
	TopCategory  string             `json:"top_category"`
	PaymentRatio string             `json:"payment_ratio"`
	Count        int                `json:"count"`
	Categories   []categoryResponse `json:"categories"`
}

func (h *Handler) summary(w http.ResponseWriter, _ *http.Request) {
	sum := h.svc.Dashboard()
	totals := h.svc.Chart()

	resp := summaryResponse{
		Total:        sum.Total.InexactFloat64(),
		AverageDaily: sum.AverageDaily.Round(2).InexactFloat64(),
		TopCategory:  sum.TopCategory,
		PaymentRatio: sum.PaymentRatio,
		Count:        sum.Count,
		Categories:   make([]categoryResponse, 0, len(totals)),
	}

	for _, ct := range totals {
		resp.Categories = append(resp.Categories, categoryResponse{
			Category:   ct.Category,
			Name:       ct.Category.Name(),
			Icon:       ct.Category.Icon(),
			Total:      ct.Total.InexactFloat64(),
			Percentage: stats.Percentage(ct.Total, sum.Total),
		})
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

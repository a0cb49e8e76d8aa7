package export

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendbook/internal/export"
	"github.com/MrJamesThe3rd/spendbook/internal/http/query"
	"github.com/MrJamesThe3rd/spendbook/internal/stats"
)

type Handler struct {
	svc *export.Service
}

func NewHandler(svc *export.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.download)
	r.Get("/summary", h.summary)
}

type summaryResponse struct {
	Count        int     `json:"count"`
	Total        float64 `json:"total"`
	TopCategory  string  `json:"top_category"`
	PaymentRatio string  `json:"payment_ratio"`
	Text         string  `json:"text"`
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := query.Filter(r.URL.Query(), h.svc.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := h.svc.Items(filter)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(h.svc.Now())))

	if err := export.WriteCSV(w, items); err != nil {
		slog.Error("failed to write csv", "error", err)
	}
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	filter, err := query.Filter(r.URL.Query(), h.svc.Now())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	items := h.svc.Items(filter)
	sum := stats.Summarize(items)

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(summaryResponse{
		Count:        sum.Count,
		Total:        sum.Total.InexactFloat64(),
		TopCategory:  sum.TopCategory,
		PaymentRatio: sum.PaymentRatio,
		Text:         export.GenerateSummary(items),
	}); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

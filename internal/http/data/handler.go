package data

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
)

type Handler struct {
	svc *tracker.Service
}

func NewHandler(svc *tracker.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Delete("/", h.reset)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	h.svc.Reset(r.Context())
	slog.Info("all data cleared")

	w.WriteHeader(http.StatusNoContent)
}

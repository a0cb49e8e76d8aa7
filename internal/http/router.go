package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/spendbook/internal/http/budget"
	"github.com/MrJamesThe3rd/spendbook/internal/http/data"
	"github.com/MrJamesThe3rd/spendbook/internal/http/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/http/export"
	"github.com/MrJamesThe3rd/spendbook/internal/http/importcsv"
	"github.com/MrJamesThe3rd/spendbook/internal/http/stats"
)

type Handlers struct {
	Expenses *expense.Handler
	Budgets  *budget.Handler
	Stats    *stats.Handler
	Import   *importcsv.Handler
	Export   *export.Handler
	Data     *data.Handler
}

func New(h Handlers, allowedOrigins []string) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Content-Disposition"},
		MaxAge:         300,
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/expenses", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Expenses.Routes(r)
		})

		r.Route("/budgets", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			h.Budgets.Routes(r)
		})

		r.Route("/stats", h.Stats.Routes)
		r.Route("/import", h.Import.Routes)
		r.Route("/export", h.Export.Routes)
		r.Route("/data", h.Data.Routes)
	})

	return router
}

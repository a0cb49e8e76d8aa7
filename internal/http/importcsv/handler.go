package importcsv

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/importer"
	"github.com/MrJamesThe3rd/spendbook/internal/tracker"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

const maxUploadSize = 10 << 20

type Handler struct {
	parser *importer.Parser
	svc    *tracker.Service
}

func NewHandler(parser *importer.Parser, svc *tracker.Service) *Handler {
	return &Handler{parser: parser, svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
}

type expenseResponse struct {
	ID            int64                 `json:"id"`
	Amount        float64               `json:"amount"`
	Category      expense.Category      `json:"category"`
	Date          string                `json:"date"`
	Description   string                `json:"description"`
	PaymentMethod expense.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time             `json:"created_at"`
}

type rejectedRow struct {
	Line   int               `json:"line"`
	Errors validation.Errors `json:"errors"`
}

type importResponse struct {
	Imported int               `json:"imported"`
	Expenses []expenseResponse `json:"expenses"`
	Rejected []rejectedRow     `json:"rejected"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	rows, err := h.parser.Parse(file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	result := h.svc.Import(r.Context(), importer.Forms(rows))

	slog.Info("imported csv", "file", header.Filename, "imported", len(result.Imported), "rejected", len(result.Rejected))

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(rows, result)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

// toResponse reports rejected rows by their line in the uploaded file.
func toResponse(rows []importer.Row, result tracker.ImportResult) importResponse {
	resp := importResponse{
		Imported: len(result.Imported),
		Expenses: make([]expenseResponse, 0, len(result.Imported)),
		Rejected: make([]rejectedRow, 0, len(result.Rejected)),
	}

	for _, e := range result.Imported {
		resp.Expenses = append(resp.Expenses, expenseResponse{
			ID:            e.ID,
			Amount:        e.Amount.InexactFloat64(),
			Category:      e.Category,
			Date:          expense.FormatDate(e.Date),
			Description:   e.Description,
			PaymentMethod: e.PaymentMethod,
			CreatedAt:     e.CreatedAt,
		})
	}

	for _, rej := range result.Rejected {
		resp.Rejected = append(resp.Rejected, rejectedRow{
			Line:   rows[rej.Row-1].Line,
			Errors: rej.Errors,
		})
	}

	return resp
}

package expense

import (
	"time"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
	"github.com/MrJamesThe3rd/spendbook/internal/listing"
	"github.com/MrJamesThe3rd/spendbook/internal/validation"
)

type expenseResponse struct {
	ID            int64                 `json:"id"`
	Amount        float64               `json:"amount"`
	Category      expense.Category      `json:"category"`
	CategoryName  string                `json:"category_name"`
	Icon          string                `json:"icon"`
	Date          string                `json:"date"`
	Description   string                `json:"description"`
	PaymentMethod expense.PaymentMethod `json:"payment_method"`
	CreatedAt     time.Time             `json:"created_at"`
}

func toResponse(e expense.Expense) expenseResponse {
	return expenseResponse{
		ID:            e.ID,
		Amount:        e.Amount.InexactFloat64(),
		Category:      e.Category,
		CategoryName:  e.Category.Name(),
		Icon:          e.Category.Icon(),
		Date:          expense.FormatDate(e.Date),
		Description:   e.Description,
		PaymentMethod: e.PaymentMethod,
		CreatedAt:     e.CreatedAt,
	}
}

type pageResponse struct {
	Items      []expenseResponse `json:"items"`
	Total      int               `json:"total"`
	Page       int               `json:"page"`
	PageSize   int               `json:"page_size"`
	TotalPages int               `json:"total_pages"`
	Pages      []int             `json:"pages"`
}

func toPageResponse(p listing.Page, pageSize int) pageResponse {
	items := make([]expenseResponse, len(p.Items))
	for i, e := range p.Items {
		items[i] = toResponse(e)
	}

	pages := listing.Window(p.Page, p.TotalPages)
	if pages == nil {
		pages = []int{}
	}

	return pageResponse{
		Items:      items,
		Total:      p.Total,
		Page:       p.Page,
		PageSize:   pageSize,
		TotalPages: p.TotalPages,
		Pages:      pages,
	}
}

type validationResponse struct {
	Errors map[string]string `json:"errors"`
}

// requestFields maps validation keys to the JSON names used in requests.
var requestFields = map[string]string{
	expense.FieldPaymentMethod: "payment_method",
}

func toValidationResponse(errs validation.Errors) validationResponse {
	out := make(map[string]string, len(errs))

	for field, msg := range errs {
		if name, ok := requestFields[field]; ok {
			field = name
		}

		out[field] = msg
	}

	return validationResponse{Errors: out}
}

// Package listing holds the state of the paginated expense table: filter criteria, sort order and the
// current page. State is a value; every transition returns a new State and leaves the receiver untouched.
package listing

import (
	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

const DefaultPageSize = 5

// DefaultSort shows the most recent expenses first.
var DefaultSort = expense.Sort{Field: expense.SortDate, Direction: expense.Desc}

type State struct {
	Filter   expense.Filter
	Sort     expense.Sort
	Page     int
	PageSize int
}

// New returns the initial state. A non-positive pageSize falls back to DefaultPageSize.
func New(pageSize int) State {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}

	return State{
		Sort:     DefaultSort,
		Page:     1,
		PageSize: pageSize,
	}
}

// WithFilter replaces the filter criteria and goes back to the first page.
func (s State) WithFilter(f expense.Filter) State {
	s.Filter = f
	s.Page = 1

	return s
}

func (s State) ClearFilters() State {
	return s.WithFilter(expense.Filter{})
}

// WithSort orders by field. Picking the current field flips the direction, a new field starts ascending.
func (s State) WithSort(field expense.SortField) State {
	if !field.Valid() {
		return s
	}

	if s.Sort.Field == field {
		s.Sort.Direction = s.Sort.Direction.Toggle()
		return s
	}

	s.Sort = expense.Sort{Field: field, Direction: expense.Asc}

	return s
}

// WithOrder sets field and direction explicitly, as when they arrive in a request.
func (s State) WithOrder(order expense.Sort) State {
	if !order.Field.Valid() {
		return s
	}

	if order.Direction != expense.Desc {
		order.Direction = expense.Asc
	}

	s.Sort = order

	return s
}

// WithPage moves to page when it lies within the pages needed for total items. ok is false otherwise and
// the state is returned unchanged.
func (s State) WithPage(page, total int) (State, bool) {
	if page < 1 || page > TotalPages(total, s.PageSize) {
		return s, false
	}

	s.Page = page

	return s, true
}

// TotalPages is the number of pages needed to show total items, pageSize at a time.
func TotalPages(total, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 0
	}

	return (total + pageSize - 1) / pageSize
}

// Page is one slice of a query result.
type Page struct {
	Items      []expense.Expense
	Total      int
	Page       int
	TotalPages int
}

// Paginate cuts the current page out of records, which must already be filtered and sorted.
// A page past the end, e.g. after the last record of the final page was deleted, is clamped to the last page.
func (s State) Paginate(records []expense.Expense) Page {
	total := len(records)
	pages := TotalPages(total, s.PageSize)

	page := min(max(s.Page, 1), max(pages, 1))

	start := min((page-1)*s.PageSize, total)
	end := min(start+s.PageSize, total)

	items := make([]expense.Expense, end-start)
	copy(items, records[start:end])

	return Page{
		Items:      items,
		Total:      total,
		Page:       page,
		TotalPages: pages,
	}
}

// Ellipsis marks a gap in the slice returned by Window.
const Ellipsis = 0

// Window lists the page numbers to offer as navigation: the first and last page, and the pages next to
// current. A gap two pages away from current is marked with Ellipsis.
func Window(current, total int) []int {
	if total <= 1 {
		return nil
	}

	var out []int

	for i := 1; i <= total; i++ {
		switch {
		case i == 1 || i == total || (i >= current-1 && i <= current+1):
			out = append(out, i)
		case i == current-2 || i == current+2:
			out = append(out, Ellipsis)
		}
	}

	return out
}

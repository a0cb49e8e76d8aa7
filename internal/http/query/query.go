// Package query reads expense filter and sort parameters from a request URL.
package query

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/spendbook/internal/expense"
)

// Filter reads search, category, payment_method, period, from and to. Empty parameters are ignored. A
// period is resolved against now and cannot be combined with from or to.
func Filter(v url.Values, now time.Time) (expense.Filter, error) {
	f := expense.Filter{
		Search: strings.TrimSpace(v.Get("search")),
	}

	if s := v.Get("category"); s != "" {
		c := expense.Category(s)
		if !c.Valid() {
			return expense.Filter{}, fmt.Errorf("unknown category %q", s)
		}

		f.Category = c
	}

	if s := v.Get("payment_method"); s != "" {
		p := expense.PaymentMethod(s)
		if !p.Valid() {
			return expense.Filter{}, fmt.Errorf("unknown payment method %q", s)
		}

		f.PaymentMethod = p
	}

	var err error

	if f.From, err = date(v, "from"); err != nil {
		return expense.Filter{}, err
	}

	if f.To, err = date(v, "to"); err != nil {
		return expense.Filter{}, err
	}

	s := v.Get("period")
	if s == "" {
		return f, nil
	}

	p := expense.Period(s)
	if !p.Valid() || p == expense.PeriodCustom {
		return expense.Filter{}, fmt.Errorf("unknown period %q", s)
	}

	if f.From != nil || f.To != nil {
		return expense.Filter{}, fmt.Errorf("period cannot be combined with from or to")
	}

	return p.Apply(f, now), nil
}

func date(v url.Values, key string) (*time.Time, error) {
	s := v.Get(key)
	if s == "" {
		return nil, nil
	}

	t, err := expense.ParseDate(s)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", key, err)
	}

	return &t, nil
}

// Sort reads sort and direction. ok is false when no sort field was given.
func Sort(v url.Values) (expense.Sort, bool, error) {
	field := expense.SortField(v.Get("sort"))
	if field == expense.SortNone {
		return expense.Sort{}, false, nil
	}

	if !field.Valid() {
		return expense.Sort{}, false, fmt.Errorf("cannot sort by %q", field)
	}

	dir := expense.Direction(strings.ToLower(v.Get("direction")))

	switch dir {
	case "":
		dir = expense.Asc
	case expense.Asc, expense.Desc:
	default:
		return expense.Sort{}, false, fmt.Errorf("invalid direction %q", dir)
	}

	return expense.Sort{Field: field, Direction: dir}, true, nil
}

// Int reads a positive integer parameter, returning def when it is absent.
func Int(v url.Values, key string, def int) (int, error) {
	s := v.Get(key)
	if s == "" {
		return def, nil
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid %s %q", key, s)
	}

	return n, nil
}

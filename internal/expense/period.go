package expense

import "time"

// Period is a named date range relative to the current day.
type Period string

const (
	PeriodThisMonth Period = "this-month"
	PeriodLastMonth Period = "last-month"
	PeriodThisWeek  Period = "this-week"
	PeriodLastWeek  Period = "last-week"
	PeriodAll       Period = "all"
	PeriodCustom    Period = "custom"
)

var periods = []Period{PeriodThisMonth, PeriodLastMonth, PeriodThisWeek, PeriodLastWeek, PeriodAll, PeriodCustom}

// Periods returns every period in menu order.
func Periods() []Period {
	out := make([]Period, len(periods))
	copy(out, periods)

	return out
}

func (p Period) Valid() bool {
	for _, known := range periods {
		if p == known {
			return true
		}
	}

	return false
}

func (p Period) Label() string {
	switch p {
	case PeriodThisMonth:
		return "This month"
	case PeriodLastMonth:
		return "Last month"
	case PeriodThisWeek:
		return "This week"
	case PeriodLastWeek:
		return "Last week"
	case PeriodAll:
		return "All time"
	case PeriodCustom:
		return "Custom range"
	}

	return string(p)
}

// Bounds returns the first and last day of p as seen from now. Weeks start on Monday and the current
// week or month ends today. ok is false for PeriodAll, PeriodCustom and unknown periods.
func (p Period) Bounds(now time.Time) (from, to time.Time, ok bool) {
	today := Day(now)
	monday := today.AddDate(0, 0, -(int(today.Weekday())+6)%7)
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)

	switch p {
	case PeriodThisMonth:
		return firstOfMonth, today, true
	case PeriodLastMonth:
		from = firstOfMonth.AddDate(0, -1, 0)
		return from, firstOfMonth.AddDate(0, 0, -1), true
	case PeriodThisWeek:
		return monday, today, true
	case PeriodLastWeek:
		return monday.AddDate(0, 0, -7), monday.AddDate(0, 0, -1), true
	}

	return time.Time{}, time.Time{}, false
}

// Apply narrows f to the days of p. Periods without bounds leave f unchanged.
func (p Period) Apply(f Filter, now time.Time) Filter {
	from, to, ok := p.Bounds(now)
	if !ok {
		return f
	}

	f.From, f.To = &from, &to

	return f
}

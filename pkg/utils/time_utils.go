package utils

import "time"

const DateLayout = "2006-01-02"

// DateRange expands [start, end] into inclusive per-day date strings.
func DateRange(start, end time.Time) []string {
	if end.Before(start) {
		return nil
	}
	var out []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format(DateLayout))
	}
	return out
}

// SpanDays returns the inclusive day count between two dates.
func SpanDays(start, end time.Time) int {
	return int(end.Sub(start).Hours()/24) + 1
}

func FormatDate(t time.Time) string { return t.Format(DateLayout) }

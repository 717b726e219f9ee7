// Package query narrows in-memory collections: substring search, categorical filters,
// date ranges and sorting. Every function returns a new slice and never fails.
package query

import (
	"strings"
	"time"
)

// AllSentinel is the categorical filter value that matches every record
const AllSentinel = "all"

// DateLayout is the calendar date format of record dates and range bounds
const DateLayout = "2006-01-02"

// Search keeps the items where any of the fields contains q, ignoring case.
// A blank query returns every item.
func Search[T any](items []T, q string, fields func(T) []string) []T {
	needle := strings.ToLower(strings.TrimSpace(q))
	out := make([]T, 0, len(items))
	if needle == "" {
		return append(out, items...)
	}

	for _, item := range items {
		for _, f := range fields(item) {
			if strings.Contains(strings.ToLower(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

// Where keeps the items matching pred
func Where[T any](items []T, pred func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if pred(item) {
			out = append(out, item)
		}
	}
	return out
}

// MatchCategory is exact equality unless filter is empty or "all"
func MatchCategory(value, filter string) bool {
	if filter == "" || filter == AllSentinel {
		return true
	}
	return value == filter
}

// ParseDate accepts YYYY-MM-DD and RFC3339 values
func ParseDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(DateLayout, value); err == nil {
		return t, true
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// InDateRange reports whether date falls in [from, to]. Empty bounds are open; an
// unparsable date never matches a bounded range. Bounds compare by calendar day.
func InDateRange(date, from, to string) bool {
	if from == "" && to == "" {
		return true
	}
	d, ok := ParseDate(date)
	if !ok {
		return false
	}
	d = truncateDay(d)

	if from != "" {
		f, ok := ParseDate(from)
		if ok && d.Before(truncateDay(f)) {
			return false
		}
	}
	if to != "" {
		t, ok := ParseDate(to)
		if ok && d.After(truncateDay(t)) {
			return false
		}
	}
	return true
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

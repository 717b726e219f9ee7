package query

import (
	"sort"
	"strings"
)

// Sort directions
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// SortKey extracts a comparable value from a record. Exactly one of the extractors
// is set.
type SortKey[T any] struct {
	Text   func(T) string
	Number func(T) float64
	Date   func(T) string
}

// Schema describes how a collection can be searched, filtered and sorted
type Schema[T any] struct {
	// SearchFields returns the text searched by the free-text query
	SearchFields func(T) []string
	// Categories maps a filter name (query parameter) to the record's value
	Categories map[string]func(T) string
	// DateField is the record date used by the from/to range
	DateField func(T) string
	// SortKeys maps a sortBy value to its key
	SortKeys map[string]SortKey[T]
}

// FilterNames lists the categorical filters in a stable order
func (s Schema[T]) FilterNames() []string {
	names := make([]string, 0, len(s.Categories))
	for name := range s.Categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Criteria is one request against a Schema
type Criteria struct {
	Query     string
	Filters   map[string]string
	From      string
	To        string
	SortBy    string
	SortOrder string
}

// Apply runs search, categorical filters, date range and sort in that order. Unknown
// filter and sort names are ignored.
func Apply[T any](items []T, schema Schema[T], c Criteria) []T {
	out := items
	if schema.SearchFields != nil {
		out = Search(out, c.Query, schema.SearchFields)
	} else {
		out = append(make([]T, 0, len(items)), items...)
	}

	for name, value := range c.Filters {
		get, ok := schema.Categories[name]
		if !ok || value == "" || value == AllSentinel {
			continue
		}
		out = Where(out, func(item T) bool { return MatchCategory(get(item), value) })
	}

	if schema.DateField != nil && (c.From != "" || c.To != "") {
		out = Where(out, func(item T) bool { return InDateRange(schema.DateField(item), c.From, c.To) })
	}

	if key, ok := schema.SortKeys[c.SortBy]; ok {
		SortBy(out, key, strings.EqualFold(c.SortOrder, SortDesc))
	}
	return out
}

// SortBy sorts items in place, keeping the relative order of equal keys
func SortBy[T any](items []T, key SortKey[T], desc bool) {
	less := key.less()
	if less == nil {
		return
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func (k SortKey[T]) less() func(a, b T) bool {
	switch {
	case k.Text != nil:
		return func(a, b T) bool {
			return strings.ToLower(k.Text(a)) < strings.ToLower(k.Text(b))
		}
	case k.Number != nil:
		return func(a, b T) bool { return k.Number(a) < k.Number(b) }
	case k.Date != nil:
		// unparsable dates sort first
		return func(a, b T) bool {
			da, _ := ParseDate(k.Date(a))
			db, _ := ParseDate(k.Date(b))
			return da.Before(db)
		}
	}
	return nil
}

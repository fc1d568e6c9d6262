// ABOUTME: Generic list derivation shared by every entity view
// ABOUTME: Applies search, filters, sort, and pagination to a raw collection snapshot
package table

import (
	"sort"
	"strings"
	"time"
)

const DefaultPageSize = 10

// Sort orders.
const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

// Sort names the column to order by and the direction.
type Sort struct {
	Key   string `json:"key"`
	Order string `json:"order"`
}

// Query is the single source of truth for pagination, sorting, and free-text
// search. Pages are 1-based.
type Query struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Sort     Sort   `json:"sort"`
	Search   string `json:"search"`
}

// Criteria holds structured filters: a set of accepted values per dimension
// (documents keep the one whose value matches any selected option; dimensions
// combine with AND) plus an optional creation-date range.
type Criteria struct {
	Fields map[string][]string `json:"fields,omitempty"`
	From   *time.Time          `json:"from,omitempty"`
	To     *time.Time          `json:"to,omitempty"`
}

// Empty reports whether no filter dimension is active.
func (c Criteria) Empty() bool {
	return len(c.Fields) == 0 && c.From == nil && c.To == nil
}

// Row is what an entity must expose to be drivable by Derive. The interface
// is satisfied structurally by the model types so models never import this
// package.
type Row interface {
	// SearchText returns a flattened projection of every displayable field,
	// matched case-insensitively against the query's search string.
	SearchText() string
	// FieldValue returns the row's value for a filter dimension.
	FieldValue(dim string) string
	// SortValue returns a typed value for a sort key: string, int64, float64,
	// or time.Time. ok is false for unknown keys, which leaves the original
	// order untouched.
	SortValue(key string) (value any, ok bool)
	// CreatedTime anchors the date-range filter.
	CreatedTime() time.Time
}

// Result carries one page plus the full filtered and sorted collection, which
// feeds exports and summary counts.
type Result[T Row] struct {
	Page     []T
	Total    int
	Filtered []T
}

// Derive applies search, then filters, then sort, then pagination. It is a
// pure function of its inputs and never mutates the caller's slice.
func Derive[T Row](items []T, q Query, c Criteria) Result[T] {
	filtered := make([]T, 0, len(items))

	search := strings.ToLower(strings.TrimSpace(q.Search))
	for _, item := range items {
		if search != "" && !strings.Contains(strings.ToLower(item.SearchText()), search) {
			continue
		}
		if !matches(item, c) {
			continue
		}
		filtered = append(filtered, item)
	}

	if q.Sort.Key != "" {
		applySort(filtered, q.Sort)
	}

	page := q.Page
	if page <= 0 {
		page = 1
	}
	size := q.PageSize
	if size <= 0 {
		size = DefaultPageSize
	}

	// Out-of-range pages yield an empty slice, no clamping.
	start := (page - 1) * size
	end := start + size
	var pageData []T
	switch {
	case start >= len(filtered):
		pageData = []T{}
	case end > len(filtered):
		pageData = filtered[start:]
	default:
		pageData = filtered[start:end]
	}

	return Result[T]{
		Page:     pageData,
		Total:    len(filtered),
		Filtered: filtered,
	}
}

func matches[T Row](item T, c Criteria) bool {
	for dim, accepted := range c.Fields {
		if len(accepted) == 0 {
			continue
		}
		value := item.FieldValue(dim)
		found := false
		for _, want := range accepted {
			if value == want {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if c.From != nil && item.CreatedTime().Before(*c.From) {
		return false
	}
	if c.To != nil && item.CreatedTime().After(*c.To) {
		return false
	}

	return true
}

func applySort[T Row](items []T, s Sort) {
	desc := s.Order == OrderDesc

	sort.SliceStable(items, func(i, j int) bool {
		a, aok := items[i].SortValue(s.Key)
		b, bok := items[j].SortValue(s.Key)
		if !aok || !bok {
			return false
		}

		if desc {
			return compare(a, b) > 0
		}
		return compare(a, b) < 0
	})
}

// compare orders two sort values of the same kind: times by epoch, numbers
// numerically, everything else by case-sensitive string comparison.
func compare(a, b any) int {
	switch av := a.(type) {
	case time.Time:
		if bv, ok := b.(time.Time); ok {
			am, bm := av.UnixMilli(), bv.UnixMilli()
			switch {
			case am < bm:
				return -1
			case am > bm:
				return 1
			}
			return 0
		}
	case int64:
		if bv, ok := b.(int64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	case float64:
		if bv, ok := b.(float64); ok {
			switch {
			case av < bv:
				return -1
			case av > bv:
				return 1
			}
			return 0
		}
	}

	return strings.Compare(toString(a), toString(b))
}

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if t, ok := v.(time.Time); ok {
		return t.Format(time.RFC3339)
	}
	return ""
}

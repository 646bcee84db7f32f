// Package listview applies the list screens' purely client-side querying:
// substring search, multi-select status filtering, an optional date range
// and three-state column sorting. Everything operates on already-loaded
// slices; nothing here refetches.
package listview

import (
	"sort"
	"strconv"
	"strings"

	"github.com/atelierhq/atelier-api/pkg/dates"
)

// SortDirection is the three-state column sort: unsorted, ascending,
// descending.
type SortDirection int

const (
	SortNone SortDirection = iota
	SortAsc
	SortDesc
)

// DateString marks a sort value as a wire-form date so it is compared by
// parsed value, never lexically.
type DateString string

// Query captures the UI's list state. The zero value selects everything in
// original order.
type Query struct {
	Search   string
	Statuses []string
	DateFrom string
	DateTo   string
	SortKey  string
	SortDir  SortDirection
}

// ToggleSort advances the sort state for a clicked column: a new column
// starts ascending, repeated clicks cycle ascending → descending →
// ascending.
func (q *Query) ToggleSort(key string) {
	if q.SortKey != key {
		q.SortKey = key
		q.SortDir = SortAsc
		return
	}
	if q.SortDir == SortAsc {
		q.SortDir = SortDesc
	} else {
		q.SortDir = SortAsc
	}
}

// Fields tells Apply how to read one item type. Search accessors are OR'd;
// Sort maps column keys to value accessors.
type Fields[T any] struct {
	Search []func(T) string
	Status func(T) string
	Date   func(T) string
	Sort   map[string]func(T) any
}

// Apply filters then sorts items according to q. The input slice is not
// modified; ties keep their original relative order (stable sort, no
// secondary key).
func Apply[T any](items []T, q Query, f Fields[T]) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matches(item, q, f) {
			continue
		}
		out = append(out, item)
	}

	if q.SortKey == "" || q.SortDir == SortNone {
		return out
	}
	accessor, ok := f.Sort[q.SortKey]
	if !ok {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		c := compareValues(accessor(out[i]), accessor(out[j]))
		if q.SortDir == SortDesc {
			return c > 0
		}
		return c < 0
	})
	return out
}

func matches[T any](item T, q Query, f Fields[T]) bool {
	if len(q.Statuses) > 0 && f.Status != nil {
		status := strings.ToLower(f.Status(item))
		found := false
		for _, s := range q.Statuses {
			if status == strings.ToLower(s) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}

	if (q.DateFrom != "" || q.DateTo != "") && f.Date != nil {
		if !dates.InRange(f.Date(item), q.DateFrom, q.DateTo) {
			return false
		}
	}

	if term := strings.ToLower(strings.TrimSpace(q.Search)); term != "" {
		hit := false
		for _, get := range f.Search {
			if strings.Contains(strings.ToLower(get(item)), term) {
				hit = true
				break
			}
		}
		if !hit {
			return false
		}
	}

	return true
}

// compareValues orders two sort values. Strings compare lower-cased so
// ordering is case-independent; dates compare by parsed value; everything
// numeric is coerced, with missing or non-numeric values treated as 0.
func compareValues(a, b any) int {
	if da, ok := a.(DateString); ok {
		db, _ := b.(DateString)
		return dates.Compare(string(da), string(db))
	}

	if sa, ok := a.(string); ok {
		sb, _ := b.(string)
		return strings.Compare(strings.ToLower(sa), strings.ToLower(sb))
	}

	fa, fb := toFloat(a), toFloat(b)
	switch {
	case fa < fb:
		return -1
	case fa > fb:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint64:
		return float64(n)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

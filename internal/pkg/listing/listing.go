// Package listing implements the shared view engine for booking and favorite
// listings: free-text search, filter sets, deterministic sorting and
// pagination over a caller-supplied snapshot. It holds no state and never
// mutates its input.
package listing

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

type Sort string

const (
	SortNewest    Sort = "newest"
	SortPriceAsc  Sort = "priceAsc"
	SortPriceDesc Sort = "priceDesc"
)

const DefaultPageSize = 6

// Entry is one listable row. FilterKey is the value matched against the
// selected filter set (booking status, item category). Price values are raw
// strings from the catalog; the engine owns the decimal parse.
type Entry interface {
	SearchFields() []string
	FilterKey() string
	CreatedTime() time.Time
	Price() string
	DiscountPrice() string
}

type Params struct {
	Query    string
	Filters  []string
	Sort     Sort
	Page     int
	PageSize int
}

// Paginate applies search, filters, sort and pagination in that order and
// returns the visible page plus the total page count over the filtered set.
// A page past the end yields an empty slice, never an error.
func Paginate[T Entry](items []T, p Params) ([]T, int) {
	filtered := filter(items, p.Query, p.Filters)
	sortEntries(filtered, p.Sort)

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	page := p.Page
	if page < 1 {
		page = 1
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize

	start := (page - 1) * pageSize
	if start >= len(filtered) {
		return []T{}, totalPages
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}

	return filtered[start:end], totalPages
}

func filter[T Entry](items []T, query string, filters []string) []T {
	query = strings.ToLower(strings.TrimSpace(query))

	filterSet := make(map[string]struct{}, len(filters))
	for _, f := range filters {
		filterSet[f] = struct{}{}
	}

	out := make([]T, 0, len(items))
	for _, item := range items {
		if !matchesQuery(item, query) {
			continue
		}
		if len(filterSet) > 0 {
			if _, ok := filterSet[item.FilterKey()]; !ok {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item Entry, query string) bool {
	if query == "" {
		return true
	}
	for _, field := range item.SearchFields() {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

func sortEntries[T Entry](items []T, key Sort) {
	switch key {
	case SortPriceAsc:
		sort.SliceStable(items, func(i, j int) bool {
			return lessByPrice(items[i], items[j], true)
		})
	case SortPriceDesc:
		sort.SliceStable(items, func(i, j int) bool {
			return lessByPrice(items[i], items[j], false)
		})
	default:
		// newest first, ties keep input order
		sort.SliceStable(items, func(i, j int) bool {
			return items[i].CreatedTime().After(items[j].CreatedTime())
		})
	}
}

// lessByPrice orders by effective price. Entries without a parseable price
// sort last regardless of direction.
func lessByPrice(a, b Entry, asc bool) bool {
	priceA, okA := effectivePrice(a)
	priceB, okB := effectivePrice(b)

	if okA != okB {
		return okA
	}
	if !okA {
		return false
	}
	if asc {
		return priceA < priceB
	}
	return priceA > priceB
}

// effectivePrice is the discount price when set, otherwise the base price.
func effectivePrice(e Entry) (float64, bool) {
	if raw := strings.TrimSpace(e.DiscountPrice()); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, true
		}
		return 0, false
	}

	raw := strings.TrimSpace(e.Price())
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

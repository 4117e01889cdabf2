package content

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// AllCategories is the filter value that disables category filtering.
const AllCategories = "All"

// ListView caches the admin list of one kind and answers filter and count queries from it.
type ListView[T Entity] struct {
	kind   *Kind[T]
	source Store[T]

	mu    sync.RWMutex
	items []T
}

// NewListView creates an empty view. Call Reload to populate it.
func NewListView[T Entity](kind *Kind[T], source Store[T]) *ListView[T] {
	return &ListView[T]{kind: kind, source: source}
}

// Reload fetches the list again in the kind's default order.
func (v *ListView[T]) Reload(ctx context.Context) error {
	items, err := v.source.List(ctx)
	if err != nil {
		return err
	}
	v.mu.Lock()
	v.items = items
	v.mu.Unlock()
	return nil
}

// Items returns a copy of the cached list.
func (v *ListView[T]) Items() []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return slices.Clone(v.items)
}

// ApplyFilter returns the cached items of category, or all of them for "All" or "".
func (v *ListView[T]) ApplyFilter(category string) []T {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return FilterByCategory(v.items, category, v.kind.Category)
}

// CountByCategory counts cached items per category.
func (v *ListView[T]) CountByCategory() map[string]int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return CountByCategory(v.items, v.kind.Category)
}

// Categories returns "All" followed by the distinct categories of the cached items
// in first-seen order.
func (v *ListView[T]) Categories() []string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return Categories(v.items, v.kind.Category)
}

// Categories returns "All" followed by the distinct non-empty categories of items
// in first-seen order.
func Categories[T any](items []T, categoryOf func(*T) string) []string {
	names := []string{AllCategories}
	if categoryOf == nil {
		return names
	}
	seen := make(map[string]bool)
	for i := range items {
		name := categoryOf(&items[i])
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

// FilterByCategory keeps the items whose category equals category exactly.
// "All", "" or a nil accessor return every item.
func FilterByCategory[T any](items []T, category string, categoryOf func(*T) string) []T {
	category = strings.TrimSpace(category)
	if categoryOf == nil || category == "" || category == AllCategories {
		return slices.Clone(items)
	}
	filtered := make([]T, 0, len(items))
	for i := range items {
		if categoryOf(&items[i]) == category {
			filtered = append(filtered, items[i])
		}
	}
	return filtered
}

// CountByCategory maps each category to its number of items.
func CountByCategory[T any](items []T, categoryOf func(*T) string) map[string]int {
	counts := make(map[string]int)
	if categoryOf == nil {
		return counts
	}
	for i := range items {
		counts[categoryOf(&items[i])]++
	}
	return counts
}

// Window is one page of a list.
type Window[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// MaxPerPage caps the page size a caller may request.
const MaxPerPage = 100

// Paginate cuts page (1-based) out of items. perPage <= 0 falls back to fallback,
// and is capped at MaxPerPage. A page past the last one yields no items.
func Paginate[T any](items []T, page, perPage, fallback int) Window[T] {
	page = normalizePage(page)
	perPage = normalizePerPage(perPage, fallback)
	total := int64(len(items))
	totalPages := calculateTotalPages(total, perPage)

	start := len(items)
	if page <= totalPages {
		start = min((page-1)*perPage, len(items))
	}
	end := min(start+perPage, len(items))

	return Window[T]{
		Items:      slices.Clone(items[start:end]),
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

func normalizePage(page int) int {
	if page < 1 {
		return 1
	}
	return page
}

func normalizePerPage(perPage, fallback int) int {
	if perPage <= 0 {
		perPage = fallback
	}
	if perPage <= 0 {
		return 20
	}
	return min(perPage, MaxPerPage)
}

func calculateTotalPages(total int64, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

package usecase

import (
	"slices"

	"github.com/bnema/lruconsole/internal/domain/entity"
)

// Paginate returns the entries of the given 1-based page.
// Pages outside the snapshot yield an empty slice. The result is a copy.
func Paginate(entries []entity.CacheEntry, pageSize, page int) []entity.CacheEntry {
	if pageSize <= 0 || page < 1 {
		return []entity.CacheEntry{}
	}

	start := (page - 1) * pageSize
	if start >= len(entries) {
		return []entity.CacheEntry{}
	}
	end := min(start+pageSize, len(entries))
	return slices.Clone(entries[start:end])
}

// PageCount returns ceil(n / pageSize).
func PageCount(n, pageSize int) int {
	if n <= 0 || pageSize <= 0 {
		return 0
	}
	return (n + pageSize - 1) / pageSize
}

// PageView is what renderers need to draw one page of the snapshot.
type PageView struct {
	Entries    []entity.CacheEntry
	Page       int
	PageSize   int
	PageCount  int
	Total      int
	Generation uint64
}

// NewPageView derives the page selected by p from snap.
func NewPageView(snap *entity.Snapshot, p entity.PaginationState) PageView {
	var entries []entity.CacheEntry
	var generation uint64
	if snap != nil {
		entries = snap.Entries
		generation = snap.Generation
	}
	return PageView{
		Entries:    Paginate(entries, p.PageSize, p.CurrentPage),
		Page:       p.CurrentPage,
		PageSize:   p.PageSize,
		PageCount:  PageCount(len(entries), p.PageSize),
		Total:      len(entries),
		Generation: generation,
	}
}

// IsEmpty reports whether the selected page has nothing to show.
func (v PageView) IsEmpty() bool {
	return len(v.Entries) == 0
}

// Pages lists the selectable page numbers, 1 through PageCount.
func (v PageView) Pages() []int {
	pages := make([]int, v.PageCount)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages
}

// Offset is the absolute index of the first entry on the page.
func (v PageView) Offset() int {
	return (v.Page - 1) * v.PageSize
}

package entity

// DefaultPageSize is the number of entries shown per page.
const DefaultPageSize = 5

// PaginationState tracks which page of the snapshot is displayed.
// PageSize is fixed for the session. CurrentPage is user-controlled and is not
// clamped when the snapshot shrinks; an out-of-range page renders empty.
type PaginationState struct {
	CurrentPage int
	PageSize    int
}

// NewPaginationState returns page 1 with the given size (DefaultPageSize when <= 0).
func NewPaginationState(pageSize int) PaginationState {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return PaginationState{CurrentPage: 1, PageSize: pageSize}
}

// GoTo selects a page. Pages below 1 are ignored.
func (p *PaginationState) GoTo(page int) {
	if page < 1 {
		return
	}
	p.CurrentPage = page
}

package planner

const (
	DefaultPage    = 1
	DefaultPerPage = 10
)

// PageInfo describes one page of a listing.
type PageInfo struct {
	Page    int
	PerPage int
	Total   int
	Pages   int
}

// NormalizePage replaces out-of-range page parameters with the defaults.
func NormalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if perPage < 1 {
		perPage = DefaultPerPage
	}
	return page, perPage
}

// NewPageInfo computes the page count for total items.
func NewPageInfo(page, perPage, total int) PageInfo {
	page, perPage = NormalizePage(page, perPage)
	return PageInfo{
		Page:    page,
		PerPage: perPage,
		Total:   total,
		Pages:   (total + perPage - 1) / perPage,
	}
}

// Paginate slices one page out of items. A page past the end is empty.
func Paginate[T any](items []T, page, perPage int) ([]T, PageInfo) {
	info := NewPageInfo(page, perPage, len(items))
	start := (info.Page - 1) * info.PerPage
	if start >= len(items) {
		return []T{}, info
	}
	end := start + info.PerPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end], info
}

package lonja

// PageResult is one page of a filtered, ordered result set.
type PageResult struct {
	Items      []ContentWithType `json:"items"`
	Page       int               `json:"page"`
	TotalPages int               `json:"totalPages"`
}

// TotalPages returns ceil(count/pageSize), with a minimum of 1 so the
// UI always has a current page even over an empty set (it hides the
// pagination controls when TotalPages <= 1).
func TotalPages(count, pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	n := (count + pageSize - 1) / pageSize
	if n < 1 {
		return 1
	}
	return n
}

// ClampPage forces page into [1, totalPages].
func ClampPage(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate slices entries into the requested fixed-size page. The page
// number is clamped before slicing; the window is zero-indexed and
// half-open: [(page-1)*pageSize, page*pageSize). Callers reset to page 1
// whenever an upstream filter changes, so a stale page number never
// shows an out-of-range empty page.
func Paginate(entries []ContentWithType, page, pageSize int) PageResult {
	if pageSize < 1 {
		pageSize = 1
	}
	total := TotalPages(len(entries), pageSize)
	page = ClampPage(page, total)
	lo := (page - 1) * pageSize
	hi := lo + pageSize
	if lo > len(entries) {
		lo = len(entries)
	}
	if hi > len(entries) {
		hi = len(entries)
	}
	return PageResult{Items: entries[lo:hi], Page: page, TotalPages: total}
}

package response

// PageResponse is the standard wrapper for list endpoints.
// Pagination is offset-based: From is a zero-based offset into the ordered
// result set, Size the page length.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	From  int `json:"from"`
	Size  int `json:"size"`
	Total int `json:"total"`
}

// NewPageResponse builds a page envelope, normalizing a nil slice so the
// JSON output is [] rather than null.
func NewPageResponse[T any](items []T, from, size, total int) PageResponse[T] {
	if items == nil {
		items = make([]T, 0)
	}

	return PageResponse[T]{
		Items: items,
		From:  from,
		Size:  size,
		Total: total,
	}
}

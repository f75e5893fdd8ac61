package kernel

// PaginationOptions carries page-based pagination parameters.
type PaginationOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Page describes the position of a result window within the full set.
type Page struct {
	Number int `json:"number"`
	Size   int `json:"size"`
	Total  int `json:"total"`
	Pages  int `json:"pages"`
}

// Paginated wraps a page of items with its window metadata.
type Paginated[T any] struct {
	Items []T  `json:"items"`
	Page  Page `json:"page"`
	Empty bool `json:"empty"`
}

const defaultPageSize = 20

// Limit returns the SQL LIMIT for the options, defaulting the page size.
func (p PaginationOptions) Limit() int {
	if p.PageSize <= 0 {
		return defaultPageSize
	}
	return p.PageSize
}

// Offset returns the SQL OFFSET for the options, treating pages as 1-based.
func (p PaginationOptions) Offset() int {
	page := p.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * p.Limit()
}

// NewPaginated assembles a result page from items and the total row count.
func NewPaginated[T any](items []T, opts PaginationOptions, total int64) *Paginated[T] {
	size := opts.Limit()
	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}

	number := opts.Page
	if number < 1 {
		number = 1
	}

	return &Paginated[T]{
		Items: items,
		Page: Page{
			Number: number,
			Size:   size,
			Total:  int(total),
			Pages:  pages,
		},
		Empty: len(items) == 0,
	}
}

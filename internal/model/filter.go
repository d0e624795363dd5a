package model

import "math"

// Page size bounds for the paginated issue list.
const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// IssueFilter holds criteria for querying issues.
type IssueFilter struct {
	Status   []Status `json:"status,omitempty"`
	Assignee string   `json:"assignee,omitempty"`
	Search   string   `json:"search,omitempty"` // case-insensitive match on title/description
	Sort     string   `json:"sort,omitempty"`   // e.g. "-updated_at", "title"; prefix "-" = descending
	Limit    int      `json:"limit,omitempty"`
	Offset   int      `json:"offset,omitempty"`
}

// Paginate sets Limit/Offset from a 1-based page number and page size,
// clamping both to their allowed ranges. Pages whose offset would overflow
// an int are clamped to the last representable page. It returns the
// normalized values.
func (f *IssueFilter) Paginate(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size < 1 {
		size = DefaultPageSize
	}
	if size > MaxPageSize {
		size = MaxPageSize
	}
	if page-1 > math.MaxInt/size {
		page = math.MaxInt / size
	}
	f.Limit = size
	f.Offset = (page - 1) * size
	return page, size
}

// IssuePage is one page of a filtered issue listing.
type IssuePage struct {
	Issues   []*Issue `json:"issues"`
	Total    int      `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}

// Pages returns the number of pages needed to show Total issues.
func (p *IssuePage) Pages() int {
	if p.PageSize <= 0 || p.Total == 0 {
		return 1
	}
	return (p.Total + p.PageSize - 1) / p.PageSize
}

package listutil

import (
	"net/url"
	"strconv"
	"strings"
)

// ItemsPerPage is the fixed number of rows on one page of a list view.
const ItemsPerPage = 6

// MaxQueryLength bounds the free-text search term.
const MaxQueryLength = 200

// ListParams carries the list view parameters parsed from a request.
type ListParams struct {
	Query string // free-text search term
	Page  int    // 1-indexed page number
}

// PageInfo carries pagination metadata for rendering.
type PageInfo struct {
	Page       int `json:"page"`       // current page (1-indexed)
	PerPage    int `json:"perPage"`    // rows per page
	Total      int `json:"total"`      // total matching rows
	TotalPages int `json:"totalPages"` // ceil(Total / PerPage)
}

// ParseListParams extracts query and page from URL query values.
// PRE: none
// POST: Page >= 1; Query is trimmed and at most MaxQueryLength bytes
func ParseListParams(q url.Values) ListParams {
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}
	query := strings.TrimSpace(q.Get("query"))
	if len(query) > MaxQueryLength {
		query = query[:MaxQueryLength]
	}
	return ListParams{Query: query, Page: page}
}

// CacheKey identifies the rendering of these parameters within a collection.
func (p ListParams) CacheKey() string {
	return url.Values{"query": {p.Query}, "page": {strconv.Itoa(p.Page)}}.Encode()
}

// NewPageInfo computes pagination metadata.
// PRE: total >= 0, page >= 1
// POST: returns PageInfo with TotalPages computed; Page clamped to valid range
func NewPageInfo(page, perPage, total int) PageInfo {
	if perPage < 1 {
		perPage = ItemsPerPage
	}
	totalPages := (total + perPage - 1) / perPage
	if totalPages < 1 {
		totalPages = 1
	}
	if page > totalPages {
		page = totalPages
	}
	if page < 1 {
		page = 1
	}
	return PageInfo{
		Page:       page,
		PerPage:    perPage,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Offset returns the SQL OFFSET for the current page.
// PRE: PageInfo is valid
// POST: Returns (Page-1) * PerPage
func (p PageInfo) Offset() int {
	return (p.Page - 1) * p.PerPage
}

// PageNumbers returns the page numbers to display in pagination controls.
// Shows at most 5 pages centered around the current page.
// PRE: PageInfo is valid
// POST: Returns slice of at most 5 page numbers centered on current page
func (p PageInfo) PageNumbers() []int {
	const maxButtons = 5
	start := p.Page - maxButtons/2
	if start < 1 {
		start = 1
	}
	end := start + maxButtons - 1
	if end > p.TotalPages {
		end = p.TotalPages
		start = end - maxButtons + 1
		if start < 1 {
			start = 1
		}
	}
	pages := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		pages = append(pages, i)
	}
	return pages
}

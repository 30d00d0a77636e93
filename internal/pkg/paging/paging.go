// Package paging provides the pagination collaborator used by list queries.
// Pages are 1-indexed and page sizes are bounded to [1, 100].
package paging

import "freight/internal/pkg/errs"

const (
	// DefaultPageSize is used when the caller does not specify a page size.
	DefaultPageSize = 10

	// MaxPageSize is the upper bound on items per page.
	MaxPageSize = 100
)

// Page describes the requested slice of a listing.
type Page struct {
	Number int
	Size   int
}

// NewPage validates page number and size. Zero values select the defaults
// (page 1, DefaultPageSize).
func NewPage(number, size int) (Page, error) {
	if number == 0 {
		number = 1
	}
	if size == 0 {
		size = DefaultPageSize
	}

	if number < 1 {
		return Page{}, errs.NewValueIsInvalidError("page")
	}
	if size < 1 || size > MaxPageSize {
		return Page{}, errs.NewValueIsOutOfRangeError("page_size", size, 1, MaxPageSize)
	}

	return Page{Number: number, Size: size}, nil
}

// Offset returns the number of rows to skip for this page.
func (p Page) Offset() int {
	return (p.Number - 1) * p.Size
}

// Result wraps one page of items together with the totals a client needs to
// walk the full listing.
type Result[T any] struct {
	Items    []T `json:"items"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
	Pages    int `json:"pages"`
}

// NewResult computes the page count from the total and wraps the items.
func NewResult[T any](items []T, total int, page Page) Result[T] {
	pages := (total + page.Size - 1) / page.Size
	if pages < 1 {
		pages = 1
	}

	return Result[T]{
		Items:    items,
		Total:    total,
		Page:     page.Number,
		PageSize: page.Size,
		Pages:    pages,
	}
}

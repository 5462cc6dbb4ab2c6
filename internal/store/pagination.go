package store

import "math"

// PaginationParams contains parameters for paginated queries
type PaginationParams struct {
	Page  int // Current page number (1-indexed)
	Limit int // Number of items per page
}

// PaginationResult contains pagination metadata
type PaginationResult struct {
	Total       int64 // Total number of records
	TotalPages  int   // Total number of pages
	CurrentPage int   // Current page number
	Limit       int   // Number of items per page
	HasPrev     bool  // Whether there is a previous page
	HasNext     bool  // Whether there is a next page
}

// NewPaginationParams creates a new PaginationParams with default values
func NewPaginationParams(page, limit int) PaginationParams {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 50 {
		limit = 50
	}
	return PaginationParams{Page: page, Limit: limit}
}

// Offset returns the number of rows to skip for the current page.
func (p PaginationParams) Offset() int {
	return (p.Page - 1) * p.Limit
}

// CalculatePagination calculates pagination metadata
func CalculatePagination(total int64, currentPage, limit int) PaginationResult {
	totalPages := int(math.Ceil(float64(total) / float64(limit)))

	if currentPage < 1 {
		currentPage = 1
	}

	return PaginationResult{
		Total:       total,
		TotalPages:  totalPages,
		CurrentPage: currentPage,
		Limit:       limit,
		HasPrev:     currentPage > 1,
		HasNext:     currentPage < totalPages,
	}
}

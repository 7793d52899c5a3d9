package domain

import "strings"

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100
)

type PaginationParams struct {
	Page int `json:"page" validate:"min=1"`
	Size int `json:"size" validate:"min=1,max=100"`
}

// Skip is the number of records before the requested page.
func (p PaginationParams) Skip() int {
	return (p.Page - 1) * p.Size
}

type ListOptions struct {
	Skip  int
	Limit int
}

// TotalPages is ceil(total / size). An empty collection has zero pages.
func TotalPages(total int64, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}

	pages := int(total) / size
	if int(total)%size != 0 {
		pages++
	}

	return pages
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(s string) string {
	return strings.TrimSpace(s)
}

// NormalizeEmail trims surrounding whitespace and lower-cases.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

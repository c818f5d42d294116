package model

import "math"

const (
	DefaultPageLimit = 10
	MaxPageLimit     = 100

	// MaxPage bounds Offset to the int32 range for any accepted limit.
	MaxPage = math.MaxInt32 / MaxPageLimit
)

// PageQuery is a 1-based page request.
type PageQuery struct {
	Page  int
	Limit int
}

// Normalize clamps the query to sane bounds.
func (q PageQuery) Normalize() PageQuery {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Page > MaxPage {
		q.Page = MaxPage
	}
	if q.Limit < 1 {
		q.Limit = DefaultPageLimit
	}
	if q.Limit > MaxPageLimit {
		q.Limit = MaxPageLimit
	}
	return q
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Limit
}

// Page is a slice of results plus paging metadata.
type Page[T any] struct {
	Items      []T   `json:"items"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalItems int64 `json:"totalItems"`
	TotalPages int64 `json:"totalPages"`
}

func NewPage[T any](items []T, q PageQuery, total int64) *Page[T] {
	if items == nil {
		items = []T{}
	}
	pages := int64(0)
	if q.Limit > 0 {
		pages = (total + int64(q.Limit) - 1) / int64(q.Limit)
	}
	return &Page[T]{
		Items:      items,
		Page:       q.Page,
		Limit:      q.Limit,
		TotalItems: total,
		TotalPages: pages,
	}
}

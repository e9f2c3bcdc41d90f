package service

import "pressroom/internal/repository"

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Page is a 1-based page request.
type Page struct {
	Page  int
	Limit int
}

func (p Page) normalize() Page {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}

func (p Page) query() repository.PageQuery {
	return repository.PageQuery{Limit: p.Limit, Offset: (p.Page - 1) * p.Limit}
}

// ListResult is one page of items plus paging totals.
type ListResult[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Pages int `json:"pages"`
}

func newListResult[T any](res *repository.PageResult[T], p Page) *ListResult[T] {
	items := res.Items
	if items == nil {
		items = []T{}
	}
	pages := 0
	if p.Limit > 0 {
		pages = (res.Total + p.Limit - 1) / p.Limit
	}
	return &ListResult[T]{Items: items, Total: res.Total, Page: p.Page, Limit: p.Limit, Pages: pages}
}

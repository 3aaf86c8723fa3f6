// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package pagination provides shared types and helpers for page-based
// navigation over item collections.
//
// # Overview
//
// It standardizes how a 1-indexed page window is derived from a total item
// count and how the resulting metadata is exposed to callers. An empty
// collection still has exactly one (empty) page, so navigation UIs never
// have to special-case "zero pages".
package pagination

// DefaultPageSize is the number of items per page if not specified.
// Matches the six-card grid of the storefront product list.
const DefaultPageSize = 6

// Meta describes the pagination state of a derived view.
type Meta struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// TotalPages computes the page count for a collection.
//
// The result is never below 1: an empty collection is a single empty page,
// not an error state.
func TotalPages(total, pageSize int) int {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	pages := (total + pageSize - 1) / pageSize
	if pages < 1 {
		pages = 1
	}
	return pages
}

// Clamp forces page into the valid range [1, totalPages].
//
// When a deletion or re-filter shrinks the collection below the current
// page, the caller lands on the last page that still exists.
func Clamp(page, totalPages int) int {
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// NewMeta constructs pagination metadata for a derived view.
//
// The page value is clamped into the valid range before being recorded.
func NewMeta(page, pageSize, total int) Meta {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	totalPages := TotalPages(total, pageSize)

	return Meta{
		Page:       Clamp(page, totalPages),
		PageSize:   pageSize,
		Total:      total,
		TotalPages: totalPages,
	}
}

// Window returns the half-open index range [start, end) of the given page.
//
// The indexes are already clamped to the collection bounds, so the caller
// can slice directly without further checks.
func Window(page, pageSize, total int) (start, end int) {
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}

	page = Clamp(page, TotalPages(total, pageSize))

	start = (page - 1) * pageSize
	if start > total {
		start = total
	}

	end = start + pageSize
	if end > total {
		end = total
	}

	return start, end
}

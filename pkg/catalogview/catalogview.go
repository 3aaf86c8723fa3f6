// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalogview derives the visible page of a product catalog from the
full client-side collection, a set of filter criteria, and a requested page.

# Purity

Every function in this package is a pure derivation: no I/O, no hidden
state, no mutation of the input slice. The storefront cache re-runs the
derivation whenever the collection, the criteria, or the page changes.

# Policy

  - An empty filtered set is one empty page, never an error.
  - Changing criteria always resets the view to page 1.
  - A page that outlives its data (e.g. after a deletion) clamps to the
    last page that still exists.
*/
package catalogview

import (
	"regexp"
	"strings"

	"github.com/taibuivan/minimart/pkg/pagination"
	"github.com/taibuivan/minimart/pkg/slice"
)

// # View Model

// Product is the client-side mirror of a catalog product.
//
// The category reference is held as a bare identifier; the server's populated
// category object is normalized away when the mirror is loaded.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	Image       *string `json:"image,omitempty"`
}

// # Filter Criteria

// Criteria is the transient predicate set applied to the product collection.
//
// The zero value matches everything.
type Criteria struct {
	// NamePattern is matched case-insensitively against product names.
	// It is treated as a regular expression; if it does not compile, it
	// falls back to a plain case-insensitive substring test.
	NamePattern string

	// NonZeroOnly keeps only products with stock > 0.
	NonZeroOnly bool

	// CategoryID keeps only products whose category equals it exactly.
	// Empty matches all categories.
	CategoryID string
}

// IsEmpty reports whether the criteria match the whole collection.
func (c Criteria) IsEmpty() bool {
	return c.NamePattern == "" && !c.NonZeroOnly && c.CategoryID == ""
}

// Matches reports whether a single product satisfies the criteria.
func (c Criteria) Matches(product Product) bool {
	if c.NamePattern != "" && !matchName(c.NamePattern, product.Name) {
		return false
	}

	if c.NonZeroOnly && product.Stock <= 0 {
		return false
	}

	if c.CategoryID != "" && product.CategoryID != c.CategoryID {
		return false
	}

	return true
}

// matchName tests a case-insensitive regular expression against a name,
// degrading to a substring test when the pattern is not valid regex syntax.
func matchName(pattern, name string) bool {
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		return strings.Contains(strings.ToLower(name), strings.ToLower(pattern))
	}
	return re.MatchString(name)
}

// Filter returns the subset of products matching the criteria,
// preserving the input order.
func Filter(products []Product, criteria Criteria) []Product {
	if criteria.IsEmpty() {
		return products
	}
	return slice.Filter(products, criteria.Matches)
}

// # Page Derivation

// Page is one derived, visible slice of the filtered collection.
type Page struct {
	// Items is the visible window of the filtered products.
	Items []Product

	// Meta records the clamped page number, total count, and page count.
	Meta pagination.Meta
}

// Derive computes the visible page for the given collection, criteria,
// page number, and page size in a single pass.
//
// The requested page is clamped into [1, totalPages] of the FILTERED set,
// so shrinking the result set below the current page moves the view back
// to the last valid page rather than showing an empty window.
func Derive(products []Product, criteria Criteria, page, pageSize int) Page {
	filtered := Filter(products, criteria)

	meta := pagination.NewMeta(page, pageSize, len(filtered))
	start, end := pagination.Window(meta.Page, meta.PageSize, meta.Total)

	return Page{
		Items: filtered[start:end],
		Meta:  meta,
	}
}

// # Stateful View

// View tracks the current criteria and page the way a product-list screen
// does, enforcing the page-reset policy on criteria changes.
//
// View holds no product data; callers pass the collection to [View.Visible]
// on every derivation so the view can never go stale.
type View struct {
	criteria Criteria
	page     int
	pageSize int
}

// NewView creates a view positioned on page 1 with the given page size.
// A non-positive pageSize falls back to [pagination.DefaultPageSize].
func NewView(pageSize int) *View {
	if pageSize < 1 {
		pageSize = pagination.DefaultPageSize
	}
	return &View{page: 1, pageSize: pageSize}
}

// Criteria returns the currently applied filter criteria.
func (v *View) Criteria() Criteria {
	return v.criteria
}

// Page returns the currently requested page number.
func (v *View) Page() int {
	return v.page
}

// SetCriteria replaces the criteria wholesale and resets the view to page 1.
//
// The reset is deliberate policy: a new filter always starts reading from
// the beginning of its result set.
func (v *View) SetCriteria(criteria Criteria) {
	v.criteria = criteria
	v.page = 1
}

// SetPage moves the view to the requested page.
//
// Out-of-range values are stored as-is and clamped during derivation,
// because the valid range depends on the collection passed to Visible.
func (v *View) SetPage(page int) {
	if page < 1 {
		page = 1
	}
	v.page = page
}

// Visible derives the current visible page from the full collection.
//
// The view's page is updated to the clamped value so that subsequent
// navigation starts from the page actually shown.
func (v *View) Visible(products []Product) Page {
	result := Derive(products, v.criteria, v.page, v.pageSize)
	v.page = result.Meta.Page
	return result
}

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalogview_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/minimart/pkg/catalogview"
)

// fixture builds n products named "Product 1".."Product n" alternating
// between two categories, with every third product out of stock.
func fixture(n int) []catalogview.Product {
	products := make([]catalogview.Product, 0, n)
	for i := 1; i <= n; i++ {
		category := "cat-a"
		if i%2 == 0 {
			category = "cat-b"
		}

		stock := 10
		if i%3 == 0 {
			stock = 0
		}

		products = append(products, catalogview.Product{
			ID:         fmt.Sprintf("prod-%d", i),
			Name:       fmt.Sprintf("Product %d", i),
			CategoryID: category,
			Stock:      stock,
			Price:      float64(i),
		})
	}
	return products
}

func TestFilter(t *testing.T) {
	products := []catalogview.Product{
		{ID: "1", Name: "Green Tea", CategoryID: "drinks", Stock: 5},
		{ID: "2", Name: "Black Tea", CategoryID: "drinks", Stock: 0},
		{ID: "3", Name: "Teapot", CategoryID: "kitchen", Stock: 2},
		{ID: "4", Name: "Coffee", CategoryID: "drinks", Stock: 8},
	}

	tests := []struct {
		name     string
		criteria catalogview.Criteria
		wantIDs  []string
	}{
		{
			name:     "empty criteria returns full collection",
			criteria: catalogview.Criteria{},
			wantIDs:  []string{"1", "2", "3", "4"},
		},
		{
			name:     "name pattern is case insensitive",
			criteria: catalogview.Criteria{NamePattern: "tea"},
			wantIDs:  []string{"1", "2", "3"},
		},
		{
			name:     "name pattern supports regex syntax",
			criteria: catalogview.Criteria{NamePattern: "^tea"},
			wantIDs:  []string{"3"},
		},
		{
			name:     "invalid regex degrades to substring match",
			criteria: catalogview.Criteria{NamePattern: "tea("},
			wantIDs:  nil,
		},
		{
			name:     "non-zero stock only",
			criteria: catalogview.Criteria{NonZeroOnly: true},
			wantIDs:  []string{"1", "3", "4"},
		},
		{
			name:     "category equality",
			criteria: catalogview.Criteria{CategoryID: "drinks"},
			wantIDs:  []string{"1", "2", "4"},
		},
		{
			name: "criteria combine conjunctively",
			criteria: catalogview.Criteria{
				NamePattern: "tea",
				NonZeroOnly: true,
				CategoryID:  "drinks",
			},
			wantIDs: []string{"1"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := catalogview.Filter(products, tc.criteria)

			gotIDs := make([]string, 0, len(got))
			for _, p := range got {
				gotIDs = append(gotIDs, p.ID)
			}

			if tc.wantIDs == nil {
				assert.Empty(t, gotIDs)
				return
			}
			assert.Equal(t, tc.wantIDs, gotIDs)
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	products := fixture(9)
	snapshot := make([]catalogview.Product, len(products))
	copy(snapshot, products)

	catalogview.Filter(products, catalogview.Criteria{NonZeroOnly: true})

	assert.Equal(t, snapshot, products)
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name       string
		total      int
		page       int
		pageSize   int
		wantPage   int
		wantPages  int
		wantItems  int
		wantFirst  string
	}{
		{
			name:      "first page of a full collection",
			total:     14,
			page:      1,
			pageSize:  6,
			wantPage:  1,
			wantPages: 3,
			wantItems: 6,
			wantFirst: "prod-1",
		},
		{
			name:      "last page holds the remainder",
			total:     14,
			page:      3,
			pageSize:  6,
			wantPage:  3,
			wantPages: 3,
			wantItems: 2,
			wantFirst: "prod-13",
		},
		{
			name:      "page beyond the end clamps to the last page",
			total:     14,
			page:      99,
			pageSize:  6,
			wantPage:  3,
			wantPages: 3,
			wantItems: 2,
			wantFirst: "prod-13",
		},
		{
			name:      "page below one clamps to the first page",
			total:     14,
			page:      0,
			pageSize:  6,
			wantPage:  1,
			wantPages: 3,
			wantItems: 6,
			wantFirst: "prod-1",
		},
		{
			name:      "empty collection is a single empty page",
			total:     0,
			page:      1,
			pageSize:  6,
			wantPage:  1,
			wantPages: 1,
			wantItems: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := catalogview.Derive(fixture(tc.total), catalogview.Criteria{}, tc.page, tc.pageSize)

			assert.Equal(t, tc.wantPage, got.Meta.Page)
			assert.Equal(t, tc.wantPages, got.Meta.TotalPages)
			assert.Equal(t, tc.total, got.Meta.Total)
			assert.Len(t, got.Items, tc.wantItems)

			if tc.wantItems > 0 {
				assert.Equal(t, tc.wantFirst, got.Items[0].ID)
			}
		})
	}
}

func TestDerivePagesCoverFilteredSet(t *testing.T) {
	products := fixture(20)
	criteria := catalogview.Criteria{NonZeroOnly: true}

	filtered := catalogview.Filter(products, criteria)
	require.NotEmpty(t, filtered)

	first := catalogview.Derive(products, criteria, 1, 6)

	// walking every page must visit each filtered item exactly once
	seen := make(map[string]int)
	for page := 1; page <= first.Meta.TotalPages; page++ {
		result := catalogview.Derive(products, criteria, page, 6)
		for _, p := range result.Items {
			seen[p.ID]++
		}
	}

	assert.Len(t, seen, len(filtered))
	for id, count := range seen {
		assert.Equal(t, 1, count, "item %s appeared %d times", id, count)
	}
}

func TestViewCriteriaChangeResetsPage(t *testing.T) {
	products := fixture(20)

	view := catalogview.NewView(6)
	view.SetPage(3)

	result := view.Visible(products)
	require.Equal(t, 3, result.Meta.Page)

	view.SetCriteria(catalogview.Criteria{CategoryID: "cat-a"})

	result = view.Visible(products)
	assert.Equal(t, 1, result.Meta.Page)
	assert.Equal(t, 1, view.Page())
}

func TestViewClampsAfterShrink(t *testing.T) {

	// seven items on a six-per-page grid puts one item on page 2
	products := fixture(7)

	view := catalogview.NewView(6)
	view.SetPage(2)

	result := view.Visible(products)
	require.Equal(t, 2, result.Meta.Page)
	require.Len(t, result.Items, 1)

	// removing that item collapses the collection to a single page
	result = view.Visible(products[:6])
	assert.Equal(t, 1, result.Meta.Page)
	assert.Equal(t, 1, result.Meta.TotalPages)
	assert.Len(t, result.Items, 6)
	assert.Equal(t, 1, view.Page())
}

func TestViewDefaultPageSize(t *testing.T) {
	view := catalogview.NewView(0)

	result := view.Visible(fixture(10))

	assert.Equal(t, 6, result.Meta.PageSize)
	assert.Len(t, result.Items, 6)
}

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/minimart/internal/platform/apperr"
	"github.com/taibuivan/minimart/pkg/pointer"
)

func newTestService() *Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(NewMemoryProductRepository(), NewMemoryCategoryRepository(), logger)
}

func seedCategory(t *testing.T, service *Service, name string) *Category {
	t.Helper()
	category := &Category{Name: name}
	require.NoError(t, service.CreateCategory(context.Background(), category))
	require.NotEmpty(t, category.ID)
	return category
}

func validProduct(categoryID string) *Product {
	return &Product{
		Name:        "Green Tea",
		Description: "Loose leaf sencha",
		CategoryID:  categoryID,
		Stock:       5,
		Price:       3.5,
		Image:       pointer.To("https://cdn.minimart.app/img/green-tea.jpg"),
	}
}

func TestCreateProductRoundTrip(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	product := validProduct(category.ID)
	require.NoError(t, service.CreateProduct(ctx, product))
	require.NotEmpty(t, product.ID)

	fetched, err := service.GetProduct(ctx, product.ID)
	require.NoError(t, err)

	assert.Equal(t, product.ID, fetched.ID)
	assert.Equal(t, "Green Tea", fetched.Name)
	require.NotNil(t, fetched.Category, "reads must populate the category")
	assert.Equal(t, category.ID, fetched.Category.ID)
	assert.Equal(t, "Drinks", fetched.Category.Name)
}

func TestCreateProductGeneratesDistinctIDs(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	first := validProduct(category.ID)
	second := validProduct(category.ID)

	require.NoError(t, service.CreateProduct(ctx, first))
	require.NoError(t, service.CreateProduct(ctx, second))

	assert.NotEqual(t, first.ID, second.ID)

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, products, 2)
}

func TestCreateProductRejectsMissingCategory(t *testing.T) {
	service := newTestService()
	ctx := context.Background()

	product := validProduct("0189e7d2-0000-7000-8000-000000000000")
	err := service.CreateProduct(ctx, product)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "INVALID_REFERENCE", appError.Code)

	// a failed create must leave the store unchanged
	products, listErr := service.ListProducts(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, products)
}

func TestCreateProductValidation(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	tests := []struct {
		name   string
		mutate func(*Product)
	}{
		{"empty name", func(p *Product) { p.Name = "" }},
		{"empty description", func(p *Product) { p.Description = "" }},
		{"empty category", func(p *Product) { p.CategoryID = "" }},
		{"malformed category id", func(p *Product) { p.CategoryID = "not-a-uuid" }},
		{"negative stock", func(p *Product) { p.Stock = -1 }},
		{"negative price", func(p *Product) { p.Price = -0.01 }},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			product := validProduct(category.ID)
			tc.mutate(product)

			err := service.CreateProduct(ctx, product)
			require.Error(t, err)

			appError := apperr.As(err)
			require.NotNil(t, appError)
			assert.Equal(t, "VALIDATION_ERROR", appError.Code)
		})
	}
}

func TestCreateProductAllowsZeroStock(t *testing.T) {
	service := newTestService()
	category := seedCategory(t, service, "Drinks")

	product := validProduct(category.ID)
	product.Stock = 0

	assert.NoError(t, service.CreateProduct(context.Background(), product))
}

func TestUpdateProduct(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	drinks := seedCategory(t, service, "Drinks")
	kitchen := seedCategory(t, service, "Kitchen")

	product := validProduct(drinks.ID)
	require.NoError(t, service.CreateProduct(ctx, product))

	update := validProduct(kitchen.ID)
	update.ID = product.ID
	update.Name = "Teapot"
	require.NoError(t, service.UpdateProduct(ctx, update))

	fetched, err := service.GetProduct(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Teapot", fetched.Name)
	require.NotNil(t, fetched.Category)
	assert.Equal(t, "Kitchen", fetched.Category.Name)
}

func TestUpdateProductRejectsMissingCategory(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	product := validProduct(category.ID)
	require.NoError(t, service.CreateProduct(ctx, product))

	update := validProduct("0189e7d2-0000-7000-8000-000000000000")
	update.ID = product.ID
	update.Name = "Tampered"

	err := service.UpdateProduct(ctx, update)
	require.Error(t, err)
	assert.Equal(t, "INVALID_REFERENCE", apperr.As(err).Code)

	// the stored record is untouched by the failed update
	fetched, getErr := service.GetProduct(ctx, product.ID)
	require.NoError(t, getErr)
	assert.Equal(t, "Green Tea", fetched.Name)
}

func TestUpdateProductNotFound(t *testing.T) {
	service := newTestService()
	category := seedCategory(t, service, "Drinks")

	update := validProduct(category.ID)
	update.ID = "0189e7d2-0000-7000-8000-000000000001"

	err := service.UpdateProduct(context.Background(), update)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestDeleteProduct(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	product := validProduct(category.ID)
	require.NoError(t, service.CreateProduct(ctx, product))

	require.NoError(t, service.DeleteProduct(ctx, product.ID))

	_, err := service.GetProduct(ctx, product.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)

	// second delete reports the record as already gone
	err = service.DeleteProduct(ctx, product.ID)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

func TestDeleteCategoryGuard(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	product := validProduct(category.ID)
	require.NoError(t, service.CreateProduct(ctx, product))

	// referenced category cannot be removed
	err := service.DeleteCategory(ctx, category.ID)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)

	// removing the last referencing product unlocks the delete
	require.NoError(t, service.DeleteProduct(ctx, product.ID))
	require.NoError(t, service.DeleteCategory(ctx, category.ID))

	categories, listErr := service.ListCategories(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, categories)
}

func TestCreateCategoryValidation(t *testing.T) {
	service := newTestService()

	err := service.CreateCategory(context.Background(), &Category{Name: "   "})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}

func TestUpdateCategory(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	category.Name = "Beverages"
	require.NoError(t, service.UpdateCategory(ctx, category))

	fetched, err := service.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, "Beverages", fetched.Name)
}

func TestListProductsPreservesInsertionOrder(t *testing.T) {
	service := newTestService()
	ctx := context.Background()
	category := seedCategory(t, service, "Drinks")

	names := []string{"First", "Second", "Third"}
	for _, name := range names {
		product := validProduct(category.ID)
		product.Name = name
		require.NoError(t, service.CreateProduct(ctx, product))
	}

	products, err := service.ListProducts(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(names))

	for i, product := range products {
		assert.Equal(t, names[i], product.Name)
	}
}

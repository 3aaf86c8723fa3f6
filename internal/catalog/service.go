// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"log/slog"

	"github.com/taibuivan/minimart/internal/platform/apperr"
	"github.com/taibuivan/minimart/internal/platform/validate"
	"github.com/taibuivan/minimart/pkg/uuid"
)

// # Service Layer

// Service orchestrates business rules for catalog products and categories.
type Service struct {
	products   ProductRepository
	categories CategoryRepository
	logger     *slog.Logger
}

// NewService constructs a new catalog [Service].
func NewService(products ProductRepository, categories CategoryRepository, logger *slog.Logger) *Service {
	return &Service{
		products:   products,
		categories: categories,
		logger:     logger,
	}
}

// # Product Management

/*
ListProducts retrieves all products with their categories populated.

Parameters:
  - context: context.Context

Returns:
  - []*Product: List of products, category attached
  - error: Retrieval errors
*/
func (service *Service) ListProducts(context context.Context) ([]*Product, error) {
	products, err := service.products.List(context)
	if err != nil {
		return nil, err
	}

	if err := service.populate(context, products); err != nil {
		return nil, err
	}
	return products, nil
}

/*
GetProduct retrieves a product by its UUID with the category populated.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: Hydrated product entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetProduct(context context.Context, id string) (*Product, error) {
	product, err := service.products.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	if err := service.populate(context, []*Product{product}); err != nil {
		return nil, err
	}
	return product, nil
}

/*
CreateProduct validates and persists a new product.

Description: The referenced category must exist before the write; a missing
reference is reported as an invalid-reference error and nothing is stored.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: Validation, reference, or persistence failures
*/
func (service *Service) CreateProduct(context context.Context, product *Product) error {
	if err := service.validateProduct(product); err != nil {
		return err
	}

	if err := service.checkCategoryExists(context, product.CategoryID); err != nil {
		return err
	}

	product.ID = uuid.New()

	if err := service.products.Create(context, product); err != nil {
		return err
	}

	service.logger.Info("product_created",
		slog.String("product_id", product.ID),
		slog.String("category_id", product.CategoryID),
	)

	return service.populate(context, []*Product{product})
}

/*
UpdateProduct validates and replaces an existing product.

Parameters:
  - context: context.Context
  - product: *Product (ID must be set)

Returns:
  - error: Validation, reference, ErrNotFound, or persistence failures
*/
func (service *Service) UpdateProduct(context context.Context, product *Product) error {
	if err := service.validateProduct(product); err != nil {
		return err
	}

	if err := service.checkCategoryExists(context, product.CategoryID); err != nil {
		return err
	}

	if err := service.products.Update(context, product); err != nil {
		return err
	}

	service.logger.Info("product_updated", slog.String("product_id", product.ID))

	return service.populate(context, []*Product{product})
}

/*
DeleteProduct removes a product from the catalog.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if missing
*/
func (service *Service) DeleteProduct(context context.Context, id string) error {
	if err := service.products.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("product_deleted", slog.String("product_id", id))
	return nil
}

// # Category Management

/*
ListCategories retrieves all categories.

Parameters:
  - context: context.Context

Returns:
  - []*Category: List of categories
  - error: Retrieval errors
*/
func (service *Service) ListCategories(context context.Context) ([]*Category, error) {
	return service.categories.List(context)
}

/*
GetCategory retrieves a category by its UUID.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: Hydrated category entity
  - error: ErrNotFound if missing
*/
func (service *Service) GetCategory(context context.Context, id string) (*Category, error) {
	return service.categories.FindByID(context, id)
}

/*
CreateCategory validates and persists a new category.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: Validation or persistence failures
*/
func (service *Service) CreateCategory(context context.Context, category *Category) error {
	if err := service.validateCategory(category); err != nil {
		return err
	}

	category.ID = uuid.New()

	if err := service.categories.Create(context, category); err != nil {
		return err
	}

	service.logger.Info("category_created", slog.String("category_id", category.ID))
	return nil
}

/*
UpdateCategory validates and replaces an existing category.

Parameters:
  - context: context.Context
  - category: *Category (ID must be set)

Returns:
  - error: Validation, ErrNotFound, or persistence failures
*/
func (service *Service) UpdateCategory(context context.Context, category *Category) error {
	if err := service.validateCategory(category); err != nil {
		return err
	}

	if err := service.categories.Update(context, category); err != nil {
		return err
	}

	service.logger.Info("category_updated", slog.String("category_id", category.ID))
	return nil
}

/*
DeleteCategory removes a category that no product references.

Description: Deleting a category that products still point at would strand
those products with a dangling reference, so the operation is refused with
a conflict error until the products are moved or removed.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: Conflict if referenced, ErrNotFound if missing
*/
func (service *Service) DeleteCategory(context context.Context, id string) error {
	referencing, err := service.products.CountByCategory(context, id)
	if err != nil {
		return err
	}
	if referencing > 0 {
		return apperr.Conflict("Category is referenced by existing products")
	}

	if err := service.categories.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("category_deleted", slog.String("category_id", id))
	return nil
}

// # Internal Rules

// validateProduct enforces the shape of a product record.
func (service *Service) validateProduct(product *Product) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, product.Name).MaxLen(FieldName, product.Name, MaxNameLength)
	validator.Required(FieldDescription, product.Description).MaxLen(FieldDescription, product.Description, MaxDescriptionLength)
	validator.Required(FieldCategoryID, product.CategoryID)
	validator.NonNegativeInt(FieldStock, product.Stock)
	validator.NonNegativeFloat(FieldPrice, product.Price)

	if product.CategoryID != "" {
		validator.UUID(FieldCategoryID, product.CategoryID)
	}
	if product.Image != nil {
		validator.MaxLen(FieldImage, *product.Image, MaxImageURLLength)
	}

	return validator.Err()
}

// validateCategory enforces the shape of a category record.
func (service *Service) validateCategory(category *Category) error {
	validator := &validate.Validator{}
	validator.Required(FieldName, category.Name).MaxLen(FieldName, category.Name, MaxNameLength)

	if category.Description != nil {
		validator.MaxLen(FieldDescription, *category.Description, MaxDescriptionLength)
	}

	return validator.Err()
}

// checkCategoryExists verifies a category reference before a product write.
//
// The database FK remains the backstop for a concurrent category delete
// between this check and the write.
func (service *Service) checkCategoryExists(context context.Context, categoryID string) error {
	_, err := service.categories.FindByID(context, categoryID)
	if err == nil {
		return nil
	}

	if appError := apperr.As(err); appError != nil && appError.Code == "NOT_FOUND" {
		return apperr.InvalidReference("Referenced category does not exist")
	}
	return err
}

// populate attaches the referenced category object to each product.
func (service *Service) populate(context context.Context, products []*Product) error {
	if len(products) == 0 {
		return nil
	}

	categories, err := service.categories.List(context)
	if err != nil {
		return err
	}

	byID := make(map[string]*Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}

	for _, product := range products {
		// A soft-deleted category leaves the reference unpopulated rather
		// than failing the whole read.
		product.Category = byID[product.CategoryID]
	}
	return nil
}

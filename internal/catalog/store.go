// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import "context"

// # Product Data Access

// ProductRepository defines the data access contract for products.
type ProductRepository interface {

	/*
		List returns every live product in insertion order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Product: Slice of products (category not populated)
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Product, error)

	/*
		FindByID retrieves a product by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Product: Hydrated entity (category not populated)
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Product, error)

	/*
		Create persists a new product to the store.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: Persistence failures (including invalid category references)
	*/
	Create(context context.Context, product *Product) error

	/*
		Update replaces the mutable fields of an existing product.

		Parameters:
		  - context: context.Context
		  - product: *Product

		Returns:
		  - error: ErrNotFound if missing, persistence failures otherwise
	*/
	Update(context context.Context, product *Product) error

	/*
		Delete removes a product from the store.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id string) error

	/*
		CountByCategory counts live products referencing a category.

		Used by the category delete guard.

		Parameters:
		  - context: context.Context
		  - categoryID: string

		Returns:
		  - int: Number of referencing products
		  - error: Database retrieval failures
	*/
	CountByCategory(context context.Context, categoryID string) (int, error)
}

// # Category Data Access

// CategoryRepository defines the data access contract for categories.
type CategoryRepository interface {

	/*
		List returns every live category in insertion order.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Category: Slice of categories
		  - error: Database retrieval failures
	*/
	List(context context.Context) ([]*Category, error)

	/*
		FindByID retrieves a category by its UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *Category: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Category, error)

	/*
		Create persists a new category to the store.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, category *Category) error

	/*
		Update replaces the mutable fields of an existing category.

		Parameters:
		  - context: context.Context
		  - category: *Category

		Returns:
		  - error: ErrNotFound if missing, persistence failures otherwise
	*/
	Update(context context.Context, category *Category) error

	/*
		Delete removes a category from the store.

		The service guards against deleting referenced categories before
		calling this; the database FK is the backstop.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id string) error
}

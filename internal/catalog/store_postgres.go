// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/taibuivan/minimart/internal/platform/dberr"
)

// # Product Store

// PostgresProductRepository implements [ProductRepository] using pgx.
type PostgresProductRepository struct {
	db *pgxpool.Pool
}

// NewPostgresProductRepository constructs a PostgreSQL backed product store.
func NewPostgresProductRepository(db *pgxpool.Pool) *PostgresProductRepository {
	return &PostgresProductRepository{db: db}
}

/*
List returns all live products ordered by creation time.

Description: UUIDv7 primary keys are time-sortable, so ordering by id
yields insertion order without a secondary index.

Parameters:
  - context: context.Context

Returns:
  - []*Product: Slice of products
  - error: Database retrieval failures
*/
func (repository *PostgresProductRepository) List(context context.Context) ([]*Product, error) {
	const query = `
		SELECT id, name, description, categoryid, stock, price, image, createdat, updatedat
		FROM catalog.product
		WHERE deletedat IS NULL
		ORDER BY id ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_products")
	}
	defer rows.Close()

	var products []*Product
	for rows.Next() {
		product := &Product{}
		err := rows.Scan(
			&product.ID, &product.Name, &product.Description, &product.CategoryID,
			&product.Stock, &product.Price, &product.Image, &product.CreatedAt, &product.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_product")
		}
		products = append(products, product)
	}

	return products, nil
}

/*
FindByID retrieves a single product record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Product: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresProductRepository) FindByID(context context.Context, id string) (*Product, error) {
	const query = `
		SELECT id, name, description, categoryid, stock, price, image, createdat, updatedat
		FROM catalog.product
		WHERE id = $1 AND deletedat IS NULL
	`
	product := &Product{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&product.ID, &product.Name, &product.Description, &product.CategoryID,
		&product.Stock, &product.Price, &product.Image, &product.CreatedAt, &product.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_product_by_id")
	}
	return product, nil
}

/*
Create inserts a new product record.

Description: The categoryid FK rejects references to missing categories at
the database level; dberr maps the violation to an invalid-reference error.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: Persistence failures
*/
func (repository *PostgresProductRepository) Create(context context.Context, product *Product) error {
	const query = `
		INSERT INTO catalog.product (
			id, name, description, categoryid, stock, price, image, createdat, updatedat
		) VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.Stock, product.Price, product.Image,
	).Scan(&product.CreatedAt, &product.UpdatedAt)

	return dberr.Wrap(err, "create_product")
}

/*
Update replaces the mutable fields of a product.

Parameters:
  - context: context.Context
  - product: *Product

Returns:
  - error: ErrNotFound if no live row matched, persistence failures otherwise
*/
func (repository *PostgresProductRepository) Update(context context.Context, product *Product) error {
	const query = `
		UPDATE catalog.product
		SET name = $2, description = $3, categoryid = $4, stock = $5, price = $6, image = $7, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query,
		product.ID, product.Name, product.Description, product.CategoryID,
		product.Stock, product.Price, product.Image,
	).Scan(&product.UpdatedAt)

	return dberr.Wrap(err, "update_product")
}

/*
Delete soft-deletes a product record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if no live row matched
*/
func (repository *PostgresProductRepository) Delete(context context.Context, id string) error {
	const query = `
		UPDATE catalog.product SET deletedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
	`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_product")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

/*
CountByCategory counts live products referencing a category.

Parameters:
  - context: context.Context
  - categoryID: string

Returns:
  - int: Number of referencing products
  - error: Database retrieval failures
*/
func (repository *PostgresProductRepository) CountByCategory(context context.Context, categoryID string) (int, error) {
	const query = `
		SELECT COUNT(*) FROM catalog.product
		WHERE categoryid = $1 AND deletedat IS NULL
	`
	var count int
	if err := repository.db.QueryRow(context, query, categoryID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count_products_by_category")
	}
	return count, nil
}

// # Category Store

// PostgresCategoryRepository implements [CategoryRepository] using pgx.
type PostgresCategoryRepository struct {
	db *pgxpool.Pool
}

// NewPostgresCategoryRepository constructs a PostgreSQL backed category store.
func NewPostgresCategoryRepository(db *pgxpool.Pool) *PostgresCategoryRepository {
	return &PostgresCategoryRepository{db: db}
}

/*
List returns all live categories ordered by creation time.

Parameters:
  - context: context.Context

Returns:
  - []*Category: Slice of categories
  - error: Database retrieval failures
*/
func (repository *PostgresCategoryRepository) List(context context.Context) ([]*Category, error) {
	const query = `
		SELECT id, name, description, createdat, updatedat
		FROM catalog.category
		WHERE deletedat IS NULL
		ORDER BY id ASC
	`
	rows, err := repository.db.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "list_categories")
	}
	defer rows.Close()

	var categories []*Category
	for rows.Next() {
		category := &Category{}
		err := rows.Scan(
			&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt,
		)
		if err != nil {
			return nil, dberr.Wrap(err, "scan_category")
		}
		categories = append(categories, category)
	}

	return categories, nil
}

/*
FindByID retrieves a single category record by its primary key.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *Category: Hydrated entity
  - error: Database retrieval failures
*/
func (repository *PostgresCategoryRepository) FindByID(context context.Context, id string) (*Category, error) {
	const query = `
		SELECT id, name, description, createdat, updatedat
		FROM catalog.category
		WHERE id = $1 AND deletedat IS NULL
	`
	category := &Category{}
	err := repository.db.QueryRow(context, query, id).Scan(
		&category.ID, &category.Name, &category.Description, &category.CreatedAt, &category.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "get_category_by_id")
	}
	return category, nil
}

/*
Create inserts a new category record.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: Persistence failures
*/
func (repository *PostgresCategoryRepository) Create(context context.Context, category *Category) error {
	const query = `
		INSERT INTO catalog.category (id, name, description, createdat, updatedat)
		VALUES ($1, $2, $3, NOW(), NOW())
		RETURNING createdat, updatedat
	`
	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Description,
	).Scan(&category.CreatedAt, &category.UpdatedAt)

	return dberr.Wrap(err, "create_category")
}

/*
Update replaces the mutable fields of a category.

Parameters:
  - context: context.Context
  - category: *Category

Returns:
  - error: ErrNotFound if no live row matched, persistence failures otherwise
*/
func (repository *PostgresCategoryRepository) Update(context context.Context, category *Category) error {
	const query = `
		UPDATE catalog.category
		SET name = $2, description = $3, updatedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
		RETURNING updatedat
	`
	err := repository.db.QueryRow(context, query,
		category.ID, category.Name, category.Description,
	).Scan(&category.UpdatedAt)

	return dberr.Wrap(err, "update_category")
}

/*
Delete soft-deletes a category record.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - error: ErrNotFound if no live row matched
*/
func (repository *PostgresCategoryRepository) Delete(context context.Context, id string) error {
	const query = `
		UPDATE catalog.category SET deletedat = NOW()
		WHERE id = $1 AND deletedat IS NULL
	`
	result, err := repository.db.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete_category")
	}
	if result.RowsAffected() == 0 {
		return dberr.ErrNotFound
	}
	return nil
}

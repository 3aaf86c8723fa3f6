// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/minimart/internal/platform/dberr"
)

// # In-Memory Stores
//
// The memory repositories back unit tests and local development without a
// database. They preserve insertion order and copy records on every boundary
// crossing so callers can never mutate internal state through aliases.

// MemoryProductRepository implements [ProductRepository] with a mutex-guarded map.
type MemoryProductRepository struct {
	mu    sync.RWMutex
	items map[string]*Product
	order []string
}

// NewMemoryProductRepository constructs an empty in-memory product store.
func NewMemoryProductRepository() *MemoryProductRepository {
	return &MemoryProductRepository{items: make(map[string]*Product)}
}

// List returns all products in insertion order.
func (repository *MemoryProductRepository) List(_ context.Context) ([]*Product, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	products := make([]*Product, 0, len(repository.order))
	for _, id := range repository.order {
		clone := *repository.items[id]
		products = append(products, &clone)
	}
	return products, nil
}

// FindByID returns the product with the given id.
func (repository *MemoryProductRepository) FindByID(_ context.Context, id string) (*Product, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	product, ok := repository.items[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *product
	return &clone, nil
}

// Create stores a new product and stamps its timestamps.
func (repository *MemoryProductRepository) Create(_ context.Context, product *Product) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	clone := *product
	repository.items[product.ID] = &clone
	repository.order = append(repository.order, product.ID)
	return nil
}

// Update replaces an existing product record.
func (repository *MemoryProductRepository) Update(_ context.Context, product *Product) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.items[product.ID]
	if !ok {
		return dberr.ErrNotFound
	}

	product.CreatedAt = existing.CreatedAt
	product.UpdatedAt = time.Now().UTC()

	clone := *product
	repository.items[product.ID] = &clone
	return nil
}

// Delete removes a product record.
func (repository *MemoryProductRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.items[id]; !ok {
		return dberr.ErrNotFound
	}

	delete(repository.items, id)
	for i, existing := range repository.order {
		if existing == id {
			repository.order = append(repository.order[:i], repository.order[i+1:]...)
			break
		}
	}
	return nil
}

// CountByCategory counts products referencing a category.
func (repository *MemoryProductRepository) CountByCategory(_ context.Context, categoryID string) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	count := 0
	for _, product := range repository.items {
		if product.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

// MemoryCategoryRepository implements [CategoryRepository] with a mutex-guarded map.
type MemoryCategoryRepository struct {
	mu    sync.RWMutex
	items map[string]*Category
	order []string
}

// NewMemoryCategoryRepository constructs an empty in-memory category store.
func NewMemoryCategoryRepository() *MemoryCategoryRepository {
	return &MemoryCategoryRepository{items: make(map[string]*Category)}
}

// List returns all categories in insertion order.
func (repository *MemoryCategoryRepository) List(_ context.Context) ([]*Category, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	categories := make([]*Category, 0, len(repository.order))
	for _, id := range repository.order {
		clone := *repository.items[id]
		categories = append(categories, &clone)
	}
	return categories, nil
}

// FindByID returns the category with the given id.
func (repository *MemoryCategoryRepository) FindByID(_ context.Context, id string) (*Category, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	category, ok := repository.items[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *category
	return &clone, nil
}

// Create stores a new category and stamps its timestamps.
func (repository *MemoryCategoryRepository) Create(_ context.Context, category *Category) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	now := time.Now().UTC()
	category.CreatedAt = now
	category.UpdatedAt = now

	clone := *category
	repository.items[category.ID] = &clone
	repository.order = append(repository.order, category.ID)
	return nil
}

// Update replaces an existing category record.
func (repository *MemoryCategoryRepository) Update(_ context.Context, category *Category) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.items[category.ID]
	if !ok {
		return dberr.ErrNotFound
	}

	category.CreatedAt = existing.CreatedAt
	category.UpdatedAt = time.Now().UTC()

	clone := *category
	repository.items[category.ID] = &clone
	return nil
}

// Delete removes a category record.
func (repository *MemoryCategoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.items[id]; !ok {
		return dberr.ErrNotFound
	}

	delete(repository.items, id)
	for i, existing := range repository.order {
		if existing == id {
			repository.order = append(repository.order[:i], repository.order[i+1:]...)
			break
		}
	}
	return nil
}

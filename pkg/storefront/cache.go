// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storefront

import (
	"context"
	"sync"

	"github.com/taibuivan/minimart/pkg/catalogview"
)

// Status describes the lifecycle of a cached collection.
type Status string

const (
	// StatusIdle means the collection has never been loaded.
	StatusIdle Status = "idle"
	// StatusLoading means a load request is in flight.
	StatusLoading Status = "loading"
	// StatusLoaded means the collection reflects the last successful load.
	StatusLoaded Status = "loaded"
	// StatusError means the last load failed; previous data is retained.
	StatusError Status = "error"
)

// Cache is an in-memory mirror of the catalog collections.
//
// # Consistency
//
// Mutations are confirmed-write-only: Add, Edit, and Remove send the request
// first and touch the local mirror only after the server reports success.
// A failed or timed-out request leaves the cache exactly as it was, so the
// mirror never shows state the server has not acknowledged.
//
// All methods are safe for concurrent use. The internal lock is never held
// across a network round trip.
type Cache struct {
	client *Client

	mu             sync.RWMutex
	products       []catalogview.Product
	categories     []Category
	productStatus  Status
	categoryStatus Status
	lastErr        error
}

// NewCache creates an empty cache backed by the given client.
func NewCache(client *Client) *Cache {
	return &Cache{
		client:         client,
		productStatus:  StatusIdle,
		categoryStatus: StatusIdle,
	}
}

// # Snapshots

// Products returns a copy of the cached product collection.
func (c *Cache) Products() []catalogview.Product {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]catalogview.Product, len(c.products))
	copy(snapshot, c.products)
	return snapshot
}

// Categories returns a copy of the cached category collection.
func (c *Cache) Categories() []Category {
	c.mu.RLock()
	defer c.mu.RUnlock()

	snapshot := make([]Category, len(c.categories))
	copy(snapshot, c.categories)
	return snapshot
}

// ProductStatus returns the load status of the product collection.
func (c *Cache) ProductStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.productStatus
}

// CategoryStatus returns the load status of the category collection.
func (c *Cache) CategoryStatus() Status {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.categoryStatus
}

// LastError returns the error recorded by the most recent failed load,
// or nil if the last load succeeded.
func (c *Cache) LastError() error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lastErr
}

// # Loads

// LoadProducts replaces the cached product collection from the server.
func (c *Cache) LoadProducts(ctx context.Context) error {
	c.setProductStatus(StatusLoading)

	products, err := c.client.Products(ctx)
	if err != nil {
		c.recordLoadError(&c.productStatus, err)
		return err
	}

	c.mu.Lock()
	c.products = products
	c.productStatus = StatusLoaded
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// LoadCategories replaces the cached category collection from the server.
func (c *Cache) LoadCategories(ctx context.Context) error {
	c.setCategoryStatus(StatusLoading)

	categories, err := c.client.Categories(ctx)
	if err != nil {
		c.recordLoadError(&c.categoryStatus, err)
		return err
	}

	c.mu.Lock()
	c.categories = categories
	c.categoryStatus = StatusLoaded
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// # Product Mutations

// AddProduct creates a product on the server, then appends the confirmed
// record to the mirror.
func (c *Cache) AddProduct(ctx context.Context, input ProductInput) (catalogview.Product, error) {
	created, err := c.client.CreateProduct(ctx, input)
	if err != nil {
		return catalogview.Product{}, err
	}

	c.mu.Lock()
	c.products = append(c.products, created)
	c.mu.Unlock()
	return created, nil
}

// EditProduct updates a product on the server, then replaces the matching
// record in the mirror.
func (c *Cache) EditProduct(ctx context.Context, id string, input ProductInput) (catalogview.Product, error) {
	updated, err := c.client.UpdateProduct(ctx, id, input)
	if err != nil {
		return catalogview.Product{}, err
	}

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// RemoveProduct deletes a product on the server, then drops it from the mirror.
func (c *Cache) RemoveProduct(ctx context.Context, id string) error {
	if err := c.client.DeleteProduct(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.products {
		if c.products[i].ID == id {
			c.products = append(c.products[:i], c.products[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// # Category Mutations

// AddCategory creates a category on the server, then appends the confirmed
// record to the mirror.
func (c *Cache) AddCategory(ctx context.Context, input CategoryInput) (Category, error) {
	created, err := c.client.CreateCategory(ctx, input)
	if err != nil {
		return Category{}, err
	}

	c.mu.Lock()
	c.categories = append(c.categories, created)
	c.mu.Unlock()
	return created, nil
}

// EditCategory updates a category on the server, then replaces the matching
// record in the mirror.
func (c *Cache) EditCategory(ctx context.Context, id string, input CategoryInput) (Category, error) {
	updated, err := c.client.UpdateCategory(ctx, id, input)
	if err != nil {
		return Category{}, err
	}

	c.mu.Lock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories[i] = updated
			break
		}
	}
	c.mu.Unlock()
	return updated, nil
}

// RemoveCategory deletes a category on the server, then drops it from the mirror.
func (c *Cache) RemoveCategory(ctx context.Context, id string) error {
	if err := c.client.DeleteCategory(ctx, id); err != nil {
		return err
	}

	c.mu.Lock()
	for i := range c.categories {
		if c.categories[i].ID == id {
			c.categories = append(c.categories[:i], c.categories[i+1:]...)
			break
		}
	}
	c.mu.Unlock()
	return nil
}

// # Internal State Helpers

func (c *Cache) setProductStatus(status Status) {
	c.mu.Lock()
	c.productStatus = status
	c.mu.Unlock()
}

func (c *Cache) setCategoryStatus(status Status) {
	c.mu.Lock()
	c.categoryStatus = status
	c.mu.Unlock()
}

// recordLoadError marks a collection as failed while retaining its data.
func (c *Cache) recordLoadError(status *Status, err error) {
	c.mu.Lock()
	*status = StatusError
	c.lastErr = err
	c.mu.Unlock()
}

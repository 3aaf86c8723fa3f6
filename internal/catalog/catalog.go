// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package catalog manages the product and category entities of the storefront.

It handles the full lifecycle of catalog records, from creation and validation
to referential integrity between products and their categories.

# Core Responsibility

  - Entities: Defines the [Product] and [Category] types and their metadata.
  - Integrity: Every product must reference an existing category; categories
    cannot be removed while products still point at them.
  - Population: Read operations attach the referenced category object to each
    product so clients never need a second round trip.

This package is the single authority on what a valid catalog record looks like.
*/
package catalog

import "time"

// # Core Entities

// Product represents a single sellable item in the catalog.
type Product struct {
	ID          string     `json:"id"` // UUIDv7
	Name        string     `json:"name"`
	Description string     `json:"description"`
	CategoryID  string     `json:"category_id"`
	Category    *Category  `json:"category,omitempty"` // Populated on reads
	Stock       int        `json:"stock"`
	Price       float64    `json:"price"`
	Image       *string    `json:"image,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// Category represents a grouping of related products.
type Category struct {
	ID          string     `json:"id"` // UUIDv7
	Name        string     `json:"name"`
	Description *string    `json:"description,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"-"`
}

// # Field Identifiers

const (
	FieldName        = "name"
	FieldDescription = "description"
	FieldCategoryID  = "category_id"
	FieldStock       = "stock"
	FieldPrice       = "price"
	FieldImage       = "image"
)

// # Validation Limits

const (
	MaxNameLength        = 200
	MaxDescriptionLength = 2000
	MaxImageURLLength    = 500
)

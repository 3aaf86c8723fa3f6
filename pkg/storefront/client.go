// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package storefront is the Go client SDK for the Minimart catalog API.

It bundles two layers:

  - Client: a thin HTTP wrapper that authenticates via http-only cookies,
    enforces a bounded per-request timeout, and translates the API's JSON
    envelopes into Go values and typed errors.
  - Cache: an in-memory mirror of the product and category collections with
    explicit load-status flags, suitable for driving a storefront UI.

The cache is strictly write-through: no local mutation happens until the
server confirms the corresponding request.
*/
package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/taibuivan/minimart/pkg/catalogview"
)

// DefaultTimeout bounds every request issued by the client. A server that
// stops responding surfaces as a timeout error instead of a hung call.
const DefaultTimeout = 10 * time.Second

// # Wire Types

// Category is the client-side mirror of a catalog category.
type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ProductInput carries the writable fields of a product.
type ProductInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	Image       *string `json:"image,omitempty"`
}

// CategoryInput carries the writable fields of a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// wireProduct matches the server representation, where the category
// reference may arrive populated as a nested object.
type wireProduct struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CategoryID  string    `json:"category_id"`
	Category    *Category `json:"category,omitempty"`
	Stock       int       `json:"stock"`
	Price       float64   `json:"price"`
	Image       *string   `json:"image,omitempty"`
}

// toView normalizes a wire product into the flat client mirror,
// preferring the populated category object for the reference id.
func (w wireProduct) toView() catalogview.Product {
	categoryID := w.CategoryID
	if w.Category != nil {
		categoryID = w.Category.ID
	}

	return catalogview.Product{
		ID:          w.ID,
		Name:        w.Name,
		Description: w.Description,
		CategoryID:  categoryID,
		Stock:       w.Stock,
		Price:       w.Price,
		Image:       w.Image,
	}
}

// # Client

// Client is an HTTP client for the Minimart API.
//
// Authentication state lives in the cookie jar: a successful Login stores
// the http-only access and refresh cookies, and every subsequent request
// sends them automatically.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the API at baseURL (e.g. "http://localhost:8080").
//
// A non-positive timeout falls back to [DefaultTimeout].
func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("storefront_client_invalid: base URL is required")
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("storefront_client_jar_failed: %w", err)
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Jar:     jar,
			Timeout: timeout,
		},
	}, nil
}

// # Auth Operations

// Login authenticates with the API and stores the session cookies.
func (c *Client) Login(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/login", body, nil)
}

// Logout ends the session on the server and drops the session cookies.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/logout", nil, nil)
}

// Refresh rotates the session cookies using the stored refresh token.
func (c *Client) Refresh(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/api/auth/refresh", nil, nil)
}

// # Product Operations

// Products fetches the full product collection.
func (c *Client) Products(ctx context.Context) ([]catalogview.Product, error) {
	var wire []wireProduct
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, &wire); err != nil {
		return nil, err
	}

	products := make([]catalogview.Product, len(wire))
	for i, w := range wire {
		products[i] = w.toView()
	}
	return products, nil
}

// CreateProduct creates a product and returns the stored representation.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (catalogview.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodPost, "/api/products", input, &wire); err != nil {
		return catalogview.Product{}, err
	}
	return wire.toView(), nil
}

// UpdateProduct replaces the product identified by id.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (catalogview.Product, error) {
	var wire wireProduct
	if err := c.do(ctx, http.MethodPut, "/api/products/"+url.PathEscape(id), input, &wire); err != nil {
		return catalogview.Product{}, err
	}
	return wire.toView(), nil
}

// DeleteProduct removes the product identified by id.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+url.PathEscape(id), nil, nil)
}

// # Category Operations

// Categories fetches the full category collection.
func (c *Client) Categories(ctx context.Context) ([]Category, error) {
	var categories []Category
	if err := c.do(ctx, http.MethodGet, "/api/categories", nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// CreateCategory creates a category and returns the stored representation.
func (c *Client) CreateCategory(ctx context.Context, input CategoryInput) (Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPost, "/api/categories", input, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// UpdateCategory replaces the category identified by id.
func (c *Client) UpdateCategory(ctx context.Context, id string, input CategoryInput) (Category, error) {
	var category Category
	if err := c.do(ctx, http.MethodPut, "/api/categories/"+url.PathEscape(id), input, &category); err != nil {
		return Category{}, err
	}
	return category, nil
}

// DeleteCategory removes the category identified by id.
func (c *Client) DeleteCategory(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/categories/"+url.PathEscape(id), nil, nil)
}

// # Transport

// successEnvelope defers data decoding so one helper serves every endpoint.
type successEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// errorEnvelope mirrors the server's standard error response shape.
type errorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// do issues one request and decodes the enveloped response into out.
//
// Error flow:
//   - transport failures become KindTimeout or KindNetwork
//   - HTTP >= 400 with a parseable envelope becomes KindAPI
//   - unparseable bodies become KindDecode
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindDecode, Message: "encode request body", Err: err}
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "build request", Err: err}
	}
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	request.Header.Set("Accept", "application/json")

	response, err := c.http.Do(request)
	if err != nil {
		return classifyTransport(err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, 4<<20))
	if err != nil {
		return classifyTransport(err)
	}

	if response.StatusCode >= 400 {
		var envelope errorEnvelope
		if err := json.Unmarshal(payload, &envelope); err != nil || envelope.Error == "" {
			return &Error{
				Kind:    KindAPI,
				Message: http.StatusText(response.StatusCode),
				Status:  response.StatusCode,
			}
		}
		return &Error{
			Kind:    KindAPI,
			Message: envelope.Error,
			Code:    envelope.Code,
			Status:  response.StatusCode,
		}
	}

	if out == nil || response.StatusCode == http.StatusNoContent {
		return nil
	}

	var envelope successEnvelope
	if err := json.Unmarshal(payload, &envelope); err != nil {
		return &Error{Kind: KindDecode, Message: "decode response envelope", Err: err}
	}
	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &Error{Kind: KindDecode, Message: "decode response data", Err: err}
	}
	return nil
}

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package catalog

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	requestutil "github.com/taibuivan/minimart/internal/platform/request"
	"github.com/taibuivan/minimart/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for catalog operations.
//
// All catalog routes require an authenticated session; the authentication
// middleware is wrapped when these routers are mounted in the API server.
type Handler struct {
	service *Service
}

// NewHandler constructs a new catalog [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ProductRoutes returns a [chi.Router] configured with product endpoints.
func (handler *Handler) ProductRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listProducts)
	router.Post("/", handler.createProduct)
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getProduct)
		subRouter.Put("/", handler.updateProduct)
		subRouter.Delete("/", handler.deleteProduct)
	})

	return router
}

// CategoryRoutes returns a [chi.Router] configured with category endpoints.
func (handler *Handler) CategoryRoutes() chi.Router {
	router := chi.NewRouter()

	router.Get("/", handler.listCategories)
	router.Post("/", handler.createCategory)
	router.Route("/{id}", func(subRouter chi.Router) {
		subRouter.Get("/", handler.getCategory)
		subRouter.Put("/", handler.updateCategory)
		subRouter.Delete("/", handler.deleteCategory)
	})

	return router
}

// # Request Payloads

// productInput is the writable projection of a product.
//
// Decoding is strict, so read-only fields (id, timestamps, populated
// category) are rejected instead of silently ignored.
type productInput struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	CategoryID  string  `json:"category_id"`
	Stock       int     `json:"stock"`
	Price       float64 `json:"price"`
	Image       *string `json:"image,omitempty"`
}

// categoryInput is the writable projection of a category.
type categoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// # Product Endpoints

/*
GET /api/products.

Description: Retrieves the full product collection with populated categories.

Response:
  - 200: []Product: Success
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listProducts(writer http.ResponseWriter, request *http.Request) {
	products, err := handler.service.ListProducts(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, products)
}

/*
GET /api/products/{id}.

Description: Retrieves a single product with its category populated.

Request:
  - id: string (UUID)

Response:
  - 200: Product: Success
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Product not found
*/
func (handler *Handler) getProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	product, err := handler.service.GetProduct(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
POST /api/products.

Description: Creates a new product referencing an existing category.

Request (Body):
  - { "name", "description", "category_id", "stock", "price", "image"? }

Response:
  - 201: Product: Created object with populated category
  - 400: 400: ErrInvalidJSON/Validation/InvalidReference: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createProduct(writer http.ResponseWriter, request *http.Request) {
	var input productInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product := Product{
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Stock:       input.Stock,
		Price:       input.Price,
		Image:       input.Image,
	}

	if err := handler.service.CreateProduct(request.Context(), &product); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, product)
}

/*
PUT /api/products/{id}.

Description: Replaces the mutable fields of an existing product.

Request:
  - id: string (Target UUID)
  - body: { "name", "description", "category_id", "stock", "price", "image"? }

Response:
  - 200: Product: Updated entity with populated category
  - 400: 400: ErrInvalidJSON/Validation/InvalidReference: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Product not found
*/
func (handler *Handler) updateProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input productInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	product := Product{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
		CategoryID:  input.CategoryID,
		Stock:       input.Stock,
		Price:       input.Price,
		Image:       input.Image,
	}

	if err := handler.service.UpdateProduct(request.Context(), &product); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, product)
}

/*
DELETE /api/products/{id}.

Description: Removes a product from the catalog.

Request:
  - id: string (Target UUID)

Response:
  - 200: Message: Success
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Product not found
*/
func (handler *Handler) deleteProduct(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteProduct(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Product deleted")
}

// # Category Endpoints

/*
GET /api/categories.

Description: Retrieves the full category collection.

Response:
  - 200: []Category: Success
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) listCategories(writer http.ResponseWriter, request *http.Request) {
	categories, err := handler.service.ListCategories(request.Context())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, categories)
}

/*
GET /api/categories/{id}.

Description: Retrieves a single category.

Request:
  - id: string (UUID)

Response:
  - 200: Category: Success
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Category not found
*/
func (handler *Handler) getCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	category, err := handler.service.GetCategory(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
POST /api/categories.

Description: Creates a new product category.

Request (Body):
  - { "name", "description"? }

Response:
  - 201: Category: Created object
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
*/
func (handler *Handler) createCategory(writer http.ResponseWriter, request *http.Request) {
	var input categoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := Category{
		Name:        input.Name,
		Description: input.Description,
	}

	if err := handler.service.CreateCategory(request.Context(), &category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, category)
}

/*
PUT /api/categories/{id}.

Description: Replaces the mutable fields of an existing category.

Request:
  - id: string (Target UUID)
  - body: { "name", "description"? }

Response:
  - 200: Category: Updated entity
  - 400: 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Category not found
*/
func (handler *Handler) updateCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	var input categoryInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	category := Category{
		ID:          id,
		Name:        input.Name,
		Description: input.Description,
	}

	if err := handler.service.UpdateCategory(request.Context(), &category); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, category)
}

/*
DELETE /api/categories/{id}.

Description: Removes a category that no product references.

Request:
  - id: string (Target UUID)

Response:
  - 200: Message: Success
  - 401: 401: ErrUnauthorized: Authentication required
  - 404: 404: ErrNotFound: Category not found
  - 409: 409: ErrConflict: Category still referenced by products
*/
func (handler *Handler) deleteCategory(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.DeleteCategory(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Message(writer, "Category deleted")
}

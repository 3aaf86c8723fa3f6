// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package storefront_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/minimart/pkg/catalogview"
	"github.com/taibuivan/minimart/pkg/storefront"
)

// envelope wraps a payload the way the API does.
func envelope(data interface{}) map[string]interface{} {
	return map[string]interface{}{"data": data}
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, payload interface{}) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(payload))
}

func newClient(t *testing.T, server *httptest.Server) *storefront.Client {
	t.Helper()
	client, err := storefront.NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func TestClientProductsNormalizesPopulatedCategory(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/products", r.URL.Path)

		writeJSON(t, w, http.StatusOK, envelope([]map[string]interface{}{
			{
				"id":    "prod-1",
				"name":  "Green Tea",
				"stock": 5,
				"price": 3.5,
				"category": map[string]string{
					"id":   "cat-drinks",
					"name": "Drinks",
				},
			},
			{
				"id":          "prod-2",
				"name":        "Teapot",
				"category_id": "cat-kitchen",
				"stock":       2,
				"price":       12.0,
			},
		}))
	}))
	defer server.Close()

	client := newClient(t, server)

	products, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)

	// populated category object wins over the flat reference
	assert.Equal(t, "cat-drinks", products[0].CategoryID)
	assert.Equal(t, "cat-kitchen", products[1].CategoryID)
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]string{
			"error": "Access denied",
			"code":  "UNAUTHORIZED",
		})
	}))
	defer server.Close()

	client := newClient(t, server)

	_, err := client.Products(context.Background())
	require.Error(t, err)

	var se *storefront.Error
	require.ErrorAs(t, err, &se)
	assert.Equal(t, storefront.KindAPI, se.Kind)
	assert.Equal(t, http.StatusUnauthorized, se.Status)
	assert.Equal(t, "Access denied", se.Message)
	assert.Equal(t, http.StatusUnauthorized, storefront.APIStatus(err))
}

func TestClientTimeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client, err := storefront.NewClient(server.URL, 50*time.Millisecond)
	require.NoError(t, err)

	_, err = client.Products(context.Background())
	require.Error(t, err)
	assert.True(t, storefront.IsTimeout(err))
}

func TestClientSendsSessionCookies(t *testing.T) {
	const sessionValue = "session-token"

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			http.SetCookie(w, &http.Cookie{
				Name:     "accessToken",
				Value:    sessionValue,
				Path:     "/",
				HttpOnly: true,
			})
			writeJSON(t, w, http.StatusOK, envelope(map[string]string{"message": "Logged in"}))

		case "/api/products":
			cookie, err := r.Cookie("accessToken")
			if err != nil || cookie.Value != sessionValue {
				writeJSON(t, w, http.StatusUnauthorized, map[string]string{
					"error": "Access denied",
					"code":  "UNAUTHORIZED",
				})
				return
			}
			writeJSON(t, w, http.StatusOK, envelope([]interface{}{}))

		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	client := newClient(t, server)
	ctx := context.Background()

	// unauthenticated request is rejected
	_, err := client.Products(ctx)
	assert.Equal(t, http.StatusUnauthorized, storefront.APIStatus(err))

	// login stores the cookie, the retry succeeds
	require.NoError(t, client.Login(ctx, "admin", "secret"))

	_, err = client.Products(ctx)
	assert.NoError(t, err)
}

// catalogServer is a tiny stateful fake of the products endpoint.
type catalogServer struct {
	products []map[string]interface{}
	failNext bool
}

func (s *catalogServer) handler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.failNext {
			s.failNext = false
			writeJSON(t, w, http.StatusInternalServerError, map[string]string{
				"error": "An unexpected error occurred",
				"code":  "INTERNAL_ERROR",
			})
			return
		}

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/api/products":
			writeJSON(t, w, http.StatusOK, envelope(s.products))

		case r.Method == http.MethodPost && r.URL.Path == "/api/products":
			var input map[string]interface{}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
			input["id"] = "prod-new"
			s.products = append(s.products, input)
			writeJSON(t, w, http.StatusCreated, envelope(input))

		case r.Method == http.MethodDelete && r.URL.Path == "/api/products/prod-1":
			writeJSON(t, w, http.StatusOK, envelope(map[string]string{"message": "Product deleted"}))

		default:
			http.NotFound(w, r)
		}
	})
}

func TestCacheLoadLifecycle(t *testing.T) {
	fake := &catalogServer{products: []map[string]interface{}{
		{"id": "prod-1", "name": "Green Tea", "category_id": "cat-1", "stock": 5, "price": 3.5},
	}}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	cache := storefront.NewCache(newClient(t, server))
	require.Equal(t, storefront.StatusIdle, cache.ProductStatus())

	require.NoError(t, cache.LoadProducts(context.Background()))
	assert.Equal(t, storefront.StatusLoaded, cache.ProductStatus())
	assert.NoError(t, cache.LastError())
	require.Len(t, cache.Products(), 1)

	// failed reload flags the error but keeps the previous data
	fake.failNext = true
	err := cache.LoadProducts(context.Background())
	require.Error(t, err)
	assert.Equal(t, storefront.StatusError, cache.ProductStatus())
	assert.Error(t, cache.LastError())
	assert.Len(t, cache.Products(), 1)
}

func TestCacheAddProductIsWriteThrough(t *testing.T) {
	fake := &catalogServer{}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	cache := storefront.NewCache(newClient(t, server))
	require.NoError(t, cache.LoadProducts(context.Background()))

	input := storefront.ProductInput{
		Name:        "Coffee",
		Description: "Dark roast",
		CategoryID:  "cat-drinks",
		Stock:       8,
		Price:       4.0,
	}

	created, err := cache.AddProduct(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "prod-new", created.ID)

	products := cache.Products()
	require.Len(t, products, 1)
	assert.Equal(t, "Coffee", products[0].Name)
}

func TestCacheMutationFailureLeavesMirrorUnchanged(t *testing.T) {
	fake := &catalogServer{products: []map[string]interface{}{
		{"id": "prod-1", "name": "Green Tea", "category_id": "cat-1", "stock": 5, "price": 3.5},
	}}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	cache := storefront.NewCache(newClient(t, server))
	require.NoError(t, cache.LoadProducts(context.Background()))
	before := cache.Products()

	fake.failNext = true
	_, err := cache.AddProduct(context.Background(), storefront.ProductInput{Name: "Ghost"})
	require.Error(t, err)

	assert.Equal(t, before, cache.Products())
	assert.Equal(t, storefront.StatusLoaded, cache.ProductStatus(), "a failed mutation must not disturb the load status")
}

func TestCacheRemoveProduct(t *testing.T) {
	fake := &catalogServer{products: []map[string]interface{}{
		{"id": "prod-1", "name": "Green Tea", "category_id": "cat-1", "stock": 5, "price": 3.5},
	}}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	cache := storefront.NewCache(newClient(t, server))
	require.NoError(t, cache.LoadProducts(context.Background()))

	require.NoError(t, cache.RemoveProduct(context.Background(), "prod-1"))
	assert.Empty(t, cache.Products())
}

func TestCacheSnapshotIsACopy(t *testing.T) {
	fake := &catalogServer{products: []map[string]interface{}{
		{"id": "prod-1", "name": "Green Tea", "category_id": "cat-1", "stock": 5, "price": 3.5},
	}}
	server := httptest.NewServer(fake.handler(t))
	defer server.Close()

	cache := storefront.NewCache(newClient(t, server))
	require.NoError(t, cache.LoadProducts(context.Background()))

	snapshot := cache.Products()
	snapshot[0] = catalogview.Product{ID: "tampered"}

	assert.Equal(t, "prod-1", cache.Products()[0].ID)
}

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/minimart/internal/api"
	"github.com/taibuivan/minimart/internal/catalog"
	"github.com/taibuivan/minimart/internal/platform/config"
	"github.com/taibuivan/minimart/internal/platform/constants"
	"github.com/taibuivan/minimart/internal/platform/sec"
	"github.com/taibuivan/minimart/internal/users/auth"
	"github.com/taibuivan/minimart/pkg/storefront"
)

// newTestServer assembles the full server (middleware chain included) on
// in-memory stores and returns it mounted on an httptest listener.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	cfg := &config.Config{
		ServerPort:  "0",
		Environment: "development",
	}

	tokenService, err := sec.NewTokenService("e2e-access-secret", "e2e-refresh-secret", constants.AuthIssuer)
	require.NoError(t, err)

	authService := auth.NewService(
		auth.NewMemoryUserRepository(),
		auth.NewMemoryRefreshTokenRepository(),
		tokenService,
		15*time.Minute,
		24*time.Hour,
		logger,
	)

	_, err = authService.Register(context.Background(), auth.RegisterInput{
		Username: "admin",
		Email:    "admin@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)

	catalogService := catalog.NewService(
		catalog.NewMemoryProductRepository(),
		catalog.NewMemoryCategoryRepository(),
		logger,
	)

	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	server := api.NewServer(ctx, cfg, logger, tokenService, api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService, false),
		Catalog:   catalog.NewHandler(catalogService),
	})

	testServer := httptest.NewServer(server.Router())
	t.Cleanup(testServer.Close)
	return testServer
}

func newSDK(t *testing.T, server *httptest.Server) *storefront.Client {
	t.Helper()
	client, err := storefront.NewClient(server.URL, 5*time.Second)
	require.NoError(t, err)
	return client
}

func decodeError(t *testing.T, response *http.Response) (message, code string) {
	t.Helper()
	var envelope struct {
		Error string `json:"error"`
		Code  string `json:"code"`
	}
	require.NoError(t, json.NewDecoder(response.Body).Decode(&envelope))
	return envelope.Error, envelope.Code
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	response, err := http.Get(server.URL + "/health")
	require.NoError(t, err)
	defer response.Body.Close()

	assert.Equal(t, http.StatusOK, response.StatusCode)
}

func TestCatalogRequiresSession(t *testing.T) {
	server := newTestServer(t)

	response, err := http.Get(server.URL + "/api/products")
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusUnauthorized, response.StatusCode)

	message, _ := decodeError(t, response)
	assert.Equal(t, "Access denied", message)
}

func TestCatalogRejectsTamperedToken(t *testing.T) {
	server := newTestServer(t)

	request, err := http.NewRequest(http.MethodGet, server.URL+"/api/products", nil)
	require.NoError(t, err)
	request.AddCookie(&http.Cookie{Name: constants.AccessTokenCookieName, Value: "tampered.jwt.value"})

	response, err := http.DefaultClient.Do(request)
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusUnauthorized, response.StatusCode)

	message, _ := decodeError(t, response)
	assert.Equal(t, "Invalid token", message)
}

func TestLoginFailures(t *testing.T) {
	server := newTestServer(t)
	sdk := newSDK(t, server)
	ctx := context.Background()

	tests := []struct {
		name        string
		username    string
		password    string
		wantMessage string
	}{
		{"unknown user", "ghost", "secret123", "User not found"},
		{"wrong password", "admin", "nope", "Invalid password"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := sdk.Login(ctx, tc.username, tc.password)
			require.Error(t, err)

			var se *storefront.Error
			require.ErrorAs(t, err, &se)
			assert.Equal(t, http.StatusBadRequest, se.Status)
			assert.Equal(t, tc.wantMessage, se.Message)
		})
	}
}

func TestCatalogLifecycleThroughSDK(t *testing.T) {
	server := newTestServer(t)
	sdk := newSDK(t, server)
	ctx := context.Background()

	require.NoError(t, sdk.Login(ctx, "admin", "secret123"))

	// categories first: products need a valid reference
	category, err := sdk.CreateCategory(ctx, storefront.CategoryInput{Name: "Drinks"})
	require.NoError(t, err)
	require.NotEmpty(t, category.ID)

	product, err := sdk.CreateProduct(ctx, storefront.ProductInput{
		Name:        "Green Tea",
		Description: "Loose leaf sencha",
		CategoryID:  category.ID,
		Stock:       5,
		Price:       3.5,
	})
	require.NoError(t, err)
	assert.Equal(t, category.ID, product.CategoryID, "the populated category must round-trip")

	products, err := sdk.Products(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.Equal(t, "Green Tea", products[0].Name)

	// a referenced category refuses deletion
	err = sdk.DeleteCategory(ctx, category.ID)
	assert.Equal(t, http.StatusConflict, storefront.APIStatus(err))

	require.NoError(t, sdk.DeleteProduct(ctx, product.ID))
	require.NoError(t, sdk.DeleteCategory(ctx, category.ID))

	products, err = sdk.Products(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestCreateProductWithBadReference(t *testing.T) {
	server := newTestServer(t)
	sdk := newSDK(t, server)
	ctx := context.Background()

	require.NoError(t, sdk.Login(ctx, "admin", "secret123"))

	_, err := sdk.CreateProduct(ctx, storefront.ProductInput{
		Name:        "Orphan",
		Description: "Points nowhere",
		CategoryID:  "0189e7d2-0000-7000-8000-000000000000",
		Stock:       1,
		Price:       1,
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, storefront.APIStatus(err))

	// nothing was stored
	products, listErr := sdk.Products(ctx)
	require.NoError(t, listErr)
	assert.Empty(t, products)
}

func TestLogoutEndsSession(t *testing.T) {
	server := newTestServer(t)
	sdk := newSDK(t, server)
	ctx := context.Background()

	require.NoError(t, sdk.Login(ctx, "admin", "secret123"))
	require.NoError(t, sdk.Logout(ctx))

	// the refresh token was revoked server-side; rotation is refused
	err := sdk.Refresh(ctx)
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, storefront.APIStatus(err))

	// logout cleared the cookies, so catalog access is denied again
	_, err = sdk.Products(ctx)
	assert.Equal(t, http.StatusUnauthorized, storefront.APIStatus(err))
}

func TestRefreshRotation(t *testing.T) {
	server := newTestServer(t)
	sdk := newSDK(t, server)
	ctx := context.Background()

	require.NoError(t, sdk.Login(ctx, "admin", "secret123"))
	require.NoError(t, sdk.Refresh(ctx))

	// rotated cookies keep the session working
	_, err := sdk.Products(ctx)
	assert.NoError(t, err)
}

func TestLogoutWithoutCookie(t *testing.T) {
	server := newTestServer(t)

	response, err := http.Post(server.URL+"/api/auth/logout", "application/json", nil)
	require.NoError(t, err)
	defer response.Body.Close()

	require.Equal(t, http.StatusBadRequest, response.StatusCode)

	message, _ := decodeError(t, response)
	assert.Equal(t, "No refresh token provided", message)
}

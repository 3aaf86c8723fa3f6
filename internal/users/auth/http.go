// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/minimart/internal/platform/apperr"
	"github.com/taibuivan/minimart/internal/platform/constants"
	requestutil "github.com/taibuivan/minimart/internal/platform/request"
	"github.com/taibuivan/minimart/internal/platform/respond"
	"github.com/taibuivan/minimart/internal/platform/validate"
)

// # Handler Implementation

// Handler implements the HTTP layer for cookie-session authentication.
//
// Both session tokens travel exclusively in http-only cookies; no token ever
// appears in a response body, so browser scripts cannot read them.
type Handler struct {
	service       *Service
	secureCookies bool
}

// NewHandler constructs a new auth [Handler].
//
// secureCookies should be true in production so cookies are HTTPS-only.
func NewHandler(service *Service, secureCookies bool) *Handler {
	return &Handler{
		service:       service,
		secureCookies: secureCookies,
	}
}

// Routes returns a [chi.Router] configured with authentication endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	router.Post("/login", handler.login)
	router.Post("/logout", handler.logout)
	router.Post("/refresh", handler.refresh)
	router.Get("/me", handler.me)

	return router
}

// # Request Payloads

// loginInput carries the credentials of a login attempt.
type loginInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// # Auth Endpoints

/*
POST /api/auth/login.

Description: Authenticates a user and establishes a cookie session. On
success, both the access and refresh tokens are set as http-only cookies.

Request (Body):
  - { "username": "string", "password": "string" }

Response:
  - 200: User: Authenticated profile (tokens travel in cookies only)
  - 400: 400: ErrBadRequest: "User not found" / "Invalid password"
  - 400: 400: ErrInvalidJSON/Validation: Malformed payload
*/
func (handler *Handler) login(writer http.ResponseWriter, request *http.Request) {
	var input loginInput
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldUsername, input.Username).MaxLen(FieldUsername, input.Username, MaxCredentialLength)
	validator.Required(FieldPassword, input.Password).MaxLen(FieldPassword, input.Password, MaxCredentialLength)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	session, err := handler.service.Login(request.Context(), input.Username, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, map[string]interface{}{
		FieldMessage: "Login successful",
		FieldUser:    session.User,
	})
}

/*
POST /api/auth/logout.

Description: Revokes the refresh token and clears both session cookies.

Response:
  - 200: Message: Success
  - 400: 400: ErrBadRequest: "No refresh token provided"
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.BadRequest("No refresh token provided"))
		return
	}

	if err := handler.service.Logout(request.Context(), cookie.Value); err != nil {
		respond.Error(writer, request, err)
		return
	}

	handler.clearSessionCookies(writer)
	respond.Message(writer, "Logged out")
}

/*
POST /api/auth/refresh.

Description: Rotates the session using the refresh cookie. The presented
token is consumed; replaying it after a successful rotation fails.

Response:
  - 200: User: Profile of the refreshed session (new cookies set)
  - 400: 400: ErrBadRequest: "No refresh token provided"
  - 401: 401: ErrUnauthorized: "Invalid refresh token"
*/
func (handler *Handler) refresh(writer http.ResponseWriter, request *http.Request) {
	cookie, err := request.Cookie(constants.RefreshTokenCookieName)
	if err != nil || cookie.Value == "" {
		respond.Error(writer, request, apperr.BadRequest("No refresh token provided"))
		return
	}

	session, err := handler.service.Refresh(request.Context(), cookie.Value)
	if err != nil {
		// A rejected rotation leaves stale cookies behind; clear them so the
		// client falls back to a clean login.
		handler.clearSessionCookies(writer)
		respond.Error(writer, request, err)
		return
	}

	handler.setSessionCookies(writer, session)
	respond.OK(writer, map[string]interface{}{
		FieldMessage: "Session refreshed",
		FieldUser:    session.User,
	})
}

/*
GET /api/auth/me.

Description: Returns the profile claims of the active session.

Response:
  - 200: Claims: Active user identity
  - 401: 401: ErrUnauthorized: "Access denied"
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		"id":       claims.UserID,
		"username": claims.Username,
		"email":    claims.Email,
		"group":    claims.Group,
		"avatar":   claims.Avatar,
	})
}

// # Cookie Management

// setSessionCookies attaches both session tokens as http-only cookies.
//
// The cookies are scoped to the whole API surface so the access token
// travels with catalog requests, not only with /api/auth.
func (handler *Handler) setSessionCookies(writer http.ResponseWriter, session *LoginSession) {
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.AccessTokenCookieName,
		Value:    session.AccessToken,
		Path:     constants.AuthCookiePath,
		MaxAge:   int(handler.service.AccessTokenTTL() / time.Second),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.RefreshTokenCookieName,
		Value:    session.RefreshToken,
		Path:     constants.AuthCookiePath,
		MaxAge:   int(handler.service.RefreshTokenTTL() / time.Second),
		HttpOnly: true,
		Secure:   handler.secureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearSessionCookies expires both session cookies immediately.
func (handler *Handler) clearSessionCookies(writer http.ResponseWriter) {
	for _, name := range []string{constants.AccessTokenCookieName, constants.RefreshTokenCookieName} {
		http.SetCookie(writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     constants.AuthCookiePath,
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   handler.secureCookies,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

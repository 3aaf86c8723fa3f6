// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and session management layer.

It defines the core domain entities (User, RefreshTokenRecord) and the logic
for cookie-based authentication: credential checks, token issuance, rotation,
and revocation.

# Architecture

This layer is the "Truth" of the system for identity. Sessions are tracked
server-side: every refresh token the API hands out has a matching record, and
deleting the record is what makes a logout real.
*/
package auth

import "time"

// # Domain Entities

// User represents a registered member of the Minimart platform.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	Group        string    `json:"group"`
	Avatar       *string   `json:"avatar,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// RefreshTokenRecord is the server-side registration of an issued refresh token.
//
// The raw token never touches storage; records are keyed by its SHA-256 hash,
// so a storage leak cannot be replayed as a live session.
type RefreshTokenRecord struct {
	TokenHash string    `json:"-"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
	FieldUser     = "user"
	FieldMessage  = "message"
)

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByUsername retrieves a user by their unique username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity including the password hash
		  - error: ErrNotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		FindByID retrieves a user by their UUID.

		Parameters:
		  - context: context.Context
		  - id: string (UUIDv7)

		Returns:
		  - *User: Hydrated entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		Create persists a new user account.

		Parameters:
		  - context: context.Context
		  - user: *User (PasswordHash must already be set)

		Returns:
		  - error: Conflict on duplicate username/email, persistence failures
	*/
	Create(context context.Context, user *User) error
}

// # Refresh Token Data Access

// RefreshTokenRepository tracks issued refresh tokens server-side.
//
// A refresh token is only honored while its record exists; deleting the
// record (logout, rotation) invalidates the token immediately, regardless
// of the JWT's own expiry.
type RefreshTokenRepository interface {

	/*
		Save stores a refresh-token record with a bounded lifetime.

		Parameters:
		  - context: context.Context
		  - record: *RefreshTokenRecord
		  - ttl: time.Duration (storage-level expiry)

		Returns:
		  - error: Storage failures
	*/
	Save(context context.Context, record *RefreshTokenRecord, ttl time.Duration) error

	/*
		Find retrieves a record by the hash of the presented token.

		Parameters:
		  - context: context.Context
		  - tokenHash: string (SHA-256 hex)

		Returns:
		  - *RefreshTokenRecord: The live record
		  - error: apperr.NotFound if absent, revoked, or expired
	*/
	Find(context context.Context, tokenHash string) (*RefreshTokenRecord, error)

	/*
		Delete removes a record, revoking the matching refresh token.

		Deleting an absent record is not an error.

		Parameters:
		  - context: context.Context
		  - tokenHash: string

		Returns:
		  - error: Storage failures
	*/
	Delete(context context.Context, tokenHash string) error
}

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"

	"github.com/taibuivan/minimart/internal/platform/apperr"
	"github.com/taibuivan/minimart/internal/platform/dberr"
)

// # In-Memory Stores
//
// The memory repositories back unit tests and local development without
// external services.

// MemoryUserRepository implements [UserRepository] with a mutex-guarded map.
type MemoryUserRepository struct {
	mu         sync.RWMutex
	byID       map[string]*User
	byUsername map[string]string
}

// NewMemoryUserRepository constructs an empty in-memory user store.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{
		byID:       make(map[string]*User),
		byUsername: make(map[string]string),
	}
}

// FindByUsername returns the user registered under the given username.
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	id, ok := repository.byUsername[username]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *repository.byID[id]
	return &clone, nil
}

// FindByID returns the user with the given id.
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, ok := repository.byID[id]
	if !ok {
		return nil, dberr.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

// Create stores a new user account.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.byUsername[user.Username]; exists {
		return apperr.Conflict("Username is already taken")
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	clone := *user
	repository.byID[user.ID] = &clone
	repository.byUsername[user.Username] = user.ID
	return nil
}

// MemoryRefreshTokenRepository implements [RefreshTokenRepository] in memory.
//
// Expiry is enforced on read; Find treats an expired record as absent.
type MemoryRefreshTokenRepository struct {
	mu      sync.RWMutex
	records map[string]*RefreshTokenRecord
}

// NewMemoryRefreshTokenRepository constructs an empty in-memory token store.
func NewMemoryRefreshTokenRepository() *MemoryRefreshTokenRepository {
	return &MemoryRefreshTokenRepository{records: make(map[string]*RefreshTokenRecord)}
}

// Save stores a refresh-token record with the given lifetime.
func (repository *MemoryRefreshTokenRepository) Save(_ context.Context, record *RefreshTokenRecord, ttl time.Duration) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	clone := *record
	clone.ExpiresAt = time.Now().Add(ttl)
	repository.records[record.TokenHash] = &clone
	return nil
}

// Find returns the live record for a token hash.
func (repository *MemoryRefreshTokenRepository) Find(_ context.Context, tokenHash string) (*RefreshTokenRecord, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	record, ok := repository.records[tokenHash]
	if !ok || time.Now().After(record.ExpiresAt) {
		return nil, apperr.NotFound("Refresh token")
	}

	clone := *record
	return &clone, nil
}

// Delete removes a record, revoking the token.
func (repository *MemoryRefreshTokenRepository) Delete(_ context.Context, tokenHash string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	delete(repository.records, tokenHash)
	return nil
}

// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/taibuivan/minimart/internal/platform/apperr"
	"github.com/taibuivan/minimart/internal/platform/constants"
)

// RedisRefreshTokenRepository implements [RefreshTokenRepository] using Redis.
//
// Redis TTLs double as the storage-level expiry, so stale records clean
// themselves up without a reaper process.
type RedisRefreshTokenRepository struct {
	client *redis.Client
}

// NewRedisRefreshTokenRepository creates a Redis-backed refresh-token store.
func NewRedisRefreshTokenRepository(client *redis.Client) *RedisRefreshTokenRepository {
	return &RedisRefreshTokenRepository{client: client}
}

/*
Save stores a refresh-token record under its hash with the given TTL.

Parameters:
  - context: context.Context
  - record: *RefreshTokenRecord
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (repository *RedisRefreshTokenRepository) Save(context context.Context, record *RefreshTokenRecord, ttl time.Duration) error {

	// Use constants for key prefix
	key := constants.RedisPrefixRefreshToken + record.TokenHash

	// Store the owning user ID; expiry is carried by the key TTL
	if err := repository.client.Set(context, key, record.UserID, ttl).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_save_failed: %w", err)
	}

	return nil
}

/*
Find retrieves the record for a presented token hash.

Description: Returns apperr.NotFound if the record is absent or expired.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *RefreshTokenRecord: The live record
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisRefreshTokenRepository) Find(context context.Context, tokenHash string) (*RefreshTokenRecord, error) {

	// Use constants for key prefix
	key := constants.RedisPrefixRefreshToken + tokenHash

	userID, err := repository.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Refresh token")
		}
		return nil, fmt.Errorf("redis_refresh_token_find_failed: %w", err)
	}

	// Recover the remaining lifetime for the record view
	remaining, err := repository.client.TTL(context, key).Result()
	if err != nil {
		return nil, fmt.Errorf("redis_refresh_token_ttl_failed: %w", err)
	}

	return &RefreshTokenRecord{
		TokenHash: tokenHash,
		UserID:    userID,
		ExpiresAt: time.Now().Add(remaining),
	}, nil
}

/*
Delete removes the record from Redis, revoking the token.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisRefreshTokenRepository) Delete(context context.Context, tokenHash string) error {

	// Use constants for key prefix
	key := constants.RedisPrefixRefreshToken + tokenHash

	if err := repository.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_refresh_token_delete_failed: %w", err)
	}

	return nil
}

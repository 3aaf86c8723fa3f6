// Copyright (c) 2026 Minimart. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/minimart/internal/platform/apperr"
	"github.com/taibuivan/minimart/internal/platform/sec"
	"github.com/taibuivan/minimart/pkg/pointer"
	"github.com/taibuivan/minimart/pkg/uuid"
)

// # Contracts & Types

// TokenProvider defines the contract for generating and checking session tokens.
type TokenProvider interface {
	// GenerateAccessToken creates a signed JWT carrying the user's profile claims.
	GenerateAccessToken(input sec.AccessTokenInput, timeToLive time.Duration) (string, error)

	// GenerateRefreshToken creates a signed JWT carrying only the user identity.
	GenerateRefreshToken(userID string, timeToLive time.Duration) (string, error)

	// VerifyRefreshToken checks the signature and expiry of a refresh JWT.
	VerifyRefreshToken(token string) (*sec.RefreshClaims, error)
}

// Service implements the cookie-session authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to credential checks or
// token lifecycle logic must be reviewed before release.
type Service struct {
	users      UserRepository
	tokens     RefreshTokenRepository
	provider   TokenProvider
	accessTTL  time.Duration
	refreshTTL time.Duration
	logger     *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	users UserRepository,
	tokens RefreshTokenRepository,
	provider TokenProvider,
	accessTTL, refreshTTL time.Duration,
	logger *slog.Logger,
) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		provider:   provider,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		logger:     logger,
	}
}

// AccessTokenTTL exposes the configured access-token lifetime for cookie expiry.
func (service *Service) AccessTokenTTL() time.Duration { return service.accessTTL }

// RefreshTokenTTL exposes the configured refresh-token lifetime for cookie expiry.
func (service *Service) RefreshTokenTTL() time.Duration { return service.refreshTTL }

// # Authentication Flow

// LoginSession represents a successfully established user session.
type LoginSession struct {
	AccessToken           string
	RefreshToken          string
	RefreshTokenExpiresAt time.Time
	User                  *User
}

/*
Login validates user credentials and issues a fresh token pair.

Description: Verifies identity with a constant-time bcrypt comparison,
then registers the refresh token server-side before handing it out.
The error messages distinguish an unknown user from a wrong password;
this matches the API's public contract.

Parameters:
  - context: context.Context
  - username: string
  - password: string

Returns:
  - *LoginSession: Transport-ready session tokens and the user profile
  - error: BadRequest on bad credentials, internal failures otherwise
*/
func (service *Service) Login(context context.Context, username, password string) (*LoginSession, error) {
	user, err := service.users.FindByUsername(context, username)
	if err != nil {
		return nil, apperr.BadRequest("User not found")
	}

	// bcrypt comparison is constant-time to resist timing attacks
	if !sec.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperr.BadRequest("Invalid password")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("user_logged_in",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return session, nil
}

/*
Logout revokes the presented refresh token.

Description: Deletes the server-side record; the matching refresh cookie
becomes a dead token no matter how much JWT lifetime it has left. Revoking
an already-gone token succeeds, so logout is idempotent.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - error: Storage failures
*/
func (service *Service) Logout(context context.Context, refreshToken string) error {
	tokenHash := sec.HashToken(refreshToken)

	if err := service.tokens.Delete(context, tokenHash); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}

	service.logger.Info("user_logged_out")
	return nil
}

// # Session Management

/*
Refresh implements the refresh-token rotation mechanism.

Description: Verifies the token signature AND the server-side record, then
revokes the old record before issuing a rotated pair. A replayed token whose
record was already consumed is rejected even if its signature is valid.

Parameters:
  - context: context.Context
  - refreshToken: string

Returns:
  - *LoginSession: New session credentials
  - error: Unauthorized on invalid/replayed tokens, storage failures otherwise
*/
func (service *Service) Refresh(context context.Context, refreshToken string) (*LoginSession, error) {
	claims, err := service.provider.VerifyRefreshToken(refreshToken)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	tokenHash := sec.HashToken(refreshToken)
	record, err := service.tokens.Find(context, tokenHash)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	// Rotation: consume the old record to prevent replay
	if err := service.tokens.Delete(context, tokenHash); err != nil {
		return nil, fmt.Errorf("auth_service_rotation_revoke_failed: %w", err)
	}

	// The record is authoritative for ownership; the claim is a cross-check
	if record.UserID != claims.UserID {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	user, err := service.users.FindByID(context, record.UserID)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid refresh token")
	}

	session, err := service.issueSession(context, user)
	if err != nil {
		return nil, err
	}

	service.logger.Info("session_refreshed", slog.String("user_id", user.ID))
	return session, nil
}

// # Account Management

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Group    string
}

/*
Register validates, hashes, and persists a brand new user account.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *User: Created entity
  - error: Conflict (if the username exists) or storage errors
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*User, error) {
	_, err := service.users.FindByUsername(context, input.Username)
	if err == nil {
		return nil, apperr.Conflict("Username is already taken")
	}

	// Prevent storing plain-text passwords. Default cost balances security
	// against CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	group := input.Group
	if group == "" {
		group = DefaultUserGroup
	}

	user := &User{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: hashedPassword,
		Group:        group,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}

	service.logger.Info("user_registered", slog.String("user_id", user.ID))
	return user, nil
}

// # Internal Helpers

// issueSession generates a token pair and registers the refresh token.
func (service *Service) issueSession(context context.Context, user *User) (*LoginSession, error) {
	accessToken, err := service.provider.GenerateAccessToken(sec.AccessTokenInput{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		Group:    user.Group,
		Avatar:   pointer.Val(user.Avatar),
	}, service.accessTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refreshToken, err := service.provider.GenerateRefreshToken(user.ID, service.refreshTTL)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	expiresAt := time.Now().Add(service.refreshTTL)
	record := &RefreshTokenRecord{
		TokenHash: sec.HashToken(refreshToken),
		UserID:    user.ID,
		ExpiresAt: expiresAt,
	}

	if err := service.tokens.Save(context, record, service.refreshTTL); err != nil {
		return nil, fmt.Errorf("auth_service_session_save_failed: %w", err)
	}

	return &LoginSession{
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: expiresAt,
		User:                  user,
	}, nil
}

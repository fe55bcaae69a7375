// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/dberr"
	"github.com/taibuivan/yomira-board/internal/platform/metrics"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// # Contracts & Types

// TokenCodec defines the contract for minting and checking bearer tokens.
// It is satisfied by [*sec.TokenCodec].
type TokenCodec interface {
	Issue(subject sec.TokenSubject) (string, error)
	Verify(token string) (*sec.Claims, error)
	TTL() time.Duration
}

// invalidCredentialsDetail is shared by both login failure paths.
const invalidCredentialsDetail = "Check your user name or password"

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// login or token validation logic must be reviewed by the security team.
type Service struct {
	userRepository UserRepository
	hasher         sec.PasswordHasher
	codec          TokenCodec
	metrics        *metrics.Metrics
}

// NewService constructs a new [Service] with necessary dependencies.
// m may be nil.
func NewService(
	userRepo UserRepository,
	hasher sec.PasswordHasher,
	codec TokenCodec,
	m *metrics.Metrics,
) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		codec:          codec,
		metrics:        m,
	}
}

// TokenTTL is reported to clients as expiresIn.
func (service *Service) TokenTTL() time.Duration {
	return service.codec.TTL()
}

// # Registration Flow

/*
Register checks login-name uniqueness, hashes the password and persists a USER account.

Parameters:
  - context: context.Context
  - userName: string (exact match, not normalized)
  - rawPassword: string

Returns:
  - *User: Created entity with its assigned ID
  - err: Conflict wrapping [*DuplicateLoginError], or storage errors
*/
func (service *Service) Register(context context.Context, userName, rawPassword string) (*User, error) {

	// Verify login name uniqueness. Return a client-safe Conflict err.
	_, err := service.userRepository.FindByUserName(context, userName)
	switch {
	case err == nil:
		return nil, duplicateLogin(userName)
	case !dberr.IsNotFound(err):
		return nil, fmt.Errorf("auth_service_register_lookup_failed: %w", err)
	}

	hashedPassword, err := service.hasher.Hash(rawPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	user := &User{
		UserName:     userName,
		PasswordHash: hashedPassword,
		Role:         sec.RoleUser,
	}

	// The unique constraint also covers races and soft-deleted accounts.
	if err := service.userRepository.Create(context, user); err != nil {
		if dberr.IsUniqueViolation(err) {
			return nil, duplicateLogin(userName)
		}
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_user_registered", slog.Int64("user_id", user.ID))
	return user, nil
}

func duplicateLogin(userName string) error {
	return apperr.Conflict("User already exists: " + userName).WithCause(&DuplicateLoginError{LoginName: userName})
}

// # Authentication Flow

/*
Login validates credentials and returns the stored account unchanged.

Description: An unknown login name and a wrong password produce the same
error, so callers cannot probe which accounts exist.

Parameters:
  - context: context.Context
  - userName: string
  - rawPassword: string

Returns:
  - *User: Authenticated account
  - err: Unauthorized wrapping [ErrInvalidCredentials], or storage errors
*/
func (service *Service) Login(context context.Context, userName, rawPassword string) (*User, error) {
	user, err := service.userRepository.FindByUserName(context, userName)
	if err != nil {
		if dberr.IsNotFound(err) {
			return nil, invalidCredentials()
		}
		return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
	}

	if !service.hasher.Verify(rawPassword, user.PasswordHash) {
		return nil, invalidCredentials()
	}

	return user, nil
}

func invalidCredentials() error {
	return apperr.Unauthorized(invalidCredentialsDetail).WithCause(ErrInvalidCredentials)
}

// GenerateToken mints a bearer token for an authenticated user.
func (service *Service) GenerateToken(user *User) (string, error) {
	token, err := service.codec.Issue(user.TokenSubject())
	if err != nil {
		return "", fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}
	return token, nil
}

/*
Logout acknowledges a logout request.

Tokens are stateless and there is no revocation list: a previously issued
token stays valid until it expires. Clients must discard it.
*/
func (service *Service) Logout(context context.Context, token string) {
	subject := ""
	if claims, err := service.codec.Verify(token); err == nil {
		subject = claims.Subject
	}

	ctxutil.GetLogger(context).InfoContext(context, "auth_logout_requested",
		slog.String("subject", subject),
	)
}

// # Token Validation

/*
ValidateToken verifies token and re-reads its account from the store.

Description: The role carried by the token is overlaid on the loaded account,
so a role change only takes effect once the user logs in again. Every failure
is logged and counted, and reported as a nil user.

Parameters:
  - context: context.Context
  - token: string

Returns:
  - *User: The account with the token's role, or nil
*/
func (service *Service) ValidateToken(context context.Context, token string) *User {
	logger := ctxutil.GetLogger(context)

	claims, err := service.codec.Verify(token)
	if err != nil {
		kind := sec.TokenErrorKindOf(err)
		service.metrics.ObserveTokenValidation(string(kind))
		logger.InfoContext(context, "auth_token_rejected",
			slog.String("kind", string(kind)),
			slog.String("error", err.Error()),
		)
		return nil
	}

	user, err := service.userRepository.FindByID(context, claims.UserID)
	if err != nil {
		if dberr.IsNotFound(err) {
			service.metrics.ObserveTokenValidation(metrics.OutcomeUnknownUser)
			logger.InfoContext(context, "auth_token_unknown_user", slog.Int64("token_user_id", claims.UserID))
			return nil
		}
		service.metrics.ObserveTokenValidation(metrics.OutcomeStoreError)
		logger.ErrorContext(context, "auth_token_user_lookup_failed",
			slog.Int64("token_user_id", claims.UserID),
			slog.Any("error", err),
		)
		return nil
	}

	// Token snapshot wins for this request.
	if role, ok := sec.ParseRole(claims.Role().String()); ok {
		user.Role = role
	}

	service.metrics.ObserveTokenValidation(metrics.OutcomeOK)
	return user
}

// ResolvePrincipal adapts [Service.ValidateToken] to the request gate.
func (service *Service) ResolvePrincipal(context context.Context, token string) *sec.Principal {
	user := service.ValidateToken(context, token)
	if user == nil {
		return nil
	}
	return user.Principal()
}

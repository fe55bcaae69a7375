// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package sec provides the security primitives of the board API.

It owns token issuance and verification, password hashing, the closed role set
and the per-request [Principal] projection.

# Token Format

Tokens are compact JWS strings signed with HMAC-SHA256 over a single shared
secret. The payload carries:

  - sub: the login name
  - userId: the numeric account identifier
  - roles: [{"authority": "<ROLE>"}]
  - iat / exp: issue time and expiry (iat + TTL)

A token is valid strictly before its expiry instant.
*/
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/taibuivan/yomira-board/internal/platform/constants"
)

// # Claims

// Authority is a single granted authority as it travels inside the token.
type Authority struct {
	Authority string `json:"authority"`
}

// Claims is the decoded token payload.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64       `json:"userId"`
	Roles  []Authority `json:"roles"`
}

// Role returns the first role in the claims, or "" when the list is empty.
func (c *Claims) Role() Role {
	if len(c.Roles) == 0 {
		return ""
	}
	return Role(c.Roles[0].Authority)
}

// TokenSubject is the minimal identity needed to mint a token.
type TokenSubject struct {
	ID        int64
	LoginName string
	Role      Role
}

// # Verification Failures

// TokenErrorKind classifies why a token was rejected.
type TokenErrorKind string

const (
	TokenExpired      TokenErrorKind = "expired"
	TokenMalformed    TokenErrorKind = "malformed"
	TokenUnsupported  TokenErrorKind = "unsupported"
	TokenBadSignature TokenErrorKind = "bad_signature"
	TokenInvalidInput TokenErrorKind = "invalid_input"
)

// TokenError is returned by [TokenCodec.Verify] for every rejected token.
type TokenError struct {
	Kind TokenErrorKind
	Err  error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return "token " + string(e.Kind)
	}
	return fmt.Sprintf("token %s: %v", e.Kind, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// TokenErrorKindOf returns the kind of err, or "" when err is not a [*TokenError].
func TokenErrorKindOf(err error) TokenErrorKind {
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.Kind
	}
	return ""
}

var (
	errEmptyToken     = errors.New("empty token")
	errUnexpectedAlg  = errors.New("unexpected signing method")
	errMissingUserID  = errors.New("missing userId claim")
	errMissingSubject = errors.New("missing subject claim")
	errUnknownRole    = errors.New("unknown role claim")
)

// # Codec

// TokenCodec issues and verifies HS256 bearer tokens.
//
// The codec holds only its immutable secret, TTL and clock, so a single
// instance is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// CodecOption customizes a [TokenCodec].
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for iat/exp and expiry checks.
func WithClock(now func() time.Time) CodecOption {
	return func(codec *TokenCodec) {
		if now != nil {
			codec.now = now
		}
	}
}

// NewTokenCodec builds a codec from the configured secret and TTL.
//
// There is no fallback secret: a key shorter than 32 bytes or a non-positive
// TTL is a configuration error.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) < constants.MinSecretLength {
		return nil, fmt.Errorf("sec: jwt secret must be at least %d bytes, got %d", constants.MinSecretLength, len(secret))
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: jwt ttl must be positive, got %s", ttl)
	}

	key := make([]byte, len(secret))
	copy(key, secret)

	codec := &TokenCodec{secret: key, ttl: ttl, now: time.Now}
	for _, opt := range opts {
		opt(codec)
	}
	return codec, nil
}

// TTL returns the configured token lifetime.
func (codec *TokenCodec) TTL() time.Duration {
	return codec.ttl
}

// Issue signs a token for subject valid for the configured TTL.
func (codec *TokenCodec) Issue(subject TokenSubject) (string, error) {
	if subject.ID == 0 || subject.LoginName == "" || !subject.Role.Valid() {
		return "", fmt.Errorf("sec: cannot issue token for incomplete subject %q", subject.LoginName)
	}

	// JWT NumericDate has second precision, so truncate to keep iat+TTL exact.
	issuedAt := codec.now().Truncate(time.Second)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject.LoginName,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(codec.ttl)),
		},
		UserID: subject.ID,
		Roles:  []Authority{{Authority: subject.Role.String()}},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses tokenString, checks the signature and expiry, and returns its claims.
//
// Every failure is a [*TokenError]. Verify never panics on untrusted input.
func (codec *TokenCodec) Verify(tokenString string) (claims *Claims, err error) {
	if tokenString == "" {
		return nil, &TokenError{Kind: TokenInvalidInput, Err: errEmptyToken}
	}

	defer func() {
		if r := recover(); r != nil {
			claims = nil
			err = &TokenError{Kind: TokenMalformed, Err: fmt.Errorf("panic during parse: %v", r)}
		}
	}()

	parsed := &Claims{}
	_, parseErr := jwt.ParseWithClaims(tokenString, parsed, codec.keyFunc,
		jwt.WithTimeFunc(codec.now),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
	)
	if parseErr != nil {
		return nil, classify(parseErr)
	}

	if parsed.UserID == 0 {
		return nil, &TokenError{Kind: TokenInvalidInput, Err: errMissingUserID}
	}
	if parsed.Subject == "" {
		return nil, &TokenError{Kind: TokenInvalidInput, Err: errMissingSubject}
	}
	for _, granted := range parsed.Roles {
		if _, ok := ParseRole(granted.Authority); !ok {
			return nil, &TokenError{Kind: TokenInvalidInput, Err: errUnknownRole}
		}
	}

	return parsed, nil
}

func (codec *TokenCodec) keyFunc(token *jwt.Token) (any, error) {
	if token.Method != jwt.SigningMethodHS256 {
		return nil, fmt.Errorf("%w: %v", errUnexpectedAlg, token.Header["alg"])
	}
	return codec.secret, nil
}

// classify maps jwt/v5 parse errors onto the closed set of failure kinds.
func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Kind: TokenExpired, Err: err}
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Kind: TokenBadSignature, Err: err}
	case errors.Is(err, jwt.ErrTokenUnverifiable), errors.Is(err, errUnexpectedAlg):
		return &TokenError{Kind: TokenUnsupported, Err: err}
	case errors.Is(err, jwt.ErrTokenMalformed):
		return &TokenError{Kind: TokenMalformed, Err: err}
	default:
		// not-yet-valid, used-before-issued and other claim failures
		return &TokenError{Kind: TokenInvalidInput, Err: err}
	}
}

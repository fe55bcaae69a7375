// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across layers of the board API.

Anything an operator may need to tune lives in config instead; what remains
here is protocol layout (headers, bearer scheme, JSON keys), server timing,
the per-IP rate limit and the Redis key taxonomy.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "yomira-board"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 120 * time.Second
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout bounds a whole request, and every SQL statement.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is the grace period for in-flight requests.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the sustained requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the bucket size per IP.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often idle IP buckets are swept.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is the idle time after which an IP bucket is dropped.
	RateLimitClientTTL = 3 * time.Minute
)

// # Authentication

const (
	// BearerPrefix is matched case-sensitively, including the single trailing space.
	BearerPrefix = "Bearer "

	// TokenType is echoed back to clients in the login payload.
	TokenType = "Bearer"

	// MinSecretLength is the minimum HMAC-SHA256 key size in bytes.
	MinSecretLength = 32
)

// # HTTP Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderRetryAfter    = "Retry-After"
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldChecks  = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixPrincipal keys the cached user rows used to re-hydrate token subjects.
	RedisPrefixPrincipal = "auth:principal:"
)

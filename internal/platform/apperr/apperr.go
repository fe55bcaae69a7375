// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for the board API.

It provides a rich error type that bridges the gap between low-level Domain/Storage
errors and high-level HTTP responses.

Architecture:

  - AppError: A struct containing a machine-readable Code, a short title and a
    client-safe detail sentence.
  - Mapping: Explicit mapping from AppError to standard HTTP Status Codes.

Every error that leaves the service layer should be wrapped as an [AppError] to ensure
consistent API responses of the form {"error": ..., "details": ...}.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the board API.
//
// # Security
//
// The Cause field is for server-side logging only and is never sent to clients
// to avoid leaking internal implementation details (e.g., SQL queries).
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "NOT_FOUND", "CONFLICT").
	Code string `json:"-"`
	// Message is the short, human-readable title of the failure.
	Message string `json:"error"`
	// Detail explains the failure in a client-safe sentence.
	Detail string `json:"details"`
	// HTTPStatus is the HTTP response status code.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for server-side logging only.
	Cause error `json:"-"`
}

// Error implements the error interface. It returns the client-safe message.
func (e *AppError) Error() string {
	if e.Detail == "" {
		return e.Message
	}
	return e.Message + ": " + e.Detail
}

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause returns a copy of e carrying cause for logging and errors.Is checks.
func (e *AppError) WithCause(cause error) *AppError {
	clone := *e
	clone.Cause = cause
	return &clone
}

// # Client Errors (4xx)

// BadRequest creates a 400 [AppError] for missing or malformed input.
func BadRequest(detail string) *AppError {
	return &AppError{
		Code:       "BAD_REQUEST",
		Message:    "Bad request",
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NotFound creates a 404 [AppError] for a named resource.
//
// Example:
//
//	apperr.NotFound("Board") // details: "Board not found"
func NotFound(resource string) *AppError {
	return &AppError{
		Code:       "NOT_FOUND",
		Message:    "Not found",
		Detail:     resource + " not found",
		HTTPStatus: http.StatusNotFound,
	}
}

// Unauthorized creates a 401 [AppError].
func Unauthorized(detail string) *AppError {
	return &AppError{
		Code:       "UNAUTHORIZED",
		Message:    "Authentication failed",
		Detail:     detail,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Forbidden creates a 403 [AppError].
func Forbidden(detail string) *AppError {
	return &AppError{
		Code:       "FORBIDDEN",
		Message:    "Access denied",
		Detail:     detail,
		HTTPStatus: http.StatusForbidden,
	}
}

// Conflict creates a 409 [AppError] for duplicate or unique-constraint violations.
func Conflict(detail string) *AppError {
	return &AppError{
		Code:       "CONFLICT",
		Message:    "Conflict",
		Detail:     detail,
		HTTPStatus: http.StatusConflict,
	}
}

// ValidationError creates a 400 [AppError] summarising field-level failures.
func ValidationError(detail string) *AppError {
	return &AppError{
		Code:       "VALIDATION_ERROR",
		Message:    "Bad request",
		Detail:     detail,
		HTTPStatus: http.StatusBadRequest,
	}
}

// RateLimited creates a 429 [AppError].
func RateLimited() *AppError {
	return &AppError{
		Code:       "RATE_LIMITED",
		Message:    "Too many requests",
		Detail:     "Rate limit exceeded",
		HTTPStatus: http.StatusTooManyRequests,
	}
}

// # Server Errors (5xx)

// Internal creates a 500 [AppError] wrapping an unexpected server-side error.
// The cause is stored for logging but is never sent to the client.
func Internal(cause error) *AppError {
	return &AppError{
		Code:       "INTERNAL_ERROR",
		Message:    "Internal server error",
		Detail:     "An unexpected error occurred",
		HTTPStatus: http.StatusInternalServerError,
		Cause:      cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

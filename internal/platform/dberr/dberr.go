// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
)

// ErrNotFound is a standard error returned when a queried row doesn't exist.
var ErrNotFound = apperr.NotFound("Resource")

// IsNotFound reports whether err means "no live row".
func IsNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	ae := apperr.As(err)
	return ae != nil && ae.Code == "NOT_FOUND"
}

// IsUniqueViolation reports whether err is a Postgres unique_violation (SQLSTATE 23505).
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// ConstraintName returns the violated constraint, or "" when err is not a Postgres error.
func ConstraintName(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// resource names the entity in the NotFound detail (e.g. "Board").
func Wrap(err error, resource string) error {
	if err == nil {
		return nil
	}

	// 1. Already classified
	if apperr.IsAppError(err) {
		return err
	}

	// 2. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource).WithCause(err)
	}

	// 3. Constraint violations
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(resource + " already exists").WithCause(err)
		case pgerrcode.ForeignKeyViolation:
			return apperr.NotFound(resource).WithCause(err)
		}
	}

	// 4. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

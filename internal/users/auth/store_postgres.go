// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// # User Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

const userColumns = `id, user_name, password_hash, role, created_at, updated_at`

/*
Create persists a new user record into the users table.

Description: The database assigns the ID and timestamps, which are written
back into user. A taken login name surfaces as a unique violation (23505).

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	const query = `
		INSERT INTO users (user_name, password_hash, role)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := repository.pool.QueryRow(context, query,
		user.UserName,
		user.PasswordHash,
		string(user.Role),
	).Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		return fmt.Errorf("postgres_user_repo_create_failed: %w", err)
	}

	return nil
}

/*
FindByUserName retrieves a live user record by its exact login name.

Parameters:
  - context: context.Context
  - userName: string

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUserName(context context.Context, userName string) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_name = $1 AND deleted_at IS NULL`

	user, err := scanUser(repository.pool.QueryRow(context, query, userName))
	if err != nil {
		return nil, wrapLookupError(err, "postgres_user_repo_find_by_user_name_failed")
	}
	return user, nil
}

/*
FindByID retrieves a live user record by its primary key.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *User: Hydrated account entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByID(context context.Context, id int64) (*User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND deleted_at IS NULL`

	user, err := scanUser(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, wrapLookupError(err, "postgres_user_repo_find_by_id_failed")
	}
	return user, nil
}

/*
UpdatePassword replaces the stored hash of a live account.

Parameters:
  - context: context.Context
  - userID: int64
  - newHash: string

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) UpdatePassword(context context.Context, userID int64, newHash string) error {
	const query = `
		UPDATE users SET password_hash = $2, updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query, userID, newHash)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_update_password_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

/*
SoftDelete stamps deleted_at on a live account.

The row keeps its login name, so the name cannot be registered again.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) SoftDelete(context context.Context, id int64) error {
	const query = `
		UPDATE users SET deleted_at = now(), updated_at = now()
		WHERE id = $1 AND deleted_at IS NULL`

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres_user_repo_soft_delete_failed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}
	return nil
}

// scanUser hydrates a [User] from a single row.
func scanUser(row pgx.Row) (*User, error) {
	var (
		user User
		role string
	)

	err := row.Scan(&user.ID, &user.UserName, &user.PasswordHash, &role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}

	parsed, ok := sec.ParseRole(role)
	if !ok {
		return nil, fmt.Errorf("postgres_user_repo_unknown_role: %q", role)
	}
	user.Role = parsed

	return &user, nil
}

func wrapLookupError(err error, action string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("User")
	}
	return fmt.Errorf("%s: %w", action, err)
}

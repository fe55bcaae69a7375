// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package board

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/database/schema"
	"github.com/taibuivan/yomira-board/internal/platform/dberr"
)

const resourceName = "Board"

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

var (
	boardCols = schema.BoardPost
	userCols  = schema.BoardUser
)

/*
List returns one page of live boards, newest first.

Parameters:
  - context: context.Context
  - limit: int
  - offset: int

Returns:
  - []Summary: Page items (never nil)
  - int: Total live boards
  - error: Database errors
*/
func (repository *PostgresRepository) List(context context.Context, limit, offset int) ([]Summary, int, error) {
	return repository.listWhere(context, "", limit, offset)
}

// ListByUser returns one page of a single author's live boards.
func (repository *PostgresRepository) ListByUser(context context.Context, userID int64, limit, offset int) ([]Summary, int, error) {
	return repository.listWhere(context, fmt.Sprintf("AND %s = $1", boardCols.UserID), limit, offset, userID)
}

// listWhere runs the count and page queries. filter binds its own args from $1;
// LIMIT and OFFSET follow them.
func (repository *PostgresRepository) listWhere(context context.Context, filter string, limit, offset int, args ...any) ([]Summary, int, error) {
	countQuery := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = FALSE %s`,
		boardCols.Table, boardCols.IsDeleted, filter)

	var total int
	if err := repository.pool.QueryRow(context, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	pageQuery := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = FALSE %s
		ORDER BY %s DESC, %s DESC
		LIMIT $%d OFFSET $%d`,
		boardCols.ID, boardCols.UserID, boardCols.Title, boardCols.View, boardCols.CreatedAt,
		boardCols.Table,
		boardCols.IsDeleted, filter,
		boardCols.CreatedAt, boardCols.ID,
		len(args)+1, len(args)+2,
	)

	rows, err := repository.pool.Query(context, pageQuery, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	items := make([]Summary, 0)
	for rows.Next() {
		var item Summary
		if err := rows.Scan(&item.ID, &item.UserID, &item.Title, &item.View, &item.CreatedAt); err != nil {
			return nil, 0, dberr.Wrap(err, resourceName)
		}
		items = append(items, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, dberr.Wrap(err, resourceName)
	}

	return items, total, nil
}

/*
FindByID retrieves a live board joined with its author.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Board: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Board, error) {
	query := fmt.Sprintf(`
		SELECT p.%s, p.%s, usr.%s, p.%s, p.%s, p.%s, p.%s, p.%s
		FROM %s p
		JOIN %s usr ON usr.%s = p.%s
		WHERE p.%s = $1 AND p.%s = FALSE`,
		boardCols.ID, boardCols.UserID, userCols.UserName, boardCols.Title, boardCols.Content, boardCols.View, boardCols.CreatedAt, boardCols.UpdatedAt,
		boardCols.Table,
		userCols.Table, userCols.ID, boardCols.UserID,
		boardCols.ID, boardCols.IsDeleted,
	)

	board := &Board{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&board.ID, &board.UserID, &board.UserName, &board.Title, &board.Content,
		&board.View, &board.CreatedAt, &board.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return board, nil
}

// IncrementView bumps the view counter in place.
func (repository *PostgresRepository) IncrementView(context context.Context, id int64) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = %s + 1 WHERE %s = $1 AND %s = FALSE`,
		boardCols.Table, boardCols.View, boardCols.View, boardCols.ID, boardCols.IsDeleted)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

/*
Create inserts a new board.

Description: ID, view and timestamps are assigned by the database and
written back into board.

Parameters:
  - context: context.Context
  - board: *Board

Returns:
  - error: apperr.NotFound when the author no longer exists, or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, board *Board) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s, %s`,
		boardCols.Table, boardCols.UserID, boardCols.Title, boardCols.Content,
		boardCols.ID, boardCols.View, boardCols.CreatedAt, boardCols.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, board.UserID, board.Title, board.Content).
		Scan(&board.ID, &board.View, &board.CreatedAt, &board.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "User")
	}
	return nil
}

// Update writes title and content back and refreshes board.UpdatedAt.
func (repository *PostgresRepository) Update(context context.Context, board *Board) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = $3, %s = now()
		WHERE %s = $1 AND %s = FALSE
		RETURNING %s`,
		boardCols.Table, boardCols.Title, boardCols.Content, boardCols.UpdatedAt,
		boardCols.ID, boardCols.IsDeleted,
		boardCols.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, board.ID, board.Title, board.Content).Scan(&board.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	return nil
}

// SoftDelete flags a live board as deleted.
func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = now(), %s = now()
		WHERE %s = $1 AND %s = FALSE`,
		boardCols.Table, boardCols.IsDeleted, boardCols.DeletedAt, boardCols.UpdatedAt,
		boardCols.ID, boardCols.IsDeleted,
	)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceName)
	}
	return nil
}

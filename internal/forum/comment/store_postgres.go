// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/database/schema"
	"github.com/taibuivan/yomira-board/internal/platform/dberr"
)

const resourceName = "Comment"

var cols = schema.BoardComment

// selectColumns lists the columns scanned by [scanComment], in order.
var selectColumns = fmt.Sprintf(`%s, %s, %s, %s, %s, %s, %s, %s`,
	cols.ID, cols.UserID, cols.BoardID, cols.Content,
	cols.CreatedAt, cols.UpdatedAt, cols.IsDeleted, cols.DeletedAt,
)

// PostgresRepository implements [Repository] using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of [Repository].
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

func (repository *PostgresRepository) ListByBoard(context context.Context, boardID int64) ([]Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = FALSE ORDER BY %s ASC, %s ASC`,
		selectColumns, cols.Table, cols.BoardID, cols.IsDeleted, cols.CreatedAt, cols.ID)
	return repository.list(context, query, boardID)
}

func (repository *PostgresRepository) ListByUser(context context.Context, userID int64) ([]Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = FALSE ORDER BY %s DESC, %s DESC`,
		selectColumns, cols.Table, cols.UserID, cols.IsDeleted, cols.CreatedAt, cols.ID)
	return repository.list(context, query, userID)
}

func (repository *PostgresRepository) list(context context.Context, query string, args ...any) ([]Comment, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	defer rows.Close()

	comments := make([]Comment, 0)
	for rows.Next() {
		comment, err := scanComment(rows)
		if err != nil {
			return nil, dberr.Wrap(err, resourceName)
		}
		comments = append(comments, *comment)
	}
	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}

	return comments, nil
}

func (repository *PostgresRepository) FindByID(context context.Context, id int64) (*Comment, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = FALSE`,
		selectColumns, cols.Table, cols.ID, cols.IsDeleted)

	comment, err := scanComment(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, resourceName)
	}
	return comment, nil
}

/*
Create inserts a new comment.

Returns:
  - error: apperr.NotFound when the board or author row is gone, or database errors
*/
func (repository *PostgresRepository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s)
		VALUES ($1, $2, $3)
		RETURNING %s, %s, %s`,
		cols.Table, cols.UserID, cols.BoardID, cols.Content,
		cols.ID, cols.CreatedAt, cols.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, comment.UserID, comment.BoardID, comment.Content).
		Scan(&comment.ID, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "Board")
	}
	return nil
}

func (repository *PostgresRepository) UpdateContent(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = $2, %s = now()
		WHERE %s = $1 AND %s = FALSE
		RETURNING %s`,
		cols.Table, cols.Content, cols.UpdatedAt,
		cols.ID, cols.IsDeleted,
		cols.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query, comment.ID, comment.Content).Scan(&comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, resourceName)
	}
	return nil
}

func (repository *PostgresRepository) SoftDelete(context context.Context, id int64) error {
	query := fmt.Sprintf(`
		UPDATE %s SET %s = TRUE, %s = now(), %s = now()
		WHERE %s = $1 AND %s = FALSE`,
		cols.Table, cols.IsDeleted, cols.DeletedAt, cols.UpdatedAt,
		cols.ID, cols.IsDeleted,
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

func scanComment(row pgx.Row) (*Comment, error) {
	var comment Comment
	err := row.Scan(
		&comment.ID, &comment.UserID, &comment.BoardID, &comment.Content,
		&comment.CreatedAt, &comment.UpdatedAt, &comment.IsDeleted, &comment.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

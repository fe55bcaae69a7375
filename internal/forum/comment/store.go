// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import "context"

// Repository defines the data access contract for comments.
type Repository interface {
	// ListByBoard returns the live comments of a board, oldest first.
	ListByBoard(context context.Context, boardID int64) ([]Comment, error)

	// ListByUser returns the live comments of an author, newest first.
	ListByUser(context context.Context, userID int64) ([]Comment, error)

	// FindByID returns a live comment or apperr.NotFound.
	FindByID(context context.Context, id int64) (*Comment, error)

	// Create persists a new comment and assigns its ID and timestamps.
	Create(context context.Context, comment *Comment) error

	// UpdateContent rewrites the content and refreshes UpdatedAt.
	UpdateContent(context context.Context, comment *Comment) error

	// SoftDelete flags the comment as deleted.
	SoftDelete(context context.Context, id int64) error
}

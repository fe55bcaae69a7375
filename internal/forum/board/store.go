// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package board

import "context"

// Repository defines the data access contract for boards.
//
// Every read ignores soft-deleted rows and reports them as apperr.NotFound.
type Repository interface {

	// List returns one page of live boards, newest first, and the live total.
	List(context context.Context, limit, offset int) ([]Summary, int, error)

	// ListByUser is [Repository.List] restricted to one author.
	ListByUser(context context.Context, userID int64, limit, offset int) ([]Summary, int, error)

	// FindByID returns a live board together with its author's login name.
	FindByID(context context.Context, id int64) (*Board, error)

	// IncrementView adds one to the view counter of a live board.
	IncrementView(context context.Context, id int64) error

	// Create persists a new board and assigns its ID and timestamps.
	Create(context context.Context, board *Board) error

	// Update writes title and content and refreshes UpdatedAt.
	Update(context context.Context, board *Board) error

	// SoftDelete flags the board as deleted.
	SoftDelete(context context.Context, id int64) error
}

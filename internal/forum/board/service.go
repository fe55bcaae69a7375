// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package board

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/policy"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/platform/validate"
	"github.com/taibuivan/yomira-board/pkg/pagination"
	"github.com/taibuivan/yomira-board/pkg/pointer"
	"github.com/taibuivan/yomira-board/pkg/textnorm"
)

// Service implements board use cases.
type Service struct {
	repository Repository
}

// NewService constructs a new [Service].
func NewService(repository Repository) *Service {
	return &Service{repository: repository}
}

// # Queries

// List returns one page of live boards, newest first.
func (service *Service) List(context context.Context, page pagination.Params) ([]Summary, pagination.Meta, error) {
	items, total, err := service.repository.List(context, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(page, total), nil
}

// ListByUser returns one page of a single author's live boards.
func (service *Service) ListByUser(context context.Context, userID int64, page pagination.Params) ([]Summary, pagination.Meta, error) {
	items, total, err := service.repository.ListByUser(context, userID, page.Limit, page.Offset())
	if err != nil {
		return nil, pagination.Meta{}, err
	}
	return items, pagination.NewMeta(page, total), nil
}

/*
View counts one view and returns the board.

Parameters:
  - context: context.Context
  - id: int64

Returns:
  - *Board: The board with the view already counted
  - error: apperr.NotFound for missing or deleted boards
*/
func (service *Service) View(context context.Context, id int64) (*Board, error) {
	if err := service.repository.IncrementView(context, id); err != nil {
		return nil, err
	}
	return service.repository.FindByID(context, id)
}

// Find returns a live board without counting a view.
func (service *Service) Find(context context.Context, id int64) (*Board, error) {
	return service.repository.FindByID(context, id)
}

// # Commands

/*
Create publishes a new board authored by principal.

Parameters:
  - context: context.Context
  - principal: *sec.Principal (author)
  - title: string (required, at most [MaxTitleLength] characters)
  - content: string (required)

Returns:
  - *Board: Persisted board
  - error: Validation or storage errors
*/
func (service *Service) Create(context context.Context, principal *sec.Principal, title, content string) (*Board, error) {
	title = textnorm.Clean(title)
	content = textnorm.Clean(content)

	validator := &validate.Validator{}
	validator.Required(FieldTitle, title).
		MaxLen(FieldTitle, title, MaxTitleLength).
		Required(FieldContent, content)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	board := &Board{
		UserID:   principal.ID,
		UserName: principal.LoginName,
		Title:    title,
		Content:  content,
	}
	if err := service.repository.Create(context, board); err != nil {
		return nil, fmt.Errorf("board_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "board_created", slog.Int64("board_id", board.ID))
	return board, nil
}

/*
Update applies the non-blank fields of changes to a board the principal owns.

Description: Input is checked first (400), then existence (404), then
ownership (403). Blank fields are ignored; at least one must remain.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - id: int64
  - changes: Changes

Returns:
  - *Board: Updated board
  - error: Validation, NotFound, Forbidden or storage errors
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, id int64, changes Changes) (*Board, error) {
	title := cleanOptional(changes.Title)
	content := cleanOptional(changes.Content)

	validator := &validate.Validator{}
	validator.Custom(FieldTitle, title == "" && content == "", "Provide a non-blank title or content").
		MaxLen(FieldTitle, title, MaxTitleLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	board, err := service.repository.FindByID(context, id)
	if err != nil {
		return nil, err
	}
	if err := policy.RequireOwner(principal, board.UserID, "You can only edit your own boards"); err != nil {
		return nil, err
	}

	if title != "" {
		board.Title = title
	}
	if content != "" {
		board.Content = content
	}

	if err := service.repository.Update(context, board); err != nil {
		return nil, err
	}
	return board, nil
}

/*
Delete soft-deletes a board the principal owns.

Returns:
  - error: NotFound before Forbidden, or storage errors
*/
func (service *Service) Delete(context context.Context, principal *sec.Principal, id int64) error {
	board, err := service.repository.FindByID(context, id)
	if err != nil {
		return err
	}
	if err := policy.RequireOwner(principal, board.UserID, "You can only delete your own boards"); err != nil {
		return err
	}

	if err := service.repository.SoftDelete(context, id); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "board_deleted", slog.Int64("board_id", id))
	return nil
}

func cleanOptional(value *string) string {
	return textnorm.Clean(pointer.Val(value))
}

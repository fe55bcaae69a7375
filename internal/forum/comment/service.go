// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package comment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/policy"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/platform/validate"
	"github.com/taibuivan/yomira-board/pkg/textnorm"
)

// BoardFinder resolves live boards. It is satisfied by [*board.Service].
type BoardFinder interface {
	Find(context context.Context, id int64) (*board.Board, error)
}

// Service implements comment use cases.
type Service struct {
	repository Repository
	boards     BoardFinder
}

// NewService constructs a new [Service].
func NewService(repository Repository, boards BoardFinder) *Service {
	return &Service{repository: repository, boards: boards}
}

// ListByBoard returns the live comments of a live board, oldest first.
func (service *Service) ListByBoard(context context.Context, boardID int64) ([]Comment, error) {
	if _, err := service.boards.Find(context, boardID); err != nil {
		return nil, err
	}
	return service.repository.ListByBoard(context, boardID)
}

// ListByUser returns the live comments written by userID.
func (service *Service) ListByUser(context context.Context, userID int64) ([]Comment, error) {
	return service.repository.ListByUser(context, userID)
}

/*
Create attaches a comment by principal to a live board.

Returns:
  - *Comment: Persisted comment
  - error: Validation, apperr.NotFound (board) or storage errors
*/
func (service *Service) Create(context context.Context, principal *sec.Principal, boardID int64, content string) (*Comment, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}

	if _, err := service.boards.Find(context, boardID); err != nil {
		return nil, err
	}

	comment := &Comment{
		UserID:  principal.ID,
		BoardID: boardID,
		Content: content,
	}
	if err := service.repository.Create(context, comment); err != nil {
		return nil, fmt.Errorf("comment_service_create_failed: %w", err)
	}

	ctxutil.GetLogger(context).InfoContext(context, "comment_created",
		slog.Int64("board_id", boardID),
		slog.Int64("comment_id", comment.ID),
	)
	return comment, nil
}

/*
Update rewrites a comment the principal owns.

Description: Checks run in order: content (400), board (404), comment and its
board membership (404), ownership (403).
*/
func (service *Service) Update(context context.Context, principal *sec.Principal, boardID, commentID int64, content string) (*Comment, error) {
	content, err := cleanContent(content)
	if err != nil {
		return nil, err
	}

	comment, err := service.ownedComment(context, principal, boardID, commentID, "You can only edit your own comments")
	if err != nil {
		return nil, err
	}

	comment.Content = content
	if err := service.repository.UpdateContent(context, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft-deletes a comment the principal owns.
func (service *Service) Delete(context context.Context, principal *sec.Principal, boardID, commentID int64) error {
	if _, err := service.ownedComment(context, principal, boardID, commentID, "You can only delete your own comments"); err != nil {
		return err
	}
	return service.repository.SoftDelete(context, commentID)
}

func (service *Service) ownedComment(context context.Context, principal *sec.Principal, boardID, commentID int64, denied string) (*Comment, error) {
	if _, err := service.boards.Find(context, boardID); err != nil {
		return nil, err
	}

	comment, err := service.repository.FindByID(context, commentID)
	if err != nil {
		return nil, err
	}
	if comment.BoardID != boardID {
		return nil, apperr.NotFound(resourceName)
	}

	if err := policy.RequireOwner(principal, comment.UserID, denied); err != nil {
		return nil, err
	}
	return comment, nil
}

func cleanContent(content string) (string, error) {
	content = textnorm.Clean(content)

	validator := &validate.Validator{}
	validator.Required(FieldContent, content)
	return content, validator.Err()
}

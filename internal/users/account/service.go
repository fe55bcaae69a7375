// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/platform/apperr"
	"github.com/taibuivan/yomira-board/internal/platform/ctxutil"
	"github.com/taibuivan/yomira-board/internal/platform/dberr"
	"github.com/taibuivan/yomira-board/internal/platform/policy"
	"github.com/taibuivan/yomira-board/internal/platform/sec"
	"github.com/taibuivan/yomira-board/internal/platform/validate"
	"github.com/taibuivan/yomira-board/internal/users/auth"
	"github.com/taibuivan/yomira-board/pkg/pagination"
)

// # Service Layer

// Service orchestrates account use cases.
type Service struct {
	userRepository auth.UserRepository
	hasher         sec.PasswordHasher
	boards         BoardLister
	comments       CommentLister
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	userRepo auth.UserRepository,
	hasher sec.PasswordHasher,
	boards BoardLister,
	comments CommentLister,
) *Service {
	return &Service{
		userRepository: userRepo,
		hasher:         hasher,
		boards:         boards,
		comments:       comments,
	}
}

// # Profile Management

// GetProfile returns the public profile of a live account.
func (service *Service) GetProfile(context context.Context, userID int64) (*Profile, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return profileOf(user), nil
}

/*
ChangePassword replaces the caller's password after checking the current one.

Description: Every failure is a 400, including a wrong current password.

Parameters:
  - context: context.Context
  - principal: *sec.Principal
  - input: PasswordChange

Returns:
  - error: Validation, NotFound or storage errors
*/
func (service *Service) ChangePassword(context context.Context, principal *sec.Principal, input PasswordChange) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, input.CurrentPassword).
		Required(FieldNewPassword, input.NewPassword).
		Required(FieldNewPasswordConfirm, input.NewPasswordConfirm)
	if err := validator.Err(); err != nil {
		return err
	}
	if input.NewPassword != input.NewPasswordConfirm {
		return apperr.BadRequest("New password and confirmation do not match")
	}

	// The hash is only available on the uncached by-name lookup.
	user, err := service.userRepository.FindByUserName(context, principal.LoginName)
	if err != nil {
		return err
	}
	if user.ID != principal.ID {
		return apperr.NotFound("User")
	}

	if !service.hasher.Verify(input.CurrentPassword, user.PasswordHash) {
		return apperr.BadRequest("Current password is incorrect")
	}

	newHash, err := service.hasher.Hash(input.NewPassword)
	if err != nil {
		return fmt.Errorf("account_service_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, user.ID, newHash); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_password_changed", slog.Int64("user_id", user.ID))
	return nil
}

/*
DeleteAccount soft-deletes the caller's own account.

Description: Outstanding tokens stop resolving as soon as the row is gone,
since the gate re-reads the account on every request.
*/
func (service *Service) DeleteAccount(context context.Context, principal *sec.Principal, userID int64) error {
	if err := policy.RequireOwner(principal, userID, "You can only delete your own account"); err != nil {
		return err
	}

	if err := service.userRepository.SoftDelete(context, userID); err != nil {
		return err
	}

	ctxutil.GetLogger(context).InfoContext(context, "account_deleted", slog.Int64("user_id", userID))
	return nil
}

// # Memberships

// ListBoards returns one page of the live boards written by a live user.
func (service *Service) ListBoards(context context.Context, userID int64, page pagination.Params) ([]board.Summary, pagination.Meta, error) {
	if err := service.ensureUser(context, userID); err != nil {
		return nil, pagination.Meta{}, err
	}
	return service.boards.ListByUser(context, userID, page)
}

// ListComments returns the caller's own live comments.
func (service *Service) ListComments(context context.Context, principal *sec.Principal, userID int64) ([]comment.Comment, error) {
	if err := policy.RequireOwner(principal, userID, "You can only list your own comments"); err != nil {
		return nil, err
	}
	if err := service.ensureUser(context, userID); err != nil {
		return nil, err
	}
	return service.comments.ListByUser(context, userID)
}

func (service *Service) ensureUser(context context.Context, userID int64) error {
	_, err := service.userRepository.FindByID(context, userID)
	if err != nil && !dberr.IsNotFound(err) {
		return fmt.Errorf("account_service_user_lookup_failed: %w", err)
	}
	return err
}

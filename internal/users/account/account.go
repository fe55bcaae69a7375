// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account provides profile, password and membership management for
registered users.

It works on top of the identity store of package auth and reads the
user-scoped board and comment listings through narrow interfaces.

# Security

Every endpoint requires an authenticated caller. Deleting an account and
listing comments are limited to the caller's own user ID.
*/
package account

import (
	"context"
	"time"

	"github.com/taibuivan/yomira-board/internal/forum/board"
	"github.com/taibuivan/yomira-board/internal/forum/comment"
	"github.com/taibuivan/yomira-board/internal/users/auth"
	"github.com/taibuivan/yomira-board/pkg/pagination"
)

// # Projections

// Profile is the public view of an account.
type Profile struct {
	ID        int64     `json:"id"`
	UserName  string    `json:"userName"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func profileOf(user *auth.User) *Profile {
	return &Profile{
		ID:        user.ID,
		UserName:  user.UserName,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// PasswordChange is the change-password request body.
type PasswordChange struct {
	CurrentPassword    string `json:"currentPassword"`
	NewPassword        string `json:"newPassword"`
	NewPasswordConfirm string `json:"newPasswordConfirm"`
}

// # Dependencies

// BoardLister is satisfied by [*board.Service].
type BoardLister interface {
	ListByUser(context context.Context, userID int64, page pagination.Params) ([]board.Summary, pagination.Meta, error)
}

// CommentLister is satisfied by [*comment.Service].
type CommentLister interface {
	ListByUser(context context.Context, userID int64) ([]comment.Comment, error)
}

// Field names used in validation messages.
const (
	FieldUserID             = "userId"
	FieldCurrentPassword    = "currentPassword"
	FieldNewPassword        = "newPassword"
	FieldNewPasswordConfirm = "newPasswordConfirm"
)

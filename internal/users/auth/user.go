// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the identity layer of the board API.

It registers accounts, checks credentials, issues bearer tokens and turns a
presented token back into the stored account for the request gate.

# Architecture

  - Service: Register, Login, Logout, GenerateToken and ValidateToken.
  - Repository: [UserRepository] with a Postgres implementation and a Redis
    read-through decorator for principal re-hydration.
  - Handler: the /api/v1/auth endpoints.
*/
package auth

import (
	"time"

	"github.com/taibuivan/yomira-board/internal/platform/sec"
)

// # Domain Entities

// User represents a registered member of the board.
type User struct {
	ID           int64      `json:"id"`
	UserName     string     `json:"userName"`
	PasswordHash string     `json:"-"` // Explicitly omitted from JSON for security.
	Role         sec.Role   `json:"role"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
	DeletedAt    *time.Time `json:"-"`
}

// Principal projects the user onto the per-request identity.
func (u *User) Principal() *sec.Principal {
	return &sec.Principal{ID: u.ID, LoginName: u.UserName, Role: u.Role}
}

// TokenSubject projects the user onto the claims minted into a token.
func (u *User) TokenSubject() sec.TokenSubject {
	return sec.TokenSubject{ID: u.ID, LoginName: u.UserName, Role: u.Role}
}

// # Field Identifiers

// Field names for validation and response payloads in the authentication domain.
const (
	FieldUserName    = "user_name"
	FieldPassword    = "password"
	FieldAccessToken = "accessToken"
	FieldTokenType   = "tokenType"
	FieldExpiresIn   = "expiresIn"
	FieldUser        = "user"
	FieldUserID      = "userId"
)

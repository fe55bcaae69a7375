// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package board manages the posts of the board.

# Architecture

  - Service: listing, detail (with view counting), create, update, soft delete.
  - Repository: [Repository] with a Postgres implementation.
  - Handler: the /api/v1/boards endpoints.

Ownership is enforced in the service: the route table only guarantees that a
caller is authenticated.
*/
package board

import "time"

// # Domain Entities

// Board is a single post.
type Board struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	UserName  string     `json:"userName"`
	Title     string     `json:"title"`
	Content   string     `json:"content"`
	View      int64      `json:"view"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"-"`
	DeletedAt *time.Time `json:"-"`
}

// Summary is the list projection of a [Board].
type Summary struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Title     string    `json:"title"`
	View      int64     `json:"view"`
	CreatedAt time.Time `json:"createdAt"`
}

// Changes carries a partial update. Nil fields are left untouched.
type Changes struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// # Field Identifiers

const (
	FieldTitle   = "title"
	FieldContent = "content"
	FieldBoardID = "boardId"
)

// MaxTitleLength bounds board titles in characters.
const MaxTitleLength = 200

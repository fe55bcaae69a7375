// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package comment manages the comments attached to boards.
package comment

import "time"

// Comment is a reply to a board.
type Comment struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"userId"`
	BoardID   int64      `json:"boardId"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	IsDeleted bool       `json:"isDeleted"`
	DeletedAt *time.Time `json:"deletedAt"`
}

const (
	FieldContent   = "content"
	FieldBoardID   = "boardId"
	FieldCommentID = "commentId"
)

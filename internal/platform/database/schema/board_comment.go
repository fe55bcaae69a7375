// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BoardCommentTable represents the 'comments' table
type BoardCommentTable struct {
	Table     string
	ID        string
	UserID    string
	BoardID   string
	Content   string
	IsDeleted string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// BoardComment is the schema definition for comments
var BoardComment = BoardCommentTable{
	Table:     "comments",
	ID:        "id",
	UserID:    "user_id",
	BoardID:   "board_id",
	Content:   "content",
	IsDeleted: "is_deleted",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
	DeletedAt: "deleted_at",
}

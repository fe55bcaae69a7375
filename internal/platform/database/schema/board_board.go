// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BoardPostTable represents the 'boards' table
type BoardPostTable struct {
	Table     string
	ID        string
	UserID    string
	Title     string
	Content   string
	View      string
	IsDeleted string
	CreatedAt string
	UpdatedAt string
	DeletedAt string
}

// BoardPost is the schema definition for boards
var BoardPost = BoardPostTable{
	Table:     "boards",
	ID:        "id",
	UserID:    "user_id",
	Title:     "title",
	Content:   "content",
	View:      "view",
	IsDeleted: "is_deleted",
	CreatedAt: "created_at",
	UpdatedAt: "updated_at",
	DeletedAt: "deleted_at",
}

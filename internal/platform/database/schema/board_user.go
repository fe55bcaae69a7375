// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package schema

// BoardUserTable represents the 'users' table
type BoardUserTable struct {
	Table        string
	ID           string
	UserName     string
	PasswordHash string
	Role         string
	CreatedAt    string
	UpdatedAt    string
	DeletedAt    string
}

// BoardUser is the schema definition for users
var BoardUser = BoardUserTable{
	Table:        "users",
	ID:           "id",
	UserName:     "user_name",
	PasswordHash: "password_hash",
	Role:         "role",
	CreatedAt:    "created_at",
	UpdatedAt:    "updated_at",
	DeletedAt:    "deleted_at",
}

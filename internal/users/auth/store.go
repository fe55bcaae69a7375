// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
//
// Lookups only see live (not soft-deleted) rows and return
// apperr.NotFound when nothing matches.
type UserRepository interface {

	/*
		FindByUserName returns the account with the exact login name.

		Parameters:
		  - context: context.Context
		  - userName: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByUserName(context context.Context, userName string) (*User, error)

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or retrieval failures
	*/
	FindByID(context context.Context, id int64) (*User, error)

	/*
		Create persists a brand-new account and assigns its ID and timestamps.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Unique violations (login name taken) or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: int64
		  - newHash: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdatePassword(context context.Context, userID int64, newHash string) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: int64

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	SoftDelete(context context.Context, id int64) error
}

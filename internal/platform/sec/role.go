// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # User Roles

// Role represents the authorization level granted to an account.
//
// The set is closed. The canonical string form is what travels in tokens and
// what is stored in the users table.
type Role string

const (
	// Default role for standard registered users
	RoleUser Role = "USER"

	// Unrestricted system access
	RoleAdmin Role = "ADMIN"
)

// ParseRole maps a wire/storage string onto the closed [Role] set.
func ParseRole(value string) (Role, bool) {
	switch Role(value) {
	case RoleUser, RoleAdmin:
		return Role(value), true
	default:
		return "", false
	}
}

// String returns the canonical form of the role.
func (r Role) String() string {
	return string(r)
}

// Valid reports whether r belongs to the closed role set.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

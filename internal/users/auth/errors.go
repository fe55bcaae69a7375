// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "errors"

// ErrInvalidCredentials is the cause behind every failed login.
// It never reveals whether the login name exists.
var ErrInvalidCredentials = errors.New("invalid credentials")

// DuplicateLoginError is the cause behind a rejected registration.
type DuplicateLoginError struct {
	LoginName string
}

func (e *DuplicateLoginError) Error() string {
	return "login name already exists: " + e.LoginName
}

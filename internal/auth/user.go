// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the login flow of the Lumen API.

A user exchanges an email and password for a signed access token. The token
carries the user id as subject and the stored role markers, and is what the
access gate verifies on /admin routes.
*/
package auth

import (
	"time"
)

// User is the account record read by the login flow.
//
// # Rules
//   - Email is unique, compared case-insensitively.
//   - PasswordHash is a bcrypt hash and never leaves this package.
//   - Disabled accounts cannot log in.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Avatar       string
	Roles        []string
	IsEnabled    bool
	LastLoginAt  *time.Time
}

// Session is the login response body.
type Session struct {
	JWTToken  string   `json:"jwtToken"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Avatar    string   `json:"avatar,omitempty"`
	Roles     []string `json:"roles"`

	// Expired is the token expiry in Unix milliseconds.
	Expired int64 `json:"expired"`

	ID string `json:"_id"`
}

// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// UserRepository defines the data access contract of the login flow.
//
// # Implementations
//
// PostgreSQL in production, and the in-memory fixture store for local runs
// and tests.
type UserRepository interface {
	// FindByEmail returns the account with the given email.
	//
	// Returns [apperr.NotFound] if no user is registered with this email.
	FindByEmail(ctx context.Context, email string) (*User, error)

	// TouchLastLogin records a successful login.
	TouchLastLogin(ctx context.Context, userID string, at time.Time) error
}

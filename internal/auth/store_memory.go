// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/taibuivan/lumen/internal/content"
	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/database/schema"
)

// MemoryUserRepository reads accounts from the in-memory fixture store.
type MemoryUserRepository struct {
	store *content.MemoryStore
}

// NewMemoryUserRepository creates a repository over the user collection of store.
func NewMemoryUserRepository(store *content.MemoryStore) *MemoryUserRepository {
	return &MemoryUserRepository{store: store}
}

// FindByEmail implements [UserRepository]. Fixture emails are stored in lower case.
func (repository *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	columns := schema.ContentUser

	row, ok := repository.store.Lookup(columns.Table, columns.Email, strings.ToLower(email))
	if !ok {
		return nil, apperr.NotFound(resourceUser)
	}

	user := &User{
		ID:           stringValue(row[columns.ID]),
		FirstName:    stringValue(row[columns.FirstName]),
		LastName:     stringValue(row[columns.LastName]),
		Email:        stringValue(row[columns.Email]),
		PasswordHash: stringValue(row[columns.PasswordHash]),
		Avatar:       stringValue(row[columns.Avatar]),
		Roles:        stringList(row[columns.Roles]),
	}
	user.IsEnabled, _ = row[columns.IsEnabled].(bool)
	if at, ok := row[columns.LastLoginAt].(time.Time); ok {
		user.LastLoginAt = &at
	}
	return user, nil
}

// TouchLastLogin implements [UserRepository].
func (repository *MemoryUserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	columns := schema.ContentUser
	if !repository.store.Update(columns.Table, userID, content.Row{columns.LastLoginAt: at}) {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

func stringValue(value any) string {
	text, _ := value.(string)
	return text
}

func stringList(value any) []string {
	switch typed := value.(type) {
	case []string:
		return typed
	case []any:
		out := make([]string, 0, len(typed))
		for _, item := range typed {
			if text, ok := item.(string); ok {
				out = append(out, text)
			}
		}
		return out
	default:
		return nil
	}
}

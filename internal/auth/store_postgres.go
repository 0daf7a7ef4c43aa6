// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/database/schema"
	"github.com/taibuivan/lumen/internal/platform/dberr"
)

const resourceUser = "User"

// DB is the subset of pgxpool.Pool the repository needs.
type DB interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresUserRepository implements [UserRepository] using pgx.
type PostgresUserRepository struct {
	db DB
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(db DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

// FindByEmail retrieves a user record by email, ignoring case.
func (repository *PostgresUserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	columns := schema.ContentUser
	query := fmt.Sprintf(`
		SELECT %s
		FROM %s
		WHERE lower(%s) = lower($1)`,
		strings.Join(columns.LoginColumns(), ", "), columns.Table, columns.Email)

	user := &User{}
	var avatar *string
	err := repository.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&avatar,
		&user.Roles,
		&user.IsEnabled,
	)
	if err != nil {
		return nil, dberr.Wrap(err, resourceUser, "find_user_by_email")
	}

	if avatar != nil {
		user.Avatar = *avatar
	}
	return user, nil
}

// TouchLastLogin sets the last login time of a user.
func (repository *PostgresUserRepository) TouchLastLogin(ctx context.Context, userID string, at time.Time) error {
	columns := schema.ContentUser
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1::uuid`,
		columns.Table, columns.LastLoginAt, columns.ID)

	tag, err := repository.db.Exec(ctx, query, userID, at)
	if err != nil {
		return dberr.Wrap(err, resourceUser, "touch_last_login")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound(resourceUser)
	}
	return nil
}

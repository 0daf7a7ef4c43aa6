// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/sec"
	"github.com/taibuivan/lumen/internal/platform/validate"
)

const (
	msgInvalidPayload     = "Invalid login payload"
	msgInvalidCredentials = "Invalid email or password"
)

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(subjectID string, roles []string, timeToLive time.Duration) (string, time.Time, error)
}

// Service implements the login use case.
type Service struct {
	users      UserRepository
	tokens     TokenIssuer
	timeToLive time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// NewService constructs a login [Service].
func NewService(users UserRepository, tokens TokenIssuer, timeToLive time.Duration, logger *slog.Logger) *Service {
	return &Service{
		users:      users,
		tokens:     tokens,
		timeToLive: timeToLive,
		now:        time.Now,
		logger:     logger,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

/*
Login validates credentials and issues an access token.

Parameters:
  - context: context.Context
  - input: LoginInput (email and plain-text password)

Returns:
  - *Session: The token, its expiry and the public profile
  - error: INVALID_INPUT for a malformed payload, UNAUTHORIZED for bad credentials

# Flow
 1. Validate the payload shape.
 2. Look the account up by email.
 3. Compare the password with the bcrypt hash.
 4. Issue the token and record the login time.
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {

	// 1. Payload
	email := strings.TrimSpace(input.Email)
	validator := &validate.Validator{}
	validator.Required("email", email).Email("email", email).Required("password", input.Password)
	if err := validator.Err(); err != nil {
		invalid := apperr.InvalidInput(msgInvalidPayload)
		invalid.Details = apperr.As(err).Details
		return nil, invalid
	}

	// 2. Account
	user, err := service.users.FindByEmail(context, email)
	if apperr.Is(err, apperr.CodeNotFound) {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}
	if err != nil {
		return nil, err
	}
	if !user.IsEnabled {
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	// 3. Password
	if err := sec.ComparePassword(input.Password, user.PasswordHash); err != nil {
		if !errors.Is(err, sec.ErrPasswordMismatch) {
			service.logger.ErrorContext(context, "login_unusable_hash",
				slog.String("user_id", user.ID),
				slog.Any("error", err),
			)
		}
		return nil, apperr.Unauthorized(msgInvalidCredentials)
	}

	// 4. Token
	token, expiresAt, err := service.tokens.Issue(user.ID, user.Roles, service.timeToLive)
	if err != nil {
		return nil, apperr.Internal(fmt.Errorf("auth: issue token: %w", err))
	}

	if err := service.users.TouchLastLogin(context, user.ID, service.now()); err != nil {
		service.logger.WarnContext(context, "login_touch_failed",
			slog.String("user_id", user.ID),
			slog.Any("error", err),
		)
	}

	service.logger.InfoContext(context, "user_logged_in",
		slog.String("user_id", user.ID),
		slog.String("role", string(sec.Highest(user.Roles))),
	)

	return &Session{
		JWTToken:  token,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Avatar:    user.Avatar,
		Roles:     user.Roles,
		Expired:   expiresAt.UnixMilli(),
		ID:        user.ID,
	}, nil
}

// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package access decides which projection a read request may see.

The gate runs a fixed sequence and stops at the first failure:

 1. Language: the Accept-Language value must name a supported language.
 2. Identifier: single-item requests must carry a well-formed UUID.
 3. Privilege: a path with an "admin" segment asks for the privileged projection.
 4. Credential: privileged requests must present a valid bearer token.
 5. Role: when the policy demands it, the token must carry an administrative role.

Nothing in this package touches storage, so every rejection happens before a
query is built.
*/
package access

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/taibuivan/lumen/internal/platform/apperr"
	"github.com/taibuivan/lumen/internal/platform/constants"
	"github.com/taibuivan/lumen/internal/platform/ctxkey"
	"github.com/taibuivan/lumen/internal/platform/locale"
	"github.com/taibuivan/lumen/internal/platform/sec"
)

// # Messages

const (
	MsgMissingLanguage     = "Missing Accept-Language header"
	MsgUnsupportedLanguage = "Unsupported language, expected one of: pl, en"
	MsgInvalidID           = "Invalid id format"
	MsgMissingCredential   = "Missing authorization header"
	MsgMalformedCredential = "Invalid authorization format"
	MsgInvalidCredential   = "Invalid or expired token"
	MsgInsufficientRole    = "Administrative role required"
)

// uuidTextLen is the length of the canonical 8-4-4-4-12 form.
const uuidTextLen = 36

// # Contracts

// TokenVerifier is the subset of the token service the gate depends on.
type TokenVerifier interface {
	Verify(token string) (*sec.AuthClaims, error)
}

// Input is the transport-neutral view of a request the gate evaluates.
type Input struct {
	// AcceptLanguage is the raw Accept-Language header value.
	AcceptLanguage string

	// Authorization is the raw Authorization header value.
	Authorization string

	// Path is the request URL path.
	Path string

	// ID is the raw identifier of a single-item request.
	ID string

	// HasID marks single-item requests.
	HasID bool
}

// Decision is the outcome of a successful evaluation.
type Decision struct {
	Language locale.Lang

	// ID is the canonical lower-case identifier, empty for listings.
	ID string

	// Privileged reports whether the privileged projection applies.
	Privileged bool

	// Authorized is true only when a credential was presented and verified.
	Authorized bool

	SubjectID    string
	Roles        []string
	IsAdmin      bool
	IsSuperAdmin bool

	// Claims holds the verified token, nil for public requests.
	Claims *sec.AuthClaims
}

// # Gate

// Gate evaluates requests against a fixed access policy. It is immutable and
// safe for concurrent use.
type Gate struct {
	verifier         TokenVerifier
	requireAdminRole bool
}

// NewGate builds a gate.
//
// When requireAdminRole is false, any valid token opens the privileged projection.
func NewGate(verifier TokenVerifier, requireAdminRole bool) *Gate {
	return &Gate{verifier: verifier, requireAdminRole: requireAdminRole}
}

/*
Evaluate runs the access sequence over a request.

Parameters:
  - input: Input (headers, path and optional id)

Returns:
  - *Decision: The resolved language, id and privilege
  - error: *apperr.AppError (INVALID_INPUT, UNAUTHORIZED or FORBIDDEN)
*/
func (gate *Gate) Evaluate(input Input) (*Decision, error) {

	// 1. Language
	lang, err := locale.Parse(input.AcceptLanguage)
	if err != nil {
		if errors.Is(err, locale.ErrMissing) {
			return nil, apperr.InvalidInput(MsgMissingLanguage)
		}
		return nil, apperr.InvalidInput(MsgUnsupportedLanguage)
	}

	decision := &Decision{Language: lang}

	// 2. Identifier
	if input.HasID {
		id, err := canonicalID(input.ID)
		if err != nil {
			return nil, apperr.InvalidInput(MsgInvalidID)
		}
		decision.ID = id
	}

	// 3. Privilege
	if !IsPrivilegedPath(input.Path) {
		return decision, nil
	}
	decision.Privileged = true

	// 4. Credential
	token, err := bearerToken(input.Authorization)
	if err != nil {
		return nil, err
	}

	claims, err := gate.verifier.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized(MsgInvalidCredential)
	}

	decision.Authorized = true
	decision.Claims = claims
	decision.SubjectID = claims.SubjectID()
	decision.Roles = claims.Roles
	decision.IsAdmin = sec.IsAdmin(claims.Roles)
	decision.IsSuperAdmin = sec.IsSuperAdmin(claims.Roles)

	// 5. Role
	if gate.requireAdminRole && !decision.IsAdmin {
		return nil, apperr.Forbidden(MsgInsufficientRole)
	}

	return decision, nil
}

// IsPrivilegedPath reports whether any path segment is exactly "admin".
func IsPrivilegedPath(path string) bool {
	for _, segment := range strings.Split(path, "/") {
		if segment == constants.AdminPathSegment {
			return true
		}
	}
	return false
}

// # Context

// WithDecision returns a new context carrying the gate outcome.
func WithDecision(ctx context.Context, decision *Decision) context.Context {
	return context.WithValue(ctx, ctxkey.KeyDecision, decision)
}

// FromContext returns the gate outcome stored on the context, or nil.
func FromContext(ctx context.Context) *Decision {
	decision, _ := ctx.Value(ctxkey.KeyDecision).(*Decision)
	return decision
}

// # Helpers

// canonicalID accepts only the hyphenated textual UUID form.
func canonicalID(raw string) (string, error) {
	if len(raw) != uuidTextLen {
		return "", errors.New("access: bad id length")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// bearerToken extracts the token of a "Bearer <token>" header.
func bearerToken(header string) (string, error) {
	if strings.TrimSpace(header) == "" {
		return "", apperr.Unauthorized(MsgMissingCredential)
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], constants.BearerScheme) {
		return "", apperr.Unauthorized(MsgMalformedCredential)
	}
	return parts[1], nil
}

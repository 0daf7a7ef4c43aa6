// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/lumen/internal/platform/ctxutil"
	"github.com/taibuivan/lumen/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_AuthUser verifies logger enrichment with the token subject.
*/
func TestContext_AuthUser(t *testing.T) {
	var buffer bytes.Buffer
	ctx := ctxutil.WithLogger(context.Background(), slog.New(slog.NewJSONHandler(&buffer, nil)))

	claims := &sec.AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-123"},
		Roles:            []string{"ROLE_ADMIN"},
	}

	// 1. Anonymous requests keep the logger untouched
	assert.Same(t, ctx, ctxutil.WithAuthUser(ctx, nil))

	// 2. Downstream log lines carry the subject
	ctx = ctxutil.WithAuthUser(ctx, claims)
	ctxutil.GetLogger(ctx).Info("privileged_read")
	assert.Contains(t, buffer.String(), `"subject_id":"user-123"`)
}

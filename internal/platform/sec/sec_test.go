// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"crypto/rand"
	"crypto/rsa"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taibuivan/lumen/internal/platform/sec"
)

const testIssuer = "lumen.test"

func newKey(t *testing.T) *rsa.PrivateKey {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)
	return key
}

/*
TestTokenService_RoundTrip verifies that an issued token verifies back to the same identity.
*/
func TestTokenService_RoundTrip(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, testIssuer)

	// 1. Issue
	token, expiresAt, err := service.Issue("user-1", []string{"ROLE_USER", "ROLE_ADMIN"}, time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, 5*time.Second)

	// 2. Verify
	claims, err := service.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.SubjectID())
	assert.Equal(t, []string{"ROLE_USER", "ROLE_ADMIN"}, claims.Roles)
	assert.Equal(t, testIssuer, claims.Issuer)
}

/*
TestTokenService_Expiry verifies that a token is rejected once the clock passes its expiry.
*/
func TestTokenService_Expiry(t *testing.T) {
	key := newKey(t)
	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	issuer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, testIssuer).
		WithClock(func() time.Time { return issuedAt })

	token, _, err := issuer.Issue("user-1", nil, time.Minute)
	require.NoError(t, err)

	// Within lifetime
	_, err = issuer.WithClock(func() time.Time { return issuedAt.Add(30 * time.Second) }).Verify(token)
	assert.NoError(t, err)

	// Past lifetime
	_, err = issuer.WithClock(func() time.Time { return issuedAt.Add(2 * time.Minute) }).Verify(token)
	assert.ErrorIs(t, err, sec.ErrInvalidToken)
}

/*
TestTokenService_Rejects covers forged, malformed and foreign tokens.
*/
func TestTokenService_Rejects(t *testing.T) {
	key := newKey(t)
	service := sec.NewTokenServiceFromKeys(key, &key.PublicKey, testIssuer)

	otherKey := newKey(t)
	forger := sec.NewTokenServiceFromKeys(otherKey, &otherKey.PublicKey, testIssuer)
	forged, _, err := forger.Issue("user-1", []string{"ROLE_ADMIN"}, time.Hour)
	require.NoError(t, err)

	foreignIssuer := sec.NewTokenServiceFromKeys(key, &key.PublicKey, "someone.else")
	foreign, _, err := foreignIssuer.Issue("user-1", nil, time.Hour)
	require.NoError(t, err)

	hmacToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "user-1",
		"iss": testIssuer,
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"bad_signature", forged},
		{"wrong_issuer", foreign},
		{"wrong_algorithm", hmacToken},
		{"malformed", "not.a.jwt"},
		{"empty", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := service.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, sec.ErrInvalidToken)
		})
	}
}

/*
TestRoles checks administrative detection and the role hierarchy.
*/
func TestRoles(t *testing.T) {
	assert.True(t, sec.IsAdmin([]string{"ROLE_USER", "ROLE_ADMIN"}))
	assert.True(t, sec.IsAdmin([]string{"ROLE_SUPERADMIN"}))
	assert.False(t, sec.IsAdmin([]string{"ROLE_USER"}))
	assert.False(t, sec.IsAdmin(nil))

	assert.True(t, sec.IsSuperAdmin([]string{"ROLE_SUPERADMIN"}))
	assert.False(t, sec.IsSuperAdmin([]string{"ROLE_ADMIN"}))

	assert.Equal(t, sec.RoleAdmin, sec.Highest([]string{"ROLE_USER", "ROLE_ADMIN", "ROLE_UNKNOWN"}))
}

/*
TestComparePassword verifies bcrypt matching and mismatch reporting.
*/
func TestComparePassword(t *testing.T) {
	hash, err := sec.HashPasswordWithCost("Passw0rd!", bcrypt.MinCost)
	require.NoError(t, err)

	assert.NoError(t, sec.ComparePassword("Passw0rd!", hash))
	assert.ErrorIs(t, sec.ComparePassword("wrong", hash), sec.ErrPasswordMismatch)

	err = sec.ComparePassword("Passw0rd!", "not-a-hash")
	require.Error(t, err)
	assert.NotErrorIs(t, err, sec.ErrPasswordMismatch)
}

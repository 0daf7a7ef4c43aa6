// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, JWT signing)
// from the retrieval logic. The access gate consumes it through a narrow
// verifier interface, and the login flow through an issuer interface.
package sec

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned by [TokenService.Verify] for every rejected token.
var ErrInvalidToken = errors.New("sec: invalid token")

// AuthClaims represents the payload embedded inside a JWT access token.
//
// The subject carries the user id. Roles are copied from the user record at
// login time, so the gate can decide privilege without a storage lookup.
type AuthClaims struct {
	jwt.RegisteredClaims

	Roles []string `json:"roles"`
}

// SubjectID returns the user id the token was issued for.
func (claims *AuthClaims) SubjectID() string {
	return claims.Subject
}

// TokenService handles generation and verification of JWT tokens using RS256.
//
// Keys are loaded once and never rotated at runtime. The service is safe for
// concurrent use.
type TokenService struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	issuer     string
	now        func() time.Time
}

// NewTokenService creates a new TokenService.
// It reads PEM encoded RSA keys from the provided filesystem paths.
func NewTokenService(privateKeyPath, publicKeyPath, issuer string) (*TokenService, error) {
	privateKeyData, err := os.ReadFile(privateKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read private key from %s: %w", privateKeyPath, err)
	}

	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse private key: %w", err)
	}

	publicKeyData, err := os.ReadFile(publicKeyPath)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to read public key from %s: %w", publicKeyPath, err)
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyData)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to parse public key: %w", err)
	}

	return NewTokenServiceFromKeys(privateKey, publicKey, issuer), nil
}

// NewTokenServiceFromKeys builds a TokenService around already parsed keys.
func NewTokenServiceFromKeys(privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, issuer string) *TokenService {
	return &TokenService{
		privateKey: privateKey,
		publicKey:  publicKey,
		issuer:     issuer,
		now:        time.Now,
	}
}

// WithClock returns a copy of the service that reads time from now.
func (service *TokenService) WithClock(now func() time.Time) *TokenService {
	clone := *service
	clone.now = now
	return &clone
}

/*
Issue signs a new access token for a user.

Parameters:
  - subjectID: string (user id, stored as "sub")
  - roles: []string (role markers copied into the token)
  - timeToLive: time.Duration

Returns:
  - string: The signed compact JWT
  - time.Time: The expiry instant
  - error: Signing failures
*/
func (service *TokenService) Issue(subjectID string, roles []string, timeToLive time.Duration) (string, time.Time, error) {
	issuedAt := service.now()
	expiresAt := issuedAt.Add(timeToLive)

	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Roles: roles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signedToken, err := token.SignedString(service.privateKey)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Verify checks the signature, algorithm, issuer and expiry of a JWT string.
//
// Every failure wraps [ErrInvalidToken]; callers must not leak the cause.
func (service *TokenService) Verify(tokenString string) (*AuthClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &AuthClaims{},
		func(token *jwt.Token) (interface{}, error) {
			return service.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(service.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

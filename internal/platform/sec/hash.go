// Copyright (c) 2026 Lumen. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordMismatch is returned when a password does not match its hash.
var ErrPasswordMismatch = errors.New("sec: password mismatch")

// HashPassword hashes a plain-text password using the bcrypt algorithm.
func HashPassword(plainTextPassword string) (string, error) {
	return HashPasswordWithCost(plainTextPassword, bcrypt.DefaultCost)
}

// HashPasswordWithCost hashes with an explicit bcrypt cost. Tests use [bcrypt.MinCost].
func HashPasswordWithCost(plainTextPassword string, cost int) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(plainTextPassword), cost)
	if err != nil {
		return "", fmt.Errorf("sec: failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// ComparePassword checks a plain-text password against a stored bcrypt hash.
//
// A wrong password yields [ErrPasswordMismatch]; a corrupt hash yields a wrapped
// bcrypt error so the caller can log it.
func ComparePassword(plainTextPassword, existingHash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(existingHash), []byte(plainTextPassword))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrPasswordMismatch
	default:
		return fmt.Errorf("sec: unusable password hash: %w", err)
	}
}

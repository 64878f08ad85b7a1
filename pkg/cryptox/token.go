// Package cryptox holds the small crypto helpers the service relies on:
// opaque invitation tokens and Argon2id password hashing.
package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// Token size constants (bytes of entropy before encoding).
const (
	// TokenSize128 is the minimum acceptable entropy for single-use links.
	TokenSize128 = 16
	// TokenSize256 is the default for invitation tokens.
	TokenSize256 = 32
)

// GenerateToken returns a cryptographically random, URL-safe token with the
// given number of entropy bytes. The result is base64url without padding, so
// it can be embedded directly in a query parameter.
func GenerateToken(size int) (string, error) {
	if size <= 0 {
		return "", fmt.Errorf("token size must be positive, got %d", size)
	}

	buf := make([]byte, size)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate random token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// MustGenerateToken is GenerateToken that panics on failure. Only for use at
// startup where a dead entropy source is unrecoverable anyway.
func MustGenerateToken(size int) string {
	token, err := GenerateToken(size)
	if err != nil {
		panic(fmt.Sprintf("cryptox: failed to generate token: %v", err))
	}
	return token
}

// Package tokenx signs and verifies the session tokens that authenticate API
// calls. Tokens are HMAC-signed JWTs carrying the member's identity and
// organisation; there is no server-side session table.
package tokenx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrMalformed = errors.New("tokenx: malformed token")
	ErrExpired   = errors.New("tokenx: token expired")
	ErrInvalid   = errors.New("tokenx: invalid token")
)

// Claims is the identity a session token asserts. Subject is the member id;
// the organisation and role are baked in at login so handlers never need an
// extra lookup to scope queries.
type Claims struct {
	Subject        string
	Email          string
	OrganisationID string
	Role           string
	ExpiresAt      time.Time
}

// Signer mints and verifies session tokens with a shared HMAC secret.
type Signer struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewSigner(secret []byte, issuer string, ttl time.Duration) *Signer {
	return &Signer{secret: secret, issuer: issuer, ttl: ttl}
}

type sessionClaims struct {
	Email          string `json:"email"`
	OrganisationID string `json:"org"`
	Role           string `json:"role"`
	jwt.RegisteredClaims
}

// Sign mints a session token for the given identity.
func (s *Signer) Sign(memberID, email, organisationID, role string, now time.Time) (string, error) {
	claims := sessionClaims{
		Email:          email,
		OrganisationID: organisationID,
		Role:           role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   memberID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("tokenx: failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a session token, returning its claims.
func (s *Signer) Verify(raw string) (Claims, error) {
	var claims sessionClaims

	token, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithExpirationRequired())
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return Claims{}, ErrExpired
		case errors.Is(err, jwt.ErrTokenMalformed):
			return Claims{}, ErrMalformed
		default:
			return Claims{}, ErrInvalid
		}
	}
	if !token.Valid {
		return Claims{}, ErrInvalid
	}

	return Claims{
		Subject:        claims.Subject,
		Email:          claims.Email,
		OrganisationID: claims.OrganisationID,
		Role:           claims.Role,
		ExpiresAt:      claims.ExpiresAt.Time,
	}, nil
}

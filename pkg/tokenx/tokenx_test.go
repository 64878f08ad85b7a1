package tokenx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestSignAndVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("test-secret"), "comply", time.Hour)

	now := time.Now()
	raw, err := signer.Sign("member-1", "alice@example.com", "org-1", "admin", now)
	require.NoError(t, err)

	claims, err := signer.Verify(raw)
	require.NoError(t, err)
	require.Equal(t, "member-1", claims.Subject)
	require.Equal(t, "alice@example.com", claims.Email)
	require.Equal(t, "org-1", claims.OrganisationID)
	require.Equal(t, "admin", claims.Role)
	require.WithinDuration(t, now.Add(time.Hour), claims.ExpiresAt, time.Second)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("test-secret"), "comply", time.Hour)

	raw, err := signer.Sign("member-1", "a@b.c", "org-1", "member", time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	_, err = signer.Verify(raw)
	require.ErrorIs(t, err, ErrExpired)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("secret-a"), "comply", time.Hour)
	other := NewSigner([]byte("secret-b"), "comply", time.Hour)

	raw, err := signer.Sign("member-1", "a@b.c", "org-1", "member", time.Now())
	require.NoError(t, err)

	_, err = other.Verify(raw)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("secret"), "someone-else", time.Hour)
	verifier := NewSigner([]byte("secret"), "comply", time.Hour)

	raw, err := signer.Sign("member-1", "a@b.c", "org-1", "member", time.Now())
	require.NoError(t, err)

	_, err = verifier.Verify(raw)
	require.ErrorIs(t, err, ErrInvalid)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	t.Parallel()

	signer := NewSigner([]byte("secret"), "comply", time.Hour)

	_, err := signer.Verify("definitely.not.a-jwt")
	require.ErrorIs(t, err, ErrMalformed)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/clausehq/comply/pkg/tokenx"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)

	signer := tokenx.NewSigner([]byte("test-secret"), "comply", time.Hour)
	svc := &AuthService{Store: st, Signer: signer}

	t.Run("valid credentials return the member and a session token", func(t *testing.T) {
		member, session, err := svc.Login(ctx, "admin@acme.example", "correct horse")
		require.NoError(t, err)
		require.Equal(t, adminID, member.ID)
		require.Equal(t, orgID, member.OrganisationID)

		claims, err := signer.Verify(session)
		require.NoError(t, err)
		require.Equal(t, adminID, claims.Subject)
		require.Equal(t, orgID, claims.OrganisationID)
		require.Equal(t, "admin", claims.Role)
	})

	t.Run("email lookup is case and whitespace insensitive", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "  ADMIN@Acme.Example ", "correct horse")
		require.NoError(t, err)
	})

	t.Run("wrong password and unknown email are indistinguishable", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "admin@acme.example", "wrong password")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "nobody@acme.example", "correct horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("empty credentials are refused", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "", "correct horse")
		require.ErrorIs(t, err, ErrInvalidCredentials)

		_, _, err = svc.Login(ctx, "admin@acme.example", "")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

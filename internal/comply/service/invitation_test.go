package service

import (
	"context"
	"testing"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/internal/comply/store/drivers/sqlite"
	"github.com/clausehq/comply/pkg/cryptox"
	"github.com/clausehq/comply/pkg/idx"
	"github.com/stretchr/testify/require"
)

// newTestStore opens an in-memory database with migrations applied and an
// organisation plus one admin seeded.
func newTestStore(t *testing.T) (*sqlite.Store, string, string) {
	t.Helper()
	ctx := context.Background()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	now := time.Now().UTC()
	orgID := idx.New().String()
	require.NoError(t, st.Organisations().CreateOrganisation(ctx, domain.Organisation{
		ID:        orgID,
		Name:      "Acme Training",
		CreatedAt: now,
		UpdatedAt: now,
	}))

	adminID := idx.New().String()
	hash, err := cryptox.HashPassword("correct horse")
	require.NoError(t, err)
	require.NoError(t, st.Accounts().CreateAccount(ctx, domain.Account{
		ID:           adminID,
		Email:        "admin@acme.example",
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}))
	require.NoError(t, st.Members().CreateMember(ctx, domain.Member{
		ID:             adminID,
		OrganisationID: orgID,
		Email:          "admin@acme.example",
		Role:           domain.RoleAdmin,
		CreatedAt:      now,
		UpdatedAt:      now,
	}))

	return st, orgID, adminID
}

func TestIssueInvitation(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	svc := &InvitationService{Store: st, Now: func() time.Time { return base }}

	t.Run("issues a pending invitation with default expiry", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "new.hire@acme.example", orgID, adminID)
		require.NoError(t, err)
		require.NotEmpty(t, inv.Token)
		require.Nil(t, inv.AcceptedAt)
		require.Equal(t, base.Add(7*24*time.Hour), inv.ExpiresAt)
		require.Equal(t, orgID, inv.OrganisationID)
		require.Equal(t, adminID, inv.InvitedBy)
	})

	t.Run("normalises the email", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "  Mixed.Case@Acme.Example ", orgID, adminID)
		require.NoError(t, err)
		require.Equal(t, "mixed.case@acme.example", inv.Email)
	})

	t.Run("rejects malformed emails", func(t *testing.T) {
		_, err := svc.IssueInvitation(ctx, "not-an-email", orgID, adminID)
		require.ErrorIs(t, err, ErrInvalidEmail)

		_, err = svc.IssueInvitation(ctx, "", orgID, adminID)
		require.ErrorIs(t, err, ErrInvalidEmail)
	})

	t.Run("rejects emails that already hold an account", func(t *testing.T) {
		_, err := svc.IssueInvitation(ctx, "admin@acme.example", orgID, adminID)
		require.ErrorIs(t, err, ErrAccountExists)
	})

	t.Run("honours a configured TTL", func(t *testing.T) {
		short := &InvitationService{Store: st, TTL: time.Hour, Now: func() time.Time { return base }}
		inv, err := short.IssueInvitation(ctx, "short.lived@acme.example", orgID, adminID)
		require.NoError(t, err)
		require.Equal(t, base.Add(time.Hour), inv.ExpiresAt)
	})

	t.Run("tokens are unique across invitations", func(t *testing.T) {
		a, err := svc.IssueInvitation(ctx, "uniq.a@acme.example", orgID, adminID)
		require.NoError(t, err)
		b, err := svc.IssueInvitation(ctx, "uniq.b@acme.example", orgID, adminID)
		require.NoError(t, err)
		require.NotEqual(t, a.Token, b.Token)
	})
}

func TestValidateInvitation(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	svc := &InvitationService{Store: st, Now: func() time.Time { return clock }}

	inv, err := svc.IssueInvitation(ctx, "validate.me@acme.example", orgID, adminID)
	require.NoError(t, err)

	t.Run("valid token resolves its invitation", func(t *testing.T) {
		got, err := svc.ValidateInvitation(ctx, inv.Token)
		require.NoError(t, err)
		require.Equal(t, inv.ID, got.ID)
		require.Equal(t, "validate.me@acme.example", got.Email)
	})

	t.Run("validation does not consume", func(t *testing.T) {
		for range 3 {
			_, err := svc.ValidateInvitation(ctx, inv.Token)
			require.NoError(t, err)
		}
	})

	t.Run("unknown and empty tokens are indistinguishable", func(t *testing.T) {
		_, err := svc.ValidateInvitation(ctx, "no-such-token")
		require.ErrorIs(t, err, ErrInvalidInvitation)

		_, err = svc.ValidateInvitation(ctx, "")
		require.ErrorIs(t, err, ErrInvalidInvitation)
	})

	t.Run("expiry boundary is strict", func(t *testing.T) {
		// One instant before expiry: still valid.
		clock = inv.ExpiresAt.Add(-time.Millisecond)
		_, err := svc.ValidateInvitation(ctx, inv.Token)
		require.NoError(t, err)

		// Exactly at expiry: already invalid.
		clock = inv.ExpiresAt
		_, err = svc.ValidateInvitation(ctx, inv.Token)
		require.ErrorIs(t, err, ErrInvalidInvitation)

		clock = inv.ExpiresAt.Add(time.Hour)
		_, err = svc.ValidateInvitation(ctx, inv.Token)
		require.ErrorIs(t, err, ErrInvalidInvitation)
	})
}

func TestAcceptInvitation(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	svc := &InvitationService{Store: st, Now: func() time.Time { return clock }}

	t.Run("creates account, member and consumes the invitation", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "joiner@acme.example", orgID, adminID)
		require.NoError(t, err)

		member, err := svc.AcceptInvitation(ctx, inv.Token, "Jo Iner", "+61 400 111 222", "hunter22", "hunter22")
		require.NoError(t, err)
		require.Equal(t, orgID, member.OrganisationID)
		require.Equal(t, "joiner@acme.example", member.Email)
		require.Equal(t, domain.RoleMember, member.Role)
		require.Equal(t, "Jo Iner", member.FullName)
		require.Equal(t, "+61 400 111 222", member.PhoneNumber)

		// The account exists and the password verifies.
		account, err := st.Accounts().GetAccountByEmail(ctx, "joiner@acme.example")
		require.NoError(t, err)
		require.Equal(t, member.ID, account.ID)
		require.NoError(t, cryptox.VerifyPassword("hunter22", account.PasswordHash))

		// The invitation row is consumed, not deleted.
		list, err := st.Invitations().ListInvitations(ctx, orgID)
		require.NoError(t, err)
		var found bool
		for _, row := range list {
			if row.ID == inv.ID {
				found = true
				require.NotNil(t, row.AcceptedAt)
				require.Equal(t, clock, row.AcceptedAt.UTC())
			}
		}
		require.True(t, found)
	})

	t.Run("consumed token cannot be redeemed or validated again", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "once.only@acme.example", orgID, adminID)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "hunter22", "hunter22")
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "hunter22", "hunter22")
		require.ErrorIs(t, err, ErrInvalidInvitation)

		_, err = svc.ValidateInvitation(ctx, inv.Token)
		require.ErrorIs(t, err, ErrInvalidInvitation)
	})

	t.Run("password checks precede token checks", func(t *testing.T) {
		// Even a garbage token reports the password problem first, so the
		// error cannot be used to probe tokens.
		_, err := svc.AcceptInvitation(ctx, "garbage", "", "", "hunter22", "different")
		require.ErrorIs(t, err, ErrPasswordMismatch)

		_, err = svc.AcceptInvitation(ctx, "garbage", "", "", "tiny", "tiny")
		require.ErrorIs(t, err, ErrPasswordTooShort)
	})

	t.Run("failed password checks leave the invitation pending", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "fat.fingers@acme.example", orgID, adminID)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "hunter22", "hunter23")
		require.ErrorIs(t, err, ErrPasswordMismatch)

		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "12345", "12345")
		require.ErrorIs(t, err, ErrPasswordTooShort)

		// Still redeemable after any number of failed attempts.
		member, err := svc.AcceptInvitation(ctx, inv.Token, "", "", "hunter22", "hunter22")
		require.NoError(t, err)
		require.Equal(t, domain.RoleMember, member.Role)
	})

	t.Run("exactly six characters is accepted", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "six.chars@acme.example", orgID, adminID)
		require.NoError(t, err)

		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "123456", "123456")
		require.NoError(t, err)
	})

	t.Run("expired token cannot be redeemed", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "too.slow@acme.example", orgID, adminID)
		require.NoError(t, err)

		clock = inv.ExpiresAt
		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "hunter22", "hunter22")
		require.ErrorIs(t, err, ErrInvalidInvitation)
		clock = base
	})

	t.Run("failed redemption leaves no orphaned account", func(t *testing.T) {
		inv, err := svc.IssueInvitation(ctx, "racer@acme.example", orgID, adminID)
		require.NoError(t, err)

		// Simulate losing the consumption race: consume the row out from
		// under the redemption after it has resolved the token.
		require.NoError(t, st.Invitations().MarkInvitationAccepted(ctx, inv.ID, clock))

		_, err = svc.AcceptInvitation(ctx, inv.Token, "", "", "hunter22", "hunter22")
		require.ErrorIs(t, err, ErrInvalidInvitation)

		_, err = st.Accounts().GetAccountByEmail(ctx, "racer@acme.example")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestListInvitationsKeepsAudit(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := base
	svc := &InvitationService{Store: st, Now: func() time.Time { return clock }}

	pending, err := svc.IssueInvitation(ctx, "pending@acme.example", orgID, adminID)
	require.NoError(t, err)

	consumed, err := svc.IssueInvitation(ctx, "consumed@acme.example", orgID, adminID)
	require.NoError(t, err)
	_, err = svc.AcceptInvitation(ctx, consumed.Token, "", "", "hunter22", "hunter22")
	require.NoError(t, err)

	// Expired rows stay listed too.
	clock = base.Add(30 * 24 * time.Hour)
	list, err := svc.ListInvitations(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	byID := map[string]domain.Invitation{}
	for _, row := range list {
		byID[row.ID] = row
	}
	require.Nil(t, byID[pending.ID].AcceptedAt)
	require.False(t, byID[pending.ID].Redeemable(clock)) // expired by now
	require.NotNil(t, byID[consumed.ID].AcceptedAt)
}

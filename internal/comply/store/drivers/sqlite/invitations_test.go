package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/idx"
	"github.com/stretchr/testify/require"
)

func newMigratedStore(t *testing.T) (*Store, string) {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	now := time.Now().UTC()
	orgID := idx.New().String()
	require.NoError(t, st.Organisations().CreateOrganisation(context.Background(), domain.Organisation{
		ID:        orgID,
		Name:      "Acme Training",
		CreatedAt: now,
		UpdatedAt: now,
	}))
	return st, orgID
}

func seedInvitation(t *testing.T, st *Store, orgID string, token string, expiresAt time.Time) domain.Invitation {
	t.Helper()

	now := time.Now().UTC()
	inv := domain.Invitation{
		ID:             idx.New().String(),
		Email:          "invitee@acme.example",
		OrganisationID: orgID,
		InvitedBy:      idx.New().String(),
		Token:          token,
		ExpiresAt:      expiresAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	require.NoError(t, st.Invitations().CreateInvitation(context.Background(), inv))
	return inv
}

func TestInvitationTokenUniqueness(t *testing.T) {
	ctx := context.Background()
	st, orgID := newMigratedStore(t)

	seedInvitation(t, st, orgID, "token-one", time.Now().Add(time.Hour))

	dup := domain.Invitation{
		ID:             idx.New().String(),
		Email:          "other@acme.example",
		OrganisationID: orgID,
		InvitedBy:      idx.New().String(),
		Token:          "token-one",
		ExpiresAt:      time.Now().Add(time.Hour),
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
	require.ErrorIs(t, st.Invitations().CreateInvitation(ctx, dup), store.ErrAlreadyExists)
}

func TestGetPendingInvitationByToken(t *testing.T) {
	ctx := context.Background()
	st, orgID := newMigratedStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := seedInvitation(t, st, orgID, "pending-token", now.Add(time.Hour))

	t.Run("returns a pending unexpired invitation", func(t *testing.T) {
		got, err := st.Invitations().GetPendingInvitationByToken(ctx, "pending-token", now)
		require.NoError(t, err)
		require.Equal(t, inv.ID, got.ID)
		require.Nil(t, got.AcceptedAt)
	})

	t.Run("expiry is exclusive at the boundary", func(t *testing.T) {
		_, err := st.Invitations().GetPendingInvitationByToken(ctx, "pending-token", inv.ExpiresAt.Add(-time.Millisecond))
		require.NoError(t, err)

		_, err = st.Invitations().GetPendingInvitationByToken(ctx, "pending-token", inv.ExpiresAt)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("unknown token is not found", func(t *testing.T) {
		_, err := st.Invitations().GetPendingInvitationByToken(ctx, "nope", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("consumed invitation is not found", func(t *testing.T) {
		require.NoError(t, st.Invitations().MarkInvitationAccepted(ctx, inv.ID, now))
		_, err := st.Invitations().GetPendingInvitationByToken(ctx, "pending-token", now)
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestMarkInvitationAcceptedIsSingleUse(t *testing.T) {
	ctx := context.Background()
	st, orgID := newMigratedStore(t)

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	inv := seedInvitation(t, st, orgID, "one-shot", now.Add(time.Hour))

	require.NoError(t, st.Invitations().MarkInvitationAccepted(ctx, inv.ID, now))

	// The second consumption attempt must lose.
	err := st.Invitations().MarkInvitationAccepted(ctx, inv.ID, now.Add(time.Minute))
	require.ErrorIs(t, err, store.ErrNotFound)

	// And the first accepted_at stands.
	list, err := st.Invitations().ListInvitations(ctx, orgID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].AcceptedAt)
	require.Equal(t, now, list[0].AcceptedAt.UTC())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st, orgID := newMigratedStore(t)

	now := time.Now().UTC()
	inv := seedInvitation(t, st, orgID, "tx-token", now.Add(time.Hour))

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().MarkInvitationAccepted(ctx, inv.ID, now); err != nil {
			return err
		}
		return context.Canceled // force rollback
	})
	require.ErrorIs(t, err, context.Canceled)

	// The consumption was rolled back; the invitation is still pending.
	got, err := st.Invitations().GetPendingInvitationByToken(ctx, "tx-token", now)
	require.NoError(t, err)
	require.Nil(t, got.AcceptedAt)
}

package service

import (
	"context"
	"testing"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/pkg/idx"
	"github.com/stretchr/testify/require"
)

// seedMember inserts a bare member row without an account, enough for role
// and removal tests.
func seedMember(t *testing.T, svc *MemberService, orgID string, role domain.Role) string {
	t.Helper()
	ctx := context.Background()

	now := time.Now().UTC()
	id := idx.New().String()
	require.NoError(t, svc.Store.Members().CreateMember(ctx, domain.Member{
		ID:             id,
		OrganisationID: orgID,
		Email:          id + "@acme.example",
		Role:           role,
		CreatedAt:      now,
		UpdatedAt:      now,
	}))
	return id
}

func TestChangeRole(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)
	svc := &MemberService{Store: st}

	t.Run("promotes a member to admin", func(t *testing.T) {
		id := seedMember(t, svc, orgID, domain.RoleMember)
		require.NoError(t, svc.ChangeRole(ctx, id, orgID, domain.RoleAdmin))

		m, err := svc.GetMember(ctx, id, orgID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, m.Role)

		// Demoting is fine while another admin remains.
		require.NoError(t, svc.ChangeRole(ctx, id, orgID, domain.RoleMember))
	})

	t.Run("refuses to demote the last admin", func(t *testing.T) {
		err := svc.ChangeRole(ctx, adminID, orgID, domain.RoleMember)
		require.ErrorIs(t, err, ErrLastAdmin)

		m, err := svc.GetMember(ctx, adminID, orgID)
		require.NoError(t, err)
		require.Equal(t, domain.RoleAdmin, m.Role)
	})

	t.Run("rejects unknown roles", func(t *testing.T) {
		id := seedMember(t, svc, orgID, domain.RoleMember)
		err := svc.ChangeRole(ctx, id, orgID, domain.Role("owner"))
		require.ErrorIs(t, err, ErrInvalidRole)
	})

	t.Run("cross-organisation changes look like missing members", func(t *testing.T) {
		id := seedMember(t, svc, orgID, domain.RoleMember)
		err := svc.ChangeRole(ctx, id, idx.New().String(), domain.RoleAdmin)
		require.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestRemoveMember(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)
	svc := &MemberService{Store: st}

	t.Run("removes an ordinary member", func(t *testing.T) {
		id := seedMember(t, svc, orgID, domain.RoleMember)
		require.NoError(t, svc.RemoveMember(ctx, id, orgID))

		_, err := svc.GetMember(ctx, id, orgID)
		require.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("refuses to remove the last admin", func(t *testing.T) {
		err := svc.RemoveMember(ctx, adminID, orgID)
		require.ErrorIs(t, err, ErrLastAdmin)
	})

	t.Run("removes an admin once another exists", func(t *testing.T) {
		second := seedMember(t, svc, orgID, domain.RoleAdmin)
		require.NoError(t, svc.RemoveMember(ctx, second, orgID))
	})
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	st, orgID, adminID := newTestStore(t)
	svc := &MemberService{Store: st}

	require.NoError(t, svc.UpdateProfile(ctx, adminID, orgID, "Ada Admin", "+61 400 000 000"))

	m, err := svc.GetMember(ctx, adminID, orgID)
	require.NoError(t, err)
	require.Equal(t, "Ada Admin", m.FullName)
	require.Equal(t, "+61 400 000 000", m.PhoneNumber)

	err = svc.UpdateProfile(ctx, adminID, idx.New().String(), "Someone Else", "")
	require.ErrorIs(t, err, ErrMemberNotFound)
}

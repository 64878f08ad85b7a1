package comply_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/stretchr/testify/require"
)

// TestInvitationLifecycle walks the whole membership flow: bootstrap, issue
// an invitation, validate it, accept it, and verify the new member's access.
func TestInvitationLifecycle(t *testing.T) {
	baseURL, cleanup := setupComplyContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := complysdk.NewClient(baseURL)
	admin := bootstrapAndLogin(t, client)

	// Issue an invitation.
	sent, err := admin.SendInvitation(ctx, "new.member@acme.example")
	require.NoError(t, err)
	require.True(t, sent.Success)
	require.True(t, strings.HasPrefix(sent.InvitationURL, "http://app.local/accept-invitation?token="))

	token := invitationToken(t, sent.InvitationURL)

	// Validate without consuming, repeatedly.
	for range 2 {
		validated, err := client.ValidateInvitation(ctx, token)
		require.NoError(t, err)
		require.True(t, validated.Valid)
		require.Equal(t, "new.member@acme.example", validated.Email)
		require.Equal(t, organisationName, validated.OrganisationName)
	}

	// The invitation shows as pending in the admin list.
	list, err := admin.ListInvitations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "pending", list[0].Status)

	// Accept it; the response logs the member in.
	member, err := client.AcceptInvitation(ctx, complysdk.AcceptInvitationRequest{
		Token:           token,
		FullName:        "Nelly Newcomer",
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	require.NoError(t, err)
	require.Equal(t, "member", member.Member().Role)
	require.Equal(t, "new.member@acme.example", member.Member().Email)

	// The session works against the authenticated surface.
	me, err := member.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, "Nelly Newcomer", me.FullName)

	// Both members are visible in the organisation.
	members, err := admin.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, members, 2)

	// The invitation is consumed, not deleted.
	list, err = admin.ListInvitations(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "accepted", list[0].Status)

	// A consumed token can be neither validated nor accepted again.
	_, err = client.ValidateInvitation(ctx, token)
	require.True(t, complysdk.IsStatus(err, http.StatusNotFound))

	_, err = client.AcceptInvitation(ctx, complysdk.AcceptInvitationRequest{
		Token:           token,
		Password:        "hunter22",
		ConfirmPassword: "hunter22",
	})
	require.True(t, complysdk.IsStatus(err, http.StatusNotFound))

	// The new member can log in with the chosen password.
	relogin, err := client.Login(ctx, "new.member@acme.example", "hunter22")
	require.NoError(t, err)
	require.Equal(t, me.ID, relogin.Member().ID)
}

func TestInvitationRefusals(t *testing.T) {
	baseURL, cleanup := setupComplyContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := complysdk.NewClient(baseURL)
	admin := bootstrapAndLogin(t, client)

	t.Run("unknown token is refused without detail", func(t *testing.T) {
		_, err := client.ValidateInvitation(ctx, "definitely-not-a-token")
		require.True(t, complysdk.IsStatus(err, http.StatusNotFound))
	})

	t.Run("password mismatch and weak password", func(t *testing.T) {
		sent, err := admin.SendInvitation(ctx, "careful@acme.example")
		require.NoError(t, err)
		token := invitationToken(t, sent.InvitationURL)

		_, err = client.AcceptInvitation(ctx, complysdk.AcceptInvitationRequest{
			Token:           token,
			Password:        "hunter22",
			ConfirmPassword: "hunter23",
		})
		require.True(t, complysdk.IsStatus(err, http.StatusBadRequest))

		_, err = client.AcceptInvitation(ctx, complysdk.AcceptInvitationRequest{
			Token:           token,
			Password:        "tiny",
			ConfirmPassword: "tiny",
		})
		require.True(t, complysdk.IsStatus(err, http.StatusBadRequest))

		// The failures above burned nothing; acceptance still works.
		_, err = client.AcceptInvitation(ctx, complysdk.AcceptInvitationRequest{
			Token:           token,
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		require.NoError(t, err)
	})

	t.Run("existing account cannot be invited", func(t *testing.T) {
		_, err := admin.SendInvitation(ctx, adminEmail)
		require.True(t, complysdk.IsStatus(err, http.StatusConflict))
	})

	t.Run("non-admin cannot issue invitations", func(t *testing.T) {
		sent, err := admin.SendInvitation(ctx, "plain.member@acme.example")
		require.NoError(t, err)

		member, err := client.AcceptInvitation(ctx, complysdk.AcceptInvitationRequest{
			Token:           invitationToken(t, sent.InvitationURL),
			Password:        "hunter22",
			ConfirmPassword: "hunter22",
		})
		require.NoError(t, err)

		_, err = member.SendInvitation(ctx, "friend@acme.example")
		require.True(t, complysdk.IsStatus(err, http.StatusForbidden))
	})
}

func TestBootstrapIsSingleUse(t *testing.T) {
	baseURL, cleanup := setupComplyContainer(t)
	defer cleanup()

	ctx := t.Context()
	client := complysdk.NewClient(baseURL)
	bootstrapAndLogin(t, client)

	_, err := client.Bootstrap(ctx, complysdk.BootstrapRequest{
		BootstrapToken:   bootstrapToken,
		OrganisationName: "Second Org",
		AdminEmail:       "other@acme.example",
		AdminPassword:    "Admin123!",
	})
	require.True(t, complysdk.IsStatus(err, http.StatusConflict))
}

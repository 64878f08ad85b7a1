package http

import (
	"net/http"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type InvitationListHandler struct {
	InvitationService *service.InvitationService
}

// ServeHTTP godoc
//
//	@Summary		List Invitations Endpoint
//	@Description	List the organisation's invitations, newest first, including consumed and expired ones. Admin only.
//	@Tags			Invitations
//	@Produce		json
//	@Success		200	{array}		complysdk.Invitation	"invitations"
//	@Failure		500	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/invitations [get].
func (h *InvitationListHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	invitations, err := h.InvitationService.ListInvitations(ctx, id.OrganisationID)
	if err != nil {
		log.Error("failed to list invitations", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list invitations")
		return
	}

	now := time.Now().UTC()
	out := make([]complysdk.Invitation, 0, len(invitations))
	for _, inv := range invitations {
		out = append(out, complysdk.Invitation{
			ID:        inv.ID,
			Email:     inv.Email,
			InvitedBy: inv.InvitedBy,
			Status:    invitationStatus(inv, now),
			ExpiresAt: inv.ExpiresAt.UTC().Format(time.RFC3339),
			CreatedAt: inv.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	httpx.WriteJSON(w, http.StatusOK, out)
}

// invitationStatus classifies an invitation row at read time. Consumption
// wins over expiry: a row accepted before its deadline stays "accepted"
// forever.
func invitationStatus(inv domain.Invitation, now time.Time) string {
	switch {
	case inv.AcceptedAt != nil:
		return "accepted"
	case !now.Before(inv.ExpiresAt):
		return "expired"
	default:
		return "pending"
	}
}

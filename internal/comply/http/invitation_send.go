package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type InvitationSendHandler struct {
	InvitationService *service.InvitationService

	// AppOrigin is the base URL of the web app the acceptance link points
	// into.
	AppOrigin string
}

// ServeHTTP godoc
//
//	@Summary		Send Invitation Endpoint
//	@Description	Issue a single-use invitation for an email address to join the caller's organisation. Admin only.
//	@Description	The response carries the acceptance URL; the service does not deliver it anywhere itself.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		complysdk.SendInvitationRequest		true	"Invitation request"
//	@Success		200		{object}	complysdk.SendInvitationResponse	"success, invitationUrl, message"
//	@Failure		400		{object}	complysdk.ErrorResponse				"error"
//	@Failure		409		{object}	complysdk.ErrorResponse				"error"
//	@Failure		500		{object}	complysdk.ErrorResponse				"error"
//	@Security		BearerAuth
//	@Router			/v1/invitations [post].
func (h *InvitationSendHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req complysdk.SendInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	inv, err := h.InvitationService.IssueInvitation(ctx, req.Email, id.OrganisationID, id.MemberID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			writeError(w, http.StatusBadRequest, "a valid email address is required")
		case errors.Is(err, service.ErrAccountExists):
			writeError(w, http.StatusConflict, "an account with this email already exists")
		default:
			log.Error("failed to issue invitation", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to create invitation")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, complysdk.SendInvitationResponse{
		Success:       true,
		InvitationURL: h.AppOrigin + "/accept-invitation?token=" + url.QueryEscape(inv.Token),
		Message:       "Invitation created for " + inv.Email,
	})
}

package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type InvitationValidateHandler struct {
	InvitationService   *service.InvitationService
	OrganisationService *service.OrganisationService
}

// ServeHTTP godoc
//
//	@Summary		Validate Invitation Endpoint
//	@Description	Check whether an invitation token is still redeemable. Validation never consumes the invitation.
//	@Description	Every refusal returns the same response; the endpoint does not say whether a token was unknown, expired or already used.
//	@Tags			Invitations
//	@Produce		json
//	@Param			token	query		string									true	"Invitation token"
//	@Success		200		{object}	complysdk.ValidateInvitationResponse	"valid, email, organisationName, expiresAt"
//	@Failure		404		{object}	complysdk.ErrorResponse					"error"
//	@Failure		500		{object}	complysdk.ErrorResponse					"error"
//	@Router			/v1/invitations/validate [get].
func (h *InvitationValidateHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token := r.URL.Query().Get("token")

	inv, err := h.InvitationService.ValidateInvitation(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidInvitation) {
			writeError(w, http.StatusNotFound, "invitation is invalid or has expired")
			return
		}
		log.Error("failed to validate invitation", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to validate invitation")
		return
	}

	// The organisation name personalises the acceptance page.
	orgName := ""
	if org, err := h.OrganisationService.GetOrganisation(ctx, inv.OrganisationID); err == nil {
		orgName = org.Name
	}

	httpx.WriteJSON(w, http.StatusOK, complysdk.ValidateInvitationResponse{
		Valid:            true,
		Email:            inv.Email,
		OrganisationName: orgName,
		ExpiresAt:        inv.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

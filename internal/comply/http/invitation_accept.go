package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
	"github.com/clausehq/comply/pkg/tokenx"
)

type InvitationAcceptHandler struct {
	InvitationService *service.InvitationService
	Signer            *tokenx.Signer
}

// ServeHTTP godoc
//
//	@Summary		Accept Invitation Endpoint
//	@Description	Redeem an invitation token: set a password, create the account and join the organisation as a standard member.
//	@Description	On success the new member is logged straight in.
//	@Tags			Invitations
//	@Accept			json
//	@Produce		json
//	@Param			request	body		complysdk.AcceptInvitationRequest	true	"Acceptance request"
//	@Success		200		{object}	complysdk.AcceptInvitationResponse	"token, member"
//	@Failure		400		{object}	complysdk.ErrorResponse				"error"
//	@Failure		404		{object}	complysdk.ErrorResponse				"error"
//	@Failure		409		{object}	complysdk.ErrorResponse				"error"
//	@Failure		500		{object}	complysdk.ErrorResponse				"error"
//	@Router			/v1/invitations/accept [post].
func (h *InvitationAcceptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req complysdk.AcceptInvitationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	member, err := h.InvitationService.AcceptInvitation(ctx, req.Token, req.FullName, req.PhoneNumber, req.Password, req.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPasswordMismatch):
			writeError(w, http.StatusBadRequest, "passwords do not match")
		case errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		case errors.Is(err, service.ErrInvalidInvitation):
			writeError(w, http.StatusNotFound, "invitation is invalid or has expired")
		case errors.Is(err, service.ErrAccountExists):
			writeError(w, http.StatusConflict, "an account with this email already exists")
		default:
			log.Error("failed to accept invitation", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to accept invitation")
		}
		return
	}

	session, err := h.Signer.Sign(member.ID, member.Email, member.OrganisationID, string(member.Role), time.Now().UTC())
	if err != nil {
		log.Error("failed to sign session token", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, complysdk.AcceptInvitationResponse{
		Token:  session,
		Member: toSDKMember(member),
	})
}

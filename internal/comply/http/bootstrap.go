package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type BootstrapHandler struct {
	BootstrapService *service.BootstrapService
}

// ServeHTTP godoc
//
//	@Summary		Bootstrap Endpoint
//	@Description	Create the first organisation and its admin. Requires the pre-configured bootstrap token and succeeds at most once.
//	@Tags			System
//	@Accept			json
//	@Produce		json
//	@Param			request	body		complysdk.BootstrapRequest	true	"Bootstrap request"
//	@Success		200		{object}	complysdk.BootstrapResponse	"organisationId, adminMemberId"
//	@Failure		400		{object}	complysdk.ErrorResponse		"error"
//	@Failure		401		{object}	complysdk.ErrorResponse		"error"
//	@Failure		409		{object}	complysdk.ErrorResponse		"error"
//	@Router			/v1/bootstrap [post].
func (h *BootstrapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req complysdk.BootstrapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	organisationID, adminID, err := h.BootstrapService.Bootstrap(ctx, req.BootstrapToken, service.BootstrapData{
		OrganisationName: req.OrganisationName,
		AdminEmail:       req.AdminEmail,
		AdminFullName:    req.AdminFullName,
		AdminPassword:    req.AdminPassword,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrBootstrapAlready):
			writeError(w, http.StatusConflict, "system already bootstrapped")
		case errors.Is(err, service.ErrBootstrapUnauthorized):
			writeError(w, http.StatusUnauthorized, "invalid bootstrap token")
		case errors.Is(err, service.ErrBootstrapInvalid):
			writeError(w, http.StatusBadRequest, "organisation name and admin email are required")
		case errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		default:
			log.Error("bootstrap failed", "err", err)
			writeError(w, http.StatusInternalServerError, "bootstrap failed")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusOK, complysdk.BootstrapResponse{
		OrganisationID: organisationID,
		AdminMemberID:  adminID,
	})
}

package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type OrganisationHandler struct {
	OrganisationService *service.OrganisationService
}

// HandleGet godoc
//
//	@Summary		Get Organisation Endpoint
//	@Description	Fetch the caller's organisation settings
//	@Tags			Organisation
//	@Produce		json
//	@Success		200	{object}	complysdk.Organisation	"organisation"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/organisation [get].
func (h *OrganisationHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	org, err := h.OrganisationService.GetOrganisation(ctx, id.OrganisationID)
	if err != nil {
		if errors.Is(err, service.ErrOrganisationNotFound) {
			writeError(w, http.StatusNotFound, "organisation not found")
			return
		}
		log.Error("failed to fetch organisation", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to fetch organisation")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, complysdk.Organisation{
		ID:            org.ID,
		Name:          org.Name,
		ContactEmail:  org.ContactEmail,
		ContactNumber: org.ContactNumber,
		BrandingColor: org.BrandingColor,
		RTOID:         org.RTOID,
	})
}

// HandleUpdate godoc
//
//	@Summary		Update Organisation Endpoint
//	@Description	Replace the organisation's settings. Admin only.
//	@Tags			Organisation
//	@Accept			json
//	@Produce		json
//	@Param			request	body	complysdk.UpdateOrganisationRequest	true	"New settings"
//	@Success		204
//	@Failure		400	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/organisation [put].
func (h *OrganisationHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.UpdateOrganisationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.OrganisationService.UpdateSettings(ctx, domain.Organisation{
		ID:            id.OrganisationID,
		Name:          req.Name,
		ContactEmail:  req.ContactEmail,
		ContactNumber: req.ContactNumber,
		BrandingColor: req.BrandingColor,
		RTOID:         req.RTOID,
	})
	if err != nil {
		if errors.Is(err, service.ErrInvalidOrganisation) {
			writeError(w, http.StatusBadRequest, "organisation name is required")
			return
		}
		log.Error("failed to update organisation", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update organisation")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

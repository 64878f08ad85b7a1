package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type StandardsHandler struct {
	StandardService *service.StandardService
}

func toSDKStandard(s domain.Standard) complysdk.Standard {
	return complysdk.Standard{
		ID:          s.ID,
		Clause:      s.Clause,
		Description: s.Description,
		CreatedAt:   s.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// HandleList godoc
//
//	@Summary		List Standards Endpoint
//	@Description	List the organisation's standard clauses, ordered by clause
//	@Tags			Standards
//	@Produce		json
//	@Success		200	{array}		complysdk.Standard		"standards"
//	@Failure		500	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/standards [get].
func (h *StandardsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	standards, err := h.StandardService.ListStandards(ctx, id.OrganisationID)
	if err != nil {
		log.Error("failed to list standards", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list standards")
		return
	}

	out := make([]complysdk.Standard, 0, len(standards))
	for _, s := range standards {
		out = append(out, toSDKStandard(s))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary		Create Standard Endpoint
//	@Description	Add a standard clause to the organisation. Admin only.
//	@Tags			Standards
//	@Accept			json
//	@Produce		json
//	@Param			request	body		complysdk.StandardRequest	true	"Standard"
//	@Success		201		{object}	complysdk.Standard			"standard"
//	@Failure		400		{object}	complysdk.ErrorResponse		"error"
//	@Security		BearerAuth
//	@Router			/v1/standards [post].
func (h *StandardsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.StandardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	std, err := h.StandardService.CreateStandard(ctx, id.OrganisationID, req.Clause, req.Description)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStandard) {
			writeError(w, http.StatusBadRequest, "standard clause is required")
			return
		}
		log.Error("failed to create standard", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to create standard")
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSDKStandard(std))
}

// HandleUpdate godoc
//
//	@Summary		Update Standard Endpoint
//	@Description	Update a standard clause. Admin only.
//	@Tags			Standards
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Standard ID"
//	@Param			request	body	complysdk.StandardRequest	true	"Standard"
//	@Success		204
//	@Failure		400	{object}	complysdk.ErrorResponse	"error"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/standards/{id} [put].
func (h *StandardsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.StandardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.StandardService.UpdateStandard(ctx, domain.Standard{
		ID:             r.PathValue("id"),
		OrganisationID: id.OrganisationID,
		Clause:         req.Clause,
		Description:    req.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStandard):
			writeError(w, http.StatusBadRequest, "standard clause is required")
		case errors.Is(err, service.ErrStandardNotFound):
			writeError(w, http.StatusNotFound, "standard not found")
		default:
			log.Error("failed to update standard", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to update standard")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete Standard Endpoint
//	@Description	Delete a standard clause. Admin only.
//	@Tags			Standards
//	@Produce		json
//	@Param			id	path	string	true	"Standard ID"
//	@Success		204
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/standards/{id} [delete].
func (h *StandardsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	err := h.StandardService.DeleteStandard(ctx, r.PathValue("id"), id.OrganisationID)
	if err != nil {
		if errors.Is(err, service.ErrStandardNotFound) {
			writeError(w, http.StatusNotFound, "standard not found")
			return
		}
		log.Error("failed to delete standard", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete standard")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

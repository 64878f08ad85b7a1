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

type RecordsHandler struct {
	RecordService *service.RecordService
}

func toSDKRecord(rec domain.Record) complysdk.Record {
	out := complysdk.Record{
		ID:                rec.ID,
		ComplianceItem:    rec.ComplianceItem,
		StandardClause:    rec.StandardClause,
		ResponsiblePerson: rec.ResponsiblePerson,
		ComplianceStatus:  rec.ComplianceStatus,
		ReviewStatus:      rec.ReviewStatus,
		Notes:             rec.Notes,
		FileName:          rec.FileName,
		HasEvidence:       rec.FilePath != "",
		CreatedAt:         rec.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:         rec.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if rec.NextReviewDate != nil {
		out.NextReviewDate = rec.NextReviewDate.UTC().Format(time.RFC3339)
	}
	return out
}

func recordFromRequest(req complysdk.RecordRequest) (domain.Record, error) {
	rec := domain.Record{
		ComplianceItem:    req.ComplianceItem,
		StandardClause:    req.StandardClause,
		ResponsiblePerson: req.ResponsiblePerson,
		ComplianceStatus:  req.ComplianceStatus,
		ReviewStatus:      req.ReviewStatus,
		Notes:             req.Notes,
	}
	if req.NextReviewDate != "" {
		t, err := time.Parse(time.RFC3339, req.NextReviewDate)
		if err != nil {
			return domain.Record{}, err
		}
		t = t.UTC()
		rec.NextReviewDate = &t
	}
	return rec, nil
}

// HandleList godoc
//
//	@Summary		List Records Endpoint
//	@Description	List the organisation's compliance records, newest first
//	@Tags			Records
//	@Produce		json
//	@Success		200	{array}		complysdk.Record		"records"
//	@Failure		500	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records [get].
func (h *RecordsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	records, err := h.RecordService.ListRecords(ctx, id.OrganisationID)
	if err != nil {
		log.Error("failed to list records", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list records")
		return
	}

	out := make([]complysdk.Record, 0, len(records))
	for _, rec := range records {
		out = append(out, toSDKRecord(rec))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleGet godoc
//
//	@Summary		Get Record Endpoint
//	@Description	Fetch one compliance record
//	@Tags			Records
//	@Produce		json
//	@Param			id	path		string					true	"Record ID"
//	@Success		200	{object}	complysdk.Record		"record"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records/{id} [get].
func (h *RecordsHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	rec, err := h.RecordService.GetRecord(ctx, r.PathValue("id"), id.OrganisationID)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch record")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKRecord(rec))
}

// HandleCreate godoc
//
//	@Summary		Create Record Endpoint
//	@Description	Add a compliance record to the organisation
//	@Tags			Records
//	@Accept			json
//	@Produce		json
//	@Param			request	body		complysdk.RecordRequest	true	"Record"
//	@Success		201		{object}	complysdk.Record		"record"
//	@Failure		400		{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records [post].
func (h *RecordsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := recordFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "nextReviewDate must be RFC 3339")
		return
	}

	created, err := h.RecordService.CreateRecord(ctx, id.OrganisationID, id.MemberID, rec)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecord):
			writeError(w, http.StatusBadRequest, "compliance item and standard clause are required")
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid compliance or review status")
		default:
			log.Error("failed to create record", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to create record")
		}
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toSDKRecord(created))
}

// HandleUpdate godoc
//
//	@Summary		Update Record Endpoint
//	@Description	Update a compliance record's fields. Evidence attachments are managed separately.
//	@Tags			Records
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string					true	"Record ID"
//	@Param			request	body	complysdk.RecordRequest	true	"Record"
//	@Success		204
//	@Failure		400	{object}	complysdk.ErrorResponse	"error"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records/{id} [put].
func (h *RecordsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.RecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	rec, err := recordFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "nextReviewDate must be RFC 3339")
		return
	}
	rec.ID = r.PathValue("id")

	err = h.RecordService.UpdateRecord(ctx, id.OrganisationID, id.MemberID, rec)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRecord):
			writeError(w, http.StatusBadRequest, "compliance item and standard clause are required")
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "invalid compliance or review status")
		case errors.Is(err, service.ErrRecordNotFound):
			writeError(w, http.StatusNotFound, "record not found")
		default:
			log.Error("failed to update record", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to update record")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDelete godoc
//
//	@Summary		Delete Record Endpoint
//	@Description	Delete a compliance record and its evidence file, if any
//	@Tags			Records
//	@Produce		json
//	@Param			id	path	string	true	"Record ID"
//	@Success		204
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records/{id} [delete].
func (h *RecordsHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	err := h.RecordService.DeleteRecord(ctx, r.PathValue("id"), id.OrganisationID)
	if err != nil {
		if errors.Is(err, service.ErrRecordNotFound) {
			writeError(w, http.StatusNotFound, "record not found")
			return
		}
		log.Error("failed to delete record", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to delete record")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

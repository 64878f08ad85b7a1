package http

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/clausehq/comply/internal/comply/evidence"
	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type EvidenceHandler struct {
	RecordService *service.RecordService
}

// HandleUpload godoc
//
//	@Summary		Upload Evidence Endpoint
//	@Description	Attach an evidence file to a compliance record as multipart form data under the "file" field.
//	@Description	Replaces any previously attached file.
//	@Tags			Records
//	@Accept			mpfd
//	@Produce		json
//	@Param			id		path	string	true	"Record ID"
//	@Param			file	formData	file	true	"Evidence file"
//	@Success		204
//	@Failure		400	{object}	complysdk.ErrorResponse	"error"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records/{id}/evidence [post].
func (h *EvidenceHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, evidence.MaxObjectSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field \"file\" is required")
		return
	}
	defer file.Close()

	err = h.RecordService.AttachEvidence(ctx, r.PathValue("id"), id.OrganisationID, header.Filename, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUnsupportedEvidence):
			writeError(w, http.StatusBadRequest, "unsupported evidence file type")
		case errors.Is(err, service.ErrRecordNotFound):
			writeError(w, http.StatusNotFound, "record not found")
		default:
			log.Error("failed to attach evidence", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to attach evidence")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleDownload godoc
//
//	@Summary		Download Evidence Endpoint
//	@Description	Stream a record's evidence file with its original name in the Content-Disposition header
//	@Tags			Records
//	@Produce		octet-stream
//	@Param			id	path	string	true	"Record ID"
//	@Success		200	{file}		file
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/records/{id}/evidence [get].
func (h *EvidenceHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	body, name, err := h.RecordService.OpenEvidence(ctx, r.PathValue("id"), id.OrganisationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrRecordNotFound), errors.Is(err, service.ErrNoEvidence):
			writeError(w, http.StatusNotFound, "no evidence file for this record")
		default:
			log.Error("failed to open evidence", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to open evidence")
		}
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
	httpx.NoCache(w)
	w.WriteHeader(http.StatusOK)
	_, _ = io.Copy(w, body)
}

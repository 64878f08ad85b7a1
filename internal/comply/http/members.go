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

type MembersHandler struct {
	MemberService *service.MemberService
}

// HandleList godoc
//
//	@Summary		List Members Endpoint
//	@Description	List all members of the caller's organisation, oldest first
//	@Tags			Members
//	@Produce		json
//	@Success		200	{array}		complysdk.Member		"members"
//	@Failure		500	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/members [get].
func (h *MembersHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	members, err := h.MemberService.ListMembers(ctx, id.OrganisationID)
	if err != nil {
		log.Error("failed to list members", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list members")
		return
	}

	out := make([]complysdk.Member, 0, len(members))
	for _, m := range members {
		out = append(out, toSDKMember(m))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleMe godoc
//
//	@Summary		Current Member Endpoint
//	@Description	Fetch the caller's own member record
//	@Tags			Members
//	@Produce		json
//	@Success		200	{object}	complysdk.Member		"member"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/members/me [get].
func (h *MembersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	m, err := h.MemberService.GetMember(ctx, id.MemberID, id.OrganisationID)
	if err != nil {
		if errors.Is(err, service.ErrMemberNotFound) {
			writeError(w, http.StatusNotFound, "member not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to fetch member")
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toSDKMember(m))
}

// HandleUpdateProfile godoc
//
//	@Summary		Update Profile Endpoint
//	@Description	Update the caller's own display name and phone number
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			request	body	complysdk.UpdateProfileRequest	true	"Profile fields"
//	@Success		204
//	@Failure		400	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/members/me [put].
func (h *MembersHandler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.MemberService.UpdateProfile(ctx, id.MemberID, id.OrganisationID, req.FullName, req.PhoneNumber); err != nil {
		log.Error("failed to update profile", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to update profile")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleChangeRole godoc
//
//	@Summary		Change Member Role Endpoint
//	@Description	Promote or demote a member. Demoting the last admin is refused. Admin only.
//	@Tags			Members
//	@Accept			json
//	@Produce		json
//	@Param			id		path	string						true	"Member ID"
//	@Param			request	body	complysdk.ChangeRoleRequest	true	"New role"
//	@Success		204
//	@Failure		400	{object}	complysdk.ErrorResponse	"error"
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Failure		409	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/members/{id}/role [put].
func (h *MembersHandler) HandleChangeRole(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var req complysdk.ChangeRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	err := h.MemberService.ChangeRole(ctx, r.PathValue("id"), id.OrganisationID, domain.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "role must be admin or member")
		case errors.Is(err, service.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member not found")
		case errors.Is(err, service.ErrLastAdmin):
			writeError(w, http.StatusConflict, "organisation must keep at least one admin")
		default:
			log.Error("failed to change member role", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to change role")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleRemove godoc
//
//	@Summary		Remove Member Endpoint
//	@Description	Remove a member from the organisation. Removing the last admin is refused. Admin only.
//	@Tags			Members
//	@Produce		json
//	@Param			id	path	string	true	"Member ID"
//	@Success		204
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Failure		409	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/members/{id} [delete].
func (h *MembersHandler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	err := h.MemberService.RemoveMember(ctx, r.PathValue("id"), id.OrganisationID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMemberNotFound):
			writeError(w, http.StatusNotFound, "member not found")
		case errors.Is(err, service.ErrLastAdmin):
			writeError(w, http.StatusConflict, "organisation must keep at least one admin")
		default:
			log.Error("failed to remove member", "err", err)
			writeError(w, http.StatusInternalServerError, "failed to remove member")
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

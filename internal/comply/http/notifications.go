package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/clausehq/comply/internal/comply/service"
	"github.com/clausehq/comply/pkg/complysdk"
	"github.com/clausehq/comply/pkg/httpx"
	"github.com/clausehq/comply/pkg/slogx"
)

type NotificationsHandler struct {
	NotificationService *service.NotificationService
}

// HandleList godoc
//
//	@Summary		List Notifications Endpoint
//	@Description	List the organisation's newest notifications
//	@Tags			Notifications
//	@Produce		json
//	@Param			limit	query		int						false	"Maximum rows to return"
//	@Success		200		{array}		complysdk.Notification	"notifications"
//	@Failure		500		{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/notifications [get].
func (h *NotificationsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	notifications, err := h.NotificationService.ListNotifications(ctx, id.OrganisationID, limit)
	if err != nil {
		log.Error("failed to list notifications", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}

	out := make([]complysdk.Notification, 0, len(notifications))
	for _, n := range notifications {
		out = append(out, complysdk.Notification{
			ID:        n.ID,
			Type:      n.Type,
			Action:    n.Action,
			Title:     n.Title,
			Message:   n.Message,
			RecordID:  n.RecordID,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.UTC().Format(time.RFC3339),
		})
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleMarkRead godoc
//
//	@Summary		Mark Notification Read Endpoint
//	@Description	Mark one notification as read
//	@Tags			Notifications
//	@Produce		json
//	@Param			id	path	string	true	"Notification ID"
//	@Success		204
//	@Failure		404	{object}	complysdk.ErrorResponse	"error"
//	@Security		BearerAuth
//	@Router			/v1/notifications/{id}/read [put].
func (h *NotificationsHandler) HandleMarkRead(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	id, ok := httpx.IdentityFromContext(ctx)
	if !ok {
		writeError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	err := h.NotificationService.MarkRead(ctx, r.PathValue("id"), id.OrganisationID)
	if err != nil {
		if errors.Is(err, service.ErrNotificationNotFound) {
			writeError(w, http.StatusNotFound, "notification not found")
			return
		}
		log.Error("failed to mark notification read", "err", err)
		writeError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

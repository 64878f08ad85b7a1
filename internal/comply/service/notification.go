package service

import (
	"context"
	"errors"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
)

var ErrNotificationNotFound = errors.New("notification not found")

// DefaultNotificationLimit caps a feed read.
const DefaultNotificationLimit = 50

type NotificationService struct {
	Store store.Store
}

func (s *NotificationService) ListNotifications(
	ctx context.Context,
	organisationID string,
	limit int,
) ([]domain.Notification, error) {
	if limit <= 0 || limit > DefaultNotificationLimit {
		limit = DefaultNotificationLimit
	}
	return s.Store.Notifications().ListNotifications(ctx, organisationID, limit)
}

func (s *NotificationService) MarkRead(ctx context.Context, id, organisationID string) error {
	err := s.Store.Notifications().MarkNotificationRead(ctx, id, organisationID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotificationNotFound
	}
	return err
}

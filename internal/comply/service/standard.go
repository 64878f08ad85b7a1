package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/idx"
	"github.com/clausehq/comply/pkg/slogx"
)

var (
	ErrStandardNotFound = errors.New("standard not found")
	ErrInvalidStandard  = errors.New("standard clause is required")
)

type StandardService struct {
	Store store.Store
}

func (s *StandardService) CreateStandard(
	ctx context.Context,
	organisationID string,
	clause string,
	description string,
) (domain.Standard, error) {
	log := slogx.FromContext(ctx)

	clause = strings.TrimSpace(clause)
	if clause == "" {
		return domain.Standard{}, ErrInvalidStandard
	}

	now := time.Now().UTC()
	std := domain.Standard{
		ID:             idx.New().String(),
		OrganisationID: organisationID,
		Clause:         clause,
		Description:    strings.TrimSpace(description),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.Store.Standards().CreateStandard(ctx, std); err != nil {
		log.Error("failed to create standard", slog.Any("error", err))
		return domain.Standard{}, err
	}

	log.Info("standard created",
		slog.String("standard_id", std.ID),
		slog.String("organisation_id", organisationID),
	)
	return std, nil
}

func (s *StandardService) GetStandard(ctx context.Context, id, organisationID string) (domain.Standard, error) {
	std, err := s.Store.Standards().GetStandardByID(ctx, id, organisationID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Standard{}, ErrStandardNotFound
		}
		return domain.Standard{}, err
	}
	return std, nil
}

func (s *StandardService) ListStandards(ctx context.Context, organisationID string) ([]domain.Standard, error) {
	return s.Store.Standards().ListStandards(ctx, organisationID)
}

func (s *StandardService) UpdateStandard(ctx context.Context, std domain.Standard) error {
	std.Clause = strings.TrimSpace(std.Clause)
	if std.Clause == "" {
		return ErrInvalidStandard
	}

	err := s.Store.Standards().UpdateStandard(ctx, std)
	if errors.Is(err, store.ErrNotFound) {
		return ErrStandardNotFound
	}
	return err
}

func (s *StandardService) DeleteStandard(ctx context.Context, id, organisationID string) error {
	err := s.Store.Standards().DeleteStandard(ctx, id, organisationID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrStandardNotFound
	}
	return err
}

package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/slogx"
)

var (
	ErrOrganisationNotFound = errors.New("organisation not found")
	ErrInvalidOrganisation  = errors.New("organisation name is required")
)

type OrganisationService struct {
	Store store.Store
}

func (s *OrganisationService) GetOrganisation(ctx context.Context, id string) (domain.Organisation, error) {
	o, err := s.Store.Organisations().GetOrganisationByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Organisation{}, ErrOrganisationNotFound
		}
		return domain.Organisation{}, err
	}
	return o, nil
}

// UpdateSettings replaces the organisation's mutable settings.
func (s *OrganisationService) UpdateSettings(ctx context.Context, o domain.Organisation) error {
	log := slogx.FromContext(ctx)

	o.Name = strings.TrimSpace(o.Name)
	if o.Name == "" {
		return ErrInvalidOrganisation
	}

	if err := s.Store.Organisations().UpdateOrganisation(ctx, o); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrOrganisationNotFound
		}
		log.Error("failed to update organisation", slog.Any("error", err))
		return err
	}

	log.Info("organisation settings updated", slog.String("organisation_id", o.ID))
	return nil
}

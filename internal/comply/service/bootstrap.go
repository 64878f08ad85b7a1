package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/cryptox"
	"github.com/clausehq/comply/pkg/idx"
	"github.com/clausehq/comply/pkg/slogx"
)

var (
	ErrBootstrapAlready      = errors.New("system already bootstrapped")
	ErrBootstrapUnauthorized = errors.New("unauthorized bootstrap attempt")
	ErrBootstrapInvalid      = errors.New("invalid bootstrap request")
)

// BootstrapService creates the first organisation and its admin. Every later
// member arrives through an invitation; this is the only path that mints an
// admin from nothing.
type BootstrapService struct {
	Store store.Store
	Token string // pre-configured bootstrap token
}

type BootstrapData struct {
	OrganisationName string
	AdminEmail       string
	AdminFullName    string
	AdminPassword    string
}

func (s *BootstrapService) IsBootstrapped(ctx context.Context) (bool, error) {
	empty, err := s.Store.Organisations().IsEmpty(ctx)
	if err != nil {
		return false, err
	}
	return !empty, nil
}

// Bootstrap creates the organisation and admin in one transaction and
// returns their ids.
func (s *BootstrapService) Bootstrap(
	ctx context.Context,
	token string,
	req BootstrapData,
) (string, string, error) {
	log := slogx.FromContext(ctx)

	// 1. Refuse once any organisation exists.
	if bootstrapped, _ := s.IsBootstrapped(ctx); bootstrapped {
		log.Warn("attempted bootstrap on already-bootstrapped system")
		return "", "", ErrBootstrapAlready
	}

	// 2. Validate the provided token.
	if s.Token == "" || token != s.Token {
		log.Warn("unauthorized bootstrap attempt")
		return "", "", ErrBootstrapUnauthorized
	}

	// 3. Validate the request.
	req.OrganisationName = strings.TrimSpace(req.OrganisationName)
	req.AdminEmail = strings.ToLower(strings.TrimSpace(req.AdminEmail))
	if req.OrganisationName == "" || req.AdminEmail == "" {
		return "", "", ErrBootstrapInvalid
	}
	if len(req.AdminPassword) < MinPasswordLength {
		return "", "", ErrPasswordTooShort
	}

	// 4. Hash the admin password.
	passwordHash, err := cryptox.HashPassword(req.AdminPassword)
	if err != nil {
		log.Error("failed to hash admin password", slog.Any("error", err))
		return "", "", err
	}

	// 5. Create organisation, account and admin member atomically.
	now := time.Now().UTC()
	organisationID := idx.New().String()
	adminID := idx.New().String()

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Organisations().CreateOrganisation(ctx, domain.Organisation{
			ID:        organisationID,
			Name:      req.OrganisationName,
			CreatedAt: now,
			UpdatedAt: now,
		}); err != nil {
			return err
		}

		if err := tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           adminID,
			Email:        req.AdminEmail,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}

		return tx.Members().CreateMember(ctx, domain.Member{
			ID:             adminID,
			OrganisationID: organisationID,
			Email:          req.AdminEmail,
			FullName:       strings.TrimSpace(req.AdminFullName),
			Role:           domain.RoleAdmin,
			CreatedAt:      now,
			UpdatedAt:      now,
		})
	})
	if err != nil {
		log.Error("failed to bootstrap system", slog.Any("error", err))
		return "", "", err
	}

	log.Info("successfully bootstrapped system",
		slog.String("organisation_id", organisationID),
		slog.String("admin_member_id", adminID),
	)
	return organisationID, adminID, nil
}

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
	"github.com/clausehq/comply/pkg/slogx"
	"github.com/clausehq/comply/pkg/tokenx"
)

// ErrInvalidCredentials covers unknown email and wrong password alike so a
// login probe cannot enumerate registered addresses.
var ErrInvalidCredentials = errors.New("invalid email or password")

type AuthService struct {
	Store  store.Store
	Signer *tokenx.Signer
}

// Login verifies an email/password pair and returns the member together with
// a signed session token.
func (s *AuthService) Login(
	ctx context.Context,
	email string,
	password string,
) (domain.Member, string, error) {
	log := slogx.FromContext(ctx)

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return domain.Member{}, "", ErrInvalidCredentials
	}

	// 1. Look up the credential.
	account, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("login attempted with unknown email")
			return domain.Member{}, "", ErrInvalidCredentials
		}
		log.Error("failed to fetch account", slog.Any("error", err))
		return domain.Member{}, "", err
	}

	// 2. Verify the password against the stored argon2id hash.
	if err := cryptox.VerifyPassword(password, account.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			log.Warn("login attempted with wrong password",
				slog.String("account_id", account.ID),
			)
			return domain.Member{}, "", ErrInvalidCredentials
		}
		log.Error("failed to verify password", slog.Any("error", err))
		return domain.Member{}, "", err
	}

	// 3. Resolve the membership; the member id is the account id.
	member, err := s.Store.Members().GetMemberByID(ctx, account.ID)
	if err != nil {
		log.Error("account has no membership",
			slog.String("account_id", account.ID),
			slog.Any("error", err),
		)
		return domain.Member{}, "", ErrInvalidCredentials
	}

	// 4. Mint the session token.
	session, err := s.Signer.Sign(member.ID, member.Email, member.OrganisationID, string(member.Role), time.Now().UTC())
	if err != nil {
		log.Error("failed to sign session token", slog.Any("error", err))
		return domain.Member{}, "", err
	}

	log.Info("member logged in",
		slog.String("member_id", member.ID),
		slog.String("organisation_id", member.OrganisationID),
	)

	return member, session, nil
}

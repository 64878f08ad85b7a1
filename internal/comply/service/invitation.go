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

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidEmail = errors.New("invalid email address")

	// ErrInvalidInvitation deliberately covers missing, unknown, expired and
	// already-consumed tokens. Callers must not be able to distinguish them.
	ErrInvalidInvitation = errors.New("invitation is invalid or has expired")

	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrAccountExists    = errors.New("an account with this email already exists")
)

// MinPasswordLength is the floor applied at redemption time.
const MinPasswordLength = 6

// DefaultInviteTTL is how long an invitation stays redeemable unless
// configured otherwise.
const DefaultInviteTTL = 7 * 24 * time.Hour

type InvitationService struct {
	Store store.Store

	// TTL is added to issuance time to produce the expiry instant. Zero
	// means DefaultInviteTTL.
	TTL time.Duration

	// Now is the clock. Nil means time.Now; tests inject a fixed clock to
	// pin expiry boundaries.
	Now func() time.Time

	validate *validator.Validate
}

func (s *InvitationService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

func (s *InvitationService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultInviteTTL
}

func (s *InvitationService) validator() *validator.Validate {
	if s.validate == nil {
		s.validate = validator.New(validator.WithRequiredStructEnabled())
	}
	return s.validate
}

// IssueInvitation mints a single-use invitation for an email address to join
// the issuer's organisation. The returned invitation carries the raw token;
// this is the only moment the caller ever sees it alongside its metadata.
func (s *InvitationService) IssueInvitation(
	ctx context.Context,
	email string,
	organisationID string,
	invitedBy string,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	// 1. Normalise and validate the email.
	email = strings.ToLower(strings.TrimSpace(email))
	if err := s.validator().Var(email, "required,email"); err != nil {
		log.Warn("invitation requested for malformed email")
		return domain.Invitation{}, ErrInvalidEmail
	}

	// 2. Refuse to invite an email that already holds an account.
	_, err := s.Store.Accounts().GetAccountByEmail(ctx, email)
	if err == nil {
		log.Warn("invitation requested for existing account",
			slog.String("organisation_id", organisationID),
		)
		return domain.Invitation{}, ErrAccountExists
	}
	if !errors.Is(err, store.ErrNotFound) {
		log.Error("failed to check account existence", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	// 3. Generate the token. 256 bits of entropy, unique by construction.
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		log.Error("failed to generate invitation token", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	now := s.now()
	inv := domain.Invitation{
		ID:             idx.New().String(),
		Email:          email,
		OrganisationID: organisationID,
		InvitedBy:      invitedBy,
		Token:          token,
		ExpiresAt:      now.Add(s.ttl()),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	// 4. Persist the invitation and its notification together.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().CreateInvitation(ctx, inv); err != nil {
			return err
		}
		return tx.Notifications().CreateNotification(ctx, domain.Notification{
			ID:             idx.New().String(),
			OrganisationID: organisationID,
			Type:           domain.NotificationTypeInvitation,
			Action:         "sent",
			Title:          "Invitation sent",
			Message:        "An invitation was sent to " + email,
			CreatedBy:      invitedBy,
			CreatedAt:      now,
		})
	})
	if err != nil {
		log.Error("failed to store invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Invitation{}, err
	}

	log.Info("invitation issued",
		slog.String("invitation_id", inv.ID),
		slog.String("organisation_id", organisationID),
		slog.String("invited_by", invitedBy),
		slog.Time("expires_at", inv.ExpiresAt),
	)

	return inv, nil
}

// ValidateInvitation checks whether a token identifies a redeemable
// invitation. It is a pure read: a valid token stays Pending until a
// redemption commits, no matter how many times it is validated.
func (s *InvitationService) ValidateInvitation(
	ctx context.Context,
	token string,
) (domain.Invitation, error) {
	log := slogx.FromContext(ctx)

	if token == "" {
		return domain.Invitation{}, ErrInvalidInvitation
	}

	inv, err := s.Store.Invitations().GetPendingInvitationByToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("validation attempted with invalid invitation token")
			return domain.Invitation{}, ErrInvalidInvitation
		}
		log.Error("failed to look up invitation", slog.Any("error", err))
		return domain.Invitation{}, err
	}

	return inv, nil
}

// AcceptInvitation redeems a pending invitation: it creates the account and
// member and consumes the invitation in one transaction. The conditional
// consumption means exactly one of any set of concurrent redemptions can
// succeed; every loser observes the merged invalid-invitation error.
func (s *InvitationService) AcceptInvitation(
	ctx context.Context,
	token string,
	fullName string,
	phoneNumber string,
	password string,
	confirmPassword string,
) (domain.Member, error) {
	log := slogx.FromContext(ctx)

	// 1. Password checks come first and never touch the store, so a typo
	// does not burn a lookup or reveal anything about the token.
	if password != confirmPassword {
		return domain.Member{}, ErrPasswordMismatch
	}
	if len(password) < MinPasswordLength {
		return domain.Member{}, ErrPasswordTooShort
	}

	// 2. Resolve the token to a pending, unexpired invitation.
	now := s.now()
	inv, err := s.Store.Invitations().GetPendingInvitationByToken(ctx, token, now)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			log.Warn("redemption attempted with invalid invitation token")
			return domain.Member{}, ErrInvalidInvitation
		}
		log.Error("failed to look up invitation", slog.Any("error", err))
		return domain.Member{}, err
	}

	// 3. Hash the password before opening the transaction; argon2 is slow
	// and must not hold a write lock.
	passwordHash, err := cryptox.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", slog.Any("error", err))
		return domain.Member{}, err
	}

	// 4. Account, membership and consumption commit or fail as a unit. The
	// conditional update on accepted_at is the concurrency guard: if two
	// redemptions race, the second sees zero rows and the whole
	// transaction rolls back, leaving no orphaned account.
	memberID := idx.New().String()
	member := domain.Member{
		ID:             memberID,
		OrganisationID: inv.OrganisationID,
		Email:          inv.Email,
		FullName:       strings.TrimSpace(fullName),
		PhoneNumber:    strings.TrimSpace(phoneNumber),
		Role:           domain.RoleMember,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Invitations().MarkInvitationAccepted(ctx, inv.ID, now); err != nil {
			return err
		}

		if err := tx.Accounts().CreateAccount(ctx, domain.Account{
			ID:           memberID,
			Email:        inv.Email,
			PasswordHash: passwordHash,
			CreatedAt:    now,
			UpdatedAt:    now,
		}); err != nil {
			return err
		}

		if err := tx.Members().CreateMember(ctx, member); err != nil {
			return err
		}

		return tx.Notifications().CreateNotification(ctx, domain.Notification{
			ID:             idx.New().String(),
			OrganisationID: inv.OrganisationID,
			Type:           domain.NotificationTypeMember,
			Action:         "joined",
			Title:          "New member joined",
			Message:        inv.Email + " accepted their invitation",
			CreatedBy:      memberID,
			CreatedAt:      now,
		})
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			// Lost the race on accepted_at.
			log.Warn("redemption lost to a concurrent acceptance",
				slog.String("invitation_id", inv.ID),
			)
			return domain.Member{}, ErrInvalidInvitation
		case errors.Is(err, store.ErrAlreadyExists):
			log.Warn("redemption attempted for email with existing account",
				slog.String("invitation_id", inv.ID),
			)
			return domain.Member{}, ErrAccountExists
		}
		log.Error("failed to redeem invitation",
			slog.String("invitation_id", inv.ID),
			slog.Any("error", err),
		)
		return domain.Member{}, err
	}

	log.Info("invitation redeemed",
		slog.String("invitation_id", inv.ID),
		slog.String("member_id", memberID),
		slog.String("organisation_id", inv.OrganisationID),
	)

	return member, nil
}

// ListInvitations returns all of an organisation's invitations, including
// consumed and expired ones, classified against the current clock.
func (s *InvitationService) ListInvitations(
	ctx context.Context,
	organisationID string,
) ([]domain.Invitation, error) {
	return s.Store.Invitations().ListInvitations(ctx, organisationID)
}

package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/clausehq/comply/internal/comply/domain"
	"github.com/clausehq/comply/internal/comply/store"
	"github.com/clausehq/comply/pkg/slogx"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidRole    = errors.New("invalid role")

	// ErrLastAdmin guards the invariant that an organisation always keeps at
	// least one admin.
	ErrLastAdmin = errors.New("organisation must keep at least one admin")

	ErrWrongOrganisation = errors.New("member belongs to a different organisation")
)

type MemberService struct {
	Store store.Store
}

// GetMember returns a member, refusing cross-organisation reads.
func (s *MemberService) GetMember(ctx context.Context, memberID, organisationID string) (domain.Member, error) {
	m, err := s.Store.Members().GetMemberByID(ctx, memberID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Member{}, ErrMemberNotFound
		}
		return domain.Member{}, err
	}
	if m.OrganisationID != organisationID {
		return domain.Member{}, ErrMemberNotFound
	}
	return m, nil
}

func (s *MemberService) ListMembers(ctx context.Context, organisationID string) ([]domain.Member, error) {
	return s.Store.Members().ListMembers(ctx, organisationID)
}

// ChangeRole promotes or demotes a member. Demoting the last admin is
// refused; role changes outside the caller's organisation are invisible.
func (s *MemberService) ChangeRole(
	ctx context.Context,
	memberID string,
	organisationID string,
	role domain.Role,
) error {
	log := slogx.FromContext(ctx)

	if !role.Valid() {
		return ErrInvalidRole
	}

	member, err := s.GetMember(ctx, memberID, organisationID)
	if err != nil {
		return err
	}
	if member.Role == role {
		return nil
	}

	if member.Role == domain.RoleAdmin && role == domain.RoleMember {
		admins, err := s.Store.Members().CountAdmins(ctx, organisationID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			log.Warn("refused to demote last admin",
				slog.String("member_id", memberID),
				slog.String("organisation_id", organisationID),
			)
			return ErrLastAdmin
		}
	}

	if err := s.Store.Members().UpdateMemberRole(ctx, memberID, role); err != nil {
		log.Error("failed to update member role", slog.Any("error", err))
		return err
	}

	log.Info("member role changed",
		slog.String("member_id", memberID),
		slog.String("role", string(role)),
	)
	return nil
}

// UpdateProfile updates a member's display fields.
func (s *MemberService) UpdateProfile(
	ctx context.Context,
	memberID string,
	organisationID string,
	fullName string,
	phoneNumber string,
) error {
	if _, err := s.GetMember(ctx, memberID, organisationID); err != nil {
		return err
	}
	return s.Store.Members().UpdateMemberProfile(ctx, memberID, fullName, phoneNumber)
}

// RemoveMember deletes a member. Removing the last admin is refused.
func (s *MemberService) RemoveMember(ctx context.Context, memberID, organisationID string) error {
	log := slogx.FromContext(ctx)

	member, err := s.GetMember(ctx, memberID, organisationID)
	if err != nil {
		return err
	}

	if member.Role == domain.RoleAdmin {
		admins, err := s.Store.Members().CountAdmins(ctx, organisationID)
		if err != nil {
			return err
		}
		if admins <= 1 {
			log.Warn("refused to remove last admin",
				slog.String("member_id", memberID),
				slog.String("organisation_id", organisationID),
			)
			return ErrLastAdmin
		}
	}

	if err := s.Store.Members().DeleteMember(ctx, memberID); err != nil {
		log.Error("failed to delete member", slog.Any("error", err))
		return err
	}

	log.Info("member removed",
		slog.String("member_id", memberID),
		slog.String("organisation_id", organisationID),
	)
	return nil
}

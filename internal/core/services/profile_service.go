package services

import (
	"context"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// ProfileService manages principal-keyed profiles and admin role grants.
type ProfileService struct {
	users  ports.UserRepository
	access *AccessControl
}

var _ ports.ProfileService = (*ProfileService)(nil)

func NewProfileService(users ports.UserRepository, access *AccessControl) *ProfileService {
	return &ProfileService{users: users, access: access}
}

// SaveProfile creates or replaces the caller's own profile.
func (s *ProfileService) SaveProfile(ctx context.Context, caller, name string, role domain.UserRole) error {
	if !role.IsValid() {
		return domain.ErrInvalidRole
	}
	return s.users.SaveProfile(ctx, domain.UserProfile{
		Principal: caller,
		Name:      name,
		Role:      role,
	})
}

// GetProfile returns nil when the principal never saved a profile.
func (s *ProfileService) GetProfile(ctx context.Context, principal string) (*domain.UserProfile, error) {
	return s.users.GetProfile(ctx, principal)
}

// UpdateRole switches the caller's application role. The profile must
// already exist; queue operations never create one implicitly.
func (s *ProfileService) UpdateRole(ctx context.Context, caller string, role domain.UserRole) error {
	if !role.IsValid() {
		return domain.ErrInvalidRole
	}
	profile, err := s.users.GetProfile(ctx, caller)
	if err != nil {
		return err
	}
	if profile == nil {
		return domain.ErrProfileNotFound
	}
	profile.Role = role
	return s.users.SaveProfile(ctx, *profile)
}

// AssignAdminRole grants a role on the administrative axis. Admin-only.
func (s *ProfileService) AssignAdminRole(ctx context.Context, caller, principal string, role domain.AdminRole) error {
	if err := s.access.RequireAdmin(ctx, caller); err != nil {
		return err
	}
	if !role.IsValid() {
		return domain.ErrInvalidRole
	}
	return s.users.SetAdminRole(ctx, principal, role)
}

func (s *ProfileService) GetAdminRole(ctx context.Context, principal string) (domain.AdminRole, error) {
	return s.users.GetAdminRole(ctx, principal)
}

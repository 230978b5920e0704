package services

import (
	"context"

	"github.com/walkline/queue-service/internal/core/domain"
	"github.com/walkline/queue-service/internal/core/ports"
)

// AccessControl authorizes mutations before the registry or queue manager
// touch state. Ownership is checked against the stored service record and
// roles against the stored profile, not against transport-level claims.
type AccessControl struct {
	users ports.UserRepository
}

func NewAccessControl(users ports.UserRepository) *AccessControl {
	return &AccessControl{users: users}
}

// RequireOwner fails unless caller owns the service.
func (a *AccessControl) RequireOwner(svc *domain.ServiceLocation, caller string) error {
	if caller == "" || svc.Owner != caller {
		return domain.ErrNotOwner
	}
	return nil
}

// RequireBusinessOwner fails unless the caller has saved a businessOwner
// profile.
func (a *AccessControl) RequireBusinessOwner(ctx context.Context, caller string) error {
	profile, err := a.users.GetProfile(ctx, caller)
	if err != nil {
		return err
	}
	if profile == nil || profile.Role != domain.RoleBusinessOwner {
		return domain.ErrNotBusinessOwner
	}
	return nil
}

// RequireCustomer fails unless the caller has saved a customer profile.
func (a *AccessControl) RequireCustomer(ctx context.Context, caller string) error {
	profile, err := a.users.GetProfile(ctx, caller)
	if err != nil {
		return err
	}
	if profile == nil || profile.Role != domain.RoleCustomer {
		return domain.ErrNotCustomer
	}
	return nil
}

// RequireSelf fails unless the caller acts on its own membership.
func (a *AccessControl) RequireSelf(caller, customerID string) error {
	if caller == "" || caller != customerID {
		return domain.ErrNotSelf
	}
	return nil
}

// RequireAdmin fails unless the caller holds the admin role on the
// administrative axis.
func (a *AccessControl) RequireAdmin(ctx context.Context, caller string) error {
	role, err := a.users.GetAdminRole(ctx, caller)
	if err != nil {
		return err
	}
	if role != domain.AdminRoleAdmin {
		return domain.ErrNotAdmin
	}
	return nil
}

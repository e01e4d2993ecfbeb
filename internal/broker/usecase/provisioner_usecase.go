package usecase

import (
	"context"
	"errors"

	"github.com/codemillmatt/cosmos-db-permissions/internal/broker/domain"
)

// provisioner implements Provisioner on the user and permission repositories.
//
// All identifiers are derived deterministically from (user, resource), which
// makes every operation here idempotent: retries and concurrent callers
// converge on the same store records, so no locking is needed.
type provisioner struct {
	userRepo       UserRepository
	permissionRepo PermissionRepository
}

// NewProvisioner creates a new Provisioner with the provided dependencies.
func NewProvisioner(
	userRepo UserRepository,
	permissionRepo PermissionRepository,
) Provisioner {
	return &provisioner{
		userRepo:       userRepo,
		permissionRepo: permissionRepo,
	}
}

// EnsureUser reads the user record and creates it only on a confirmed
// not-found. Any other read failure is fatal and propagated.
func (p *provisioner) EnsureUser(ctx context.Context, userID string) error {
	_, err := p.userRepo.Get(ctx, userID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		return err
	}

	return p.userRepo.Create(ctx, &domain.User{ID: userID})
}

// EnsurePermission reads the permission under its deterministic id and, on a
// confirmed not-found, ensures the user exists and creates a read-only
// permission scoped to the target resource. Non-not-found read failures are
// never masked as a fresh-provisioning opportunity.
func (p *provisioner) EnsurePermission(
	ctx context.Context,
	userID, resource string,
) (*domain.Permission, error) {
	permissionID := domain.PermissionID(userID, resource)

	permission, err := p.permissionRepo.Get(ctx, userID, permissionID)
	if err == nil {
		return permission, nil
	}
	if !errors.Is(err, domain.ErrPermissionNotFound) {
		return nil, err
	}

	if err := p.EnsureUser(ctx, userID); err != nil {
		return nil, err
	}

	return p.permissionRepo.Create(ctx, &domain.Permission{
		ID:           permissionID,
		UserID:       userID,
		Mode:         domain.PermissionModeRead,
		ResourceLink: domain.CollectionLink(resource),
	})
}

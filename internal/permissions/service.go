package permissions

import (
	"context"
	"log/slog"
	"slices"

	"github.com/spdeepak/rex-identity-server/internal/error"
	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/util"
)

type (
	service struct {
		roleLookup       identity.RoleLookup
		permissionLookup identity.PermissionLookup
		bypassRole       string
	}
	Option  func(*service)
	Service interface {
		// IsAuthorized reports whether userID holds any of codes, directly or through an active role
		IsAuthorized(ctx context.Context, userID int64, codes []string) (bool, error)
		// IsAuthorizedByRole reports whether userID holds any of roleNames
		IsAuthorizedByRole(ctx context.Context, userID int64, roleNames []string) (bool, error)
		// HoldsAnyRole checks roleNames against the roles already loaded into principal
		HoldsAnyRole(principal identity.Principal, roleNames []string) bool
		// BypassesPermissions reports whether principal holds the role that skips permission checks
		BypassesPermissions(principal identity.Principal) bool
	}
)

// WithBypassRole changes the role that skips permission checks. An empty name disables the bypass.
func WithBypassRole(role string) Option {
	return func(s *service) {
		s.bypassRole = role
	}
}

func NewService(roleLookup identity.RoleLookup, permissionLookup identity.PermissionLookup, opts ...Option) Service {
	s := &service{
		roleLookup:       roleLookup,
		permissionLookup: permissionLookup,
		bypassRole:       identity.RoleAdmin,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *service) IsAuthorized(ctx context.Context, userID int64, codes []string) (bool, error) {
	if len(codes) == 0 {
		return false, nil
	}

	direct, err := s.permissionLookup.UserHasPermission(ctx, userID, codes)
	if err != nil {
		return false, httperror.NewWithMetadata(httperror.DatabaseError, err.Error())
	}
	if direct {
		slog.DebugContext(ctx, "Permission granted directly", slog.Int64("user_id", userID), slog.Any("codes", codes))
		return true, nil
	}

	roles, err := s.roleLookup.GetActiveRoles(ctx, userID)
	if err != nil {
		return false, httperror.NewWithMetadata(httperror.DatabaseError, err.Error())
	}
	if len(roles) == 0 {
		return false, nil
	}

	derived, err := s.permissionLookup.RolesHavePermission(ctx, identity.RoleIDs(roles), codes)
	if err != nil {
		return false, httperror.NewWithMetadata(httperror.DatabaseError, err.Error())
	}
	if derived {
		slog.DebugContext(ctx, "Permission granted through role", slog.Int64("user_id", userID), slog.Any("codes", codes))
	}
	return derived, nil
}

func (s *service) IsAuthorizedByRole(ctx context.Context, userID int64, roleNames []string) (bool, error) {
	if len(roleNames) == 0 {
		return false, nil
	}
	roles, err := s.roleLookup.GetActiveRoles(ctx, userID)
	if err != nil {
		return false, httperror.NewWithMetadata(httperror.DatabaseError, err.Error())
	}
	return s.HoldsAnyRole(identity.Principal{ID: userID, Roles: identity.RoleNames(roles)}, roleNames), nil
}

func (s *service) HoldsAnyRole(principal identity.Principal, roleNames []string) bool {
	if len(roleNames) == 0 {
		return false
	}
	held := slices.Clone(principal.Roles)
	slices.Sort(held)
	required := slices.Clone(roleNames)
	slices.Sort(required)
	return util.HasAny(held, required)
}

func (s *service) BypassesPermissions(principal identity.Principal) bool {
	return s.bypassRole != "" && principal.HasRole(s.bypassRole)
}

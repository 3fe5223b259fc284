package identity

import "context"

// RoleLookup returns the roles a user holds through an active assignment to an active role.
type RoleLookup interface {
	GetActiveRoles(ctx context.Context, userID int64) ([]Role, error)
}

// PermissionLookup answers whether any of codes is granted, directly to a user or through roles.
// Only active grants of active permissions count.
type PermissionLookup interface {
	UserHasPermission(ctx context.Context, userID int64, codes []string) (bool, error)
	RolesHavePermission(ctx context.Context, roleIDs []int64, codes []string) (bool, error)
}

type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (User, error)
}

type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, storedHash string) error
}

package permissions

import (
	"context"

	"github.com/spdeepak/rex-identity-server/internal/permissions/repository"
)

type storage struct {
	query repository.Querier
}

type Storage interface {
	UserHasPermission(ctx context.Context, userID int64, codes []string) (bool, error)
	RolesHavePermission(ctx context.Context, roleIDs []int64, codes []string) (bool, error)
	ListPermissionCodes(ctx context.Context, userID int64) ([]string, error)
}

func NewStorage(query repository.Querier) Storage {
	return &storage{
		query: query,
	}
}

func (s *storage) UserHasPermission(ctx context.Context, userID int64, codes []string) (bool, error) {
	return s.query.UserHasPermission(ctx, repository.UserHasPermissionParams{
		UserID: userID,
		Codes:  codes,
	})
}

func (s *storage) RolesHavePermission(ctx context.Context, roleIDs []int64, codes []string) (bool, error) {
	if len(roleIDs) == 0 {
		return false, nil
	}
	return s.query.RolesHavePermission(ctx, repository.RolesHavePermissionParams{
		RoleIds: roleIDs,
		Codes:   codes,
	})
}

func (s *storage) ListPermissionCodes(ctx context.Context, userID int64) ([]string, error) {
	codes, err := s.query.ListUserPermissionCodes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if codes == nil {
		return []string{}, nil
	}
	return codes, nil
}

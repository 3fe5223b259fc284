package roles

import (
	"context"

	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/roles/repository"
)

type storage struct {
	query repository.Querier
}

type Storage interface {
	identity.RoleLookup
}

func NewStorage(query repository.Querier) Storage {
	return &storage{
		query: query,
	}
}

func (s *storage) GetActiveRoles(ctx context.Context, userID int64) ([]identity.Role, error) {
	rows, err := s.query.GetActiveRolesByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	roles := make([]identity.Role, len(rows))
	for index, row := range rows {
		roles[index] = identity.Role{
			ID:   row.ID,
			Name: row.Name,
		}
		if row.Description.Valid {
			description := row.Description.String
			roles[index].Description = &description
		}
	}
	return roles, nil
}

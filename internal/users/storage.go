package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/spdeepak/rex-identity-server/internal/error"
	"github.com/spdeepak/rex-identity-server/internal/identity"
	"github.com/spdeepak/rex-identity-server/internal/users/repository"
)

type storage struct {
	query repository.Querier
}

type Storage interface {
	identity.UserLookup
	CreateUser(ctx context.Context, user identity.User, createdByID *int64) (int64, error)
}

func NewStorage(query repository.Querier) Storage {
	return &storage{
		query: query,
	}
}

// GetUserByEmail returns NotFound when no user has that email.
func (s *storage) GetUserByEmail(ctx context.Context, email string) (identity.User, error) {
	row, err := s.query.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.User{}, httperror.New(httperror.NotFound)
		}
		return identity.User{}, httperror.NewWithMetadata(httperror.DatabaseError, err.Error())
	}
	return identity.User{
		ID:           row.ID,
		Email:        row.Email,
		DisplayName:  row.DisplayName,
		PasswordHash: row.PasswordHash,
		IsActived:    row.IsActived,
	}, nil
}

func (s *storage) CreateUser(ctx context.Context, user identity.User, createdByID *int64) (int64, error) {
	params := repository.CreateUserParams{
		Email:        user.Email,
		DisplayName:  user.DisplayName,
		PasswordHash: user.PasswordHash,
	}
	if createdByID != nil {
		params.CreatedByID = pgtype.Int8{Int64: *createdByID, Valid: true}
	}
	id, err := s.query.CreateUser(ctx, params)
	if err != nil {
		return 0, httperror.NewWithMetadata(httperror.DatabaseError, err.Error())
	}
	return id, nil
}

package jwt_secret

import (
	"context"
	"errors"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/spdeepak/rex-identity-server/internal/jwt_secret/repository"
)

type storage struct {
	jwtSecretRepository repository.Querier
}

type Storage interface {
	saveDefaultSecret(ctx context.Context, secret string) error
	getDefaultEncryptedSecret(ctx context.Context) (string, error)
}

func NewStorage(jwtSecretRepository repository.Querier) Storage {
	return &storage{
		jwtSecretRepository: jwtSecretRepository,
	}
}

func (s *storage) saveDefaultSecret(ctx context.Context, secret string) error {
	return s.jwtSecretRepository.CreateDefaultSecret(ctx, secret)
}

// getDefaultEncryptedSecret returns "" when no secret has been stored yet.
func (s *storage) getDefaultEncryptedSecret(ctx context.Context) (string, error) {
	jwtSecret, err := s.jwtSecretRepository.GetDefaultSecret(ctx)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", err
	}
	slog.DebugContext(ctx, "Loaded default JWT secret", slog.String("secret_id", jwtSecret.ID.String()), slog.Time("created_at", jwtSecret.CreatedAt.Time))
	return jwtSecret.Secret, nil
}

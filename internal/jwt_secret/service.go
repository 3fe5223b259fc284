package jwt_secret

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spdeepak/rex-identity-server/config"
	"github.com/spdeepak/rex-identity-server/internal/error"
)

var (
	ErrNoSecretConfigured = errors.New("either a JWT master key or a JWT secret key must be configured")
	errInvalidCiphertext  = errors.New("invalid encrypted secret")
)

// GetOrCreateSecret resolves the HMAC signing secret. With a master key the secret lives AES-GCM encrypted in
// jwt_secrets and is generated on first start. Without one the configured base64 secret is used as is.
func GetOrCreateSecret(ctx context.Context, token config.Token, storage Storage) ([]byte, error) {
	if token.MasterKey == "" {
		return decodeConfiguredSecret(token.Secret)
	}

	base64EncodedEncryptedSecret, err := storage.getDefaultEncryptedSecret(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to get default secret from DB", slog.Any("error", err))
		return nil, httperror.NewWithMetadata(httperror.SecretUnavailable, err.Error())
	}
	if base64EncodedEncryptedSecret != "" {
		secret, err := Decrypt(base64EncodedEncryptedSecret, token.MasterKey)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to decrypt JWT secret from DB", slog.Any("error", err))
			return nil, httperror.NewWithMetadata(httperror.SecretUnavailable, err.Error())
		}
		return secret, nil
	}

	secret, err := generateJWTSecret()
	if err != nil {
		return nil, httperror.NewWithMetadata(httperror.SecretUnavailable, err.Error())
	}
	base64EncodedEncryptedSecret, err = Encrypt(secret, token.MasterKey)
	if err != nil {
		slog.ErrorContext(ctx, "Failed to encrypt generated JWT secret and encode it to base64", slog.Any("error", err))
		return nil, httperror.NewWithMetadata(httperror.SecretUnavailable, err.Error())
	}
	if err = storage.saveDefaultSecret(ctx, base64EncodedEncryptedSecret); err != nil {
		slog.ErrorContext(ctx, "Failed to save encrypted generated JWT secret to DB", slog.Any("error", err))
		return nil, httperror.NewWithMetadata(httperror.SecretUnavailable, err.Error())
	}
	slog.InfoContext(ctx, "Generated and stored a new JWT secret")
	return []byte(secret), nil
}

func decodeConfiguredSecret(secret string) ([]byte, error) {
	if secret == "" {
		return nil, ErrNoSecretConfigured
	}
	decoded, err := base64.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("decoding JWT secret key: %w", err)
	}
	if len(decoded) == 0 {
		return nil, ErrNoSecretConfigured
	}
	return decoded, nil
}

func generateJWTSecret() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generating JWT secret: %w", err)
	}
	return base64.URLEncoding.EncodeToString(bytes), nil
}

func newGCM(base64EncodedMasterKey string) (cipher.AEAD, error) {
	key, err := base64.StdEncoding.DecodeString(base64EncodedMasterKey)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// Encrypt takes the JWT secret and the JWT master key to encrypt the JWT secret. So, it can be stored to the DB.
func Encrypt(plainJwtSecret string, base64EncodedMasterKey string) (string, error) {
	aesGCM, err := newGCM(base64EncodedMasterKey)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesGCM.NonceSize())
	if _, err = rand.Read(nonce); err != nil {
		return "", err
	}

	ciphertext := aesGCM.Seal(nonce, nonce, []byte(plainJwtSecret), nil)
	return base64.StdEncoding.EncodeToString(ciphertext), nil
}

// Decrypt takes the encrypted JWT secret with the JWT master key to decrypt it for usage
func Decrypt(base64EncodedAndEncryptedSecret string, base64EncodedMasterKey string) ([]byte, error) {
	encryptedSecret, err := base64.StdEncoding.DecodeString(base64EncodedAndEncryptedSecret)
	if err != nil {
		return nil, err
	}
	aesGCM, err := newGCM(base64EncodedMasterKey)
	if err != nil {
		return nil, err
	}

	nonceSize := aesGCM.NonceSize()
	if len(encryptedSecret) < nonceSize {
		return nil, errInvalidCiphertext
	}

	nonce, ciphertext := encryptedSecret[:nonceSize], encryptedSecret[nonceSize:]
	return aesGCM.Open(nil, nonce, ciphertext, nil)
}

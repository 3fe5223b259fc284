package users

import (
	"golang.org/x/crypto/bcrypt"
)

// BcryptHasher implements identity.PasswordHasher.
type BcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt backed hasher. A cost outside bcrypt's range uses bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{cost: cost}
}

// Hash hashes the plaintext password using bcrypt
func (h *BcryptHasher) Hash(plaintext string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	return string(bytes), err
}

// Verify compares plaintext and hashed password
func (h *BcryptHasher) Verify(plaintext, storedHash string) error {
	return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(plaintext))
}

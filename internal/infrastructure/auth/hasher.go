package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"f3manager/internal/domain/staff"
)

var (
	_ staff.PasswordHasher = (*BcryptPasswordHasher)(nil)
	_ staff.RehashChecker  = (*BcryptPasswordHasher)(nil)
)

// BcryptPasswordHasher stores staff passwords as bcrypt hashes at the
// configured cost.
type BcryptPasswordHasher struct {
	cost int
}

// NewBcryptPasswordHasher falls back to bcrypt.DefaultCost for a cost bcrypt
// would reject.
func NewBcryptPasswordHasher(cost int) *BcryptPasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptPasswordHasher{cost: cost}
}

func (h *BcryptPasswordHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	switch {
	case errors.Is(err, bcrypt.ErrPasswordTooLong):
		return "", staff.ErrPasswordTooLong
	case err != nil:
		return "", fmt.Errorf("bcrypt cost %d: %w", h.cost, err)
	}
	return string(hash), nil
}

func (h *BcryptPasswordHasher) Verify(password, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return staff.ErrPasswordMismatch
	default:
		return fmt.Errorf("unusable password hash: %w", err)
	}
}

// NeedsRehash reports hashes stored under a different cost, for example
// before auth.password.bcrypt_cost was raised.
func (h *BcryptPasswordHasher) NeedsRehash(hash string) bool {
	cost, err := bcrypt.Cost([]byte(hash))
	return err != nil || cost != h.cost
}

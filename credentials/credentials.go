// Package credentials is the opt-in password capability. The tracker's
// historical behavior is to accept any password for a known email; wiring a
// Manager into the storage service adds real hashing and verification as a
// separate, clearly bounded feature instead of silently changing login.
package credentials

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 12

// ErrWeakPassword is returned when a password fails the policy check.
var ErrWeakPassword = errors.New("password must be at least 8 characters long and contain uppercase, lowercase, and number")

// Manager hashes and verifies passwords.
type Manager struct {
	cost int
}

// NewManager creates a manager with the given bcrypt cost; costs below the
// bcrypt minimum fall back to DefaultCost.
func NewManager(cost int) *Manager {
	if cost < bcrypt.MinCost {
		cost = DefaultCost
	}
	return &Manager{cost: cost}
}

// Hash validates the password policy and returns the bcrypt hash.
func (m *Manager) Hash(password string) (string, error) {
	if !validPassword(password) {
		return "", ErrWeakPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), m.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(bytes), nil
}

// Verify compares a password with a stored hash.
func (m *Manager) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// validPassword requires at least 8 characters with one uppercase letter,
// one lowercase letter and one digit.
func validPassword(password string) bool {
	if len(password) < 8 {
		return false
	}

	hasUpper := false
	hasLower := false
	hasNumber := false

	for _, char := range password {
		switch {
		case 'A' <= char && char <= 'Z':
			hasUpper = true
		case 'a' <= char && char <= 'z':
			hasLower = true
		case '0' <= char && char <= '9':
			hasNumber = true
		}
	}

	return hasUpper && hasLower && hasNumber
}

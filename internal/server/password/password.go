// Package password wraps bcrypt for one-way salted password hashing. The
// cost factor is embedded in the hash output, so verification never needs it
// passed separately.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the work factor used when none is configured. Matches
// bcrypt's own default of 10 rounds.
const DefaultCost = 10

// Hasher hashes and verifies raw passwords with a fixed cost factor.
type Hasher struct {
	cost int
}

// NewHasher constructs a Hasher. A non-positive cost falls back to
// DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost <= 0 {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the salted bcrypt hash of raw. Output differs between calls
// for the same input; only Verify can match them.
func (h *Hasher) Hash(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing password: %w", err)
	}
	return string(hashed), nil
}

// Verify reports whether raw matches hashed. A mismatch is (false, nil); an
// error is returned only when the stored hash itself is malformed.
func (h *Hasher) Verify(raw, hashed string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(raw))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return false, nil
	}
	return false, fmt.Errorf("malformed password hash: %w", err)
}

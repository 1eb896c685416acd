// Package password hashes and verifies account passwords.
package password

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// MaxBytes is the longest password bcrypt accepts.
const MaxBytes = 72

var (
	// ErrMismatch is returned when a password does not match its hash.
	ErrMismatch = errors.New("password mismatch")
	// ErrTooLong is returned by Hash for passwords over MaxBytes.
	ErrTooLong = errors.New("password too long")
)

// Hasher produces and checks password hashes.
type Hasher interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) error
}

// BcryptHasher hashes with bcrypt and also verifies legacy unsalted SHA-256
// hex digests.
type BcryptHasher struct {
	Cost int
}

func NewBcrypt(cost int) BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return BcryptHasher{Cost: cost}
}

func (h BcryptHasher) Hash(plain string) (string, error) {
	if len(plain) > MaxBytes {
		return "", ErrTooLong
	}
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	out, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrTooLong
		}
		return "", err
	}
	return string(out), nil
}

func (h BcryptHasher) Verify(hash, plain string) error {
	if isLegacyDigest(hash) {
		if subtle.ConstantTimeCompare([]byte(LegacyDigest(plain)), []byte(strings.ToLower(hash))) == 1 {
			return nil
		}
		return ErrMismatch
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}

// LegacyDigest returns the unsalted SHA-256 hex digest older databases store.
func LegacyDigest(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return hex.EncodeToString(sum[:])
}

func isLegacyDigest(hash string) bool {
	if len(hash) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(hash)
	return err == nil
}

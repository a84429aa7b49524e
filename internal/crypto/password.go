package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// MinBcryptCost is the lowest work factor accepted for password hashes.
const MinBcryptCost = 10

var ErrPasswordTooLong = errors.New("password must be at most 72 bytes")

// dummyHash is compared against when no user matches a login attempt, so that
// unknown emails cost the same bcrypt work as wrong passwords.
var dummyHash []byte

func init() {
	h, err := bcrypt.GenerateFromPassword([]byte("tasknest-timing-equalizer"), MinBcryptCost)
	if err != nil {
		panic(fmt.Sprintf("crypto: generating dummy hash: %v", err))
	}
	dummyHash = h
}

// HashPassword hashes a password with bcrypt. Costs below MinBcryptCost are raised to it.
func HashPassword(password string, cost int) (string, error) {
	if cost < MinBcryptCost {
		cost = MinBcryptCost
	}
	if cost > bcrypt.MaxCost {
		cost = bcrypt.MaxCost
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrPasswordTooLong
		}
		return "", fmt.Errorf("hashing password: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the bcrypt hash.
// bcrypt compares the derived keys in constant time.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}

// BurnPasswordCheck performs a comparison against a fixed hash and discards the result.
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

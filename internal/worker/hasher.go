package worker

import (
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used for stored passwords.
const DefaultCost = 10

// MaxPasswordBytes is the most bcrypt reads. Longer passwords are cut at the
// last whole rune that fits, for both hashing and comparing.
const MaxPasswordBytes = 72

type BcryptHasher struct {
	Cost int
}

func (h BcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword(truncatePassword(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether hash was derived from password.
func Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), truncatePassword(password)) == nil
}

func truncatePassword(password string) []byte {
	if len(password) <= MaxPasswordBytes {
		return []byte(password)
	}
	cut := MaxPasswordBytes
	for cut > 0 && !utf8.RuneStart(password[cut]) {
		cut--
	}
	return []byte(password[:cut])
}

package util

import (
	"golang.org/x/crypto/bcrypt"
)

// Admin accounts are the only password holders; customers sign in
// through LINE and never have one.
const passwordHashCost = 12

// HashPassword hashes an admin password for storage.
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// VerifyPassword reports whether the plaintext matches the stored hash.
func VerifyPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}

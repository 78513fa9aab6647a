package service

import (
	"log"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt only looks at the first 72 bytes; longer passwords are cut there
// both when hashing and when checking, so old hashes keep verifying.
const bcryptMaxBytes = 72

func clampPassword(password string) []byte {
	b := []byte(password)
	if len(b) > bcryptMaxBytes {
		log.Printf("[WARN] password truncated from %d to %d bytes", len(b), bcryptMaxBytes)
		b = b[:bcryptMaxBytes]
	}
	return b
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(clampPassword(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func CheckPasswordHash(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), clampPassword(password))
}

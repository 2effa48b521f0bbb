package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// bcryptPrefix starts every bcrypt hash ($2a$, $2b$, $2y$).
const bcryptPrefix = "$2"

// HashPassword returns the lowercase hex encoding of the SHA-256 sum of
// password. This is the digest format of the credential file.
//
// Example usage:
//
//	digest := utils.HashPassword("123456")
//	// 8d969eef6ecad3c29a3a629280e686cf0c3f5d5a86aff3ca12020c923adc6c92
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// BcryptPassword returns a bcrypt hash of password suitable for the
// credential file.
func BcryptPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("error hashing password with bcrypt: %w", err)
	}

	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored digest.
//
// Digests starting with "$2" are checked as bcrypt hashes; anything else is
// compared, in constant time and ignoring hex case, against the SHA-256 hex
// digest of password.
func VerifyPassword(digest, password string) bool {
	if strings.HasPrefix(digest, bcryptPrefix) {
		return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
	}

	expected := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(digest)), []byte(expected)) == 1
}

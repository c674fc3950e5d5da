package auth

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is lower than a login service would use: hashes are
// compared once per submission on the visitor's own machine.
const BcryptCost = 10

// Normalize trims surrounding whitespace and lower-cases s. Identities
// and secrets are always compared in normalized form.
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// IsHash reports whether s looks like a bcrypt hash rather than a
// plain-text secret.
func IsHash(s string) bool {
	if len(s) != 60 {
		return false
	}
	switch s[:4] {
	case "$2a$", "$2b$", "$2y$":
		return true
	}
	return false
}

// MalformedHash reports whether s starts like a bcrypt hash but is not
// one. This is what a hash looks like after being cut short or partly
// expanded as shell variables.
func MalformedHash(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "$2") && !IsHash(s)
}

// HashSecret returns the bcrypt hash of the normalized secret.
func HashSecret(secret string) (string, error) {
	normalized := Normalize(secret)
	if normalized == "" {
		return "", fmt.Errorf("secret cannot be empty")
	}
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(normalized), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash secret: %w", err)
	}
	return string(hashedBytes), nil
}

// MatchSecret reports whether the normalized secret equals an allow-list
// entry. Entries may be plain text or bcrypt hashes.
func MatchSecret(entry, normalizedSecret string) bool {
	if IsHash(entry) {
		return bcrypt.CompareHashAndPassword([]byte(entry), []byte(normalizedSecret)) == nil
	}
	return Normalize(entry) == normalizedSecret
}

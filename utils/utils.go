package utils

import (
	"golang.org/x/crypto/bcrypt"

	"lms/config"
)

// HashPassword hashes a plaintext password with the configured cost
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), config.AppConfig.SaltRound)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a bcrypt hash
func CheckPassword(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}

// MaskSecret replaces a secret value with the configured placeholder.
// Empty values stay empty so the client can tell "unset" from "hidden".
func MaskSecret(value string) string {
	if value == "" {
		return ""
	}
	return config.AppConfig.SecretMask
}

// IsMasked reports whether a submitted value is the placeholder itself,
// meaning the client sent back a masked read and the stored value must be kept.
func IsMasked(value string) bool {
	return value == config.AppConfig.SecretMask
}

// Pagination normalizes page/limit query values to sane defaults
func Pagination(page, limit *int) (int, int, int) {
	p := 1
	l := 10
	if page != nil && *page > 0 {
		p = *page
	}
	if limit != nil && *limit > 0 {
		l = *limit
	}
	return p, l, (p - 1) * l
}

package models

import (
	"crypto/rand"
	"encoding/base64"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// DefaultBcryptCost is the default cost parameter for bcrypt hashing.
// Cost 10 provides a good balance between security and performance.
const DefaultBcryptCost = 10

// Password validation errors.
var (
	// ErrInvalidCredentials is returned when credentials are invalid.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrPasswordTooShort is returned when a password is too short.
	ErrPasswordTooShort = errors.New("password must be at least 8 characters")

	// ErrPasswordTooLong is returned when a password is too long.
	// bcrypt has a maximum input length of 72 bytes.
	ErrPasswordTooLong = errors.New("password must be at most 72 characters")
)

// Password length constraints.
const (
	// MinPasswordLength is the minimum required password length.
	MinPasswordLength = 8

	// MaxPasswordLength is the maximum allowed password length.
	// bcrypt silently truncates at 72 bytes, so we enforce this limit.
	MaxPasswordLength = 72
)

// ValidatePassword checks the length constraints on a raw password.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

// HashPassword creates a bcrypt hash of the given password.
// Each call salts independently, so hashing the same input twice
// yields two different strings.
func HashPassword(password string) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultBcryptCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// HashPasswordWithCost creates a bcrypt hash with a custom cost.
// Valid cost values are between 4 and 31.
func HashPasswordWithCost(password string, cost int) (string, error) {
	if err := ValidatePassword(password); err != nil {
		return "", err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// CheckPassword compares a raw password against a bcrypt hash in constant
// time. It returns false for any mismatch or malformed hash and never
// panics on user-supplied input.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// GeneratePlaceholderPassword returns a random high-entropy password for
// accounts created through an identity provider. The value is hashed and
// stored so the account has a password column like any other, but it is
// never revealed, so it cannot be used for local login.
func GeneratePlaceholderPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

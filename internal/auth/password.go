package auth

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"propertycalc/server/internal/models"
)

const MaxUsernameLength = 25

// HashPassword returns a bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches hash.
func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// ValidateRegistration checks a registration form before a user is created.
func ValidateRegistration(username, password, confirm string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.NewValidationError("username", "Username is required")
	}
	if len(username) > MaxUsernameLength {
		return models.NewValidationError("username", "Username must be at most 25 characters")
	}
	if password == "" {
		return models.NewValidationError("password", "Password is required")
	}
	if password != confirm {
		return models.NewValidationError("confirm-password", "Passwords do not match")
	}
	if len(password) > 72 {
		// bcrypt ignores everything past 72 bytes
		return models.NewValidationError("password", "Password must be at most 72 bytes")
	}
	return nil
}

// IsValidationError reports whether err carries a user-facing message.
func IsValidationError(err error) bool {
	var vErr *models.ValidationError
	return errors.As(err, &vErr)
}

package auth

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propertycalc/server/internal/models"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", hash)

	assert.True(t, CheckPassword(hash, "s3cret"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("not-a-hash", "s3cret"))
}

func TestValidateRegistration(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		message  string
	}{
		{"Valid", "alice", "pw", "pw", ""},
		{"Passwords differ", "alice", "pw", "other", "Passwords do not match"},
		{"Empty username", "  ", "pw", "pw", "Username is required"},
		{"Username too long", strings.Repeat("a", 26), "pw", "pw", "Username must be at most 25 characters"},
		{"Empty password", "alice", "", "", "Password is required"},
		{"Password too long", "alice", strings.Repeat("p", 73), strings.Repeat("p", 73), "Password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRegistration(tt.username, tt.password, tt.confirm)
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			var vErr *models.ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.message, vErr.Message)
			assert.True(t, IsValidationError(err))
		})
	}
}

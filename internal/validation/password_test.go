package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  string
	}{
		{"valid", "Str0ngPass!", ""},
		{"valid at min length", "Aa1!aaaa", ""},
		{"valid at max length", "Aa1!aaaaaaaaaaaaaaaa", ""},
		{"too short", "Sh0rt1!", "password must be at least 8 characters"},
		{"too long", "Aa1!aaaaaaaaaaaaaaaaa", "password must be at most 20 characters"},
		{"no uppercase", "weakpass1!", "password must contain at least one uppercase letter"},
		{"no lowercase", "WEAKPASS1!", "password must contain at least one lowercase letter"},
		{"no digit", "WeakPass!", "password must contain at least one digit"},
		{"no special", "WeakPass123", "password must contain at least one special character (!@#$%^&*)"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePassword(tt.password)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)

			var validationErr *Error
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, "password", validationErr.Field)
		})
	}
}

// Symbols outside the accepted set do not satisfy the special-character rule.
func TestValidatePasswordSpecialSetIsClosed(t *testing.T) {
	err := ValidatePassword("WeakPass1-")
	assert.Error(t, err)

	err = ValidatePassword("WeakPass1?")
	assert.Error(t, err)
}

package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateEmail(t *testing.T) {
	for _, email := range []string{
		"user@example.com",
		"first.last@sub.example.co.uk",
		"user+tag@example.com",
	} {
		assert.NoError(t, ValidateEmail(email), email)
	}

	for _, email := range []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user @example.com",
	} {
		assert.Error(t, ValidateEmail(email), email)
	}
}

func TestValidateEmailLength(t *testing.T) {
	long := strings.Repeat("a", 250) + "@example.com"
	assert.Error(t, ValidateEmail(long))
}

func TestValidateEmailFieldError(t *testing.T) {
	var validationErr *Error
	require.ErrorAs(t, ValidateEmail("plainaddress"), &validationErr)
	assert.Equal(t, "email", validationErr.Field)
}

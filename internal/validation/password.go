package validation

import (
	"strings"
	"unicode"
)

// specialChars is the accepted symbol set for passwords.
const specialChars = "!@#$%^&*"

func passwordError(message string) *Error {
	return &Error{Field: "password", Message: message}
}

// ValidatePassword enforces the sign-up/sign-in password rule: 8-20
// characters with at least one uppercase letter, one lowercase letter, one
// digit and one symbol from the special-character set. Runs before any
// credential reaches the auth service.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return passwordError("password must be at least 8 characters")
	}
	if len(password) > 20 {
		return passwordError("password must be at most 20 characters")
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		case strings.ContainsRune(specialChars, r):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return passwordError("password must contain at least one uppercase letter")
	}
	if !hasLower {
		return passwordError("password must contain at least one lowercase letter")
	}
	if !hasDigit {
		return passwordError("password must contain at least one digit")
	}
	if !hasSpecial {
		return passwordError("password must contain at least one special character (" + specialChars + ")")
	}

	return nil
}

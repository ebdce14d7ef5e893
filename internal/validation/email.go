package validation

import (
	"net/mail"
)

// ValidateEmail validates email format and length using Go's RFC 5322 parser
func ValidateEmail(email string) error {
	if email == "" {
		return &Error{Field: "email", Message: "email address is required"}
	}

	// RFC 5321: 254 is the longest deliverable address
	if len(email) > 254 {
		return &Error{Field: "email", Message: "email address is too long (max 254 characters)"}
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return &Error{Field: "email", Message: "invalid email address format"}
	}

	return nil
}

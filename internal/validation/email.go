package validation

import (
	"net/mail"
)

// ValidateEmail validates email format and length using Go's RFC 5322 parser.
func ValidateEmail(email string) error {
	if email == "" {
		return fail("Email address is required")
	}

	// RFC 5321 upper bound for a full address
	if len(email) > 254 {
		return fail("Email address is too long (max 254 characters)")
	}

	_, err := mail.ParseAddress(email)
	if err != nil {
		return fail("Invalid email address format")
	}

	return nil
}

package validation

import (
	"strings"
)

// ValidatePassword enforces a minimum length and rejects obviously weak
// choices. The 72-byte ceiling exists because bcrypt silently truncates
// anything longer.
func ValidatePassword(password string) error {
	if len(password) < 12 {
		return fail("Password must be at least 12 characters")
	}

	if len(password) > 72 {
		return fail("Password must not exceed 72 characters")
	}

	lower := strings.ToLower(password)
	for _, pattern := range []string{"password", "123456", "qwerty", "letmein", "welcome"} {
		if strings.Contains(lower, pattern) {
			return fail("Password is too common, please choose a stronger one")
		}
	}

	return nil
}

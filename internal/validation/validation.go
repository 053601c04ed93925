// Package validation holds the input rules enforced before any operation
// touches storage. Validators return *Error so handlers can map failures to
// 400 responses without string matching.
package validation

// Error is a user-facing input validation failure.
type Error struct {
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func fail(message string) *Error {
	return &Error{Message: message}
}

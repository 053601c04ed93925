package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateGoalTitle(t *testing.T) {
	assert.NoError(t, ValidateGoalTitle("Run a marathon"))
	assert.Error(t, ValidateGoalTitle(""))
	assert.Error(t, ValidateGoalTitle("   "))
	assert.Error(t, ValidateGoalTitle(strings.Repeat("x", 201)))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))
	assert.Error(t, ValidateEmail(""))
	assert.Error(t, ValidateEmail("not-an-email"))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("correct-horse-battery"))
	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword("password12345678"))
	assert.Error(t, ValidatePassword(strings.Repeat("x", 73)))
}

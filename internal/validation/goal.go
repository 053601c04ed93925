package validation

import (
	"strings"
)

// ValidateGoalTitle enforces the only hard requirement on goal creation:
// a non-empty title.
func ValidateGoalTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fail("Goal title is required")
	}
	if len(title) > 200 {
		return fail("Goal title is too long (max 200 characters)")
	}
	return nil
}

// ValidateMilestoneTitle applies the same rule to milestone titles supplied
// with a new goal.
func ValidateMilestoneTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return fail("Milestone title is required")
	}
	if len(title) > 200 {
		return fail("Milestone title is too long (max 200 characters)")
	}
	return nil
}

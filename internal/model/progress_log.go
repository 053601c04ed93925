package model

import (
	"time"
)

// ProgressLog is an append-only record of a single "I made progress today"
// event. Logs are never mutated or deleted, and deliberately survive the
// deletion of their goal.
type ProgressLog struct {
	ID       string    `db:"id" json:"id"`
	UserID   string    `db:"user_id" json:"-"`
	GoalID   string    `db:"goal_id" json:"goalId"`
	LoggedAt time.Time `db:"logged_at" json:"loggedAt"`
	Note     *string   `db:"note" json:"note"`
}

package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

const (
	GoalSortRecent   = "recent"
	GoalSortProgress = "progress"
	GoalSortTitle    = "title"
)

// ErrGoalNotFound covers both a missing goal and a goal owned by somebody
// else. The two cases are deliberately indistinguishable so responses never
// leak whether a foreign goal id exists.
var ErrGoalNotFound = errors.New("goal not found or access denied")

// LogApply computes the goal's next state for a log event. It runs inside
// the repository transaction against freshly read state: it mutates goal in
// place and returns the log row to append.
type LogApply func(goal *model.Goal, milestones []*model.Milestone) (*model.ProgressLog, error)

type GoalRepository interface {
	Create(goal *model.Goal) error
	ByID(userID, goalID string) (*model.Goal, error)
	Goals(userID, sortBy string) ([]*model.Goal, error)
	CountByUser(userID string) (int, error)
	CountCompletedByUser(userID string) (int, error)
	AverageProgress(userID string) (float64, error)
	BestStreak(userID string) (int, error)
	ApplyLog(userID, goalID string, apply LogApply) (*model.Goal, error)
	ToggleMilestone(userID, goalID, milestoneID string, completed bool, now time.Time, progressOf func([]*model.Milestone) int) error
	Delete(userID, goalID string) error
}

type goalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) GoalRepository {
	return &goalRepository{db: db}
}

func (r *goalRepository) Create(goal *model.Goal) error {
	query := `INSERT INTO goals (id, user_id, title, description, progress, streak, notes, target_date, created_at, last_updated)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.db.Exec(query,
		goal.ID,
		goal.UserID,
		goal.Title,
		goal.Description,
		goal.Progress,
		goal.Streak,
		goal.Notes,
		goal.TargetDate,
		goal.CreatedAt,
		goal.LastUpdated,
	)

	return err
}

func (r *goalRepository) ByID(userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2`

	err := r.db.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func (r *goalRepository) Goals(userID, sortBy string) ([]*model.Goal, error) {
	var goals []*model.Goal

	var orderBy string
	switch sortBy {
	case GoalSortProgress:
		orderBy = "ORDER BY progress DESC, last_updated DESC"
	case GoalSortTitle:
		orderBy = "ORDER BY LOWER(title) ASC"
	default: // GoalSortRecent or empty
		orderBy = "ORDER BY created_at DESC"
	}

	query := `SELECT * FROM goals WHERE user_id = $1 ` + orderBy

	err := r.db.Select(&goals, query, userID)
	if err != nil {
		return nil, err
	}

	return goals, nil
}

func (r *goalRepository) CountByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *goalRepository) CountCompletedByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM goals WHERE user_id = $1 AND progress = 100`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

func (r *goalRepository) AverageProgress(userID string) (float64, error) {
	var avg sql.NullFloat64
	query := `SELECT AVG(progress) FROM goals WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&avg)
	return avg.Float64, err
}

func (r *goalRepository) BestStreak(userID string) (int, error) {
	var best sql.NullInt64
	query := `SELECT MAX(streak) FROM goals WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&best)
	return int(best.Int64), err
}

// lockClause makes the goal read in a mutation transaction exclusive.
// Postgres locks the row; SQLite rejects FOR UPDATE and serializes writers
// through the transaction lock instead (the DSN carries _txlock=immediate).
func (r *goalRepository) lockClause() string {
	if r.db.DriverName() == "pgx" {
		return " FOR UPDATE"
	}
	return ""
}

func (r *goalRepository) goalForUpdate(tx *sqlx.Tx, userID, goalID string) (*model.Goal, error) {
	goal := &model.Goal{}
	query := `SELECT * FROM goals WHERE id = $1 AND user_id = $2` + r.lockClause()

	err := tx.Get(goal, query, goalID, userID)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}

	return goal, err
}

func milestonesForGoal(tx *sqlx.Tx, goalID string) ([]*model.Milestone, error) {
	var milestones []*model.Milestone
	query := `SELECT * FROM milestones WHERE goal_id = $1 ORDER BY created_at ASC, id ASC`
	err := tx.Select(&milestones, query, goalID)
	return milestones, err
}

// ApplyLog persists a log-progress event. The goal and its milestones are
// read under the same transaction that writes, so two concurrent log events
// serialize and neither clobbers the other's increment: apply always sees
// the previously committed state.
func (r *goalRepository) ApplyLog(userID, goalID string, apply LogApply) (*model.Goal, error) {
	tx, err := r.db.Beginx()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	goal, err := r.goalForUpdate(tx, userID, goalID)
	if err != nil {
		return nil, err
	}

	milestones, err := milestonesForGoal(tx, goal.ID)
	if err != nil {
		return nil, err
	}

	entry, err := apply(goal, milestones)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO progress_logs (id, user_id, goal_id, logged_at, note) VALUES ($1, $2, $3, $4, $5)`,
		entry.ID, entry.UserID, entry.GoalID, entry.LoggedAt, entry.Note,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to append progress log: %w", err)
	}

	_, err = tx.Exec(
		`UPDATE goals SET progress = $1, streak = $2, notes = $3, last_updated = $4 WHERE id = $5 AND user_id = $6`,
		goal.Progress, goal.Streak, goal.Notes, goal.LastUpdated, goal.ID, goal.UserID,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return goal, nil
}

// ToggleMilestone flips a milestone's completed flag and writes the goal's
// recomputed completion percentage, all under one transaction with the goal
// row held, so concurrent toggles cannot base the ratio on stale milestone
// state. The streak column is never touched here.
func (r *goalRepository) ToggleMilestone(userID, goalID, milestoneID string, completed bool, now time.Time, progressOf func([]*model.Milestone) int) error {
	tx, err := r.db.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	goal, err := r.goalForUpdate(tx, userID, goalID)
	if err != nil {
		return err
	}

	var completedAt *time.Time
	if completed {
		completedAt = &now
	}

	result, err := tx.Exec(
		`UPDATE milestones SET completed = $1, completed_at = $2 WHERE id = $3 AND goal_id = $4`,
		completed, completedAt, milestoneID, goal.ID,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrMilestoneNotFound
	}

	milestones, err := milestonesForGoal(tx, goal.ID)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`UPDATE goals SET progress = $1, last_updated = $2 WHERE id = $3 AND user_id = $4`,
		progressOf(milestones), now, goal.ID, userID,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes the goal and its milestones in one transaction, milestones
// first so they never outlive their goal. Progress logs are kept.
func (r *goalRepository) Delete(userID, goalID string) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`DELETE FROM milestones WHERE goal_id = $1`, goalID)
	if err != nil {
		return err
	}

	result, err := tx.Exec(`DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, userID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrGoalNotFound
	}

	return tx.Commit()
}

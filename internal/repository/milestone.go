package repository

import (
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

// ErrMilestoneNotFound mirrors ErrGoalNotFound: a missing milestone and a
// milestone under somebody else's goal produce the same error.
var ErrMilestoneNotFound = errors.New("milestone not found or access denied")

// MilestoneRepository reads and batch-creates milestones. Completion state
// is changed exclusively through GoalRepository.ToggleMilestone, which
// recomputes the goal's progress in the same transaction.
type MilestoneRepository interface {
	CreateBatch(milestones []*model.Milestone) error
	ByGoal(goalID string) ([]*model.Milestone, error)
	CountCompletedByUser(userID string) (int, error)
}

type milestoneRepository struct {
	db *sqlx.DB
}

func NewMilestoneRepository(db *sqlx.DB) MilestoneRepository {
	return &milestoneRepository{db: db}
}

func (r *milestoneRepository) CreateBatch(milestones []*model.Milestone) error {
	if len(milestones) == 0 {
		return nil
	}

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO milestones (id, goal_id, title, description, completed, completed_at, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7)`

	for i, m := range milestones {
		_, err := tx.Exec(query, m.ID, m.GoalID, m.Title, m.Description, m.Completed, m.CompletedAt, m.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to create milestone %d: %w", i+1, err)
		}
	}

	return tx.Commit()
}

func (r *milestoneRepository) ByGoal(goalID string) ([]*model.Milestone, error) {
	var milestones []*model.Milestone
	query := `SELECT * FROM milestones WHERE goal_id = $1 ORDER BY created_at ASC, id ASC`

	err := r.db.Select(&milestones, query, goalID)
	if err != nil {
		return nil, err
	}

	return milestones, nil
}

func (r *milestoneRepository) CountCompletedByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM milestones m
	          JOIN goals g ON g.id = m.goal_id
	          WHERE g.user_id = $1 AND m.completed = true`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

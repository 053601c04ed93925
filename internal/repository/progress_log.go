package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/model"
)

// ProgressLogRepository is read-only: log rows are written exclusively by
// GoalRepository.ApplyLog as part of the log-progress transaction, and are
// never updated or deleted.
type ProgressLogRepository interface {
	ByGoal(userID, goalID string) ([]*model.ProgressLog, error)
	CountByUser(userID string) (int, error)
}

type progressLogRepository struct {
	db *sqlx.DB
}

func NewProgressLogRepository(db *sqlx.DB) ProgressLogRepository {
	return &progressLogRepository{db: db}
}

func (r *progressLogRepository) ByGoal(userID, goalID string) ([]*model.ProgressLog, error) {
	var logs []*model.ProgressLog
	query := `SELECT * FROM progress_logs WHERE goal_id = $1 AND user_id = $2 ORDER BY logged_at ASC, id ASC`

	err := r.db.Select(&logs, query, goalID, userID)
	if err != nil {
		return nil, err
	}

	return logs, nil
}

func (r *progressLogRepository) CountByUser(userID string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM progress_logs WHERE user_id = $1`
	err := r.db.QueryRow(query, userID).Scan(&count)
	return count, err
}

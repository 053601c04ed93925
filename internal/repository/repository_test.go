package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/db"
	"github.com/stridehq/stride/internal/model"
)

// newTestDB returns a migrated in-memory SQLite database. A single
// connection is forced so every query sees the same memory store.
func newTestDB(t *testing.T) *sqlx.DB {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)

	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

func seedUser(t *testing.T, database *sqlx.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: "x",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, NewUserRepository(database).Create(user))
	return user
}

func seedGoal(t *testing.T, database *sqlx.DB, userID, title string) *model.Goal {
	t.Helper()

	goal := &model.Goal{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Notes:     model.NoteList{},
		CreatedAt: time.Now(),
	}
	require.NoError(t, NewGoalRepository(database).Create(goal))
	return goal
}

func seedMilestone(t *testing.T, database *sqlx.DB, goalID, title string, completed bool) *model.Milestone {
	t.Helper()

	now := time.Now()
	var completedAt *time.Time
	if completed {
		completedAt = &now
	}
	m := &model.Milestone{
		ID:          uuid.New().String(),
		GoalID:      goalID,
		Title:       title,
		Completed:   completed,
		CompletedAt: completedAt,
		CreatedAt:   now,
	}
	require.NoError(t, NewMilestoneRepository(database).CreateBatch([]*model.Milestone{m}))
	return m
}

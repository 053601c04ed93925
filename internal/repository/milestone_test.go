package repository

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/model"
)

func TestMilestoneRepositoryCreateBatchAndByGoal(t *testing.T) {
	database := newTestDB(t)
	repo := NewMilestoneRepository(database)
	user := seedUser(t, database, "a@example.com")
	goal := seedGoal(t, database, user.ID, "Write a book")

	now := time.Now()
	batch := []*model.Milestone{
		{ID: uuid.New().String(), GoalID: goal.ID, Title: "Outline", CreatedAt: now},
		{ID: uuid.New().String(), GoalID: goal.ID, Title: "Draft", CreatedAt: now.Add(time.Second)},
	}
	require.NoError(t, repo.CreateBatch(batch))

	milestones, err := repo.ByGoal(goal.ID)
	require.NoError(t, err)
	require.Len(t, milestones, 2)
	assert.Equal(t, "Outline", milestones[0].Title)
	assert.Equal(t, "Draft", milestones[1].Title)
	assert.False(t, milestones[0].Completed)
	assert.Nil(t, milestones[0].CompletedAt)
}

func TestMilestoneRepositoryCreateBatchEmpty(t *testing.T) {
	database := newTestDB(t)
	repo := NewMilestoneRepository(database)

	require.NoError(t, repo.CreateBatch(nil))
}

func TestMilestoneRepositoryCountCompletedByUser(t *testing.T) {
	database := newTestDB(t)
	repo := NewMilestoneRepository(database)
	a := seedUser(t, database, "a@example.com")
	b := seedUser(t, database, "b@example.com")
	goalA := seedGoal(t, database, a.ID, "Goal A")
	goalB := seedGoal(t, database, b.ID, "Goal B")

	seedMilestone(t, database, goalA.ID, "one", true)
	seedMilestone(t, database, goalA.ID, "two", false)
	seedMilestone(t, database, goalB.ID, "three", true)

	count, err := repo.CountCompletedByUser(a.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

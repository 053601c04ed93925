package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/validation"
)

func TestGoalServiceCreate(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")

	desc := "warm up first"
	goal, err := env.goals.Create(userID, "Run a marathon", "26.2 miles", nil, []MilestoneInput{
		{Title: "Run 5k"},
		{Title: "Run 10k", Description: &desc},
		{Title: "Run a half", Completed: true},
	})
	require.NoError(t, err)

	assert.Equal(t, 0, goal.Progress)
	assert.Equal(t, 0, goal.Streak)
	assert.Nil(t, goal.LastUpdated)
	assert.Len(t, goal.Milestones, 3)

	got, err := env.goals.ByID(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, "Run a marathon", got.Title)
	require.Len(t, got.Milestones, 3)

	completed := 0
	for _, m := range got.Milestones {
		if m.Completed {
			completed++
			assert.NotNil(t, m.CompletedAt)
		}
	}
	assert.Equal(t, 1, completed)
}

func TestGoalServiceCreateValidation(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")

	var vErr *validation.Error

	_, err := env.goals.Create(userID, "   ", "", nil, nil)
	assert.ErrorAs(t, err, &vErr)

	_, err = env.goals.Create(userID, "Fine title", "", nil, []MilestoneInput{{Title: ""}})
	assert.ErrorAs(t, err, &vErr)
}

func TestGoalServiceLogProgressFirstLog(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")
	goal, err := env.goals.Create(userID, "Read more", "", nil, nil)
	require.NoError(t, err)

	res, err := env.goals.LogProgress(userID, goal.ID, "chapter one")
	require.NoError(t, err)
	assert.Equal(t, 5, res.Progress)
	assert.Equal(t, 1, res.Streak)

	got, err := env.goals.ByID(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, got.Progress)
	assert.Equal(t, 1, got.Streak)
	require.NotNil(t, got.LastUpdated)
	assert.Equal(t, []string{"chapter one"}, []string(got.Notes))

	logs, err := env.goals.Logs(userID, goal.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	require.NotNil(t, logs[0].Note)
	assert.Equal(t, "chapter one", *logs[0].Note)
}

func TestGoalServiceLogProgressSameDay(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")
	goal, err := env.goals.Create(userID, "Read more", "", nil, nil)
	require.NoError(t, err)

	_, err = env.goals.LogProgress(userID, goal.ID, "")
	require.NoError(t, err)

	res, err := env.goals.LogProgress(userID, goal.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 10, res.Progress)
	assert.Equal(t, 1, res.Streak, "second log on the same day must not grow the streak")

	logs, err := env.goals.Logs(userID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
	for _, entry := range logs {
		assert.Nil(t, entry.Note)
	}
}

func TestGoalServiceLogProgressConcurrentSameDay(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")
	goal, err := env.goals.Create(userID, "Read more", "", nil, nil)
	require.NoError(t, err)

	// Two clients log at the same time. Each increment must land on top
	// of the other's commit instead of a shared stale read.
	var wg sync.WaitGroup
	errs := make(chan error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.goals.LogProgress(userID, goal.ID, "")
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	got, err := env.goals.ByID(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, got.Progress)
	assert.Equal(t, 1, got.Streak)

	logs, err := env.goals.Logs(userID, goal.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 2)
}

func TestGoalServiceLogProgressWithMilestones(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")
	goal, err := env.goals.Create(userID, "Launch project", "", nil, []MilestoneInput{
		{Title: "Design", Completed: true},
		{Title: "Build"},
		{Title: "Ship"},
	})
	require.NoError(t, err)

	// Milestones are authoritative: 1 of 3 complete, not a +5 bump
	res, err := env.goals.LogProgress(userID, goal.ID, "")
	require.NoError(t, err)
	assert.Equal(t, 33, res.Progress)
	assert.Equal(t, 1, res.Streak)
}

func TestGoalServiceLogProgressForeignGoal(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com")
	intruder := env.registerUser(t, "intruder@example.com")
	goal, err := env.goals.Create(owner, "Private goal", "", nil, nil)
	require.NoError(t, err)

	_, err = env.goals.LogProgress(intruder, goal.ID, "")
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalServiceToggleMilestone(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")
	goal, err := env.goals.Create(userID, "Launch project", "", nil, []MilestoneInput{
		{Title: "Design"},
		{Title: "Build"},
	})
	require.NoError(t, err)

	err = env.goals.ToggleMilestone(userID, goal.ID, goal.Milestones[0].ID, true)
	require.NoError(t, err)

	got, err := env.goals.ByID(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 50, got.Progress)
	assert.Equal(t, 0, got.Streak, "milestone toggles never move the streak")

	// Un-completing recomputes downward
	err = env.goals.ToggleMilestone(userID, goal.ID, goal.Milestones[0].ID, false)
	require.NoError(t, err)

	got, err = env.goals.ByID(userID, goal.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Progress)
}

func TestGoalServiceToggleMilestoneErrors(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com")
	intruder := env.registerUser(t, "intruder@example.com")
	goal, err := env.goals.Create(owner, "Launch project", "", nil, []MilestoneInput{{Title: "Design"}})
	require.NoError(t, err)

	err = env.goals.ToggleMilestone(intruder, goal.ID, goal.Milestones[0].ID, true)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	err = env.goals.ToggleMilestone(owner, goal.ID, "no-such-milestone", true)
	assert.ErrorIs(t, err, repository.ErrMilestoneNotFound)
}

func TestGoalServiceDeleteKeepsLogs(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")
	goal, err := env.goals.Create(userID, "Short lived", "", nil, []MilestoneInput{{Title: "Step"}})
	require.NoError(t, err)

	_, err = env.goals.LogProgress(userID, goal.ID, "only entry")
	require.NoError(t, err)

	require.NoError(t, env.goals.Delete(userID, goal.ID))

	_, err = env.goals.ByID(userID, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)

	// History is append-only and survives goal deletion
	stats, err := env.stats.Stats(userID)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalGoals)
	assert.Equal(t, 1, stats.TotalLogs)
}

func TestGoalServiceLogsForeignGoal(t *testing.T) {
	env := newTestEnv(t)
	owner := env.registerUser(t, "owner@example.com")
	intruder := env.registerUser(t, "intruder@example.com")
	goal, err := env.goals.Create(owner, "Private goal", "", nil, nil)
	require.NoError(t, err)

	_, err = env.goals.Logs(intruder, goal.ID)
	assert.ErrorIs(t, err, repository.ErrGoalNotFound)
}

func TestGoalServiceGoalsAttachesMilestones(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")

	_, err := env.goals.Create(userID, "With milestones", "", nil, []MilestoneInput{{Title: "One"}})
	require.NoError(t, err)
	_, err = env.goals.Create(userID, "Without", "", nil, nil)
	require.NoError(t, err)

	goals, err := env.goals.Goals(userID, repository.GoalSortTitle)
	require.NoError(t, err)
	require.Len(t, goals, 2)
	assert.Equal(t, "With milestones", goals[0].Title)
	assert.Len(t, goals[0].Milestones, 1)
	assert.Empty(t, goals[1].Milestones)
}

func TestGoalServiceCreateWithTargetDate(t *testing.T) {
	env := newTestEnv(t)
	userID := env.registerUser(t, "a@example.com")

	target := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	goal, err := env.goals.Create(userID, "New year resolution", "", &target, nil)
	require.NoError(t, err)

	got, err := env.goals.ByID(userID, goal.ID)
	require.NoError(t, err)
	require.NotNil(t, got.TargetDate)
	assert.True(t, got.TargetDate.Equal(target))
}

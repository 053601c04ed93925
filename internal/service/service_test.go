package service

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"github.com/stridehq/stride/internal/db"
	"github.com/stridehq/stride/internal/repository"
)

// testEnv wires the services over a migrated in-memory database, the way
// app.New does in production but without Redis.
type testEnv struct {
	db           *sqlx.DB
	users        repository.UserRepository
	goals        *GoalService
	auth         *AuthService
	stats        *StatsService
	achievements *AchievementService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := sqlx.Connect("sqlite", ":memory:")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(database.DB, "sqlite"))

	t.Cleanup(func() {
		_ = database.Close()
	})

	userRepo := repository.NewUserRepository(database)
	goalRepo := repository.NewGoalRepository(database)
	milestoneRepo := repository.NewMilestoneRepository(database)
	logRepo := repository.NewProgressLogRepository(database)

	return &testEnv{
		db:           database,
		users:        userRepo,
		goals:        NewGoalService(goalRepo, milestoneRepo, logRepo, nil),
		auth:         NewAuthService(userRepo, "test-secret", testJWTExpiry),
		stats:        NewStatsService(goalRepo, logRepo, nil),
		achievements: NewAchievementService(goalRepo, milestoneRepo, logRepo),
	}
}

func (e *testEnv) registerUser(t *testing.T, email string) string {
	t.Helper()

	user, _, err := e.auth.Register(email, "correct horse battery")
	require.NoError(t, err)
	return user.ID
}

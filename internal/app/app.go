package app

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/stridehq/stride/internal/cache"
	"github.com/stridehq/stride/internal/config"
	"github.com/stridehq/stride/internal/db"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/service"
)

type App struct {
	Cfg                *config.Config
	DB                 *sqlx.DB
	Cache              *cache.Cache
	UserRepository     repository.UserRepository
	AuthService        *service.AuthService
	GoalService        *service.GoalService
	StatsService       *service.StatsService
	AchievementService *service.AchievementService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %v", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		return nil, fmt.Errorf("failed to run migrations: %v", err)
	}

	// Repositories
	userRepository := repository.NewUserRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	milestoneRepository := repository.NewMilestoneRepository(database)
	logRepository := repository.NewProgressLogRepository(database)

	// Optional stats cache
	statsCache := cache.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.StatsCacheTTL)

	// Services
	authService := service.NewAuthService(userRepository, cfg.JWTSecret, cfg.JWTExpiry)
	goalService := service.NewGoalService(goalRepository, milestoneRepository, logRepository, statsCache)
	statsService := service.NewStatsService(goalRepository, logRepository, statsCache)
	achievementService := service.NewAchievementService(goalRepository, milestoneRepository, logRepository)

	return &App{
		Cfg:                cfg,
		DB:                 database,
		Cache:              statsCache,
		UserRepository:     userRepository,
		AuthService:        authService,
		GoalService:        goalService,
		StatsService:       statsService,
		AchievementService: achievementService,
	}, nil
}

func (a *App) Close() error {
	if err := a.Cache.Close(); err != nil {
		return err
	}
	return db.Close(a.DB)
}

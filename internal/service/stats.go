package service

import (
	"math"

	"github.com/stridehq/stride/internal/cache"
	"github.com/stridehq/stride/internal/repository"
)

// Stats is the per-user dashboard summary derived from persisted state.
type Stats struct {
	TotalGoals      int `json:"totalGoals"`
	CompletedGoals  int `json:"completedGoals"`
	BestStreak      int `json:"bestStreak"`
	TotalLogs       int `json:"totalLogs"`
	AverageProgress int `json:"averageProgress"`
}

type StatsService struct {
	goalRepo repository.GoalRepository
	logRepo  repository.ProgressLogRepository
	cache    *cache.Cache
}

func NewStatsService(goalRepo repository.GoalRepository, logRepo repository.ProgressLogRepository, statsCache *cache.Cache) *StatsService {
	return &StatsService{
		goalRepo: goalRepo,
		logRepo:  logRepo,
		cache:    statsCache,
	}
}

func statsCacheKey(userID string) string {
	return "stats:" + userID
}

// Stats aggregates the user's goal state. Results are served from the
// cache when available; goal mutations invalidate the entry.
func (s *StatsService) Stats(userID string) (*Stats, error) {
	var cached Stats
	if s.cache.GetJSON(statsCacheKey(userID), &cached) {
		return &cached, nil
	}

	total, err := s.goalRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	completed, err := s.goalRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	best, err := s.goalRepo.BestStreak(userID)
	if err != nil {
		return nil, err
	}

	logs, err := s.logRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	avg, err := s.goalRepo.AverageProgress(userID)
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		TotalGoals:      total,
		CompletedGoals:  completed,
		BestStreak:      best,
		TotalLogs:       logs,
		AverageProgress: int(math.Round(avg)),
	}

	s.cache.SetJSON(statsCacheKey(userID), stats)
	return stats, nil
}

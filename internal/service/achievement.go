package service

import (
	"github.com/stridehq/stride/internal/repository"
)

// Achievement is a derived badge computed from persisted goal state; nothing
// about it is stored.
type Achievement struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Unlocked    bool   `json:"unlocked"`
	Progress    int    `json:"progress"`
	MaxProgress int    `json:"maxProgress"`
}

const (
	AchievementCategoryGoals      = "goals"
	AchievementCategoryMilestones = "milestones"
	AchievementCategoryStreaks    = "streaks"
)

type AchievementService struct {
	goalRepo      repository.GoalRepository
	milestoneRepo repository.MilestoneRepository
	logRepo       repository.ProgressLogRepository
}

func NewAchievementService(
	goalRepo repository.GoalRepository,
	milestoneRepo repository.MilestoneRepository,
	logRepo repository.ProgressLogRepository,
) *AchievementService {
	return &AchievementService{
		goalRepo:      goalRepo,
		milestoneRepo: milestoneRepo,
		logRepo:       logRepo,
	}
}

// Achievements recomputes the full badge list from current state on every
// call.
func (s *AchievementService) Achievements(userID string) ([]*Achievement, error) {
	totalGoals, err := s.goalRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	completedGoals, err := s.goalRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	completedMilestones, err := s.milestoneRepo.CountCompletedByUser(userID)
	if err != nil {
		return nil, err
	}

	bestStreak, err := s.goalRepo.BestStreak(userID)
	if err != nil {
		return nil, err
	}

	totalLogs, err := s.logRepo.CountByUser(userID)
	if err != nil {
		return nil, err
	}

	activeGoals := totalGoals - completedGoals

	return []*Achievement{
		badge("first-goal", "First Step", "Create your first goal",
			AchievementCategoryGoals, totalGoals, 1),
		badge("goal-collector", "Goal Collector", "Create 3 goals",
			AchievementCategoryGoals, totalGoals, 3),
		badge("finisher", "Finisher", "Bring a goal to 100%",
			AchievementCategoryGoals, completedGoals, 1),
		badge("multitasker", "Multitasker", "Have 3 goals in progress simultaneously",
			AchievementCategoryGoals, activeGoals, 3),
		badge("milestone-maker", "Milestone Maker", "Complete your first milestone",
			AchievementCategoryMilestones, completedMilestones, 1),
		badge("milestone-master", "Milestone Master", "Complete 5 milestones",
			AchievementCategoryMilestones, completedMilestones, 5),
		badge("week-warrior", "Week Warrior", "Log progress for 7 consecutive days",
			AchievementCategoryStreaks, bestStreak, 7),
		badge("dedicated", "Dedicated", "Log progress 30 times",
			AchievementCategoryStreaks, totalLogs, 30),
	}, nil
}

func badge(id, title, description, category string, progress, maxProgress int) *Achievement {
	return &Achievement{
		ID:          id,
		Title:       title,
		Description: description,
		Category:    category,
		Unlocked:    progress >= maxProgress,
		Progress:    min(progress, maxProgress),
		MaxProgress: maxProgress,
	}
}

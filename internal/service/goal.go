package service

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/stridehq/stride/internal/cache"
	"github.com/stridehq/stride/internal/engine"
	"github.com/stridehq/stride/internal/metrics"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/validation"
)

// MilestoneInput is a milestone supplied with a new goal.
type MilestoneInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Completed   bool    `json:"completed"`
}

// LogResult is what a log-progress call hands back to the caller: the
// persisted state the presentation layer needs to re-render.
type LogResult struct {
	Progress    int       `json:"progress"`
	Streak      int       `json:"streak"`
	LastUpdated time.Time `json:"lastUpdated"`
}

type GoalService struct {
	repo          repository.GoalRepository
	milestoneRepo repository.MilestoneRepository
	logRepo       repository.ProgressLogRepository
	cache         *cache.Cache
}

func NewGoalService(
	repo repository.GoalRepository,
	milestoneRepo repository.MilestoneRepository,
	logRepo repository.ProgressLogRepository,
	statsCache *cache.Cache,
) *GoalService {
	return &GoalService{
		repo:          repo,
		milestoneRepo: milestoneRepo,
		logRepo:       logRepo,
		cache:         statsCache,
	}
}

// Create inserts the goal plus any supplied milestones. Progress starts at
// 0 regardless of milestone ratio and streak at 0; the first log event sets
// both in motion.
func (s *GoalService) Create(userID, title, description string, targetDate *time.Time, milestones []MilestoneInput) (*model.Goal, error) {
	if err := validation.ValidateGoalTitle(title); err != nil {
		return nil, err
	}
	for _, m := range milestones {
		if err := validation.ValidateMilestoneTitle(m.Title); err != nil {
			return nil, err
		}
	}

	now := time.Now()
	goal := &model.Goal{
		ID:          uuid.New().String(),
		UserID:      userID,
		Title:       title,
		Description: description,
		Progress:    0,
		Streak:      0,
		Notes:       model.NoteList{},
		TargetDate:  targetDate,
		CreatedAt:   now,
		LastUpdated: nil,
	}

	err := s.repo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}

	rows := make([]*model.Milestone, 0, len(milestones))
	for _, m := range milestones {
		var completedAt *time.Time
		if m.Completed {
			completedAt = &now
		}
		rows = append(rows, &model.Milestone{
			ID:          uuid.New().String(),
			GoalID:      goal.ID,
			Title:       m.Title,
			Description: m.Description,
			Completed:   m.Completed,
			CompletedAt: completedAt,
			CreatedAt:   now,
		})
	}

	err = s.milestoneRepo.CreateBatch(rows)
	if err != nil {
		// Rollback: remove the goal so a half-created record never surfaces
		delErr := s.repo.Delete(userID, goal.ID)
		if delErr != nil {
			slog.Error("failed to delete goal during rollback", "error", delErr, "goal_id", goal.ID)
		}
		return nil, fmt.Errorf("failed to create milestones: %w", err)
	}

	goal.Milestones = rows
	metrics.GoalsCreated.Inc()
	s.invalidate(userID)

	return goal, nil
}

// ByID returns the goal with its milestones loaded, or the merged
// not-found/access-denied error.
func (s *GoalService) ByID(userID, goalID string) (*model.Goal, error) {
	goal, err := s.repo.ByID(userID, goalID)
	if err != nil {
		return nil, err
	}

	milestones, err := s.milestoneRepo.ByGoal(goal.ID)
	if err != nil {
		return nil, err
	}

	goal.Milestones = milestones
	return goal, nil
}

// Goals returns all of the user's goals with milestones attached.
func (s *GoalService) Goals(userID, sortBy string) ([]*model.Goal, error) {
	goals, err := s.repo.Goals(userID, sortBy)
	if err != nil {
		return nil, err
	}

	for _, goal := range goals {
		milestones, err := s.milestoneRepo.ByGoal(goal.ID)
		if err != nil {
			return nil, err
		}
		goal.Milestones = milestones
	}

	return goals, nil
}

// LogProgress records a "made progress today" event. The streak and
// progress rules run inside the repository transaction against freshly read
// state, so two sessions logging at once serialize instead of overwriting
// each other.
func (s *GoalService) LogProgress(userID, goalID, note string) (*LogResult, error) {
	now := time.Now()
	var outcome string

	goal, err := s.repo.ApplyLog(userID, goalID, func(goal *model.Goal, milestones []*model.Milestone) (*model.ProgressLog, error) {
		prevStreak := goal.Streak
		hadLogged := goal.LastUpdated != nil

		res := engine.LogProgress(goal, milestones, now)
		goal.Progress = res.Progress
		goal.Streak = res.Streak
		goal.LastUpdated = &res.LastUpdated
		outcome = streakOutcome(hadLogged, prevStreak, res.Streak)

		var notePtr *string
		if note != "" {
			notePtr = &note
			goal.Notes = append(goal.Notes, note)
		}

		return &model.ProgressLog{
			ID:       uuid.New().String(),
			UserID:   userID,
			GoalID:   goal.ID,
			LoggedAt: now,
			Note:     notePtr,
		}, nil
	})
	if err != nil {
		return nil, err
	}

	metrics.ProgressLogs.WithLabelValues(outcome).Inc()
	s.invalidate(userID)

	return &LogResult{Progress: goal.Progress, Streak: goal.Streak, LastUpdated: *goal.LastUpdated}, nil
}

func streakOutcome(hadLogged bool, prev, next int) string {
	switch {
	case !hadLogged:
		return "started"
	case next == prev+1:
		return "extended"
	case next == prev:
		return "kept"
	default:
		return "reset"
	}
}

// ToggleMilestone sets the milestone's completed flag and recomputes the
// goal's completion percentage over all of its milestones, in one
// transaction. The streak is left alone: only log events move it.
func (s *GoalService) ToggleMilestone(userID, goalID, milestoneID string, completed bool) error {
	err := s.repo.ToggleMilestone(userID, goalID, milestoneID, completed, time.Now(), engine.MilestoneProgress)
	if err != nil {
		return err
	}

	metrics.MilestoneToggles.WithLabelValues(fmt.Sprintf("%t", completed)).Inc()
	s.invalidate(userID)

	return nil
}

// Delete removes the goal and cascades to its milestones. Progress logs are
// append-only and stay behind.
func (s *GoalService) Delete(userID, goalID string) error {
	err := s.repo.Delete(userID, goalID)
	if err != nil {
		return err
	}

	metrics.GoalsDeleted.Inc()
	s.invalidate(userID)

	return nil
}

// Logs returns the goal's progress log history, oldest first. Ownership is
// enforced by the user id in the query itself; an empty history and a
// foreign goal are indistinguishable, matching the merged error semantics
// elsewhere.
func (s *GoalService) Logs(userID, goalID string) ([]*model.ProgressLog, error) {
	if _, err := s.repo.ByID(userID, goalID); err != nil {
		return nil, err
	}
	return s.logRepo.ByGoal(userID, goalID)
}

func (s *GoalService) invalidate(userID string) {
	s.cache.Delete(statsCacheKey(userID))
}

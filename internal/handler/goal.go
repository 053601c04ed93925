package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/engine"
	"github.com/stridehq/stride/internal/model"
	"github.com/stridehq/stride/internal/repository"
	"github.com/stridehq/stride/internal/service"
	"github.com/stridehq/stride/internal/validation"
)

type GoalHandler struct {
	goalService *service.GoalService
}

func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// goalResponse decorates a goal with its display-only decayed progress.
// The stored progress is never changed by rendering.
type goalResponse struct {
	*model.Goal
	DisplayProgress int `json:"displayProgress"`
}

func toGoalResponse(goal *model.Goal, now time.Time) goalResponse {
	return goalResponse{
		Goal:            goal,
		DisplayProgress: engine.DisplayProgress(goal, now),
	}
}

type createGoalRequest struct {
	Title       string                   `json:"title"`
	Description string                   `json:"description"`
	TargetDate  *time.Time               `json:"targetDate"`
	Milestones  []service.MilestoneInput `json:"milestones"`
}

func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	var req createGoalRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	goal, err := h.goalService.Create(user.ID, req.Title, req.Description, req.TargetDate, req.Milestones)
	if err != nil {
		var vErr *validation.Error
		if errors.As(err, &vErr) {
			RespondError(w, http.StatusBadRequest, vErr.Message)
			return
		}
		slog.Error("failed to create goal", "error", err, "user_id", user.ID)
		RespondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	RespondJSON(w, http.StatusCreated, map[string]any{"goal": toGoalResponse(goal, time.Now())})
}

func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	sortBy := r.URL.Query().Get("sort")
	if sortBy == "" {
		sortBy = repository.GoalSortRecent
	}

	goals, err := h.goalService.Goals(user.ID, sortBy)
	if err != nil {
		slog.Error("failed to get goals", "error", err, "user_id", user.ID)
		RespondError(w, http.StatusInternalServerError, "Failed to load goals")
		return
	}

	now := time.Now()
	out := make([]goalResponse, 0, len(goals))
	for _, goal := range goals {
		out = append(out, toGoalResponse(goal, now))
	}

	RespondJSON(w, http.StatusOK, map[string]any{"goals": out})
}

func (h *GoalHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.PathValue("id")
	if goalID == "" {
		RespondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	goal, err := h.goalService.ByID(user.ID, goalID)
	if err != nil {
		h.respondGoalError(w, err, user.ID, goalID)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"goal": toGoalResponse(goal, time.Now())})
}

func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.PathValue("id")
	if goalID == "" {
		RespondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	err := h.goalService.Delete(user.ID, goalID)
	if err != nil {
		h.respondGoalError(w, err, user.ID, goalID)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

type logProgressRequest struct {
	Notes string `json:"notes"`
}

func (h *GoalHandler) LogProgress(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.PathValue("id")
	if goalID == "" {
		RespondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	// An empty body means a plain log event with no note
	var req logProgressRequest
	if r.ContentLength != 0 && !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.goalService.LogProgress(user.ID, goalID, req.Notes)
	if err != nil {
		h.respondGoalError(w, err, user.ID, goalID)
		return
	}

	RespondJSON(w, http.StatusOK, result)
}

type toggleMilestoneRequest struct {
	Completed *bool `json:"completed"`
}

func (h *GoalHandler) ToggleMilestone(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.PathValue("id")
	milestoneID := r.PathValue("milestoneId")
	if goalID == "" || milestoneID == "" {
		RespondError(w, http.StatusBadRequest, "Goal ID and Milestone ID are required")
		return
	}

	var req toggleMilestoneRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Completed == nil {
		RespondError(w, http.StatusBadRequest, "Completed flag is required")
		return
	}

	err := h.goalService.ToggleMilestone(user.ID, goalID, milestoneID, *req.Completed)
	if err != nil {
		h.respondGoalError(w, err, user.ID, goalID)
		return
	}

	RespondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *GoalHandler) Logs(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	goalID := r.PathValue("id")
	if goalID == "" {
		RespondError(w, http.StatusBadRequest, "Goal ID is required")
		return
	}

	logs, err := h.goalService.Logs(user.ID, goalID)
	if err != nil {
		h.respondGoalError(w, err, user.ID, goalID)
		return
	}
	if logs == nil {
		logs = []*model.ProgressLog{}
	}

	RespondJSON(w, http.StatusOK, map[string]any{"logs": logs})
}

// respondGoalError maps service failures on a single goal. Both "does not
// exist" and "not yours" surface as the same 404 so goal ids cannot be
// enumerated.
func (h *GoalHandler) respondGoalError(w http.ResponseWriter, err error, userID, goalID string) {
	if errors.Is(err, repository.ErrGoalNotFound) || errors.Is(err, repository.ErrMilestoneNotFound) {
		RespondError(w, http.StatusNotFound, err.Error())
		return
	}
	slog.Error("goal operation failed", "error", err, "user_id", userID, "goal_id", goalID)
	RespondError(w, http.StatusInternalServerError, "Something went wrong")
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/stridehq/stride/internal/ctxkeys"
	"github.com/stridehq/stride/internal/service"
)

type StatsHandler struct {
	statsService       *service.StatsService
	achievementService *service.AchievementService
}

func NewStatsHandler(statsService *service.StatsService, achievementService *service.AchievementService) *StatsHandler {
	return &StatsHandler{
		statsService:       statsService,
		achievementService: achievementService,
	}
}

func (h *StatsHandler) Stats(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	stats, err := h.statsService.Stats(user.ID)
	if err != nil {
		slog.Error("failed to compute stats", "error", err, "user_id", user.ID)
		RespondError(w, http.StatusInternalServerError, "Failed to load stats")
		return
	}

	RespondJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) Achievements(w http.ResponseWriter, r *http.Request) {
	user := ctxkeys.User(r.Context())

	achievements, err := h.achievementService.Achievements(user.ID)
	if err != nil {
		slog.Error("failed to compute achievements", "error", err, "user_id", user.ID)
		RespondError(w, http.StatusInternalServerError, "Failed to load achievements")
		return
	}

	RespondJSON(w, http.StatusOK, map[string]any{"achievements": achievements})
}

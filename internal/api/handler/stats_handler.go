package handler

import (
	"net/http"

	"dsatracker/internal/app/service"
	"dsatracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

func (h *StatsHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats/{user}", h.userStats)
	r.Get("/leaderboard", h.leaderboard)
}

func (h *StatsHandler) userStats(w http.ResponseWriter, r *http.Request) {
	user := chi.URLParam(r, "user")

	stats, err := h.statsService.UserStats(r.Context(), user)
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch stats")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *StatsHandler) leaderboard(w http.ResponseWriter, r *http.Request) {
	rows, err := h.statsService.GlobalLeaderboard(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch leaderboard")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, rows)
}

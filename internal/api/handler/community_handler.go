package handler

import (
	"net/http"
	"strconv"

	"dsatracker/internal/app/service"
	"dsatracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type CommunityHandler struct {
	communityService *service.CommunityService
}

func NewCommunityHandler(communityService *service.CommunityService) *CommunityHandler {
	return &CommunityHandler{communityService: communityService}
}

func (h *CommunityHandler) RegisterRoutes(r chi.Router) {
	r.Get("/stats", h.stats)
	r.Get("/activity", h.activity)
	r.Get("/leaderboards", h.leaderboards)
	r.Get("/feed", h.feed)
	r.Get("/goals", h.goals)
}

func (h *CommunityHandler) stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.communityService.Stats(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch community stats")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, stats)
}

func (h *CommunityHandler) activity(w http.ResponseWriter, r *http.Request) {
	year := queryInt(r, "year", 0)
	days := queryInt(r, "days", 0)

	activity, err := h.communityService.Activity(r.Context(), year, days)
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch community activity")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, activity)
}

func (h *CommunityHandler) leaderboards(w http.ResponseWriter, r *http.Request) {
	boardType := r.URL.Query().Get("type")
	limit := queryInt(r, "limit", 0)

	boards, err := h.communityService.Leaderboards(r.Context(), boardType, limit)
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch leaderboards")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, boards)
}

func (h *CommunityHandler) feed(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 0)
	since := r.URL.Query().Get("since")

	items, err := h.communityService.Feed(r.Context(), limit, since)
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch activity feed")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, items)
}

func (h *CommunityHandler) goals(w http.ResponseWriter, r *http.Request) {
	goals, err := h.communityService.Goals(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch community goals")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, goals)
}

// queryInt parses an integer query parameter, falling back on absence or
// garbage.
func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

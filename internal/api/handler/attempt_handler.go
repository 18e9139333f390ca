package handler

import (
	"encoding/json"
	"net/http"

	"dsatracker/internal/app/service"
	"dsatracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type AttemptHandler struct {
	attemptService *service.AttemptService
}

func NewAttemptHandler(attemptService *service.AttemptService) *AttemptHandler {
	return &AttemptHandler{attemptService: attemptService}
}

func (h *AttemptHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listAttempts)
	r.Post("/", h.createAttempt)
}

func (h *AttemptHandler) listAttempts(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")

	attempts, err := h.attemptService.ListByUser(r.Context(), user)
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch attempts")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, attempts)
}

func (h *AttemptHandler) createAttempt(w http.ResponseWriter, r *http.Request) {
	var req service.CreateAttemptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.attemptService.Create(r.Context(), req); err != nil {
		common.RespondWithDomainError(w, err, "Failed to add attempt")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

package handler

import (
	"encoding/json"
	"net/http"

	"dsatracker/internal/app/service"
	"dsatracker/internal/common"

	"github.com/go-chi/chi/v5"
)

type ProblemHandler struct {
	problemService *service.ProblemService
}

func NewProblemHandler(problemService *service.ProblemService) *ProblemHandler {
	return &ProblemHandler{problemService: problemService}
}

func (h *ProblemHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.listProblems)
	r.Post("/", h.createProblem)
}

// RegisterTopicRoutes mounts the topic listing separately; topics live
// under their own path but are served by the problem domain.
func (h *ProblemHandler) RegisterTopicRoutes(r chi.Router) {
	r.Get("/", h.listTopics)
}

func (h *ProblemHandler) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := h.problemService.Topics(r.Context())
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch topics")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, topics)
}

func (h *ProblemHandler) listProblems(w http.ResponseWriter, r *http.Request) {
	user := r.URL.Query().Get("user")

	problems, err := h.problemService.List(r.Context(), user)
	if err != nil {
		common.RespondWithDomainError(w, err, "Failed to fetch problems")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, problems)
}

func (h *ProblemHandler) createProblem(w http.ResponseWriter, r *http.Request) {
	var req service.CreateProblemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	if err := h.problemService.Create(r.Context(), req); err != nil {
		common.RespondWithDomainError(w, err, "Failed to add problem")
		return
	}
	common.RespondWithJSON(w, http.StatusOK, map[string]bool{"success": true})
}

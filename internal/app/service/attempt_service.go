package service

import (
	"context"
	"fmt"

	"dsatracker/internal/common"
	"dsatracker/internal/domain/model"
	"dsatracker/internal/domain/repository"
)

type AttemptService struct {
	attemptRepo repository.AttemptRepository
	problemRepo repository.ProblemRepository
}

func NewAttemptService(attemptRepo repository.AttemptRepository, problemRepo repository.ProblemRepository) *AttemptService {
	return &AttemptService{attemptRepo: attemptRepo, problemRepo: problemRepo}
}

type CreateAttemptRequest struct {
	User      string `json:"user"`
	ProblemID int64  `json:"problem_id"`
	Date      string `json:"date"`
	Status    string `json:"status"`
	TimeTaken *int   `json:"time_taken"`
	FirstTry  bool   `json:"first_try"`
	Notes     string `json:"notes"`
}

func (s *AttemptService) ListByUser(ctx context.Context, user string) ([]model.Attempt, error) {
	if user == "" {
		return nil, common.ErrUserParamRequired
	}
	return s.attemptRepo.ListByUser(ctx, user)
}

// Create validates the referenced problem before inserting; there is no
// foreign key on attempts.problem_id.
func (s *AttemptService) Create(ctx context.Context, req CreateAttemptRequest) error {
	if req.User == "" || req.ProblemID == 0 || req.Date == "" || req.Status == "" {
		return common.ErrAttemptFields
	}
	status := model.AttemptStatus(req.Status)
	if !status.Valid() {
		return common.ErrInvalidStatus
	}

	exists, err := s.problemRepo.Exists(ctx, req.ProblemID)
	if err != nil {
		return fmt.Errorf("AttemptService.Create exists check: %w", err)
	}
	if !exists {
		return common.ErrProblemNotFound
	}

	attempt := repository.NewAttempt{
		User:      req.User,
		ProblemID: req.ProblemID,
		Date:      req.Date,
		Status:    status,
		TimeTaken: req.TimeTaken,
		FirstTry:  req.FirstTry,
		Notes:     req.Notes,
	}
	if status == model.StatusSolved {
		solvedAt := req.Date
		attempt.SolvedAt = &solvedAt
	}

	return s.attemptRepo.Create(ctx, attempt)
}

package service

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/common"
	"dsatracker/internal/domain/model"
	"dsatracker/internal/domain/repository"
)

type ProblemService struct {
	db          *sql.DB
	problemRepo repository.ProblemRepository
	topicRepo   repository.TopicRepository
}

func NewProblemService(db *sql.DB, problemRepo repository.ProblemRepository, topicRepo repository.TopicRepository) *ProblemService {
	return &ProblemService{db: db, problemRepo: problemRepo, topicRepo: topicRepo}
}

type CreateProblemRequest struct {
	Platform   string `json:"platform"`
	Name       string `json:"name"`
	Link       string `json:"link"`
	Topic      string `json:"topic"`
	Difficulty string `json:"difficulty"`
}

func (s *ProblemService) List(ctx context.Context, user string) ([]model.Problem, error) {
	return s.problemRepo.List(ctx, user)
}

// Create resolves the topic and inserts the problem in one transaction, so
// the find-or-create-topic / insert sequence cannot interleave with a
// concurrent identical request. Duplicate (platform, name) pairs are a
// silent no-op, as on the unique constraint.
func (s *ProblemService) Create(ctx context.Context, req CreateProblemRequest) error {
	if req.Name == "" || req.Topic == "" {
		return common.ErrBadRequest
	}
	difficulty := model.ProblemDifficulty(req.Difficulty)
	switch difficulty {
	case model.DifficultyEasy, model.DifficultyMedium, model.DifficultyHard:
	default:
		return common.ErrBadRequest
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("ProblemService.Create begin: %w", err)
	}
	defer tx.Rollback()

	topicID, err := s.topicRepo.FindOrCreate(ctx, tx, req.Topic)
	if err != nil {
		return err
	}

	if err := s.problemRepo.CreateIgnoreDuplicate(ctx, tx, req.Platform, req.Name, req.Link, topicID, difficulty); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("ProblemService.Create commit: %w", err)
	}
	return nil
}

func (s *ProblemService) Topics(ctx context.Context) ([]model.Topic, error) {
	return s.topicRepo.List(ctx)
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/domain/model"
)

// NewAttempt carries the validated fields for one attempt insert. SolvedAt
// mirrors Date when the status is Solved.
type NewAttempt struct {
	User      string
	ProblemID int64
	Date      string
	Status    model.AttemptStatus
	TimeTaken *int
	FirstTry  bool
	Notes     string
	SolvedAt  *string
}

type AttemptRepository interface {
	ListByUser(ctx context.Context, user string) ([]model.Attempt, error)
	Create(ctx context.Context, a NewAttempt) error
}

type pgAttemptRepository struct {
	db *sql.DB
}

func NewPgAttemptRepository(db *sql.DB) AttemptRepository {
	return &pgAttemptRepository{db: db}
}

func (r *pgAttemptRepository) ListByUser(ctx context.Context, user string) ([]model.Attempt, error) {
	query := `
		SELECT
			a.id, a.username, a.problem_id, a.date::text, a.status,
			a.time_taken, a.first_try, a.notes,
			p.name AS problem_name,
			COALESCE(t.name, p.topic) AS topic,
			p.difficulty
		FROM attempts a
		JOIN problems p ON p.id = a.problem_id
		LEFT JOIN topics t ON p.topic_id = t.id
		WHERE a.username = $1
		ORDER BY a.date DESC, a.id DESC`

	rows, err := r.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("pgAttemptRepository.ListByUser query: %w", err)
	}
	defer rows.Close()

	attempts := []model.Attempt{}
	for rows.Next() {
		var a model.Attempt
		if err := rows.Scan(&a.ID, &a.User, &a.ProblemID, &a.Date, &a.Status,
			&a.TimeTaken, &a.FirstTry, &a.Notes, &a.ProblemName, &a.Topic, &a.Difficulty); err != nil {
			return nil, fmt.Errorf("pgAttemptRepository.ListByUser scan: %w", err)
		}
		attempts = append(attempts, a)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgAttemptRepository.ListByUser rows.Err: %w", err)
	}
	return attempts, nil
}

func (r *pgAttemptRepository) Create(ctx context.Context, a NewAttempt) error {
	query := `
		INSERT INTO attempts (username, problem_id, date, status, time_taken, first_try, notes, solved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := r.db.ExecContext(ctx, query,
		a.User, a.ProblemID, a.Date, a.Status, a.TimeTaken, a.FirstTry, a.Notes, a.SolvedAt)
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.Create: %w", err)
	}
	return nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/domain/model"
)

type ProblemRepository interface {
	// List returns the catalog; with a non-empty user the rows carry that
	// user's latest attempt state.
	List(ctx context.Context, user string) ([]model.Problem, error)
	// CreateIgnoreDuplicate inserts inside tx; a (platform, name) duplicate
	// is a no-op rather than an error.
	CreateIgnoreDuplicate(ctx context.Context, tx *sql.Tx, platform, name, link string, topicID int64, difficulty model.ProblemDifficulty) error
	Exists(ctx context.Context, id int64) (bool, error)
}

type pgProblemRepository struct {
	db *sql.DB
}

func NewPgProblemRepository(db *sql.DB) ProblemRepository {
	return &pgProblemRepository{db: db}
}

const problemColumns = `
	p.id, p.platform, p.name, p.link,
	COALESCE(t.name, p.topic) AS topic,
	p.difficulty`

const solvedByUsers = `
	(SELECT string_agg(DISTINCT a2.username, ',')
	 FROM attempts a2
	 WHERE a2.problem_id = p.id AND a2.status = 'Solved') AS solved_by_users`

func (r *pgProblemRepository) List(ctx context.Context, user string) ([]model.Problem, error) {
	var query string
	var args []interface{}

	if user != "" {
		// Latest attempt per problem for the filter user, by date then id.
		query = `
			SELECT ` + problemColumns + `,
			       a.status, a.time_taken, a.first_try, a.date::text,` + solvedByUsers + `
			FROM problems p
			LEFT JOIN topics t ON p.topic_id = t.id
			LEFT JOIN attempts a ON a.id = (
				SELECT a2.id
				FROM attempts a2
				WHERE a2.problem_id = p.id AND a2.username = $1
				ORDER BY a2.date DESC, a2.id DESC
				LIMIT 1
			)
			ORDER BY
				CASE p.difficulty WHEN 'Easy' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END,
				p.name`
		args = append(args, user)
	} else {
		query = `
			SELECT ` + problemColumns + `,
			       NULL, NULL::int, NULL::boolean, NULL::text,` + solvedByUsers + `
			FROM problems p
			LEFT JOIN topics t ON p.topic_id = t.id
			ORDER BY
				CASE p.difficulty WHEN 'Easy' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END,
				p.name`
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("pgProblemRepository.List query: %w", err)
	}
	defer rows.Close()

	problems := []model.Problem{}
	for rows.Next() {
		var p model.Problem
		if err := rows.Scan(&p.ID, &p.Platform, &p.Name, &p.Link, &p.Topic, &p.Difficulty,
			&p.Status, &p.TimeTaken, &p.FirstTry, &p.Date, &p.SolvedByUsers); err != nil {
			return nil, fmt.Errorf("pgProblemRepository.List scan: %w", err)
		}
		problems = append(problems, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgProblemRepository.List rows.Err: %w", err)
	}
	return problems, nil
}

func (r *pgProblemRepository) CreateIgnoreDuplicate(ctx context.Context, tx *sql.Tx, platform, name, link string, topicID int64, difficulty model.ProblemDifficulty) error {
	query := `INSERT INTO problems (platform, name, link, topic_id, difficulty)
	          VALUES ($1, $2, $3, $4, $5)
	          ON CONFLICT (platform, name) DO NOTHING`

	if _, err := tx.ExecContext(ctx, query, platform, name, link, topicID, difficulty); err != nil {
		return fmt.Errorf("pgProblemRepository.CreateIgnoreDuplicate: %w", err)
	}
	return nil
}

func (r *pgProblemRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM problems WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("pgProblemRepository.Exists: %w", err)
	}
	return exists, nil
}

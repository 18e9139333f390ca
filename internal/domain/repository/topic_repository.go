package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/domain/model"
)

type TopicRepository interface {
	List(ctx context.Context) ([]model.Topic, error)
	// FindOrCreate resolves a topic name to its id inside tx, creating the
	// topic lazily when a problem references a new name.
	FindOrCreate(ctx context.Context, tx *sql.Tx, name string) (int64, error)
}

type pgTopicRepository struct {
	db *sql.DB
}

func NewPgTopicRepository(db *sql.DB) TopicRepository {
	return &pgTopicRepository{db: db}
}

func (r *pgTopicRepository) List(ctx context.Context) ([]model.Topic, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM topics ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("pgTopicRepository.List query: %w", err)
	}
	defer rows.Close()

	topics := []model.Topic{}
	for rows.Next() {
		var t model.Topic
		if err := rows.Scan(&t.ID, &t.Name); err != nil {
			return nil, fmt.Errorf("pgTopicRepository.List scan: %w", err)
		}
		topics = append(topics, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgTopicRepository.List rows.Err: %w", err)
	}
	return topics, nil
}

func (r *pgTopicRepository) FindOrCreate(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	// The no-op update makes RETURNING yield the id on conflict as well,
	// so a concurrent identical insert resolves to the same topic.
	query := `INSERT INTO topics (name) VALUES ($1)
	          ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
	          RETURNING id`

	var id int64
	if err := tx.QueryRowContext(ctx, query, name).Scan(&id); err != nil {
		return 0, fmt.Errorf("pgTopicRepository.FindOrCreate: %w", err)
	}
	return id, nil
}

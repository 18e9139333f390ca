package database

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/common/security"

	"github.com/rs/zerolog/log"
)

// Schema is created and migrated idempotently at startup: tables are
// create-if-missing, the topic_id column is added conditionally, and topics
// are backfilled from the legacy free-text column on problems.
var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE,
		password TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS topics (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL UNIQUE
	)`,
	`CREATE TABLE IF NOT EXISTS problems (
		id BIGSERIAL PRIMARY KEY,
		platform TEXT,
		name TEXT NOT NULL,
		link TEXT,
		topic TEXT,
		topic_id BIGINT,
		difficulty TEXT NOT NULL CHECK (difficulty IN ('Easy','Medium','Hard')),
		UNIQUE (platform, name)
	)`,
	`CREATE TABLE IF NOT EXISTS attempts (
		id BIGSERIAL PRIMARY KEY,
		username TEXT NOT NULL,
		problem_id BIGINT NOT NULL,
		date DATE NOT NULL,
		status TEXT NOT NULL CHECK (status IN ('Solved','Revisit','Unsolved')),
		time_taken INTEGER,
		first_try BOOLEAN,
		notes TEXT,
		solved_at DATE
	)`,
	`ALTER TABLE problems ADD COLUMN IF NOT EXISTS topic_id BIGINT`,
	`INSERT INTO topics (name)
		SELECT DISTINCT topic FROM problems
		WHERE topic IS NOT NULL AND topic <> ''
		ON CONFLICT (name) DO NOTHING`,
	`UPDATE problems p SET topic_id = t.id
		FROM topics t
		WHERE p.topic_id IS NULL AND p.topic = t.name`,
}

func InitSchema(ctx context.Context) error {
	for _, stmt := range schemaStatements {
		if _, err := DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("database.InitSchema: %w", err)
		}
	}
	log.Info().Msg("Database schema initialized")
	return nil
}

// SeedUsers inserts the configured default users with the shared default
// password. Existing users keep their password unless it is empty.
func SeedUsers(ctx context.Context, names []string, defaultPassword string) error {
	if len(names) == 0 {
		return nil
	}

	hashed, err := security.HashPassword(defaultPassword)
	if err != nil {
		return fmt.Errorf("database.SeedUsers hash: %w", err)
	}

	for _, name := range names {
		var id int64
		err := DB.QueryRowContext(ctx, `SELECT id FROM users WHERE name = $1`, name).Scan(&id)
		switch {
		case err == sql.ErrNoRows:
			if _, err := DB.ExecContext(ctx,
				`INSERT INTO users (name, password) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING`,
				name, hashed); err != nil {
				return fmt.Errorf("database.SeedUsers insert %s: %w", name, err)
			}
		case err != nil:
			return fmt.Errorf("database.SeedUsers lookup %s: %w", name, err)
		default:
			if _, err := DB.ExecContext(ctx,
				`UPDATE users SET password = $1 WHERE name = $2 AND password = ''`,
				hashed, name); err != nil {
				return fmt.Errorf("database.SeedUsers backfill %s: %w", name, err)
			}
		}
	}
	log.Info().Int("count", len(names)).Msg("Default users seeded")
	return nil
}

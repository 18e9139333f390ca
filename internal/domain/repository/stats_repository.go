package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/domain/model"
)

type StatsRepository interface {
	UserAggregates(ctx context.Context, user string) (*model.UserStats, error)
	ActivityLog(ctx context.Context, user string) ([]model.ActivityPoint, error)
	CalendarActivity(ctx context.Context, user string) (map[string]int, error)
	Streak(ctx context.Context, user string) (current, best int, err error)
	GlobalLeaderboard(ctx context.Context) ([]model.LeaderboardRow, error)
}

type pgStatsRepository struct {
	db *sql.DB
}

func NewPgStatsRepository(db *sql.DB) StatsRepository {
	return &pgStatsRepository{db: db}
}

// UserAggregates computes the whole per-user dashboard in one statement:
// progress counters, per-difficulty solves, first-try accuracy (earliest
// attempt per problem already Solved), early failure rate, medium-solve
// pace, revisit tracking, consistency and a 1/2/3 difficulty weighting.
func (r *pgStatsRepository) UserAggregates(ctx context.Context, user string) (*model.UserStats, error) {
	query := `
		WITH total AS (
			SELECT COUNT(*) AS total_problems FROM problems
		),
		first_try_data AS (
			SELECT COUNT(*) AS fts_numerator
			FROM (
				SELECT MIN(a1.id) AS first_attempt_id
				FROM attempts a1
				WHERE a1.username = $1
				GROUP BY a1.problem_id
			) first_attempts
			JOIN attempts a2 ON a2.id = first_attempts.first_attempt_id
			WHERE a2.status = 'Solved'
		)
		SELECT
			COUNT(DISTINCT a.problem_id) AS attempted,
			COUNT(DISTINCT CASE WHEN a.status = 'Solved' THEN a.problem_id END) AS solved,
			ROUND(
				CASE
					WHEN (SELECT total_problems FROM total) > 0
					THEN COUNT(DISTINCT CASE WHEN a.status = 'Solved' THEN a.problem_id END) * 100.0
						/ (SELECT total_problems FROM total)
					ELSE 0
				END, 1
			)::float8 AS completion_percent,

			COUNT(DISTINCT CASE WHEN p.difficulty = 'Easy' AND a.status = 'Solved' THEN a.problem_id END) AS easy_solved,
			COUNT(DISTINCT CASE WHEN p.difficulty = 'Medium' AND a.status = 'Solved' THEN a.problem_id END) AS medium_solved,
			COUNT(DISTINCT CASE WHEN p.difficulty = 'Hard' AND a.status = 'Solved' THEN a.problem_id END) AS hard_solved,

			ROUND(
				CASE
					WHEN COUNT(DISTINCT a.problem_id) > 0
					THEN (SELECT fts_numerator FROM first_try_data) * 100.0 / COUNT(DISTINCT a.problem_id)
					ELSE 0
				END, 2
			)::float8 AS first_try_accuracy,

			ROUND(
				CASE
					WHEN COUNT(*) > 0
					THEN COUNT(CASE WHEN a.first_try = FALSE AND a.status <> 'Solved' THEN 1 END) * 100.0 / COUNT(*)
					ELSE 0
				END, 2
			)::float8 AS early_failure_rate,

			CASE
				WHEN COUNT(CASE WHEN p.difficulty = 'Medium' AND a.status = 'Solved' THEN 1 END) > 0
				THEN ROUND(AVG(CASE WHEN p.difficulty = 'Medium' AND a.status = 'Solved' THEN a.time_taken END), 1)::float8
				ELSE NULL
			END AS avg_medium_time,

			COUNT(CASE WHEN a.status = 'Revisit' THEN 1 END) AS pending_revisits,

			CASE
				WHEN COUNT(CASE WHEN a.notes LIKE '%revisit%' THEN 1 END) > 0
				THEN ROUND(
					COUNT(CASE WHEN a.status = 'Solved' AND a.notes LIKE '%revisit%' THEN 1 END) * 100.0 /
					COUNT(CASE WHEN a.notes LIKE '%revisit%' THEN 1 END), 2
				)::float8
				ELSE NULL
			END AS ressolve_success,

			COUNT(DISTINCT a.date) AS active_days,
			ROUND(
				CASE
					WHEN COUNT(DISTINCT a.date) > 0
					THEN COUNT(DISTINCT a.problem_id) * 1.0 / COUNT(DISTINCT a.date)
					ELSE 0
				END, 2
			)::float8 AS problems_per_day,

			COUNT(DISTINCT CASE
				WHEN a.status = 'Solved' AND a.date >= CURRENT_DATE - 7
				THEN a.problem_id
			END) AS solved_last_7_days,

			ROUND(
				CASE
					WHEN COUNT(*) > 0
					THEN AVG(CASE p.difficulty WHEN 'Easy' THEN 1 WHEN 'Medium' THEN 2 ELSE 3 END)
					ELSE 0
				END, 2
			)::float8 AS difficulty_progression_index

		FROM attempts a
		JOIN problems p ON p.id = a.problem_id
		WHERE a.username = $1`

	s := &model.UserStats{}
	var avgMediumTime, resolveSuccess sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, user).Scan(
		&s.Attempted, &s.Solved, &s.CompletionPercent,
		&s.EasySolved, &s.MediumSolved, &s.HardSolved,
		&s.FirstTryAccuracy, &s.EarlyFailureRate, &avgMediumTime,
		&s.PendingRevisits, &resolveSuccess,
		&s.ActiveDays, &s.ProblemsPerDay, &s.SolvedLast7Days,
		&s.DifficultyProgressionIndex,
	)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.UserAggregates: %w", err)
	}
	if avgMediumTime.Valid {
		s.AvgMediumTime = &avgMediumTime.Float64
	}
	if resolveSuccess.Valid {
		s.ResolveSuccess = &resolveSuccess.Float64
	}
	return s, nil
}

// ActivityLog returns the last 30 days of distinct problems solved per day.
func (r *pgStatsRepository) ActivityLog(ctx context.Context, user string) ([]model.ActivityPoint, error) {
	query := `
		SELECT date::text, COUNT(DISTINCT problem_id) AS count
		FROM attempts
		WHERE username = $1
		  AND status = 'Solved'
		  AND date >= CURRENT_DATE - 30
		GROUP BY date
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.ActivityLog query: %w", err)
	}
	defer rows.Close()

	points := []model.ActivityPoint{}
	for rows.Next() {
		var p model.ActivityPoint
		if err := rows.Scan(&p.Date, &p.Count); err != nil {
			return nil, fmt.Errorf("pgStatsRepository.ActivityLog scan: %w", err)
		}
		points = append(points, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.ActivityLog rows.Err: %w", err)
	}
	return points, nil
}

// CalendarActivity maps each day of the current month to the distinct
// problems the user solved on it.
func (r *pgStatsRepository) CalendarActivity(ctx context.Context, user string) (map[string]int, error) {
	query := `
		SELECT date::text, COUNT(DISTINCT problem_id) AS count
		FROM attempts
		WHERE username = $1
		  AND status = 'Solved'
		  AND date >= date_trunc('month', CURRENT_DATE)
		  AND date < date_trunc('month', CURRENT_DATE) + INTERVAL '1 month'
		GROUP BY date
		ORDER BY date ASC`

	rows, err := r.db.QueryContext(ctx, query, user)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.CalendarActivity query: %w", err)
	}
	defer rows.Close()

	calendar := map[string]int{}
	for rows.Next() {
		var date string
		var count int
		if err := rows.Scan(&date, &count); err != nil {
			return nil, fmt.Errorf("pgStatsRepository.CalendarActivity scan: %w", err)
		}
		calendar[date] = count
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.CalendarActivity rows.Err: %w", err)
	}
	return calendar, nil
}

// Streak uses the simplified heuristic: the streak is active when the most
// recent solve was today or yesterday. Best streak is the active-day count.
func (r *pgStatsRepository) Streak(ctx context.Context, user string) (int, int, error) {
	query := `
		SELECT
			CASE
				WHEN MAX(date) = CURRENT_DATE THEN 1
				WHEN MAX(date) = CURRENT_DATE - 1 THEN 1
				ELSE 0
			END AS current_streak,
			COUNT(DISTINCT date) AS best_streak
		FROM attempts
		WHERE username = $1 AND status = 'Solved'`

	var current, best int
	if err := r.db.QueryRowContext(ctx, query, user).Scan(&current, &best); err != nil {
		return 0, 0, fmt.Errorf("pgStatsRepository.Streak: %w", err)
	}
	return current, best, nil
}

// GlobalLeaderboard ranks users by medium+hard solves, then total solves.
func (r *pgStatsRepository) GlobalLeaderboard(ctx context.Context) ([]model.LeaderboardRow, error) {
	query := `
		SELECT
			a.username,
			COUNT(CASE WHEN a.status = 'Solved' THEN 1 END) AS solved,
			COUNT(CASE WHEN a.status = 'Solved' AND p.difficulty IN ('Medium','Hard') THEN 1 END) AS medium_hard,
			COUNT(CASE WHEN a.status = 'Solved' AND p.difficulty = 'Easy' THEN 1 END) AS easy_solved,
			COUNT(CASE WHEN a.status = 'Solved' AND p.difficulty = 'Medium' THEN 1 END) AS medium_solved,
			COUNT(CASE WHEN a.status = 'Solved' AND p.difficulty = 'Hard' THEN 1 END) AS hard_solved
		FROM attempts a
		JOIN problems p ON p.id = a.problem_id
		GROUP BY a.username
		ORDER BY medium_hard DESC, solved DESC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgStatsRepository.GlobalLeaderboard query: %w", err)
	}
	defer rows.Close()

	board := []model.LeaderboardRow{}
	for rows.Next() {
		var row model.LeaderboardRow
		if err := rows.Scan(&row.User, &row.Solved, &row.MediumHard,
			&row.EasySolved, &row.MediumSolved, &row.HardSolved); err != nil {
			return nil, fmt.Errorf("pgStatsRepository.GlobalLeaderboard scan: %w", err)
		}
		board = append(board, row)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgStatsRepository.GlobalLeaderboard rows.Err: %w", err)
	}
	return board, nil
}

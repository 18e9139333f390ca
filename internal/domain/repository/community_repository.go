package repository

import (
	"context"
	"database/sql"
	"fmt"

	"dsatracker/internal/domain/model"
)

type CommunityRepository interface {
	Stats(ctx context.Context) (*model.CommunityStats, error)
	Activity(ctx context.Context, startDate, endDate string, days int) ([]model.ActivityDay, error)
	TotalSolvedBoard(ctx context.Context, limit int) ([]model.RankedEntry, error)
	CurrentStreakBoard(ctx context.Context, limit int) ([]model.RankedEntry, error)
	WeeklyActivityBoard(ctx context.Context, limit int) ([]model.RankedEntry, error)
	Feed(ctx context.Context, since string, limit int) ([]model.FeedItem, error)
	GoalsProgress(ctx context.Context, startOfMonth, endOfMonth, today string) (*model.GoalsProgress, error)
}

type pgCommunityRepository struct {
	db *sql.DB
}

func NewPgCommunityRepository(db *sql.DB) CommunityRepository {
	return &pgCommunityRepository{db: db}
}

// communityStreakCTEs is the gap-and-islands streak shared by Stats and
// GoalsProgress: consecutive solved days group into islands via the
// date-minus-row-number trick, and the island holding the latest day is the
// current community streak.
const communityStreakCTEs = `
	solve_days AS (
		SELECT DISTINCT date AS d FROM attempts WHERE status = 'Solved'
	),
	islands AS (
		SELECT d, d - (ROW_NUMBER() OVER (ORDER BY d))::int AS grp FROM solve_days
	),
	community_streak AS (
		SELECT COUNT(*) AS n FROM islands
		WHERE grp = (SELECT grp FROM islands ORDER BY d DESC LIMIT 1)
	)`

func (r *pgCommunityRepository) Stats(ctx context.Context) (*model.CommunityStats, error) {
	query := `
		WITH total_users AS (
			SELECT COUNT(*) AS n FROM users
		),
		active_users_this_week AS (
			SELECT COUNT(DISTINCT username) AS n FROM attempts
			WHERE date >= CURRENT_DATE - 7
		),
		problems_this_week AS (
			SELECT COUNT(DISTINCT problem_id) AS n FROM attempts
			WHERE status = 'Solved' AND date >= CURRENT_DATE - 7
		),
		total_problems_solved AS (
			SELECT COUNT(DISTINCT problem_id) AS n FROM attempts WHERE status = 'Solved'
		),
		difficulty_stats AS (
			SELECT p.difficulty, COUNT(DISTINCT a.problem_id) AS cnt
			FROM attempts a
			JOIN problems p ON p.id = a.problem_id
			WHERE a.status = 'Solved'
			GROUP BY p.difficulty
			ORDER BY cnt DESC
			LIMIT 1
		),` + communityStreakCTEs + `,
		weekly_growth AS (
			SELECT
				COUNT(DISTINCT CASE WHEN date >= CURRENT_DATE - 7 THEN problem_id END) AS this_week,
				COUNT(DISTINCT CASE WHEN date >= CURRENT_DATE - 14 AND date < CURRENT_DATE - 7 THEN problem_id END) AS last_week
			FROM attempts
			WHERE status = 'Solved'
		)
		SELECT
			(SELECT n FROM total_problems_solved),
			(SELECT n FROM active_users_this_week),
			COALESCE((SELECT n FROM community_streak), 0),
			(SELECT n FROM total_users),
			(SELECT n FROM problems_this_week),
			COALESCE((SELECT difficulty FROM difficulty_stats), 'easy'),
			ROUND(
				CASE
					WHEN (SELECT n FROM total_users) > 0
					THEN (SELECT n FROM total_problems_solved) * 1.0 / (SELECT n FROM total_users)
					ELSE 0
				END, 2
			)::float8,
			ROUND(
				CASE
					WHEN (SELECT last_week FROM weekly_growth) > 0
					THEN ((SELECT this_week FROM weekly_growth) - (SELECT last_week FROM weekly_growth)) * 100.0
						/ (SELECT last_week FROM weekly_growth)
					ELSE 0
				END, 1
			)::float8`

	s := &model.CommunityStats{}
	err := r.db.QueryRowContext(ctx, query).Scan(
		&s.TotalProblems, &s.ActiveUsersThisWeek, &s.CommunityStreak,
		&s.TotalUsers, &s.ProblemsThisWeek, &s.MostPopularDifficulty,
		&s.AverageProblemsPerUser, &s.WeeklyGrowth,
	)
	if err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.Stats: %w", err)
	}
	return s, nil
}

// Activity builds the per-day heatmap over a generated date series so that
// days without solves still appear with zero counts.
func (r *pgCommunityRepository) Activity(ctx context.Context, startDate, endDate string, days int) ([]model.ActivityDay, error) {
	query := `
		SELECT
			gs::date::text AS date,
			COALESCE(da.problems_solved, 0) AS problems_solved,
			COALESCE(da.active_users, 0) AS active_users,
			CASE
				WHEN COALESCE(da.problems_solved, 0) = 0 THEN 0
				WHEN COALESCE(da.problems_solved, 0) <= 2 THEN 1
				WHEN COALESCE(da.problems_solved, 0) <= 5 THEN 2
				WHEN COALESCE(da.problems_solved, 0) <= 10 THEN 3
				ELSE 4
			END AS intensity
		FROM generate_series($1::date, $2::date, INTERVAL '1 day') AS gs
		LEFT JOIN (
			SELECT date,
			       COUNT(DISTINCT problem_id) AS problems_solved,
			       COUNT(DISTINCT username) AS active_users
			FROM attempts
			WHERE status = 'Solved' AND date BETWEEN $1::date AND $2::date
			GROUP BY date
		) da ON da.date = gs::date
		ORDER BY gs
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, query, startDate, endDate, days)
	if err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.Activity query: %w", err)
	}
	defer rows.Close()

	activity := []model.ActivityDay{}
	for rows.Next() {
		var d model.ActivityDay
		if err := rows.Scan(&d.Date, &d.ProblemsSolved, &d.ActiveUsers, &d.Intensity); err != nil {
			return nil, fmt.Errorf("pgCommunityRepository.Activity scan: %w", err)
		}
		activity = append(activity, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.Activity rows.Err: %w", err)
	}
	return activity, nil
}

func (r *pgCommunityRepository) TotalSolvedBoard(ctx context.Context, limit int) ([]model.RankedEntry, error) {
	query := `
		SELECT
			u.id AS user_id,
			u.name AS username,
			COUNT(DISTINCT a.problem_id) AS value,
			ROW_NUMBER() OVER (ORDER BY COUNT(DISTINCT a.problem_id) DESC) AS rank
		FROM users u
		LEFT JOIN attempts a ON a.username = u.name AND a.status = 'Solved'
		GROUP BY u.id, u.name
		ORDER BY value DESC
		LIMIT $1`

	return r.rankedQuery(ctx, "TotalSolvedBoard", query, limit)
}

func (r *pgCommunityRepository) CurrentStreakBoard(ctx context.Context, limit int) ([]model.RankedEntry, error) {
	query := `
		WITH user_streaks AS (
			SELECT
				u.id AS user_id,
				u.name AS username,
				CASE
					WHEN MAX(a.date) >= CURRENT_DATE - 1 THEN COUNT(DISTINCT a.date)
					ELSE 0
				END AS streak_value
			FROM users u
			LEFT JOIN attempts a ON a.username = u.name AND a.status = 'Solved'
			GROUP BY u.id, u.name
		)
		SELECT
			user_id,
			username,
			streak_value AS value,
			ROW_NUMBER() OVER (ORDER BY streak_value DESC) AS rank
		FROM user_streaks
		ORDER BY value DESC
		LIMIT $1`

	return r.rankedQuery(ctx, "CurrentStreakBoard", query, limit)
}

func (r *pgCommunityRepository) WeeklyActivityBoard(ctx context.Context, limit int) ([]model.RankedEntry, error) {
	query := `
		SELECT
			u.id AS user_id,
			u.name AS username,
			COUNT(DISTINCT a.problem_id) AS value,
			ROW_NUMBER() OVER (ORDER BY COUNT(DISTINCT a.problem_id) DESC) AS rank
		FROM users u
		LEFT JOIN attempts a ON a.username = u.name
			AND a.status = 'Solved'
			AND a.date >= CURRENT_DATE - 7
		GROUP BY u.id, u.name
		ORDER BY value DESC
		LIMIT $1`

	return r.rankedQuery(ctx, "WeeklyActivityBoard", query, limit)
}

func (r *pgCommunityRepository) rankedQuery(ctx context.Context, name, query string, limit int) ([]model.RankedEntry, error) {
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.%s query: %w", name, err)
	}
	defer rows.Close()

	entries := []model.RankedEntry{}
	for rows.Next() {
		var e model.RankedEntry
		if err := rows.Scan(&e.UserID, &e.Username, &e.Value, &e.Rank); err != nil {
			return nil, fmt.Errorf("pgCommunityRepository.%s scan: %w", name, err)
		}
		entries = append(entries, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.%s rows.Err: %w", name, err)
	}
	return entries, nil
}

// Feed unions three milestone shapes over the recent window: one summary
// row per user-day, >=3-a-day streak milestones, and first-Hard-problem
// milestones, newest first.
func (r *pgCommunityRepository) Feed(ctx context.Context, since string, limit int) ([]model.FeedItem, error) {
	query := `
		WITH recent_solves AS (
			SELECT
				a.username,
				u.id AS user_id,
				a.date,
				p.name AS problem_name,
				p.difficulty,
				COUNT(*) OVER (PARTITION BY a.username, a.date) AS daily_count,
				ROW_NUMBER() OVER (PARTITION BY a.username, a.date ORDER BY a.solved_at DESC NULLS LAST, a.id DESC) AS rn
			FROM attempts a
			JOIN users u ON u.name = a.username
			JOIN problems p ON p.id = a.problem_id
			WHERE a.status = 'Solved' AND a.date >= $1::date
		),
		streak_milestones AS (
			SELECT
				username,
				user_id,
				date,
				daily_count,
				CASE
					WHEN daily_count >= 10 THEN '10+ problems in a day'
					WHEN daily_count >= 5 THEN '5+ problems in a day'
					WHEN daily_count >= 3 THEN '3+ problems in a day'
				END AS milestone_type
			FROM recent_solves
			WHERE rn = 1 AND daily_count >= 3
		),
		difficulty_milestones AS (
			SELECT DISTINCT username, user_id, date, difficulty
			FROM (
				SELECT DISTINCT
					a.username,
					u.id AS user_id,
					a.date,
					p.difficulty,
					COUNT(*) OVER (PARTITION BY a.username, p.difficulty) AS difficulty_count
				FROM attempts a
				JOIN users u ON u.name = a.username
				JOIN problems p ON p.id = a.problem_id
				WHERE a.status = 'Solved' AND a.date >= $1::date AND p.difficulty = 'Hard'
			) subq
			WHERE difficulty_count = 1
		)
		SELECT
			'problem_solved' AS type,
			rs.user_id,
			rs.username,
			rs.date::text AS ts,
			CASE
				WHEN rs.daily_count = 1
				THEN rs.username || ' solved ' || rs.problem_name || ' (' || rs.difficulty || ')'
				ELSE rs.username || ' solved ' || rs.daily_count || ' problems today'
			END AS description,
			json_build_object('problemName', rs.problem_name, 'difficulty', rs.difficulty, 'dailyCount', rs.daily_count)::text AS metadata
		FROM recent_solves rs
		WHERE rs.rn = 1

		UNION ALL

		SELECT
			'streak_milestone',
			sm.user_id,
			sm.username,
			sm.date::text,
			sm.username || ' achieved ' || sm.milestone_type,
			json_build_object('milestoneType', sm.milestone_type, 'count', sm.daily_count)::text
		FROM streak_milestones sm
		WHERE sm.milestone_type IS NOT NULL

		UNION ALL

		SELECT
			'difficulty_milestone',
			dm.user_id,
			dm.username,
			dm.date::text,
			dm.username || ' solved their first ' || dm.difficulty || ' problem!',
			json_build_object('difficulty', dm.difficulty)::text
		FROM difficulty_milestones dm

		ORDER BY ts DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, since, limit)
	if err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.Feed query: %w", err)
	}
	defer rows.Close()

	items := []model.FeedItem{}
	for rows.Next() {
		var item model.FeedItem
		var metadata []byte
		if err := rows.Scan(&item.Type, &item.UserID, &item.Username,
			&item.Timestamp, &item.Description, &metadata); err != nil {
			return nil, fmt.Errorf("pgCommunityRepository.Feed scan: %w", err)
		}
		item.Metadata = metadata
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.Feed rows.Err: %w", err)
	}
	return items, nil
}

func (r *pgCommunityRepository) GoalsProgress(ctx context.Context, startOfMonth, endOfMonth, today string) (*model.GoalsProgress, error) {
	query := `
		WITH monthly_problems AS (
			SELECT COUNT(DISTINCT problem_id) AS n FROM attempts
			WHERE status = 'Solved' AND date >= $1::date AND date <= $2::date
		),
		monthly_active_users AS (
			SELECT COUNT(DISTINCT username) AS n FROM attempts
			WHERE date >= $1::date AND date <= $2::date
		),
		solve_days AS (
			SELECT DISTINCT date AS d FROM attempts
			WHERE status = 'Solved' AND date <= $3::date
		),
		islands AS (
			SELECT d, d - (ROW_NUMBER() OVER (ORDER BY d))::int AS grp FROM solve_days
		),
		community_streak AS (
			SELECT COUNT(*) AS n FROM islands
			WHERE grp = (SELECT grp FROM islands ORDER BY d DESC LIMIT 1)
		)
		SELECT
			(SELECT n FROM monthly_problems),
			(SELECT n FROM monthly_active_users),
			COALESCE((SELECT n FROM community_streak), 0)`

	p := &model.GoalsProgress{}
	err := r.db.QueryRowContext(ctx, query, startOfMonth, endOfMonth, today).Scan(
		&p.MonthlyProblems, &p.MonthlyActiveUsers, &p.StreakDays,
	)
	if err != nil {
		return nil, fmt.Errorf("pgCommunityRepository.GoalsProgress: %w", err)
	}
	return p, nil
}

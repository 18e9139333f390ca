package model

// ActivityPoint is one day of solve activity for charting.
type ActivityPoint struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// UserStats is the GET /api/stats/{user} payload. Aggregates are computed
// in a single SQL statement; activity series and the streak heuristic come
// from secondary queries.
type UserStats struct {
	Attempted                  int      `json:"attempted"`
	Solved                     int      `json:"solved"`
	CompletionPercent          float64  `json:"completion_percent"`
	EasySolved                 int      `json:"easy_solved"`
	MediumSolved               int      `json:"medium_solved"`
	HardSolved                 int      `json:"hard_solved"`
	FirstTryAccuracy           float64  `json:"first_try_accuracy"`
	EarlyFailureRate           float64  `json:"early_failure_rate"`
	AvgMediumTime              *float64 `json:"avg_medium_time"`
	PendingRevisits            int      `json:"pending_revisits"`
	ResolveSuccess             *float64 `json:"ressolve_success"`
	ActiveDays                 int      `json:"active_days"`
	ProblemsPerDay             float64  `json:"problems_per_day"`
	SolvedLast7Days            int      `json:"solved_last_7_days"`
	DifficultyProgressionIndex float64  `json:"difficulty_progression_index"`
	ActivityLog                []ActivityPoint `json:"activity_log"`
	CalendarActivity           map[string]int  `json:"calendar_activity"`
	CurrentStreak              int             `json:"current_streak"`
	BestStreak                 int             `json:"best_streak"`
}

// LeaderboardRow is one user's line on the global leaderboard, ordered by
// medium+hard solves, then total solves.
type LeaderboardRow struct {
	User         string `json:"user"`
	Solved       int    `json:"solved"`
	MediumHard   int    `json:"medium_hard"`
	EasySolved   int    `json:"easy_solved"`
	MediumSolved int    `json:"medium_solved"`
	HardSolved   int    `json:"hard_solved"`
}

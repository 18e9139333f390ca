package model

import "encoding/json"

type CommunityStats struct {
	TotalProblems          int     `json:"totalProblems"`
	ActiveUsersThisWeek    int     `json:"activeUsersThisWeek"`
	CommunityStreak        int     `json:"communityStreak"`
	AverageProblemsPerUser float64 `json:"averageProblemsPerUser"`
	TotalUsers             int     `json:"totalUsers"`
	ProblemsThisWeek       int     `json:"problemsThisWeek"`
	MostPopularDifficulty  string  `json:"mostPopularDifficulty"`
	WeeklyGrowth           float64 `json:"weeklyGrowth"`
}

// ActivityDay is one cell of the community heatmap; intensity buckets the
// solve count into 0-4.
type ActivityDay struct {
	Date           string `json:"date"`
	ProblemsSolved int    `json:"problemsSolved"`
	ActiveUsers    int    `json:"activeUsers"`
	Intensity      int    `json:"intensity"`
}

// RankedEntry is one row of a community leaderboard split.
type RankedEntry struct {
	UserID   int64  `json:"userId"`
	Username string `json:"username"`
	Value    int    `json:"value"`
	Rank     int    `json:"rank"`
}

type CommunityLeaderboards struct {
	TotalSolved    []RankedEntry `json:"totalSolved,omitempty"`
	CurrentStreak  []RankedEntry `json:"currentStreak,omitempty"`
	WeeklyActivity []RankedEntry `json:"weeklyActivity,omitempty"`
}

const (
	FeedTypeProblemSolved       = "problem_solved"
	FeedTypeStreakMilestone     = "streak_milestone"
	FeedTypeDifficultyMilestone = "difficulty_milestone"
)

type FeedItem struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	Username    string          `json:"username"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Timestamp   string          `json:"timestamp"`
	Metadata    json.RawMessage `json:"metadata"`
}

type CommunityGoal struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Target      int    `json:"target"`
	Current     int    `json:"current"`
	StartDate   string `json:"startDate"`
	EndDate     string `json:"endDate"`
	Type        string `json:"type"`
	IsActive    bool   `json:"isActive"`
}

// GoalsProgress carries the live counters behind the fixed community goals.
type GoalsProgress struct {
	MonthlyProblems    int
	MonthlyActiveUsers int
	StreakDays         int
}

package model

type ProblemDifficulty string

const (
	DifficultyEasy   ProblemDifficulty = "Easy"
	DifficultyMedium ProblemDifficulty = "Medium"
	DifficultyHard   ProblemDifficulty = "Hard"
)

// Problem is a catalog row as served by GET /api/problems. The attempt
// fields come from the filter user's latest attempt and are null without a
// user filter; topic is the joined topics.name with a legacy free-text
// fallback.
type Problem struct {
	ID            int64             `json:"id"`
	Platform      *string           `json:"platform"`
	Name          string            `json:"name"`
	Link          *string           `json:"link"`
	Topic         *string           `json:"topic"`
	Difficulty    ProblemDifficulty `json:"difficulty"`
	Status        *string           `json:"status"`
	TimeTaken     *int              `json:"time_taken"`
	FirstTry      *bool             `json:"first_try"`
	Date          *string           `json:"date"`
	SolvedByUsers *string           `json:"solved_by_users"`
}

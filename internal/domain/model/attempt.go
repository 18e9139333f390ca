package model

type AttemptStatus string

const (
	StatusSolved   AttemptStatus = "Solved"
	StatusRevisit  AttemptStatus = "Revisit"
	StatusUnsolved AttemptStatus = "Unsolved"
)

// Attempt is one logged submission against a problem, joined with the
// problem's name, topic and difficulty for listings.
type Attempt struct {
	ID          int64         `json:"id"`
	User        string        `json:"user"`
	ProblemID   int64         `json:"problem_id"`
	Date        string        `json:"date"`
	Status      AttemptStatus `json:"status"`
	TimeTaken   *int          `json:"time_taken"`
	FirstTry    *bool         `json:"first_try"`
	Notes       *string       `json:"notes"`
	ProblemName string        `json:"problem_name"`
	Topic       *string       `json:"topic"`
	Difficulty  string        `json:"difficulty"`
}

func (s AttemptStatus) Valid() bool {
	switch s {
	case StatusSolved, StatusRevisit, StatusUnsolved:
		return true
	}
	return false
}

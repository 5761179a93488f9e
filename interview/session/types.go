package session

import (
	"time"

	"github.com/nedz/interviewbot/interview/questions"
)

// State identifies the interview step a user is in.
type State string

const (
	// Pending is the initial state and the state after an interview ends.
	Pending State = "pending"
	// Started means the user may request questions.
	Started State = "started"
)

// Session stores interview progress for a single user.
type Session struct {
	State       State
	Remaining   []string
	InterviewID string
	StartedAt   time.Time
}

// Stats summarizes the store contents.
type Stats struct {
	Sessions int
	Started  int
}

// RandomSource picks an index in [0, n).
type RandomSource interface {
	IntN(n int) int
}

// RandomFunc adapts a function to RandomSource.
type RandomFunc func(n int) int

// IntN calls f(n).
func (f RandomFunc) IntN(n int) int {
	return f(n)
}

// Store maps user identifiers to interview sessions.
type Store interface {
	GetState(userID int64) State
	Start(userID int64, list questions.List) Session
	End(userID int64)
	Draw(userID int64) (string, bool)

	Remaining(userID int64) int
	Snapshot(userID int64) (Session, bool)
	Stats() Stats

	// Lock serializes work on a single user's session and returns the unlock function.
	Lock(userID int64) func()
}

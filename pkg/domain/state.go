package domain

import "time"

// QuizSession is the persistable snapshot of a wizard.
type QuizSession struct {
	SessionID string      `json:"session_id"`
	Step      Step        `json:"step"`
	Answers   QuizAnswers `json:"answers"`
	Completed bool        `json:"completed"`

	// Recommendation is set once Completed is true.
	Recommendation *Recommendation `json:"recommendation,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`

	// Sealed carries the encrypted session when the store is wrapped by the
	// encryption middleware; the other fields are then left empty.
	Sealed string `json:"sealed,omitempty"`
}

// NewQuizSession creates a clean session at step 1 with no answers.
func NewQuizSession(sessionID string) *QuizSession {
	return &QuizSession{
		SessionID: sessionID,
		Step:      Step1,
	}
}

// Snapshot returns a copy that can be mutated independently.
func (s *QuizSession) Snapshot() *QuizSession {
	if s == nil {
		return nil
	}
	out := *s
	if s.Recommendation != nil {
		rec := *s.Recommendation
		out.Recommendation = &rec
	}
	return &out
}

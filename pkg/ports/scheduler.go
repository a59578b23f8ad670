package ports

import "time"

// CancelFunc cancels a scheduled continuation. It reports whether the
// continuation was stopped before running.
type CancelFunc func() bool

// Scheduler runs fn after delay on the host's event loop.
type Scheduler interface {
	After(delay time.Duration, fn func()) CancelFunc
}

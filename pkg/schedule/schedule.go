// Package schedule provides ports.Scheduler implementations.
package schedule

import (
	"math"
	"sort"
	"sync"
	"time"

	"github.com/aretw0/fitlanding/pkg/ports"
)

// Timer schedules continuations on the runtime timer heap.
type Timer struct{}

// After implements ports.Scheduler using time.AfterFunc.
func (Timer) After(delay time.Duration, fn func()) ports.CancelFunc {
	t := time.AfterFunc(delay, fn)
	return t.Stop
}

// Immediate runs every continuation inline, ignoring the delay.
// Stateless hosts (HTTP, MCP) use it: presentation delays belong to the client.
type Immediate struct{}

// After runs fn before returning. The returned CancelFunc always reports false.
func (Immediate) After(_ time.Duration, fn func()) ports.CancelFunc {
	fn()
	return func() bool { return false }
}

// Manual holds continuations until the test advances its clock.
type Manual struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*manualTask
}

type manualTask struct {
	at       time.Duration
	seq      int
	fn       func()
	canceled bool
}

// NewManual creates a Manual scheduler at time zero.
func NewManual() *Manual {
	return &Manual{}
}

// After queues fn to run once the clock reaches now+delay.
func (m *Manual) After(delay time.Duration, fn func()) ports.CancelFunc {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	task := &manualTask{at: m.now + delay, seq: m.seq, fn: fn}
	m.pending = append(m.pending, task)
	return func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		if task.canceled || task.fn == nil {
			return false
		}
		task.canceled = true
		return true
	}
}

// Advance moves the clock forward by d and runs every due continuation in order.
// Continuations run without the scheduler lock held, so they may schedule more work.
func (m *Manual) Advance(d time.Duration) {
	m.mu.Lock()
	target := m.now + d
	m.mu.Unlock()

	for {
		task := m.popDue(target)
		if task == nil {
			break
		}
		task()
	}

	m.mu.Lock()
	m.now = target
	m.mu.Unlock()
}

// Flush runs everything that is pending, however far in the future.
func (m *Manual) Flush() {
	m.Advance(time.Duration(math.MaxInt64) - m.Now())
}

// Now returns the manual clock.
func (m *Manual) Now() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Pending returns the number of continuations still waiting.
func (m *Manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, t := range m.pending {
		if !t.canceled {
			n++
		}
	}
	return n
}

func (m *Manual) popDue(target time.Duration) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	sort.SliceStable(m.pending, func(i, j int) bool {
		if m.pending[i].at == m.pending[j].at {
			return m.pending[i].seq < m.pending[j].seq
		}
		return m.pending[i].at < m.pending[j].at
	})

	for i, t := range m.pending {
		if t.canceled {
			continue
		}
		if t.at > target {
			break
		}
		m.pending = append(m.pending[:i], m.pending[i+1:]...)
		m.now = t.at
		fn := t.fn
		t.fn = nil
		return fn
	}
	// Drop canceled tasks so Pending stays accurate.
	kept := m.pending[:0]
	for _, t := range m.pending {
		if !t.canceled {
			kept = append(kept, t)
		}
	}
	m.pending = kept
	return nil
}

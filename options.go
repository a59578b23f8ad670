package fitlanding

import (
	"log/slog"
	"time"

	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/internal/quiz"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
	"github.com/aretw0/fitlanding/pkg/sanitize"
	"github.com/aretw0/fitlanding/pkg/schedule"
	"github.com/aretw0/fitlanding/pkg/session"
)

// settings is shared by Site and Service.
type settings struct {
	logger       *slog.Logger
	submitter    ports.Submitter
	hooks        domain.LifecycleHooks
	scheduler    ports.Scheduler
	prefs        ports.PreferenceStore
	sessions     *session.Manager
	advanceDelay time.Duration
	focusDelay   time.Duration
	filter       func(fieldID, value string) string
}

func newSettings(opts []Option) settings {
	s := settings{
		logger:       logging.NewNop(),
		scheduler:    schedule.Timer{},
		advanceDelay: quiz.DefaultAdvanceDelay,
		focusDelay:   quiz.DefaultFocusDelay,
		filter:       sanitize.Field,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// Option configures a Site or a Service.
type Option func(*settings)

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSubmitter sets the endpoint the contact form submits to.
func WithSubmitter(sub ports.Submitter) Option {
	return func(s *settings) {
		s.submitter = sub
	}
}

// WithLifecycleHooks registers observability hooks on both components.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *settings) {
		s.hooks = hooks
	}
}

// WithScheduler replaces the timer used for quiz animations and the hand-off focus.
// Service ignores it and always runs continuations inline.
func WithScheduler(sched ports.Scheduler) Option {
	return func(s *settings) {
		if sched != nil {
			s.scheduler = sched
		}
	}
}

// WithPreferences sets where the theme and cookie-consent flags are read from.
func WithPreferences(prefs ports.PreferenceStore) Option {
	return func(s *settings) {
		s.prefs = prefs
	}
}

// WithSessions sets the quiz session manager used by Service.
func WithSessions(m *session.Manager) Option {
	return func(s *settings) {
		s.sessions = m
	}
}

// WithDelays overrides the quiz step delay and the hand-off focus delay.
func WithDelays(advance, focus time.Duration) Option {
	return func(s *settings) {
		s.advanceDelay = advance
		s.focusDelay = focus
	}
}

// WithValueFilter replaces the sanitizer applied to submitted values.
func WithValueFilter(fn func(fieldID, value string) string) Option {
	return func(s *settings) {
		s.filter = fn
	}
}

package quiz

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
	"github.com/aretw0/fitlanding/pkg/schedule"
)

const (
	// DefaultAdvanceDelay lets the selected marking register before the next step shows.
	DefaultAdvanceDelay = 500 * time.Millisecond
	// DefaultFocusDelay waits for the scroll to the contact section to settle.
	DefaultFocusDelay = 800 * time.Millisecond
)

// Wizard drives the quiz dialog. Safe for concurrent use.
type Wizard struct {
	mu sync.Mutex

	view      ports.QuizView
	scheduler ports.Scheduler
	prefiller ports.Prefiller

	advanceDelay time.Duration
	focusDelay   time.Duration

	session *domain.QuizSession
	open    bool

	// generation increments on every scheduled advance; pending holds the
	// generation still allowed to run, 0 when none is.
	generation uint64
	pending    uint64
	cancel     ports.CancelFunc

	// handedOff is set by Accept and cleared by Restart or Restore.
	handedOff   bool
	cancelFocus ports.CancelFunc

	hooks  domain.LifecycleHooks
	logger *slog.Logger
	now    func() time.Time
}

// Option configures the Wizard.
type Option func(*Wizard)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithScheduler sets how delayed transitions run. Defaults to real timers.
func WithScheduler(s ports.Scheduler) Option {
	return func(w *Wizard) {
		w.scheduler = s
	}
}

// WithPrefiller sets the hand-off target. Without one Accept only closes the dialog.
func WithPrefiller(p ports.Prefiller) Option {
	return func(w *Wizard) {
		w.prefiller = p
	}
}

// WithAdvanceDelay overrides DefaultAdvanceDelay.
func WithAdvanceDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.advanceDelay = d
	}
}

// WithFocusDelay overrides DefaultFocusDelay.
func WithFocusDelay(d time.Duration) Option {
	return func(w *Wizard) {
		w.focusDelay = d
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = w.hooks.Merge(hooks)
	}
}

// WithSessionID names the session returned by Session.
func WithSessionID(id string) Option {
	return func(w *Wizard) {
		w.session.SessionID = id
	}
}

// New creates a wizard at step 1 with no answers.
func New(view ports.QuizView, opts ...Option) *Wizard {
	w := &Wizard{
		view:         view,
		scheduler:    schedule.Timer{},
		advanceDelay: DefaultAdvanceDelay,
		focusDelay:   DefaultFocusDelay,
		session:      domain.NewQuizSession(""),
		logger:       logging.NewNop(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.session.UpdatedAt = w.now()
	return w
}

// Step returns the current wizard position.
func (w *Wizard) Step() domain.Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.Step
}

// Answers returns the answers recorded so far.
func (w *Wizard) Answers() domain.QuizAnswers {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.Answers
}

// Recommendation returns the computed program once results are shown.
func (w *Wizard) Recommendation() (domain.Recommendation, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.session.Recommendation == nil {
		return domain.Recommendation{}, false
	}
	return *w.session.Recommendation, true
}

// IsOpen reports whether the dialog is shown.
func (w *Wizard) IsOpen() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.open
}

// Pending reports whether a step transition is scheduled.
func (w *Wizard) Pending() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending != 0
}

// Open shows the dialog on the current step.
func (w *Wizard) Open(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = true
	w.view.OpenDialog()
	if w.session.Step.IsQuestion() {
		w.view.ShowStep(w.session.Step)
	} else if w.session.Recommendation != nil {
		w.view.ShowResults(*w.session.Recommendation)
	}
	w.logger.Debug("quiz opened", "step", w.session.Step)
}

// Close hides the dialog. Answers are kept.
func (w *Wizard) Close(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.open = false
	w.view.CloseDialog()
}

// Select records value as the answer of step and schedules the move to the next step.
// Selecting again before the move overwrites the answer without scheduling twice.
func (w *Wizard) Select(ctx context.Context, step domain.Step, value string) error {
	w.mu.Lock()
	gen, err := w.selectLocked(ctx, step, value)
	w.mu.Unlock()
	if err != nil || gen == 0 {
		return err
	}
	w.schedule(gen, func() { w.advance(ctx, gen) })
	return nil
}

func (w *Wizard) selectLocked(ctx context.Context, step domain.Step, value string) (uint64, error) {
	if step != w.session.Step {
		return 0, fmt.Errorf("%w: got %s, current %s", domain.ErrStepMismatch, step, w.session.Step)
	}
	q, ok := domain.QuestionFor(step)
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrStepMismatch, step)
	}
	if !q.Accepts(value) {
		return 0, fmt.Errorf("%w: %q for %s", domain.ErrUnknownOption, value, step)
	}

	for _, opt := range q.Options {
		w.view.MarkOption(step, opt.Value, opt.Value == value)
	}
	w.session.Answers.Set(step, value)
	w.session.UpdatedAt = w.now()
	w.view.SetProgress(step.Next())
	w.emit(ctx, w.hooks.OnQuizStep, domain.EventQuizStep)

	if w.pending != 0 {
		return 0, nil
	}
	w.generation++
	w.pending = w.generation
	return w.pending, nil
}

// schedule runs fn after the advance delay, outside the wizard lock so that
// inline schedulers can re-enter.
func (w *Wizard) schedule(gen uint64, fn func()) {
	cancel := w.scheduler.After(w.advanceDelay, fn)
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending == gen {
		w.cancel = cancel
	}
}

func (w *Wizard) advance(ctx context.Context, gen uint64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != gen {
		w.logger.Debug("stale quiz transition discarded", "generation", gen)
		return
	}
	w.pending, w.cancel = 0, nil

	current := w.session.Step
	w.view.HideStep(current)
	next := current.Next()
	w.session.Step = next
	w.session.UpdatedAt = w.now()

	if next.IsQuestion() {
		w.view.ShowStep(next)
		return
	}

	rec := domain.Recommend(w.session.Answers)
	w.session.Completed = true
	w.session.Recommendation = &rec
	w.view.ShowResults(rec)
	w.logger.Info("quiz completed", "program", rec.Program, "goal", w.session.Answers.Goal,
		"activity", w.session.Answers.Activity, "time", w.session.Answers.Time)
	w.emit(ctx, w.hooks.OnQuizCompleted, domain.EventQuizCompleted)
}

// Restart clears every answer and returns to step 1, discarding any pending transition.
func (w *Wizard) Restart(ctx context.Context) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.cancelPendingLocked()
	w.resetHandOffLocked()

	id := w.session.SessionID
	w.session = domain.NewQuizSession(id)
	w.session.UpdatedAt = w.now()
	w.render()
	w.emit(ctx, w.hooks.OnQuizRestarted, domain.EventQuizRestarted)
}

func (w *Wizard) cancelPendingLocked() {
	if w.cancel != nil {
		w.cancel()
	}
	w.pending, w.cancel = 0, nil
}

func (w *Wizard) resetHandOffLocked() {
	if w.cancelFocus != nil {
		w.cancelFocus()
	}
	w.handedOff, w.cancelFocus = false, nil
}

// render redraws every quiz element from the session.
func (w *Wizard) render() {
	s := w.session
	for _, q := range domain.Questions {
		answer := s.Answers.Get(q.Step)
		for _, opt := range q.Options {
			w.view.MarkOption(q.Step, opt.Value, opt.Value == answer)
		}
		if q.Step == s.Step {
			w.view.ShowStep(q.Step)
		} else {
			w.view.HideStep(q.Step)
		}
	}

	progress := s.Step
	if s.Step.IsQuestion() && s.Answers.Get(s.Step) != "" {
		progress = s.Step.Next()
	}
	w.view.SetProgress(progress)

	if s.Recommendation != nil {
		w.view.ShowResults(*s.Recommendation)
	} else {
		w.view.HideResults()
	}
}

// Accept closes the dialog, scrolls to the contact section and prefills the
// contact form from the answers. The name field is focused after the focus delay.
// The hand-off happens once per completed quiz; accepting again returns
// ErrAlreadyHandedOff until Restart.
func (w *Wizard) Accept(ctx context.Context) error {
	w.mu.Lock()
	if !w.session.Completed {
		w.mu.Unlock()
		return domain.ErrQuizIncomplete
	}
	if w.handedOff {
		w.mu.Unlock()
		return domain.ErrAlreadyHandedOff
	}
	w.handedOff = true
	w.open = false
	w.view.CloseDialog()
	w.view.ScrollToContact()
	prefills := domain.HandOff(w.session.Answers)
	target := w.prefiller
	w.emit(ctx, w.hooks.OnQuizHandOff, domain.EventQuizHandOff)
	w.mu.Unlock()

	if target == nil {
		return nil
	}
	for _, p := range prefills {
		if err := target.Prefill(p.FieldID, p.Value); err != nil {
			w.logger.Warn("quiz hand-off skipped field", "field", p.FieldID, "value", p.Value, "err", err)
		}
	}
	cancel := w.scheduler.After(w.focusDelay, func() {
		if err := target.Focus(domain.FieldName); err != nil {
			w.logger.Debug("quiz hand-off focus skipped", "err", err)
		}
	})
	w.mu.Lock()
	if w.handedOff {
		w.cancelFocus = cancel
	} else {
		cancel()
	}
	w.mu.Unlock()
	return nil
}

// Session returns a snapshot that Restore can rehydrate.
func (w *Wizard) Session() *domain.QuizSession {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.session.Snapshot()
}

// Restore replaces the wizard state with s and redraws the view. An answered
// but not yet advanced step is advanced after the usual delay.
func (w *Wizard) Restore(ctx context.Context, s *domain.QuizSession) error {
	if err := Verify(s); err != nil {
		return err
	}

	w.mu.Lock()
	w.cancelPendingLocked()
	w.resetHandOffLocked()
	w.session = s.Snapshot()
	if w.session.Completed {
		rec := domain.Recommend(w.session.Answers)
		w.session.Recommendation = &rec
	} else {
		w.session.Recommendation = nil
	}
	w.render()

	var gen uint64
	if w.session.Step.IsQuestion() && w.session.Answers.Get(w.session.Step) != "" {
		w.generation++
		w.pending = w.generation
		gen = w.pending
	}
	w.mu.Unlock()

	if gen != 0 {
		w.schedule(gen, func() { w.advance(ctx, gen) })
	}
	return nil
}

// Verify checks that a persisted session is reachable by the wizard:
// every answer is a known option and every step before the current one is answered.
func Verify(s *domain.QuizSession) error {
	if s == nil {
		return fmt.Errorf("%w: nil session", domain.ErrSessionNotFound)
	}
	if s.Step < domain.Step1 || s.Step > domain.StepResults {
		return fmt.Errorf("%w: invalid step %d", domain.ErrStepMismatch, s.Step)
	}
	for _, q := range domain.Questions {
		answer := s.Answers.Get(q.Step)
		if answer == "" {
			if q.Step < s.Step {
				return fmt.Errorf("%w: %s unanswered", domain.ErrQuizIncomplete, q.Step)
			}
			continue
		}
		if q.Step > s.Step {
			return fmt.Errorf("%w: answer for future %s", domain.ErrStepMismatch, q.Step)
		}
		if !q.Accepts(answer) {
			return fmt.Errorf("%w: %q for %s", domain.ErrUnknownOption, answer, q.Step)
		}
	}
	if s.Completed != (s.Step == domain.StepResults) {
		return fmt.Errorf("%w: completed=%t at %s", domain.ErrStepMismatch, s.Completed, s.Step)
	}
	return nil
}

func (w *Wizard) emit(ctx context.Context, hook func(context.Context, *domain.QuizEvent), typ domain.EventType) {
	if hook == nil {
		return
	}
	ev := &domain.QuizEvent{
		EventBase: domain.EventBase{Timestamp: w.now(), Type: typ},
		Step:      w.session.Step,
		Answers:   w.session.Answers,
	}
	if w.session.Recommendation != nil {
		rec := *w.session.Recommendation
		ev.Recommendation = &rec
	}
	hook(ctx, ev)
}

package fitlanding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/fitlanding/internal/form"
	"github.com/aretw0/fitlanding/internal/quiz"
	"github.com/aretw0/fitlanding/pkg/adapters/memory"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/page"
	"github.com/aretw0/fitlanding/pkg/ports"
	"github.com/aretw0/fitlanding/pkg/schedule"
	"github.com/aretw0/fitlanding/pkg/session"
)

// FieldResult is the validation outcome of one field.
type FieldResult struct {
	ID       string          `json:"id"`
	Value    string          `json:"value,omitempty"`
	Validity domain.Validity `json:"validity"`
	Message  string          `json:"message,omitempty"`
}

// ContactResult is what a stateless host reports after validating or submitting.
type ContactResult struct {
	Valid  bool                   `json:"valid"`
	State  domain.SubmissionState `json:"state"`
	Fields []FieldResult          `json:"fields"`
	// FirstInvalid is the field scrolled into view when validation fails.
	FirstInvalid string `json:"first_invalid,omitempty"`
	Banner       string `json:"banner,omitempty"`
}

// HandOffResult is the outcome of accepting a recommendation.
type HandOffResult struct {
	Recommendation domain.Recommendation `json:"recommendation"`
	Prefills       []domain.Prefill      `json:"prefills"`
	// Fields is the contact form after the prefill.
	Fields []FieldResult `json:"fields"`
}

// Service drives the components for hosts that keep no page between requests,
// such as the HTTP API and the MCP server. Every call builds a fresh headless
// page; quiz progress lives in the session store.
type Service struct {
	spec      domain.FormSpec
	submitter ports.Submitter
	sessions  *session.Manager
	prefs     ports.PreferenceStore
	hooks     domain.LifecycleHooks
	filter    func(fieldID, value string) string
	logger    *slog.Logger
}

// NewService creates a service for the given form. Without WithSessions the
// quiz sessions are kept in memory.
func NewService(spec domain.FormSpec, opts ...Option) *Service {
	cfg := newSettings(opts)
	if cfg.sessions == nil {
		cfg.sessions = session.NewManager(memory.NewStore(), session.WithLogger(cfg.logger))
	}
	if cfg.prefs == nil {
		cfg.prefs = memory.NewPreferences(nil)
	}
	return &Service{
		spec:      spec,
		submitter: cfg.submitter,
		sessions:  cfg.sessions,
		prefs:     cfg.prefs,
		hooks:     cfg.hooks,
		filter:    cfg.filter,
		logger:    cfg.logger,
	}
}

// Spec returns the form definition.
func (s *Service) Spec() domain.FormSpec { return s.spec }

// Sessions returns the quiz session manager.
func (s *Service) Sessions() *session.Manager { return s.sessions }

func (s *Service) newForm(pg *page.Page) *form.Engine {
	opts := []form.Option{
		form.WithLogger(s.logger),
		form.WithLifecycleHooks(s.hooks),
		form.WithValueFilter(s.filter),
	}
	if s.submitter != nil {
		opts = append(opts, form.WithSubmitter(s.submitter))
	}
	return form.New(s.spec, pg, opts...)
}

// ValidateContact runs every field rule over values without submitting.
func (s *Service) ValidateContact(ctx context.Context, values map[string]string) (*ContactResult, error) {
	pg := page.New(page.WithForm(s.spec))
	eng := s.newForm(pg)
	if err := eng.Load(values); err != nil {
		return nil, err
	}
	valid := eng.ValidateAllFields(ctx)
	return contactResult(eng, pg, valid), nil
}

// SubmitContact validates values and, when they pass, hands them to the
// submitter. The result is returned alongside domain.ErrValidationFailed or
// domain.ErrSubmissionFailed.
func (s *Service) SubmitContact(ctx context.Context, values map[string]string) (*ContactResult, error) {
	pg := page.New(page.WithForm(s.spec))
	eng := s.newForm(pg)
	if err := eng.Load(values); err != nil {
		return nil, err
	}
	err := eng.Submit(ctx)
	res := contactResult(eng, pg, !errors.Is(err, domain.ErrValidationFailed))
	return res, err
}

func contactResult(eng *form.Engine, pg *page.Page, valid bool) *ContactResult {
	res := &ContactResult{Valid: valid, State: eng.State()}
	for _, f := range eng.Fields() {
		res.Fields = append(res.Fields, FieldResult{ID: f.ID, Value: f.Value, Validity: f.Validity, Message: f.Message})
		if res.FirstInvalid == "" && f.Message != "" {
			res.FirstInvalid = f.ID
		}
	}
	if pg.BannerCount() > 0 {
		res.Banner = domain.SubmissionBannerText
	}
	return res
}

// StartQuiz creates a quiz session at step 1.
func (s *Service) StartQuiz(ctx context.Context) (*domain.QuizSession, error) {
	return s.sessions.LoadOrStart(ctx, session.NewID())
}

// Quiz returns the stored session.
func (s *Service) Quiz(ctx context.Context, id string) (*domain.QuizSession, error) {
	return s.sessions.Load(ctx, id)
}

// Answer selects value on step. The step transition happens before the call returns.
func (s *Service) Answer(ctx context.Context, id string, step domain.Step, value string) (*domain.QuizSession, error) {
	return s.sessions.Update(ctx, id, func(qs *domain.QuizSession) error {
		w, err := s.wizard(ctx, page.New(page.WithQuiz()), qs, nil)
		if err != nil {
			return err
		}
		if err := w.Select(ctx, step, value); err != nil {
			return err
		}
		*qs = *w.Session()
		return nil
	})
}

// RestartQuiz clears every answer of the session.
func (s *Service) RestartQuiz(ctx context.Context, id string) (*domain.QuizSession, error) {
	return s.sessions.Update(ctx, id, func(qs *domain.QuizSession) error {
		w, err := s.wizard(ctx, page.New(page.WithQuiz()), qs, nil)
		if err != nil {
			return err
		}
		w.Restart(ctx)
		*qs = *w.Session()
		return nil
	})
}

// AcceptQuiz hands a completed session's answers to a fresh contact form.
func (s *Service) AcceptQuiz(ctx context.Context, id string) (*HandOffResult, error) {
	qs, err := s.sessions.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	pg := page.Landing(s.spec)
	eng := s.newForm(pg)
	w, err := s.wizard(ctx, pg, qs, eng)
	if err != nil {
		return nil, err
	}
	if err := w.Accept(ctx); err != nil {
		return nil, err
	}
	rec, _ := w.Recommendation()
	res := &HandOffResult{
		Recommendation: rec,
		Prefills:       domain.HandOff(qs.Answers),
	}
	for _, f := range eng.Fields() {
		res.Fields = append(res.Fields, FieldResult{ID: f.ID, Value: f.Value, Validity: f.Validity, Message: f.Message})
	}
	return res, nil
}

func (s *Service) wizard(ctx context.Context, pg *page.Page, qs *domain.QuizSession, target ports.Prefiller) (*quiz.Wizard, error) {
	opts := []quiz.Option{
		quiz.WithLogger(s.logger),
		quiz.WithScheduler(schedule.Immediate{}),
		quiz.WithLifecycleHooks(s.hooks),
		quiz.WithSessionID(qs.SessionID),
	}
	if target != nil {
		opts = append(opts, quiz.WithPrefiller(target))
	}
	w := quiz.New(pg, opts...)
	if err := w.Restore(ctx, qs); err != nil {
		return nil, fmt.Errorf("stored session %s: %w", qs.SessionID, err)
	}
	return w, nil
}

// Preferences reads the persisted flags.
func (s *Service) Preferences(ctx context.Context) domain.Preferences {
	return ReadPreferences(ctx, s.prefs, s.logger)
}

// SetPreference persists one of the known flags.
func (s *Service) SetPreference(ctx context.Context, key, value string) error {
	switch key {
	case domain.PrefTheme:
		if value != domain.ThemeDark && value != domain.ThemeLight {
			return fmt.Errorf("%w: theme %q", domain.ErrUnknownOption, value)
		}
	case domain.PrefCookieConsent:
	default:
		return fmt.Errorf("%w: preference %q", domain.ErrUnknownField, key)
	}
	return s.prefs.Set(ctx, key, value)
}

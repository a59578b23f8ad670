package fitlanding

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"github.com/aretw0/fitlanding/internal/form"
	"github.com/aretw0/fitlanding/internal/quiz"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/page"
	"github.com/aretw0/fitlanding/pkg/ports"
)

// Site wires the Form Engine and the Quiz Wizard to one live page.
// Parts missing from the page disable only their feature.
type Site struct {
	page   *page.Page
	form   *form.Engine
	quiz   *quiz.Wizard
	prefs  domain.Preferences
	detach []ports.DetachFunc
	logger *slog.Logger
}

// New boots the page: reads persisted preferences, builds the components the
// page has anchors for and attaches their handlers.
func New(ctx context.Context, pg *page.Page, spec domain.FormSpec, opts ...Option) *Site {
	cfg := newSettings(opts)
	s := &Site{
		page:   pg,
		logger: cfg.logger,
		prefs:  ReadPreferences(ctx, cfg.prefs, cfg.logger),
	}

	if spec.ID == "" {
		spec.ID = domain.ElementForm
	}
	if pg.Has(spec.ID) {
		formOpts := []form.Option{
			form.WithLogger(cfg.logger),
			form.WithLifecycleHooks(cfg.hooks),
			form.WithValueFilter(cfg.filter),
		}
		if cfg.submitter != nil {
			formOpts = append(formOpts, form.WithSubmitter(cfg.submitter))
		}
		s.form = form.New(spec, pg, formOpts...)
		s.detach = append(s.detach, s.form.Attach(pg))
	} else {
		cfg.logger.Debug("form element not found, form engine disabled", "form_id", spec.ID)
	}

	if pg.Has(domain.ElementQuizDialog) {
		quizOpts := []quiz.Option{
			quiz.WithLogger(cfg.logger),
			quiz.WithScheduler(cfg.scheduler),
			quiz.WithAdvanceDelay(cfg.advanceDelay),
			quiz.WithFocusDelay(cfg.focusDelay),
			quiz.WithLifecycleHooks(cfg.hooks),
		}
		if s.form != nil {
			quizOpts = append(quizOpts, quiz.WithPrefiller(s.form))
		}
		s.quiz = quiz.New(pg, quizOpts...)
		s.detach = append(s.detach, s.quiz.Attach(pg))
	} else {
		cfg.logger.Debug("quiz anchor not found, quiz disabled")
	}
	return s
}

// Page returns the page the site is bound to.
func (s *Site) Page() *page.Page { return s.page }

// Form returns the Form Engine, or nil when the page has no form.
func (s *Site) Form() *form.Engine { return s.form }

// Quiz returns the Quiz Wizard, or nil when the page has no quiz anchor.
func (s *Site) Quiz() *quiz.Wizard { return s.quiz }

// Preferences returns the flags read at boot.
func (s *Site) Preferences() domain.Preferences { return s.prefs }

// OpenQuiz opens the quiz dialog. Without a quiz anchor it only logs.
func (s *Site) OpenQuiz(ctx context.Context) {
	if s.quiz == nil {
		s.logger.Info("quiz requested but the page has no quiz dialog")
		return
	}
	s.quiz.Open(ctx)
}

// Close detaches every handler and waits for an outstanding submission.
func (s *Site) Close() {
	for i := len(s.detach) - 1; i >= 0; i-- {
		s.detach[i]()
	}
	s.detach = nil
	if s.form != nil {
		s.form.Wait()
	}
}

// ReadPreferences reads the theme and cookie-consent flags once. Missing
// flags keep their defaults; store failures are logged and ignored. Any
// stored consent other than a false boolean counts as accepted.
func ReadPreferences(ctx context.Context, store ports.PreferenceStore, logger *slog.Logger) domain.Preferences {
	prefs := domain.DefaultPreferences()
	if store == nil {
		return prefs
	}

	if theme, err := store.Get(ctx, domain.PrefTheme); err == nil {
		if theme == domain.ThemeDark || theme == domain.ThemeLight {
			prefs.Theme = theme
		}
	} else if !errors.Is(err, domain.ErrPreferenceNotFound) {
		logger.Debug("theme preference unavailable", "err", err)
	}

	if consent, err := store.Get(ctx, domain.PrefCookieConsent); err == nil {
		v, err := strconv.ParseBool(consent)
		prefs.CookiesAccepted = consent != "" && (err != nil || v)
	} else if !errors.Is(err, domain.ErrPreferenceNotFound) {
		logger.Debug("cookie-consent preference unavailable", "err", err)
	}
	return prefs
}

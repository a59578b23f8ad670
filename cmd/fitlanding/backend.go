package main

import (
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/fitlanding"
	"github.com/aretw0/fitlanding/internal/config"
	"github.com/aretw0/fitlanding/pkg/adapters/file"
	"github.com/aretw0/fitlanding/pkg/adapters/formspree"
	"github.com/aretw0/fitlanding/pkg/adapters/memory"
	"github.com/aretw0/fitlanding/pkg/adapters/redis"
	"github.com/aretw0/fitlanding/pkg/observability"
	"github.com/aretw0/fitlanding/pkg/persistence/middleware"
	"github.com/aretw0/fitlanding/pkg/ports"
	"github.com/aretw0/fitlanding/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
)

// defaultVisitor keys the preferences of CLI users in shared stores.
const defaultVisitor = "cli"

// backend holds the stores selected by the configuration.
type backend struct {
	sessions *session.Manager
	prefs    ports.PreferenceStore
	close    func() error
}

// openBackend builds the quiz session store and the preference store.
// visitor only matters for redis, where preferences of many visitors share one server.
func openBackend(cfg *config.Config, logger *slog.Logger, visitor string) (*backend, error) {
	if visitor == "" {
		visitor = defaultVisitor
	}
	noop := func() error { return nil }

	seal, err := sealer(cfg)
	if err != nil {
		return nil, err
	}

	switch cfg.Store.Backend {
	case config.StoreFile:
		dir := cfg.Store.Path
		if dir == "" {
			dir = ".fitlanding"
		}
		return &backend{
			sessions: session.NewManager(seal(file.New(filepath.Join(dir, "sessions"))), session.WithLogger(logger)),
			prefs:    file.NewPreferences(filepath.Join(dir, "preferences.json")),
			close:    noop,
		}, nil

	case config.StoreRedis:
		prefix := cfg.Redis.Prefix
		if prefix == "" {
			prefix = redis.DefaultPrefix
		}
		store := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Store.SessionTTL),
			redis.WithPrefix(prefix),
		)
		return &backend{
			sessions: session.NewManager(seal(store),
				session.WithLocker(redis.NewLocker(store.Client(), prefix)),
				session.WithLogger(logger),
			),
			prefs: redis.NewPreferences(store.Client(), prefix, visitor),
			close: store.Close,
		}, nil
	}

	return &backend{
		sessions: session.NewManager(seal(memory.NewStore()), session.WithLogger(logger)),
		prefs:    memory.NewPreferences(nil),
		close:    noop,
	}, nil
}

// sealer wraps session stores with the encryption middleware when a key is configured.
func sealer(cfg *config.Config) (middleware.Middleware, error) {
	active, fallback, err := cfg.Store.Keys()
	if err != nil {
		return nil, err
	}
	if active == nil {
		return func(s ports.StateStore) ports.StateStore { return s }, nil
	}
	return middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
		ActiveKey:    active,
		FallbackKeys: fallback,
	}), nil
}

// newService wires the submitter, the stores and the lifecycle hooks.
// Metrics are registered on reg when it is not nil.
func newService(cfg *config.Config, logger *slog.Logger, b *backend, reg prometheus.Registerer) *fitlanding.Service {
	sub := formspree.New(
		formspree.WithTimeout(cfg.Submission.Timeout),
		formspree.WithUserAgent(userAgent(cfg)),
		formspree.WithLogger(logger),
	)

	hooks := observability.LogHooks(logger)
	if reg != nil {
		hooks = hooks.Merge(observability.NewMetrics(reg).Hooks())
	}

	return fitlanding.NewService(cfg.Form,
		fitlanding.WithLogger(logger),
		fitlanding.WithSubmitter(sub),
		fitlanding.WithLifecycleHooks(hooks),
		fitlanding.WithSessions(b.sessions),
		fitlanding.WithPreferences(b.prefs),
		fitlanding.WithDelays(cfg.Quiz.AdvanceDelay, cfg.Quiz.FocusDelay),
	)
}

func userAgent(cfg *config.Config) string {
	if cfg.Submission.UserAgent != "" {
		return cfg.Submission.UserAgent
	}
	return "fitlanding/" + strings.TrimSpace(fitlanding.Version)
}

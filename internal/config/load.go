package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/persistence/middleware"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment without overriding variables that are already set.
// Missing files are skipped.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if err := godotenv.Load(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load builds the configuration: defaults, then the YAML file at path (if any),
// then FITLANDING_* environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	return load(path, os.LookupEnv)
}

func load(path string, lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}
	if err := applyEnv(cfg, lookup); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type override struct {
	key   string
	apply func(cfg *Config, v string) error
}

var overrides = []override{
	{"LOG_LEVEL", func(c *Config, v string) error { c.LogLevel = v; return nil }},
	{"ADDR", func(c *Config, v string) error { c.Server.Addr = v; return nil }},
	{"METRICS", func(c *Config, v string) error { return parseBool(v, &c.Server.Metrics) }},
	{"STORE", func(c *Config, v string) error { c.Store.Backend = v; return nil }},
	{"STORE_PATH", func(c *Config, v string) error { c.Store.Path = v; return nil }},
	{"STORE_KEY", func(c *Config, v string) error { c.Store.EncryptionKey = v; return nil }},
	{"SESSION_TTL", func(c *Config, v string) error { return parseDuration(v, &c.Store.SessionTTL) }},
	{"REDIS_ADDR", func(c *Config, v string) error { c.Redis.Addr = v; return nil }},
	{"REDIS_PASSWORD", func(c *Config, v string) error { c.Redis.Password = v; return nil }},
	{"REDIS_DB", func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Redis.DB = n
		return nil
	}},
	{"FORM_ACTION", func(c *Config, v string) error { c.Form.Action = v; return nil }},
	{"SUBMIT_TIMEOUT", func(c *Config, v string) error { return parseDuration(v, &c.Submission.Timeout) }},
	{"ADVANCE_DELAY", func(c *Config, v string) error { return parseDuration(v, &c.Quiz.AdvanceDelay) }},
	{"FOCUS_DELAY", func(c *Config, v string) error { return parseDuration(v, &c.Quiz.FocusDelay) }},
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	for _, o := range overrides {
		v, ok := lookup(EnvPrefix + o.key)
		if !ok {
			continue
		}
		if err := o.apply(cfg, v); err != nil {
			return fmt.Errorf("%w: %s%s=%q: %v", ErrInvalid, EnvPrefix, o.key, v, err)
		}
	}
	return nil
}

func parseDuration(v string, dst *time.Duration) error {
	d, err := time.ParseDuration(v)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}

func parseBool(v string, dst *bool) error {
	b, err := strconv.ParseBool(v)
	if err != nil {
		return err
	}
	*dst = b
	return nil
}

// Validate checks struct tags and the rules tags cannot express.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	if c.Store.Backend == StoreRedis && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis backend needs redis.addr", ErrInvalid)
	}
	if _, _, err := c.Store.Keys(); err != nil {
		return fmt.Errorf("%w: store: %w", ErrInvalid, err)
	}
	return ValidateForm(c.Form)
}

// Keys decodes the encryption keys. active is nil when encryption is off.
func (s StoreConfig) Keys() (active []byte, fallback [][]byte, err error) {
	if s.EncryptionKey == "" {
		if len(s.FallbackKeys) > 0 {
			return nil, nil, errors.New("fallback_keys without encryption_key")
		}
		return nil, nil, nil
	}
	if active, err = middleware.ParseKey(s.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("encryption_key: %w", err)
	}
	for i, k := range s.FallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

// ValidateForm checks a form definition: unique field ids, options on every
// select, and groups within the three progress steps.
func ValidateForm(spec domain.FormSpec) error {
	if err := validate.Struct(spec); err != nil {
		return fmt.Errorf("%w: form: %w", ErrInvalid, err)
	}
	seen := make(map[string]bool, len(spec.Fields))
	for _, f := range spec.Fields {
		if seen[f.ID] {
			return fmt.Errorf("%w: duplicate field %q", ErrInvalid, f.ID)
		}
		seen[f.ID] = true
		if f.Kind == domain.KindSelect && len(f.Options) < 2 {
			return fmt.Errorf("%w: select %q needs a placeholder and at least one option", ErrInvalid, f.ID)
		}
		if f.Group < 0 || f.Group > 3 {
			return fmt.Errorf("%w: field %q has group %d", ErrInvalid, f.ID, f.Group)
		}
	}
	return nil
}

// Package config loads the site configuration: a YAML file, environment
// overrides prefixed with FITLANDING_, and an optional .env file.
package config

import (
	"time"

	"github.com/aretw0/fitlanding/pkg/domain"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "FITLANDING_"

// Store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	LogLevel   string           `yaml:"log_level" validate:"required,oneof=debug info warn error"`
	Server     ServerConfig     `yaml:"server"`
	Store      StoreConfig      `yaml:"store"`
	Redis      RedisConfig      `yaml:"redis"`
	Submission SubmissionConfig `yaml:"submission"`
	Quiz       QuizConfig       `yaml:"quiz"`
	Form       domain.FormSpec  `yaml:"form"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr            string        `yaml:"addr" validate:"required,hostname_port"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gte=0"`
	Metrics         bool          `yaml:"metrics"`
}

// StoreConfig selects where quiz sessions and preferences live.
type StoreConfig struct {
	Backend    string        `yaml:"backend" validate:"required,oneof=memory file redis"`
	Path       string        `yaml:"path"`
	SessionTTL time.Duration `yaml:"session_ttl" validate:"gte=0"`

	// EncryptionKey (base64, 32 bytes) seals stored quiz sessions with AES-GCM.
	// FallbackKeys are still accepted for reading, for key rotation.
	EncryptionKey string   `yaml:"encryption_key" validate:"omitempty,base64"`
	FallbackKeys  []string `yaml:"fallback_keys" validate:"dive,base64"`
}

// RedisConfig is used when Store.Backend is redis.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db" validate:"gte=0"`
	Prefix   string `yaml:"prefix"`
}

// SubmissionConfig tunes the network submitter.
type SubmissionConfig struct {
	Timeout   time.Duration `yaml:"timeout" validate:"gt=0"`
	UserAgent string        `yaml:"user_agent"`
}

// QuizConfig tunes the wizard delays.
type QuizConfig struct {
	AdvanceDelay time.Duration `yaml:"advance_delay" validate:"gte=0"`
	FocusDelay   time.Duration `yaml:"focus_delay" validate:"gte=0"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: ServerConfig{
			Addr:            "127.0.0.1:8080",
			ShutdownTimeout: 10 * time.Second,
			Metrics:         true,
		},
		Store: StoreConfig{
			Backend:    StoreMemory,
			SessionTTL: 24 * time.Hour,
		},
		Redis: RedisConfig{
			Addr:   "localhost:6379",
			Prefix: "fitlanding:session:",
		},
		Submission: SubmissionConfig{
			Timeout: 15 * time.Second,
		},
		Quiz: QuizConfig{
			AdvanceDelay: 500 * time.Millisecond,
			FocusDelay:   800 * time.Millisecond,
		},
		Form: DefaultForm(),
	}
}

// DefaultForm is the contact form of the landing page.
func DefaultForm() domain.FormSpec {
	return domain.FormSpec{
		ID:          domain.ElementForm,
		Action:      "https://formspree.io/f/your-form-id",
		Method:      "POST",
		SubmitLabel: "Get Started",
		Fields: []domain.FieldSpec{
			{ID: domain.FieldName, Kind: domain.KindText, Label: "Full Name *", Required: true, Group: 1},
			{ID: domain.FieldEmail, Kind: domain.KindEmail, Label: "Email Address *", Required: true, Group: 1},
			{ID: domain.FieldPhone, Kind: domain.KindTel, Label: "Phone Number", Group: 1},
			{ID: domain.FieldGoals, Kind: domain.KindSelect, Label: "Fitness Goals *", Required: true, Group: 2, Options: []domain.Option{
				{Value: "", Label: "Select your primary goal"},
				{Value: "weight-loss", Label: "Weight Loss"},
				{Value: "muscle-gain", Label: "Muscle Gain"},
				{Value: "toning", Label: "Toning & Definition"},
				{Value: "endurance", Label: "Endurance & Energy"},
			}},
			{ID: domain.FieldExperience, Kind: domain.KindSelect, Label: "Experience Level *", Required: true, Group: 2, Options: []domain.Option{
				{Value: "", Label: "Select your experience level"},
				{Value: "beginner", Label: "Beginner"},
				{Value: "intermediate", Label: "Intermediate"},
				{Value: "advanced", Label: "Advanced"},
			}},
			{ID: domain.FieldService, Kind: domain.KindSelect, Label: "Service Interest", Group: 3, Options: []domain.Option{
				{Value: "", Label: "Select a service"},
				{Value: "personal-training", Label: "Personal Training"},
				{Value: "group-classes", Label: "Group Classes"},
				{Value: "nutrition", Label: "Nutrition Coaching"},
				{Value: "online-coaching", Label: "Online Coaching"},
			}},
			{ID: domain.FieldMessage, Kind: domain.KindTextarea, Label: "Message", Group: 3},
		},
	}
}

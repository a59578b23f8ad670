package config

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noEnv(string) (string, bool) { return "", false }

func envMap(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	ids := make([]string, 0, len(cfg.Form.Fields))
	for _, f := range cfg.Form.Fields {
		ids = append(ids, f.ID)
	}
	assert.Equal(t, []string{"name", "email", "phone", "goals", "experience", "service", "message"}, ids)
	assert.Equal(t, domain.ElementForm, cfg.Form.ID)
	assert.Equal(t, 500*time.Millisecond, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.Quiz.FocusDelay)
}

func TestDefaultForm_CoversHandOffOptions(t *testing.T) {
	form := DefaultForm()
	goals, ok := form.Field(domain.FieldGoals)
	require.True(t, ok)
	experience, ok := form.Field(domain.FieldExperience)
	require.True(t, ok)

	for _, q := range domain.Questions[:2] {
		for _, opt := range q.Options {
			answers := domain.QuizAnswers{}
			answers.Set(q.Step, opt.Value)
			for _, p := range domain.HandOff(answers) {
				target := goals
				if p.FieldID == domain.FieldExperience {
					target = experience
				}
				assert.GreaterOrEqual(t, domain.NewFormField(target).OptionIndex(p.Value), 1,
					"%s has no option %q", p.FieldID, p.Value)
			}
		}
	}
}

func TestLoad_FileOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fitlanding.yaml")
	yaml := `
log_level: debug
server:
  addr: 0.0.0.0:9090
store:
  backend: file
  path: /tmp/sessions
quiz:
  advance_delay: 250ms
form:
  id: interest-form
  action: https://formspree.io/f/abc123
  method: POST
  fields:
    - id: name
      kind: text
      label: "Name *"
      required: true
      group: 1
    - id: email
      kind: email
      label: "Email *"
      required: true
      group: 1
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := load(path, noEnv)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "0.0.0.0:9090", cfg.Server.Addr)
	assert.Equal(t, StoreFile, cfg.Store.Backend)
	assert.Equal(t, 250*time.Millisecond, cfg.Quiz.AdvanceDelay)
	assert.Equal(t, 800*time.Millisecond, cfg.Quiz.FocusDelay, "unset keys keep defaults")
	assert.Len(t, cfg.Form.Fields, 2)
	assert.Equal(t, "https://formspree.io/f/abc123", cfg.Form.Action)
}

func TestLoad_EnvOverrides(t *testing.T) {
	cfg, err := load("", envMap(map[string]string{
		"FITLANDING_LOG_LEVEL":     "warn",
		"FITLANDING_STORE":         "redis",
		"FITLANDING_REDIS_ADDR":    "cache:6379",
		"FITLANDING_REDIS_DB":      "2",
		"FITLANDING_FORM_ACTION":   "https://formspree.io/f/env",
		"FITLANDING_ADVANCE_DELAY": "0s",
		"FITLANDING_METRICS":       "false",
	}))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, StoreRedis, cfg.Store.Backend)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "https://formspree.io/f/env", cfg.Form.Action)
	assert.Zero(t, cfg.Quiz.AdvanceDelay)
	assert.False(t, cfg.Server.Metrics)
}

func TestLoad_Rejects(t *testing.T) {
	tests := map[string]map[string]string{
		"bad level":       {"FITLANDING_LOG_LEVEL": "loud"},
		"bad backend":     {"FITLANDING_STORE": "s3"},
		"bad duration":    {"FITLANDING_SUBMIT_TIMEOUT": "soon"},
		"zero timeout":    {"FITLANDING_SUBMIT_TIMEOUT": "0s"},
		"bad redis db":    {"FITLANDING_REDIS_DB": "one"},
		"redis no addr":   {"FITLANDING_STORE": "redis", "FITLANDING_REDIS_ADDR": ""},
		"bad form action": {"FITLANDING_FORM_ACTION": "not a url"},
		"bad addr":        {"FITLANDING_ADDR": "nowhere"},
		"key not base64":  {"FITLANDING_STORE_KEY": "!!!"},
		"short key":       {"FITLANDING_STORE_KEY": "c2hvcnQ="},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := load("", envMap(env))
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestStoreConfig_Keys(t *testing.T) {
	key := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{7}, 32))
	old := base64.StdEncoding.EncodeToString(bytes.Repeat([]byte{9}, 32))

	active, fallback, err := StoreConfig{}.Keys()
	require.NoError(t, err)
	assert.Nil(t, active)
	assert.Nil(t, fallback)

	active, fallback, err = StoreConfig{EncryptionKey: key, FallbackKeys: []string{old}}.Keys()
	require.NoError(t, err)
	assert.Len(t, active, 32)
	require.Len(t, fallback, 1)
	assert.Equal(t, byte(9), fallback[0][0])

	_, _, err = StoreConfig{FallbackKeys: []string{old}}.Keys()
	assert.Error(t, err)

	cfg, err := load("", envMap(map[string]string{"FITLANDING_STORE_KEY": key}))
	require.NoError(t, err)
	assert.Equal(t, key, cfg.Store.EncryptionKey)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := load(filepath.Join(t.TempDir(), "absent.yaml"), noEnv)
	assert.Error(t, err)
}

func TestValidateForm(t *testing.T) {
	dup := DefaultForm()
	dup.Fields = append(dup.Fields, dup.Fields[0])
	assert.ErrorIs(t, ValidateForm(dup), ErrInvalid)

	bareSelect := DefaultForm()
	bareSelect.Fields[3].Options = bareSelect.Fields[3].Options[:1]
	assert.ErrorIs(t, ValidateForm(bareSelect), ErrInvalid)

	badGroup := DefaultForm()
	badGroup.Fields[0].Group = 4
	assert.ErrorIs(t, ValidateForm(badGroup), ErrInvalid)

	noFields := DefaultForm()
	noFields.Fields = nil
	assert.ErrorIs(t, ValidateForm(noFields), ErrInvalid)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("FITLANDING_TEST_DOTENV=from-file\n"), 0o600))
	t.Setenv("FITLANDING_TEST_DOTENV", "")
	require.NoError(t, os.Unsetenv("FITLANDING_TEST_DOTENV"))

	require.NoError(t, LoadDotEnv(path, filepath.Join(dir, "missing.env")))
	assert.Equal(t, "from-file", os.Getenv("FITLANDING_TEST_DOTENV"))
}

package form

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/aretw0/fitlanding/internal/logging"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

// SubmittingLabel is shown on the submit control while a submission is in flight.
const SubmittingLabel = "Submitting..."

// Engine is the Form Engine of one page. Safe for concurrent use: every
// handler is serialized by the engine mutex.
type Engine struct {
	mu sync.Mutex

	spec   domain.FormSpec
	fields []*domain.FormField
	index  map[string]*domain.FormField

	view      ports.FormView
	submitter ports.Submitter
	filter    func(fieldID, value string) string

	state   domain.SubmissionState
	lastErr error

	inflight sync.WaitGroup

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures the Engine.
type Option func(*Engine)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithSubmitter sets the network submitter. Without one every submission fails.
func WithSubmitter(s ports.Submitter) Option {
	return func(e *Engine) {
		e.submitter = s
	}
}

// WithLifecycleHooks registers observability callbacks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(e *Engine) {
		e.hooks = e.hooks.Merge(hooks)
	}
}

// WithValueFilter rewrites field values right before they are handed to the submitter.
func WithValueFilter(fn func(fieldID, value string) string) Option {
	return func(e *Engine) {
		e.filter = fn
	}
}

// New instantiates the fields of spec and applies the initial markings to view.
func New(spec domain.FormSpec, view ports.FormView, opts ...Option) *Engine {
	e := &Engine{
		spec:   spec,
		index:  make(map[string]*domain.FormField, len(spec.Fields)),
		view:   view,
		state:  domain.SubmissionIdle,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.spec.SubmitLabel == "" {
		e.spec.SubmitLabel = domain.DefaultSubmitLabel
	}
	if e.spec.Method == "" {
		e.spec.Method = http.MethodPost
	}

	for _, fs := range spec.Fields {
		f := domain.NewFormField(fs)
		e.fields = append(e.fields, f)
		e.index[f.ID] = f
		if f.HasValue() {
			e.view.MarkHasValue(f.ID, true)
		}
	}
	return e
}

// Spec returns the form definition the engine was built from.
func (e *Engine) Spec() domain.FormSpec {
	return e.spec
}

// State returns the current submission state.
func (e *Engine) State() domain.SubmissionState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// LastError returns the cause of the most recent failed submission.
func (e *Engine) LastError() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastErr
}

// Fields returns copies of the fields in declaration order.
func (e *Engine) Fields() []domain.FormField {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make([]domain.FormField, len(e.fields))
	for i, f := range e.fields {
		out[i] = *f
	}
	return out
}

// Field returns a copy of one field.
func (e *Engine) Field(id string) (domain.FormField, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.index[id]
	if !ok {
		return domain.FormField{}, false
	}
	return *f, true
}

// Values returns the current field values keyed by field id.
func (e *Engine) Values() url.Values {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.valuesLocked()
}

func (e *Engine) valuesLocked() url.Values {
	v := make(url.Values, len(e.fields))
	for _, f := range e.fields {
		value := f.Value
		if e.filter != nil {
			value = e.filter(f.ID, value)
		}
		v.Set(f.ID, value)
	}
	return v
}

// ValidateField runs the validation contract for one field and updates its annotation.
// Unknown fields are reported invalid.
func (e *Engine) ValidateField(ctx context.Context, id string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	f, ok := e.index[id]
	if !ok {
		return false
	}
	return e.validateLocked(ctx, f)
}

// ValidateAllFields validates every field in declaration order without
// stopping at the first failure, so every invalid field is annotated.
func (e *Engine) ValidateAllFields(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.validateAllLocked(ctx)
}

func (e *Engine) validateAllLocked(ctx context.Context) bool {
	valid := true
	for _, f := range e.fields {
		if !e.validateLocked(ctx, f) {
			valid = false
		}
	}
	return valid
}

func (e *Engine) validateLocked(ctx context.Context, f *domain.FormField) bool {
	f.Validity, f.Message = Check(f)
	if f.IsValid() {
		e.view.ClearFieldError(f.ID)
	} else {
		e.view.ShowFieldError(f.ID, f.Message)
	}

	if e.hooks.OnFieldValidated != nil {
		e.hooks.OnFieldValidated(ctx, &domain.FieldEvent{
			EventBase: domain.EventBase{Timestamp: time.Now(), Type: domain.EventFieldValidated},
			FieldID:   f.ID,
			Validity:  f.Validity,
		})
	}
	return f.IsValid()
}

// showsError reports whether the field currently carries an error annotation.
func showsError(f *domain.FormField) bool {
	return f.Message != ""
}

func (e *Engine) firstInvalidLocked() *domain.FormField {
	for _, f := range e.fields {
		if !f.IsValid() {
			return f
		}
	}
	return nil
}

package form_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fitlanding/internal/form"
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/page"
	"github.com/aretw0/fitlanding/pkg/ports"
)

func contactSpec() domain.FormSpec {
	return domain.FormSpec{
		ID:          domain.ElementForm,
		Action:      "https://formspree.io/f/test",
		Method:      "POST",
		SubmitLabel: "Send Message",
		Fields: []domain.FieldSpec{
			{ID: domain.FieldName, Kind: domain.KindText, Label: "Full Name *", Required: true, Group: 1},
			{ID: domain.FieldEmail, Kind: domain.KindEmail, Label: "Email Address *", Required: true, Group: 1},
			{ID: domain.FieldPhone, Kind: domain.KindTel, Label: "Phone Number", Group: 1},
			{ID: domain.FieldGoals, Kind: domain.KindSelect, Label: "Fitness Goal *", Required: true, Group: 2, Options: []domain.Option{
				{Value: "", Label: "Select your goal"},
				{Value: "weight-loss", Label: "Weight Loss"},
				{Value: "muscle-gain", Label: "Muscle Gain"},
				{Value: "toning", Label: "Toning"},
				{Value: "endurance", Label: "Endurance"},
			}},
			{ID: domain.FieldExperience, Kind: domain.KindSelect, Label: "Experience Level", Group: 2, Options: []domain.Option{
				{Value: "", Label: "Select your level"},
				{Value: "beginner", Label: "Beginner"},
				{Value: "intermediate", Label: "Intermediate"},
				{Value: "advanced", Label: "Advanced"},
			}},
			{ID: domain.FieldMessage, Kind: domain.KindTextarea, Label: "Message", Group: 3},
		},
	}
}

type recordingSubmitter struct {
	mu    sync.Mutex
	calls []ports.Submission
	err   error
	block chan struct{}
}

func (r *recordingSubmitter) Submit(ctx context.Context, s ports.Submission) error {
	r.mu.Lock()
	r.calls = append(r.calls, s)
	block := r.block
	r.mu.Unlock()
	if block != nil {
		<-block
	}
	return r.err
}

func (r *recordingSubmitter) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func newEngine(t *testing.T, sub ports.Submitter) (*form.Engine, *page.Page) {
	t.Helper()
	spec := contactSpec()
	p := page.Landing(spec)
	return form.New(spec, p, form.WithSubmitter(sub)), p
}

func fill(t *testing.T, e *form.Engine) {
	t.Helper()
	require.NoError(t, e.Load(map[string]string{
		domain.FieldName:  "Jane Doe",
		domain.FieldEmail: "jane@example.com",
		domain.FieldGoals: "toning",
	}))
}

func annotations(t *testing.T, p *page.Page, fieldID string) []string {
	t.Helper()
	el, ok := p.Element(page.GroupID(fieldID))
	require.True(t, ok)
	return el.Annotations
}

func TestCheck(t *testing.T) {
	tests := []struct {
		name     string
		spec     domain.FieldSpec
		value    string
		validity domain.Validity
		message  string
	}{
		{"optional empty", domain.FieldSpec{ID: "phone", Kind: domain.KindTel, Label: "Phone"}, "   ", domain.Valid, ""},
		{"required empty", domain.FieldSpec{ID: "name", Kind: domain.KindText, Label: "Full Name *", Required: true}, "  ", domain.InvalidEmpty, "Full Name is required"},
		{"marker removed once", domain.FieldSpec{ID: "x", Kind: domain.KindText, Label: "* A * B", Required: true}, "", domain.InvalidEmpty, "A * B is required"},
		{"email no tld", domain.FieldSpec{ID: "email", Kind: domain.KindEmail, Label: "Email"}, "a@b", domain.InvalidFormat, form.MsgInvalidEmail},
		{"email ok", domain.FieldSpec{ID: "email", Kind: domain.KindEmail, Label: "Email"}, "a@b.co", domain.Valid, ""},
		{"email with space", domain.FieldSpec{ID: "email", Kind: domain.KindEmail, Label: "Email"}, "a b@c.de", domain.InvalidFormat, form.MsgInvalidEmail},
		{"phone letters", domain.FieldSpec{ID: "phone", Kind: domain.KindTel, Label: "Phone"}, "555-abc-1234", domain.InvalidFormat, form.MsgInvalidPhone},
		{"phone short", domain.FieldSpec{ID: "phone", Kind: domain.KindTel, Label: "Phone"}, "12345", domain.InvalidFormat, form.MsgInvalidPhone},
		{"phone ok", domain.FieldSpec{ID: "phone", Kind: domain.KindTel, Label: "Phone"}, "+1 (555) 123-4567", domain.Valid, ""},
		{"name short", domain.FieldSpec{ID: "name", Kind: domain.KindText, Label: "Name *", Required: true}, " J ", domain.InvalidLength, form.MsgNameTooShort},
		{"name runes", domain.FieldSpec{ID: "name", Kind: domain.KindText, Label: "Name *", Required: true}, "Zé", domain.Valid, ""},
		{"other text short", domain.FieldSpec{ID: "city", Kind: domain.KindText, Label: "City"}, "A", domain.Valid, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := domain.NewFormField(tt.spec)
			f.Value = tt.value
			validity, message := form.Check(f)
			assert.Equal(t, tt.validity, validity)
			assert.Equal(t, tt.message, message)
		})
	}
}

func TestCheck_SelectPlaceholder(t *testing.T) {
	f := domain.NewFormField(domain.FieldSpec{
		ID: "goals", Kind: domain.KindSelect, Label: "Fitness Goal *", Required: true,
		Options: []domain.Option{{Value: "none", Label: "Pick"}, {Value: "toning", Label: "Toning"}},
	})
	validity, message := form.Check(f)
	assert.Equal(t, domain.InvalidEmpty, validity)
	assert.Equal(t, "Please select a fitness goal", message)

	f.SelectedIndex, f.Value = 0, ""
	validity, message = form.Check(f)
	assert.Equal(t, domain.InvalidEmpty, validity)
	assert.Equal(t, "Fitness Goal is required", message)
}

func TestValidateField_SingleAnnotation(t *testing.T) {
	e, p := newEngine(t, nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		assert.False(t, e.ValidateField(ctx, domain.FieldName))
	}
	assert.Equal(t, []string{"Full Name is required"}, annotations(t, p, domain.FieldName))

	require.NoError(t, e.HandleInput(ctx, domain.FieldName, "J"))
	assert.False(t, e.ValidateField(ctx, domain.FieldName))
	assert.Equal(t, []string{form.MsgNameTooShort}, annotations(t, p, domain.FieldName))

	require.NoError(t, e.HandleInput(ctx, domain.FieldName, "Jo"))
	assert.True(t, e.ValidateField(ctx, domain.FieldName))
	assert.Empty(t, annotations(t, p, domain.FieldName))

	el, _ := p.Element(page.GroupID(domain.FieldName))
	assert.False(t, el.HasClass(page.ClassFieldError))
}

func TestValidateAllFields_NoShortCircuit(t *testing.T) {
	e, p := newEngine(t, nil)
	ctx := context.Background()
	require.NoError(t, e.HandleInput(ctx, domain.FieldEmail, "not-an-email"))

	assert.False(t, e.ValidateAllFields(ctx))
	assert.Equal(t, []string{"Full Name is required"}, annotations(t, p, domain.FieldName))
	assert.Equal(t, []string{form.MsgInvalidEmail}, annotations(t, p, domain.FieldEmail))
	assert.Equal(t, []string{"Fitness Goal is required"}, annotations(t, p, domain.FieldGoals))
	assert.Empty(t, annotations(t, p, domain.FieldPhone))
	assert.Empty(t, annotations(t, p, domain.FieldExperience))
}

func TestSubmit_InvalidBlocksNetwork(t *testing.T) {
	sub := &recordingSubmitter{}
	e, p := newEngine(t, sub)

	err := e.Submit(context.Background())
	require.ErrorIs(t, err, domain.ErrValidationFailed)
	assert.Equal(t, 0, sub.count())
	assert.Equal(t, domain.SubmissionIdle, e.State())
	assert.Equal(t, []string{page.GroupID(domain.FieldName)}, p.Scrolls())
}

func TestSubmit_Success(t *testing.T) {
	sub := &recordingSubmitter{}
	e, p := newEngine(t, sub)
	fill(t, e)

	require.NoError(t, e.Submit(context.Background()))
	require.Equal(t, 1, sub.count())
	assert.Equal(t, "jane@example.com", sub.calls[0].Values.Get(domain.FieldEmail))
	assert.Equal(t, "toning", sub.calls[0].Values.Get(domain.FieldGoals))
	assert.Equal(t, "POST", sub.calls[0].Method)

	assert.Equal(t, domain.SubmissionSucceeded, e.State())
	formEl, _ := p.Element(domain.ElementForm)
	assert.True(t, formEl.Hidden)
	success, _ := p.Element(domain.ElementFormSuccess)
	assert.False(t, success.Hidden)
	assert.True(t, success.HasClass(page.ClassShow))
	assert.Contains(t, p.Scrolls(), domain.ElementFormSuccess)

	for _, f := range e.Fields() {
		assert.False(t, f.HasValue(), f.ID)
	}
	name, _ := p.Element(domain.FieldName)
	assert.Empty(t, name.Value)

	assert.ErrorIs(t, e.Submit(context.Background()), domain.ErrFormClosed)
	assert.Equal(t, 1, sub.count())
}

func TestSubmit_FailureShowsOneBanner(t *testing.T) {
	cause := errors.New("status 500")
	sub := &recordingSubmitter{err: cause}
	e, p := newEngine(t, sub)
	fill(t, e)

	for i := 0; i < 2; i++ {
		err := e.Submit(context.Background())
		require.ErrorIs(t, err, domain.ErrSubmissionFailed)
		require.ErrorIs(t, err, cause)
		assert.Equal(t, 1, p.BannerCount())
	}

	formEl, _ := p.Element(domain.ElementForm)
	assert.Equal(t, []string{domain.SubmissionBannerText}, formEl.Annotations)
	assert.False(t, formEl.Hidden)
	assert.False(t, formEl.HasClass(page.ClassFormSubmitting))

	btn, _ := p.Element(domain.ElementSubmit)
	assert.False(t, btn.Disabled)
	assert.Equal(t, "Send Message", btn.Text)

	assert.Equal(t, domain.SubmissionIdle, e.State())
	assert.ErrorIs(t, e.LastError(), cause)
	assert.Equal(t, 2, sub.count())

	e.DismissBanner()
	assert.Equal(t, 0, p.BannerCount())
}

func TestSubmit_DoubleSubmitGuard(t *testing.T) {
	sub := &recordingSubmitter{block: make(chan struct{})}
	e, p := newEngine(t, sub)
	fill(t, e)

	require.NoError(t, e.SubmitAsync(context.Background()))
	assert.Equal(t, domain.SubmissionSubmitting, e.State())

	btn, _ := p.Element(domain.ElementSubmit)
	assert.True(t, btn.Disabled)
	assert.Equal(t, form.SubmittingLabel, btn.Text)

	assert.ErrorIs(t, e.Submit(context.Background()), domain.ErrSubmissionInFlight)
	assert.ErrorIs(t, e.SubmitAsync(context.Background()), domain.ErrSubmissionInFlight)

	close(sub.block)
	e.Wait()
	assert.Equal(t, 1, sub.count())
	assert.Equal(t, domain.SubmissionSucceeded, e.State())
}

func TestSubmit_NoSubmitterFails(t *testing.T) {
	e, p := newEngine(t, nil)
	fill(t, e)
	assert.ErrorIs(t, e.Submit(context.Background()), domain.ErrSubmissionFailed)
	assert.Equal(t, 1, p.BannerCount())
}

func TestSubmit_ValueFilter(t *testing.T) {
	sub := &recordingSubmitter{}
	spec := contactSpec()
	p := page.Landing(spec)
	e := form.New(spec, p, form.WithSubmitter(sub), form.WithValueFilter(func(_, v string) string {
		return "x" + v
	}))
	fill(t, e)
	require.NoError(t, e.Submit(context.Background()))
	assert.Equal(t, "xJane Doe", sub.calls[0].Values.Get(domain.FieldName))
}

func TestHooks(t *testing.T) {
	var transitions []domain.SubmissionState
	var validated int
	sub := &recordingSubmitter{}
	spec := contactSpec()
	e := form.New(spec, page.Landing(spec), form.WithSubmitter(sub), form.WithLifecycleHooks(domain.LifecycleHooks{
		OnFieldValidated: func(context.Context, *domain.FieldEvent) { validated++ },
		OnSubmissionChange: func(_ context.Context, ev *domain.SubmissionEvent) {
			transitions = append(transitions, ev.To)
		},
	}))
	fill(t, e)
	require.NoError(t, e.Submit(context.Background()))

	assert.Equal(t, len(spec.Fields), validated)
	assert.Equal(t, []domain.SubmissionState{domain.SubmissionSubmitting, domain.SubmissionSucceeded}, transitions)
}

package page_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/page"
	"github.com/aretw0/fitlanding/pkg/ports"
)

func spec() domain.FormSpec {
	return domain.FormSpec{
		ID:     domain.ElementForm,
		Action: "https://example.com/f",
		Method: "POST",
		Fields: []domain.FieldSpec{
			{ID: domain.FieldName, Kind: domain.KindText, Label: "Name *", Required: true, Group: 1},
		},
	}
}

func TestLanding_Structure(t *testing.T) {
	p := page.Landing(spec())

	for _, id := range []string{
		domain.ElementForm, domain.FieldName, page.GroupID(domain.FieldName),
		domain.ElementSubmit, domain.ElementFormSuccess, domain.ElementQuizDialog,
		domain.ElementQuizResults, domain.ElementContact, page.StepID(domain.Step3),
		page.OptionID(domain.Step1, string(domain.GoalToning)),
	} {
		assert.True(t, p.Has(id), id)
	}

	btn, _ := p.Element(domain.ElementSubmit)
	assert.Equal(t, domain.DefaultSubmitLabel, btn.Text)
	success, _ := p.Element(domain.ElementFormSuccess)
	assert.True(t, success.Hidden)
	step1, _ := p.Element(page.StepID(domain.Step1))
	step2, _ := p.Element(page.StepID(domain.Step2))
	assert.False(t, step1.Hidden)
	assert.True(t, step2.Hidden)
	assert.Equal(t, "step-1", p.QuizProgress())
}

func TestNew_WithoutQuiz(t *testing.T) {
	p := page.New(page.WithForm(spec()))
	assert.False(t, p.Has(domain.ElementQuizDialog))

	// Views tolerate missing elements.
	p.OpenDialog()
	p.ScrollToContact()
	assert.Empty(t, p.Scrolls())
}

func TestElement_HasClassOnValue(t *testing.T) {
	assert.True(t, page.Element{Classes: []string{page.ClassShow}}.HasClass(page.ClassShow))

	p := page.Landing(spec())
	p.ShowFieldError(domain.FieldEmail, "bad")
	lookup := func(id string) page.Element {
		el, ok := p.Element(id)
		require.True(t, ok)
		return el
	}
	assert.True(t, lookup(page.GroupID(domain.FieldEmail)).HasClass(page.ClassFieldError))
	assert.False(t, lookup(page.GroupID(domain.FieldName)).HasClass(page.ClassFieldError))
}

func TestFieldError_ExactlyOneAnnotation(t *testing.T) {
	p := page.Landing(spec())
	p.ShowFieldError(domain.FieldName, "first")
	p.ShowFieldError(domain.FieldName, "second")

	el, ok := p.Element(page.GroupID(domain.FieldName))
	require.True(t, ok)
	assert.Equal(t, []string{"second"}, el.Annotations)
	assert.True(t, el.HasClass(page.ClassFieldError))

	p.ClearFieldError(domain.FieldName)
	el, _ = p.Element(page.GroupID(domain.FieldName))
	assert.Empty(t, el.Annotations)
	assert.False(t, el.HasClass(page.ClassFieldError))
}

func TestBanner_Replaced(t *testing.T) {
	p := page.Landing(spec())
	p.ShowBanner("a")
	p.ShowBanner("b")
	assert.Equal(t, 1, p.BannerCount())
	p.DismissBanner()
	assert.Equal(t, 0, p.BannerCount())
}

func TestSubmitBusy(t *testing.T) {
	p := page.Landing(spec())
	p.SetSubmitBusy(true, "Submitting...")
	btn, _ := p.Element(domain.ElementSubmit)
	assert.True(t, btn.Disabled)
	assert.Equal(t, "true", btn.Data["busy"])
	form, _ := p.Element(domain.ElementForm)
	assert.True(t, form.HasClass(page.ClassFormSubmitting))

	p.SetSubmitBusy(false, "Send")
	btn, _ = p.Element(domain.ElementSubmit)
	assert.False(t, btn.Disabled)
	assert.Equal(t, "Send", btn.Text)
}

func TestDispatch_OrderAndDetach(t *testing.T) {
	p := page.New()
	var got []string
	d1 := p.On("x", ports.EventClick, func(ev ports.Event) { got = append(got, "1:"+ev.Value) })
	p.On("x", ports.EventClick, func(ev ports.Event) { got = append(got, "2:"+ev.Value) })

	assert.True(t, p.Dispatch(ports.Event{Type: ports.EventClick, Target: "x", Value: "a"}))
	d1()
	d1()
	p.Dispatch(ports.Event{Type: ports.EventClick, Target: "x", Value: "b"})

	assert.Equal(t, []string{"1:a", "2:a", "2:b"}, got)
	assert.Equal(t, 1, p.HandlerCount())
	assert.False(t, p.Dispatch(ports.Event{Type: ports.EventFocus, Target: "x"}))
}

func TestElement_ReturnsCopy(t *testing.T) {
	p := page.Landing(spec())
	p.ShowFieldError(domain.FieldName, "err")
	el, _ := p.Element(page.GroupID(domain.FieldName))
	el.Annotations[0] = "mutated"
	el.Classes = nil

	again, _ := p.Element(page.GroupID(domain.FieldName))
	assert.Equal(t, []string{"err"}, again.Annotations)
	assert.True(t, again.HasClass(page.ClassFieldError))

	snap := p.Snapshot()
	require.NotEmpty(t, snap)
	assert.Equal(t, domain.ElementForm, snap[0].ID)
}

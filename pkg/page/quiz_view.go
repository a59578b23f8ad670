package page

import (
	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

var _ ports.QuizView = (*Page)(nil)

// OpenDialog shows the quiz dialog.
func (p *Page) OpenDialog() {
	p.mutate(domain.ElementQuizDialog, func(el *Element) {
		el.Hidden = false
		el.toggleClass(ClassActive, true)
	})
}

// CloseDialog hides the quiz dialog.
func (p *Page) CloseDialog() {
	p.mutate(domain.ElementQuizDialog, func(el *Element) {
		el.Hidden = true
		el.toggleClass(ClassActive, false)
	})
}

// ShowStep reveals the question block of step.
func (p *Page) ShowStep(step domain.Step) {
	p.mutate(StepID(step), func(el *Element) {
		el.Hidden = false
		el.toggleClass(ClassActive, true)
	})
}

// HideStep hides the question block of step.
func (p *Page) HideStep(step domain.Step) {
	p.mutate(StepID(step), func(el *Element) {
		el.Hidden = true
		el.toggleClass(ClassActive, false)
	})
}

// MarkOption toggles the selected class on one option of step.
func (p *Page) MarkOption(step domain.Step, value string, selected bool) {
	p.mutate(OptionID(step, value), func(el *Element) {
		el.toggleClass(ClassSelected, selected)
	})
}

// SetProgress records the step the progress indicator shows.
func (p *Page) SetProgress(step domain.Step) {
	p.mutate(domain.ElementQuizProgress, func(el *Element) {
		el.setData("step", step.String())
	})
}

// ShowResults reveals the results block with the recommended program.
func (p *Page) ShowResults(rec domain.Recommendation) {
	p.mutate(domain.ElementQuizResults, func(el *Element) {
		el.Hidden = false
		el.Text = rec.Program
		el.setData("description", rec.Text())
	})
}

// HideResults hides the results block and clears its text.
func (p *Page) HideResults() {
	p.mutate(domain.ElementQuizResults, func(el *Element) {
		el.Hidden = true
		el.Text = ""
		delete(el.Data, "description")
	})
}

// ScrollToContact records a scroll to the contact section.
func (p *Page) ScrollToContact() {
	p.scrollTo(domain.ElementContact)
}

// SelectedOptions returns the option values of step currently marked selected.
func (p *Page) SelectedOptions(step domain.Step) []string {
	q, ok := domain.QuestionFor(step)
	if !ok {
		return nil
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []string
	for _, opt := range q.Options {
		if el, ok := p.elements[OptionID(step, opt.Value)]; ok && el.HasClass(ClassSelected) {
			out = append(out, opt.Value)
		}
	}
	return out
}

// QuizProgress returns the step the indicator currently shows.
func (p *Page) QuizProgress() string {
	el, ok := p.Element(domain.ElementQuizProgress)
	if !ok {
		return ""
	}
	return el.Data["step"]
}

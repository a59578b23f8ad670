package page

import (
	"fmt"
	"strconv"
	"sync"

	"github.com/aretw0/fitlanding/pkg/domain"
	"github.com/aretw0/fitlanding/pkg/ports"
)

// Page is the headless page. Safe for concurrent use.
type Page struct {
	mu       sync.Mutex
	elements map[string]*Element
	order    []string

	handlers map[handlerKey][]registration
	nextReg  int

	formID  string
	scrolls []string
	focused string
}

type handlerKey struct {
	target    string
	eventType string
}

type registration struct {
	id int
	h  ports.Handler
}

// Option configures the page structure.
type Option func(*Page)

// WithForm adds the contact form, its fields, submit control, success panel
// and progress indicator.
func WithForm(spec domain.FormSpec) Option {
	return func(p *Page) {
		id := spec.ID
		if id == "" {
			id = domain.ElementForm
		}
		p.formID = id
		p.add(&Element{ID: id})
		for g := 1; g <= 3; g++ {
			el := &Element{ID: ProgressStepID(g)}
			el.setData("step", strconv.Itoa(g))
			if g == 1 {
				el.toggleClass(ClassActive, true)
			}
			p.add(el)
		}
		for _, f := range spec.Fields {
			p.add(&Element{ID: GroupID(f.ID)})
			p.add(&Element{ID: f.ID, Value: f.Value})
		}
		label := spec.SubmitLabel
		if label == "" {
			label = domain.DefaultSubmitLabel
		}
		p.add(&Element{ID: domain.ElementSubmit, Text: label})
		p.add(&Element{ID: domain.ElementFormSuccess, Hidden: true})
	}
}

// WithQuiz adds the quiz dialog anchor with its step panels, options,
// progress indicator and results panel.
func WithQuiz() Option {
	return func(p *Page) {
		p.add(&Element{ID: domain.ElementQuizDialog, Hidden: true})
		progress := &Element{ID: domain.ElementQuizProgress}
		progress.setData("step", domain.Step1.String())
		p.add(progress)
		for _, q := range domain.Questions {
			p.add(&Element{ID: StepID(q.Step), Text: q.Prompt, Hidden: q.Step != domain.Step1})
			for _, opt := range q.Options {
				el := &Element{ID: OptionID(q.Step, opt.Value), Text: opt.Label, Value: opt.Value}
				p.add(el)
			}
		}
		p.add(&Element{ID: domain.ElementQuizResults, Hidden: true})
		p.add(&Element{ID: domain.ElementQuizOpen})
		p.add(&Element{ID: domain.ElementQuizClose})
		p.add(&Element{ID: domain.ElementQuizRestart})
		p.add(&Element{ID: domain.ElementQuizAccept})
	}
}

// WithContactSection adds the scroll target used by the quiz hand-off.
func WithContactSection() Option {
	return func(p *Page) {
		p.add(&Element{ID: domain.ElementContact})
	}
}

// New builds a page from options.
func New(opts ...Option) *Page {
	p := &Page{
		elements: make(map[string]*Element),
		handlers: make(map[handlerKey][]registration),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Landing builds the full landing page around the given form.
func Landing(spec domain.FormSpec) *Page {
	return New(WithForm(spec), WithQuiz(), WithContactSection())
}

// GroupID returns the container element id of a field.
func GroupID(fieldID string) string { return fieldID + "-group" }

// StepID returns the panel id of a quiz step.
func StepID(step domain.Step) string { return step.ElementID() }

// OptionID returns the element id of one quiz option.
func OptionID(step domain.Step, value string) string { return step.OptionElementID(value) }

// ProgressStepID returns the element id of one form progress step.
func ProgressStepID(group int) string {
	return fmt.Sprintf("%s-%d", domain.ElementFormProgress, group)
}

func (p *Page) add(el *Element) {
	if _, exists := p.elements[el.ID]; !exists {
		p.order = append(p.order, el.ID)
	}
	p.elements[el.ID] = el
}

// Has reports whether the page contains an element with id.
func (p *Page) Has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.elements[id]
	return ok
}

// Element returns a copy of the element with id.
func (p *Page) Element(id string) (Element, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	el, ok := p.elements[id]
	if !ok {
		return Element{}, false
	}
	return *el.clone(), true
}

// Snapshot returns copies of every element in document order.
func (p *Page) Snapshot() []Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Element, 0, len(p.order))
	for _, id := range p.order {
		out = append(out, *p.elements[id].clone())
	}
	return out
}

// Scrolls returns the ids scrolled into view, oldest first.
func (p *Page) Scrolls() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.scrolls...)
}

// Focused returns the id of the focused control.
func (p *Page) Focused() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.focused
}

// BannerCount returns the number of submission error banners on the form.
func (p *Page) BannerCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elements[p.formID]; ok {
		return len(el.Annotations)
	}
	return 0
}

// mutate runs fn on the element with id if it exists. Missing optional
// elements are skipped silently.
func (p *Page) mutate(id string, fn func(*Element)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if el, ok := p.elements[id]; ok {
		fn(el)
	}
}

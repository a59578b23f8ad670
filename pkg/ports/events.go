package ports

// Event types dispatched by the page.
const (
	EventFocus  = "focus"
	EventBlur   = "blur"
	EventInput  = "input"
	EventChange = "change"
	EventSubmit = "submit"
	EventClick  = "click"
)

// Event is one user interaction delivered by the host.
type Event struct {
	Type   string
	Target string
	// Value carries the new control value for input events, the option value for clicks.
	Value string
	// Index carries the selected index for change events on selects.
	Index int
}

// Handler reacts to one event. It runs to completion before the dispatch returns.
type Handler func(Event)

// DetachFunc removes a registered handler.
type DetachFunc func()

// EventSource registers handlers for events on a target element.
type EventSource interface {
	On(target, eventType string, h Handler) DetachFunc
}

// Package dom describes the slice of the browser document the page behaviors
// touch. Two bindings implement it: jsdom for the wasm build and headless for
// tests and server-side tooling.
package dom

import (
	"net/url"
	"time"
)

// Event is the argument handed to element listeners.
type Event interface {
	Type() string
	PreventDefault()
}

// Handler reacts to a dispatched event.
type Handler func(Event)

// Element is a single DOM node.
type Element interface {
	ID() string
	Attr(name string) (string, bool)
	SetAttr(name, value string)
	HasClass(name string) bool
	AddClass(name string)
	RemoveClass(name string)
	// ToggleClass flips name and reports whether it is present afterwards.
	ToggleClass(name string) bool
	Text() string
	SetText(text string)
	SetStyle(property, value string)
	Style(property string) string
	AddEventListener(event string, handler Handler)
}

// Form is a form element with browser constraint validation.
type Form interface {
	Element
	CheckValidity() bool
	// Values returns the successful controls the way FormData collects them.
	Values() url.Values
	Reset()
}

// Document resolves elements by id and selector.
type Document interface {
	GetElementByID(id string) Element
	QuerySelector(selector string) Element
	QuerySelectorAll(selector string) []Element
	Form(id string) Form
}

// IntersectionEntry reports a visibility change for one observed target.
type IntersectionEntry struct {
	Target         Element
	IsIntersecting bool
	Ratio          float64
}

// IntersectionObserver watches elements for viewport intersection.
type IntersectionObserver interface {
	Observe(target Element)
	Unobserve(target Element)
}

// IntersectionCallback receives batched entries from an observer.
type IntersectionCallback func(entries []IntersectionEntry, observer IntersectionObserver)

// Host is the environment the page runs in.
type Host interface {
	NewIntersectionObserver(threshold float64, callback IntersectionCallback) IntersectionObserver
	// SetInterval runs fn every d for the lifetime of the page.
	SetInterval(d time.Duration, fn func())
	MatchMedia(query string) bool
	// Go runs fn off the event loop when the host needs it to.
	Go(fn func())
	Now() time.Time
}

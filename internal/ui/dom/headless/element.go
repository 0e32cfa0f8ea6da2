package headless

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

// Event is a synthetic event passed to listeners.
type Event struct {
	typ       string
	prevented bool
}

// Type returns the event name.
func (e *Event) Type() string { return e.typ }

// PreventDefault marks the event as handled.
func (e *Event) PreventDefault() { e.prevented = true }

// DefaultPrevented reports whether a listener called PreventDefault.
func (e *Event) DefaultPrevented() bool { return e.prevented }

// Element wraps one node of a Document.
type Element struct {
	doc       *Document
	sel       *goquery.Selection
	listeners map[string][]dom.Handler
}

func (e *Element) ID() string {
	return e.sel.AttrOr("id", "")
}

func (e *Element) Attr(name string) (string, bool) {
	return e.sel.Attr(name)
}

func (e *Element) SetAttr(name, value string) {
	e.sel.SetAttr(name, value)
}

func (e *Element) HasClass(name string) bool {
	return e.sel.HasClass(name)
}

func (e *Element) AddClass(name string) {
	e.sel.AddClass(name)
}

func (e *Element) RemoveClass(name string) {
	e.sel.RemoveClass(name)
}

func (e *Element) ToggleClass(name string) bool {
	e.sel.ToggleClass(name)
	return e.sel.HasClass(name)
}

func (e *Element) Text() string {
	return e.sel.Text()
}

func (e *Element) SetText(text string) {
	e.sel.SetText(text)
}

// SetStyle writes one declaration into the inline style attribute. An empty
// value removes the declaration.
func (e *Element) SetStyle(property, value string) {
	decls := parseStyle(e.sel.AttrOr("style", ""))
	replaced := false
	out := decls[:0]
	for _, d := range decls {
		if d.property == property {
			if value != "" && !replaced {
				out = append(out, styleDecl{property, value})
			}
			replaced = true
			continue
		}
		out = append(out, d)
	}
	if !replaced && value != "" {
		out = append(out, styleDecl{property, value})
	}
	if len(out) == 0 {
		e.sel.RemoveAttr("style")
		return
	}
	e.sel.SetAttr("style", formatStyle(out))
}

// Style reads one declaration from the inline style attribute.
func (e *Element) Style(property string) string {
	for _, d := range parseStyle(e.sel.AttrOr("style", "")) {
		if d.property == property {
			return d.value
		}
	}
	return ""
}

func (e *Element) AddEventListener(event string, handler dom.Handler) {
	e.listeners[event] = append(e.listeners[event], handler)
}

// Dispatch runs the listeners registered for event in registration order.
func (e *Element) Dispatch(event string) *Event {
	ev := &Event{typ: event}
	for _, h := range e.listeners[event] {
		h(ev)
	}
	return ev
}

// Click dispatches a click event.
func (e *Element) Click() *Event {
	return e.Dispatch("click")
}

// Listeners reports how many handlers are bound for event.
func (e *Element) Listeners(event string) int {
	return len(e.listeners[event])
}

type styleDecl struct {
	property string
	value    string
}

func parseStyle(attr string) []styleDecl {
	var decls []styleDecl
	for _, part := range strings.Split(attr, ";") {
		prop, val, ok := strings.Cut(part, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		val = strings.TrimSpace(val)
		if prop == "" {
			continue
		}
		decls = append(decls, styleDecl{prop, val})
	}
	return decls
}

func formatStyle(decls []styleDecl) string {
	parts := make([]string, 0, len(decls))
	for _, d := range decls {
		parts = append(parts, d.property+": "+d.value)
	}
	return strings.Join(parts, "; ") + ";"
}

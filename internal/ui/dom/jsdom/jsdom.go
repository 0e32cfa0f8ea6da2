//go:build js && wasm

// Package jsdom binds the dom interfaces to the browser through syscall/js.
package jsdom

import (
	"net/url"
	"syscall/js"
	"time"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

// handlers keeps every bound callback alive for the life of the page.
var handlers []js.Func

func bind(fn func(this js.Value, args []js.Value) any) js.Func {
	f := js.FuncOf(fn)
	handlers = append(handlers, f)
	return f
}

// Document wraps the global document.
type Document struct {
	v js.Value
}

// NewDocument returns the window's document.
func NewDocument() *Document {
	return &Document{v: js.Global().Get("document")}
}

func (d *Document) GetElementByID(id string) dom.Element {
	return wrap(d.v.Call("getElementById", id))
}

func (d *Document) QuerySelector(selector string) dom.Element {
	return wrap(d.v.Call("querySelector", selector))
}

func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	var out []dom.Element
	forEachNode(d.v.Call("querySelectorAll", selector), func(n js.Value) {
		out = append(out, &Element{v: n})
	})
	return out
}

func (d *Document) Form(id string) dom.Form {
	v := d.v.Call("getElementById", id)
	if !v.Truthy() || v.Get("tagName").String() != "FORM" {
		return nil
	}
	return &Form{Element: &Element{v: v}}
}

func wrap(v js.Value) dom.Element {
	if !v.Truthy() {
		return nil
	}
	return &Element{v: v}
}

func forEachNode(list js.Value, fn func(js.Value)) {
	if !list.Truthy() {
		return
	}
	length := list.Get("length").Int()
	for i := 0; i < length; i++ {
		fn(list.Index(i))
	}
}

// Element wraps an HTMLElement.
type Element struct {
	v js.Value
}

func (e *Element) ID() string {
	return e.v.Get("id").String()
}

func (e *Element) Attr(name string) (string, bool) {
	v := e.v.Call("getAttribute", name)
	if v.Type() != js.TypeString {
		return "", false
	}
	return v.String(), true
}

func (e *Element) SetAttr(name, value string) {
	e.v.Call("setAttribute", name, value)
}

func (e *Element) HasClass(name string) bool {
	return e.v.Get("classList").Call("contains", name).Bool()
}

func (e *Element) AddClass(name string) {
	e.v.Get("classList").Call("add", name)
}

func (e *Element) RemoveClass(name string) {
	e.v.Get("classList").Call("remove", name)
}

func (e *Element) ToggleClass(name string) bool {
	return e.v.Get("classList").Call("toggle", name).Bool()
}

func (e *Element) Text() string {
	return e.v.Get("textContent").String()
}

func (e *Element) SetText(text string) {
	e.v.Set("textContent", text)
}

func (e *Element) SetStyle(property, value string) {
	e.v.Get("style").Call("setProperty", property, value)
}

func (e *Element) Style(property string) string {
	return e.v.Get("style").Call("getPropertyValue", property).String()
}

func (e *Element) AddEventListener(event string, handler dom.Handler) {
	fn := bind(func(this js.Value, args []js.Value) any {
		var ev js.Value
		if len(args) > 0 {
			ev = args[0]
		}
		handler(&Event{v: ev, typ: event})
		return nil
	})
	e.v.Call("addEventListener", event, fn)
}

// Event wraps a DOM event.
type Event struct {
	v   js.Value
	typ string
}

func (e *Event) Type() string { return e.typ }

func (e *Event) PreventDefault() {
	if e.v.Truthy() {
		e.v.Call("preventDefault")
	}
}

// Form wraps an HTMLFormElement.
type Form struct {
	*Element
}

func (f *Form) CheckValidity() bool {
	return f.v.Call("checkValidity").Bool()
}

// Values reads the form through FormData. File entries are skipped.
func (f *Form) Values() url.Values {
	values := url.Values{}
	data := js.Global().Get("FormData").New(f.v)
	pairs := js.Global().Get("Array").Call("from", data)
	forEachNode(pairs, func(pair js.Value) {
		v := pair.Index(1)
		if v.Type() != js.TypeString {
			return
		}
		values.Add(pair.Index(0).String(), v.String())
	})
	return values
}

func (f *Form) Reset() {
	f.v.Call("reset")
}

// Host is the browser window.
type Host struct {
	window js.Value
}

// NewHost wraps the global window.
func NewHost() *Host {
	return &Host{window: js.Global()}
}

func (h *Host) NewIntersectionObserver(threshold float64, callback dom.IntersectionCallback) dom.IntersectionObserver {
	o := &Observer{}
	fn := bind(func(this js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		var entries []dom.IntersectionEntry
		forEachNode(args[0], func(entry js.Value) {
			entries = append(entries, dom.IntersectionEntry{
				Target:         &Element{v: entry.Get("target")},
				IsIntersecting: entry.Get("isIntersecting").Bool(),
				Ratio:          entry.Get("intersectionRatio").Float(),
			})
		})
		callback(entries, o)
		return nil
	})
	opts := map[string]any{"root": nil, "threshold": threshold}
	o.v = h.window.Get("IntersectionObserver").New(fn, opts)
	return o
}

func (h *Host) SetInterval(d time.Duration, fn func()) {
	cb := bind(func(js.Value, []js.Value) any {
		fn()
		return nil
	})
	h.window.Call("setInterval", cb, d.Milliseconds())
}

func (h *Host) MatchMedia(query string) bool {
	mm := h.window.Get("matchMedia")
	if !mm.Truthy() {
		return false
	}
	return h.window.Call("matchMedia", query).Get("matches").Bool()
}

// Go runs fn on its own goroutine; blocking calls such as fetch must not run
// inside a JS callback.
func (h *Host) Go(fn func()) {
	go fn()
}

func (h *Host) Now() time.Time {
	return time.Now()
}

// Observer wraps an IntersectionObserver.
type Observer struct {
	v js.Value
}

func (o *Observer) Observe(target dom.Element) {
	if el, ok := target.(*Element); ok {
		o.v.Call("observe", el.v)
	}
}

func (o *Observer) Unobserve(target dom.Element) {
	if el, ok := target.(*Element); ok {
		o.v.Call("unobserve", el.v)
	}
}

var (
	_ dom.Host     = (*Host)(nil)
	_ dom.Document = (*Document)(nil)
	_ dom.Form     = (*Form)(nil)
)

package headless

import (
	"strings"
	"testing"
	"time"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

const formPage = `<html><body>
<div id="box" class="a b" style="color: red">text</div>
<form id="f">
  <input name="name" required>
  <input name="email" type="email">
  <input name="site" type="url">
  <input name="code" pattern="[A-Z]{3}">
  <input name="short" maxlength="3">
  <input name="locked" value="x" disabled required>
  <input name="agree" type="checkbox" required>
  <input name="plan" type="radio" value="basic">
  <input name="plan" type="radio" value="pro" checked>
  <select name="size"><option value="s">S</option><option value="m" selected>M</option></select>
  <textarea name="note">preset</textarea>
  <input type="submit" name="go" value="Send">
</form>
<div id="not-a-form"></div>
</body></html>`

func parse(t *testing.T, page string) *Document {
	t.Helper()
	doc, err := ParseString(page)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestLookupsReturnNilInterfaces(t *testing.T) {
	doc := parse(t, formPage)
	if doc.GetElementByID("missing") != nil {
		t.Fatalf("expected nil element")
	}
	if doc.QuerySelector(".missing") != nil {
		t.Fatalf("expected nil selector match")
	}
	if doc.Form("not-a-form") != nil {
		t.Fatalf("expected nil form for a div")
	}
	if doc.GetElementByID("box") != doc.QuerySelector("#box") {
		t.Fatalf("expected the same handle for the same node")
	}
}

func TestClassesAndStyle(t *testing.T) {
	doc := parse(t, formPage)
	box := doc.GetElementByID("box")

	if !box.ToggleClass("c") || box.ToggleClass("c") {
		t.Fatalf("toggle should add then remove")
	}
	box.RemoveClass("a")
	if box.HasClass("a") || !box.HasClass("b") {
		t.Fatalf("unexpected classes")
	}

	box.SetStyle("transform", "translateX(-100%)")
	if box.Style("color") != "red" || box.Style("transform") != "translateX(-100%)" {
		t.Fatalf("unexpected style %q", mustAttr(t, box, "style"))
	}
	box.SetStyle("transform", "translateX(-200%)")
	box.SetStyle("color", "")
	if got := mustAttr(t, box, "style"); got != "transform: translateX(-200%);" {
		t.Fatalf("unexpected style attribute %q", got)
	}

	box.SetText("hello")
	html, err := doc.HTML()
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, ">hello</div>") {
		t.Fatalf("expected text in rendered html, got %s", html)
	}
}

func mustAttr(t *testing.T, el dom.Element, name string) string {
	t.Helper()
	v, ok := el.Attr(name)
	if !ok {
		t.Fatalf("attribute %s missing", name)
	}
	return v
}

func TestFormValidation(t *testing.T) {
	doc := parse(t, formPage)
	f := doc.FormElement("f")

	if f.CheckValidity() {
		t.Fatalf("required name empty should fail")
	}
	f.SetValue("name", "Ada")
	if f.CheckValidity() {
		t.Fatalf("required checkbox unchecked should fail")
	}
	f.SetChecked("agree", "on", true)
	if !f.CheckValidity() {
		t.Fatalf("expected valid form")
	}

	cases := []struct {
		field, value string
		valid        bool
	}{
		{"email", "ada@example.com", true},
		{"email", "not-an-email", false},
		{"site", "https://example.com", true},
		{"site", "example", false},
		{"code", "ABC", true},
		{"code", "ABCD", false},
		{"short", "abc", true},
		{"short", "abcd", false},
	}
	for _, tc := range cases {
		f.SetValue(tc.field, tc.value)
		if got := f.CheckValidity(); got != tc.valid {
			t.Fatalf("%s=%q: expected valid=%v", tc.field, tc.value, tc.valid)
		}
		f.SetValue(tc.field, "")
	}
}

func TestFormValuesAndReset(t *testing.T) {
	doc := parse(t, formPage)
	f := doc.FormElement("f")
	f.SetValue("name", "Ada")
	f.SetValue("note", "typed")
	f.SetChecked("agree", "on", true)

	values := f.Values()
	if values.Get("name") != "Ada" || values.Get("note") != "typed" {
		t.Fatalf("unexpected values %v", values)
	}
	if values.Get("plan") != "pro" || values.Get("size") != "m" || values.Get("agree") != "on" {
		t.Fatalf("unexpected choice values %v", values)
	}
	if _, ok := values["locked"]; ok {
		t.Fatalf("disabled control must be skipped")
	}
	if _, ok := values["go"]; ok {
		t.Fatalf("submit button must be skipped")
	}

	f.Reset()
	values = f.Values()
	if values.Get("name") != "" || values.Get("note") != "preset" {
		t.Fatalf("expected defaults after reset, got %v", values)
	}
	if _, ok := values["agree"]; ok {
		t.Fatalf("checkbox should be unchecked after reset")
	}
}

func TestDispatchRunsListenersInOrder(t *testing.T) {
	doc := parse(t, formPage)
	box := doc.Element("#box")
	var order []int
	box.AddEventListener("click", func(dom.Event) { order = append(order, 1) })
	box.AddEventListener("click", func(e dom.Event) {
		order = append(order, 2)
		e.PreventDefault()
	})
	ev := box.Click()
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("unexpected order %v", order)
	}
	if !ev.DefaultPrevented() || ev.Type() != "click" {
		t.Fatalf("unexpected event state %+v", ev)
	}
}

func TestAdvanceFiresIntervalsInOrder(t *testing.T) {
	h := NewHost(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	var fired []string
	h.SetInterval(3*time.Second, func() { fired = append(fired, "slow") })
	h.SetInterval(2*time.Second, func() { fired = append(fired, "fast") })

	h.Advance(6 * time.Second)
	// Timers due at the same instant fire in scheduling order.
	if got := strings.Join(fired, ","); got != "fast,slow,fast,slow,fast" {
		t.Fatalf("unexpected firing order %s", got)
	}
	if !h.Now().Equal(time.Date(2030, 1, 1, 0, 0, 6, 0, time.UTC)) {
		t.Fatalf("unexpected clock %s", h.Now())
	}
}

func TestObserverReportsThresholdCrossings(t *testing.T) {
	doc := parse(t, formPage)
	h := NewHost(time.Time{})
	box := doc.GetElementByID("box")
	var entries []dom.IntersectionEntry
	obs := h.NewIntersectionObserver(0.5, func(batch []dom.IntersectionEntry, _ dom.IntersectionObserver) {
		entries = append(entries, batch...)
	})

	h.Intersect(1, box)
	if len(entries) != 0 {
		t.Fatalf("unobserved target must not report")
	}
	obs.Observe(box)
	h.Intersect(0.4, box)
	h.Intersect(0.6, box)
	h.Intersect(0.9, box)
	h.Intersect(0.1, box)
	if len(entries) != 2 || !entries[0].IsIntersecting || entries[1].IsIntersecting {
		t.Fatalf("expected enter then leave, got %+v", entries)
	}
}

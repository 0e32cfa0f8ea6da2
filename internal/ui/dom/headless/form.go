package headless

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const controlSel = "input, select, textarea"

// emailPattern is the valid e-mail address production from the HTML living
// standard.
var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)

// Form is a form element with constraint validation over its controls.
// Values typed through SetValue live beside the markup, so Reset restores
// whatever the HTML declared.
type Form struct {
	*Element
}

// SetValue fills the first control named name, as a user typing would.
func (f *Form) SetValue(name, value string) bool {
	n := f.control(name)
	if n == nil {
		return false
	}
	f.doc.values[n] = value
	return true
}

// SetChecked ticks or clears a checkbox or radio by name and value.
func (f *Form) SetChecked(name, value string, checked bool) bool {
	var target *html.Node
	f.sel.Find(controlSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("name", "") == name && s.AttrOr("value", "on") == value {
			target = s.Get(0)
			return false
		}
		return true
	})
	if target == nil {
		return false
	}
	f.doc.checked[target] = checked
	return true
}

// Value returns the current value of the first control named name.
func (f *Form) Value(name string) string {
	n := f.control(name)
	if n == nil {
		return ""
	}
	return f.valueOf(f.wrapSel(n))
}

// Reset drops every user edit.
func (f *Form) Reset() {
	f.sel.Find(controlSel).Each(func(_ int, s *goquery.Selection) {
		n := s.Get(0)
		delete(f.doc.values, n)
		delete(f.doc.checked, n)
	})
}

// CheckValidity applies required, type=email, type=url, minlength, maxlength
// and pattern to every enabled control.
func (f *Form) CheckValidity() bool {
	valid := true
	f.sel.Find(controlSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !f.controlValid(s) {
			valid = false
			return false
		}
		return true
	})
	return valid
}

// Values collects the successful controls in document order.
func (f *Form) Values() url.Values {
	values := url.Values{}
	f.sel.Find(controlSel).Each(func(_ int, s *goquery.Selection) {
		name := s.AttrOr("name", "")
		if name == "" || isDisabled(s) || skipsSubmission(s) {
			return
		}
		switch controlType(s) {
		case "checkbox", "radio":
			if f.isChecked(s) {
				values.Add(name, s.AttrOr("value", "on"))
			}
			return
		}
		if goquery.NodeName(s) == "select" {
			if _, multiple := s.Attr("multiple"); multiple {
				s.Find("option[selected]").Each(func(_ int, o *goquery.Selection) {
					values.Add(name, optionValue(o))
				})
				return
			}
		}
		values.Add(name, f.valueOf(s))
	})
	return values
}

func (f *Form) controlValid(s *goquery.Selection) bool {
	if isDisabled(s) || skipsSubmission(s) {
		return true
	}
	_, required := s.Attr("required")
	switch controlType(s) {
	case "checkbox":
		return !required || f.isChecked(s)
	case "radio":
		return !required || f.groupChecked(s.AttrOr("name", ""))
	}

	value := f.valueOf(s)
	if value == "" {
		return !required
	}
	switch controlType(s) {
	case "email":
		if !emailPattern.MatchString(value) {
			return false
		}
	case "url":
		u, err := url.Parse(value)
		if err != nil || u.Scheme == "" {
			return false
		}
	}
	length := utf8.RuneCountInString(value)
	if minLen, ok := intAttr(s, "minlength"); ok && length < minLen {
		return false
	}
	if maxLen, ok := intAttr(s, "maxlength"); ok && length > maxLen {
		return false
	}
	if pattern, ok := s.Attr("pattern"); ok {
		re, err := regexp.Compile("^(?:" + pattern + ")$")
		if err == nil && !re.MatchString(value) {
			return false
		}
	}
	return true
}

func (f *Form) valueOf(s *goquery.Selection) string {
	n := s.Get(0)
	if v, ok := f.doc.values[n]; ok {
		return v
	}
	switch goquery.NodeName(s) {
	case "textarea":
		return s.Text()
	case "select":
		opt := s.Find("option[selected]").First()
		if opt.Length() == 0 {
			opt = s.Find("option").First()
		}
		if opt.Length() == 0 {
			return ""
		}
		return optionValue(opt)
	}
	return s.AttrOr("value", "")
}

func (f *Form) isChecked(s *goquery.Selection) bool {
	if v, ok := f.doc.checked[s.Get(0)]; ok {
		return v
	}
	_, checked := s.Attr("checked")
	return checked
}

func (f *Form) groupChecked(name string) bool {
	found := false
	f.sel.Find(`input[type="radio"]`).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("name", "") == name && f.isChecked(s) {
			found = true
			return false
		}
		return true
	})
	return found
}

func (f *Form) control(name string) *html.Node {
	var found *html.Node
	f.sel.Find(controlSel).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if s.AttrOr("name", "") == name {
			found = s.Get(0)
			return false
		}
		return true
	})
	return found
}

func (f *Form) wrapSel(n *html.Node) *goquery.Selection {
	return f.doc.wrap(n).sel
}

func controlType(s *goquery.Selection) string {
	if goquery.NodeName(s) != "input" {
		return goquery.NodeName(s)
	}
	t := strings.ToLower(strings.TrimSpace(s.AttrOr("type", "text")))
	if t == "" {
		return "text"
	}
	return t
}

func skipsSubmission(s *goquery.Selection) bool {
	switch controlType(s) {
	case "submit", "button", "reset", "image", "file":
		return true
	}
	return false
}

func isDisabled(s *goquery.Selection) bool {
	_, disabled := s.Attr("disabled")
	return disabled
}

func optionValue(o *goquery.Selection) string {
	if v, ok := o.Attr("value"); ok {
		return v
	}
	return strings.TrimSpace(o.Text())
}

func intAttr(s *goquery.Selection, name string) (int, bool) {
	raw, ok := s.Attr(name)
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

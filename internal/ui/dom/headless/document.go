// Package headless implements the dom interfaces over a parsed HTML tree so
// page behaviors can run without a browser. Listeners, intersection
// observers and timers are driven explicitly by the caller.
package headless

import (
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

// Document is a parsed page. Element handles are cached per node, so the
// same node always yields the same handle and keeps its listeners.
type Document struct {
	doc      *goquery.Document
	elements map[*html.Node]*Element
	values   map[*html.Node]string
	checked  map[*html.Node]bool
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &Document{
		doc:      doc,
		elements: make(map[*html.Node]*Element),
		values:   make(map[*html.Node]string),
		checked:  make(map[*html.Node]bool),
	}, nil
}

// ParseString is Parse over an in-memory page.
func ParseString(page string) (*Document, error) {
	return Parse(strings.NewReader(page))
}

// HTML renders the current tree, including every mutation made so far.
func (d *Document) HTML() (string, error) {
	return d.doc.Html()
}

// GetElementByID returns nil when no element carries id.
func (d *Document) GetElementByID(id string) dom.Element {
	if el := d.byID(id); el != nil {
		return el
	}
	return nil
}

// QuerySelector returns the first match or nil.
func (d *Document) QuerySelector(selector string) dom.Element {
	if el := d.first(selector); el != nil {
		return el
	}
	return nil
}

// QuerySelectorAll returns every match in document order.
func (d *Document) QuerySelectorAll(selector string) []dom.Element {
	var out []dom.Element
	d.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, d.wrap(s.Get(0)))
	})
	return out
}

// Form returns the form with the given id, or nil when the id is missing or
// names a non-form element.
func (d *Document) Form(id string) dom.Form {
	el := d.byID(id)
	if el == nil || goquery.NodeName(el.sel) != "form" {
		return nil
	}
	return &Form{Element: el}
}

// Element is the concrete handle behind GetElementByID and friends.
func (d *Document) Element(selector string) *Element {
	return d.first(selector)
}

// FormElement is the concrete handle behind Form.
func (d *Document) FormElement(id string) *Form {
	f, _ := d.Form(id).(*Form)
	return f
}

func (d *Document) byID(id string) *Element {
	var found *html.Node
	d.doc.Find("[id]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if v, _ := s.Attr("id"); v == id {
			found = s.Get(0)
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return d.wrap(found)
}

func (d *Document) first(selector string) *Element {
	sel := d.doc.Find(selector).First()
	if sel.Length() == 0 {
		return nil
	}
	return d.wrap(sel.Get(0))
}

func (d *Document) wrap(n *html.Node) *Element {
	if el, ok := d.elements[n]; ok {
		return el
	}
	el := &Element{
		doc:       d,
		sel:       goquery.NewDocumentFromNode(n).Selection,
		listeners: make(map[string][]dom.Handler),
	}
	d.elements[n] = el
	return el
}

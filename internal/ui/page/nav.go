package page

import "github.com/Its-donkey/landing/internal/ui/dom"

const (
	openClass        = "open"
	ariaExpandedAttr = "aria-expanded"
)

// NavController drives the mobile navigation panel.
type NavController struct {
	toggle dom.Element
	panel  dom.Element
	links  []dom.Element
}

// NewNavController binds the toggle and link listeners. A missing toggle or
// panel leaves the controller inert.
func NewNavController(toggle, panel dom.Element, links []dom.Element) *NavController {
	n := &NavController{toggle: toggle, panel: panel, links: links}
	if toggle == nil || panel == nil {
		return n
	}
	toggle.AddEventListener("click", func(dom.Event) { n.Toggle() })
	for _, link := range links {
		link.AddEventListener("click", func(dom.Event) { n.Close() })
	}
	return n
}

// Toggle flips the panel and mirrors the result into aria-expanded.
func (n *NavController) Toggle() {
	if n.toggle == nil || n.panel == nil {
		return
	}
	expanded, _ := n.toggle.Attr(ariaExpandedAttr)
	n.toggle.SetAttr(ariaExpandedAttr, boolAttr(expanded != "true"))
	n.panel.ToggleClass(openClass)
}

// Close collapses the panel if it is open.
func (n *NavController) Close() {
	if n.toggle == nil || n.panel == nil || !n.panel.HasClass(openClass) {
		return
	}
	n.panel.RemoveClass(openClass)
	n.toggle.SetAttr(ariaExpandedAttr, "false")
}

// Open reports whether the panel is currently expanded.
func (n *NavController) Open() bool {
	return n.panel != nil && n.panel.HasClass(openClass)
}

func boolAttr(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

package page

import "github.com/Its-donkey/landing/internal/ui/dom"

const (
	scrollSpyThreshold = 0.55
	activeClass        = "active"
)

// ScrollSpy highlights the nav link for the section currently in view.
type ScrollSpy struct {
	links    []dom.Element
	observer dom.IntersectionObserver
}

// NewScrollSpy observes every section and returns the running spy.
func NewScrollSpy(host dom.Host, sections, links []dom.Element) *ScrollSpy {
	s := &ScrollSpy{links: links}
	s.observer = host.NewIntersectionObserver(scrollSpyThreshold, s.handle)
	for _, section := range sections {
		s.observer.Observe(section)
	}
	return s
}

func (s *ScrollSpy) handle(entries []dom.IntersectionEntry, _ dom.IntersectionObserver) {
	for _, entry := range entries {
		if !entry.IsIntersecting {
			continue
		}
		id, _ := entry.Target.Attr("id")
		s.Activate(id)
	}
}

// Activate marks the link targeting #id and clears every other link.
func (s *ScrollSpy) Activate(id string) {
	target := "#" + id
	for _, link := range s.links {
		href, _ := link.Attr("href")
		if href == target {
			link.AddClass(activeClass)
		} else {
			link.RemoveClass(activeClass)
		}
	}
}

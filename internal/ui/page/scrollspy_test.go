package page

import (
	"testing"

	"github.com/Its-donkey/landing/internal/ui/dom"
)

func activeLinks(links []dom.Element) []string {
	var out []string
	for _, l := range links {
		if l.HasClass(activeClass) {
			href, _ := l.Attr("href")
			out = append(out, href)
		}
	}
	return out
}

func TestScrollSpyMarksSingleActiveLink(t *testing.T) {
	doc, host := newTestPage(t)
	h := ResolveHandles(doc)
	NewScrollSpy(host, h.Sections, h.NavLinks)

	observers := host.Observers()
	if len(observers) != 1 || observers[0].Threshold() != scrollSpyThreshold {
		t.Fatalf("expected one observer at %.2f, got %d", scrollSpyThreshold, len(observers))
	}

	if got := activeLinks(h.NavLinks); len(got) != 0 {
		t.Fatalf("expected no active link before scrolling, got %v", got)
	}

	services := doc.GetElementByID("services")
	host.Intersect(0.8, services)
	if got := activeLinks(h.NavLinks); len(got) != 1 || got[0] != "#services" {
		t.Fatalf("expected #services active, got %v", got)
	}

	contact := doc.GetElementByID("contact")
	host.Intersect(0.2, services)
	host.Intersect(0.6, contact)
	if got := activeLinks(h.NavLinks); len(got) != 1 || got[0] != "#contact" {
		t.Fatalf("expected #contact active, got %v", got)
	}
}

func TestScrollSpyIgnoresBelowThreshold(t *testing.T) {
	doc, host := newTestPage(t)
	h := ResolveHandles(doc)
	NewScrollSpy(host, h.Sections, h.NavLinks)

	host.Intersect(0.5, doc.GetElementByID("home"))
	if got := activeLinks(h.NavLinks); len(got) != 0 {
		t.Fatalf("expected nothing active below threshold, got %v", got)
	}
}

func TestScrollSpyBatchKeepsAtMostOneActive(t *testing.T) {
	doc, host := newTestPage(t)
	h := ResolveHandles(doc)
	NewScrollSpy(host, h.Sections, h.NavLinks)

	host.Intersect(1, h.Sections...)
	got := activeLinks(h.NavLinks)
	if len(got) != 1 {
		t.Fatalf("expected exactly one active link, got %v", got)
	}
	if got[0] != "#contact" {
		t.Fatalf("expected the last entry to win, got %v", got)
	}
}

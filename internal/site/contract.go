// Package site serves the marketing page and checks that its markup carries
// the hooks the page behaviors bind to.
package site

import (
	"fmt"
	"io"
	"strings"

	"github.com/Its-donkey/landing/internal/ui/dom"
	"github.com/Its-donkey/landing/internal/ui/dom/headless"
	"github.com/Its-donkey/landing/internal/ui/page"
)

// Finding records how many nodes a contract selector matched.
type Finding struct {
	Name     string
	Selector string
	Count    int
	Required bool
}

// Missing reports a required selector that matched nothing.
func (f Finding) Missing() bool {
	return f.Required && f.Count == 0
}

// Report is the outcome of a contract check.
type Report struct {
	Findings []Finding
	// DanglingLinks are nav link targets with no matching section.
	DanglingLinks []string
	// FormStatusMissing is set when a contact form exists without a status
	// element to report into.
	FormStatusMissing bool
}

// OK reports whether the page satisfies the contract.
func (r Report) OK() bool {
	for _, f := range r.Findings {
		if f.Missing() {
			return false
		}
	}
	return len(r.DanglingLinks) == 0 && !r.FormStatusMissing
}

// WriteTo prints a human-readable summary.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	for _, f := range r.Findings {
		mark := "ok"
		switch {
		case f.Missing():
			mark = "MISSING"
		case f.Count == 0:
			mark = "absent"
		}
		fmt.Fprintf(&b, "%-8s %-16s %-34s %d\n", mark, f.Name, f.Selector, f.Count)
	}
	for _, href := range r.DanglingLinks {
		fmt.Fprintf(&b, "DANGLING nav link %s has no matching section\n", href)
	}
	if r.FormStatusMissing {
		fmt.Fprintf(&b, "MISSING  #%s next to #%s\n", page.FormStatusID, page.ContactFormID)
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// CheckContract parses r and verifies the page hooks.
func CheckContract(r io.Reader) (Report, error) {
	doc, err := headless.Parse(r)
	if err != nil {
		return Report{}, err
	}
	return Check(doc), nil
}

// Check verifies the hooks in an already parsed document.
func Check(doc dom.Document) Report {
	h := page.ResolveHandles(doc)
	report := Report{
		Findings: []Finding{
			{Name: "year", Selector: "#" + page.YearID, Count: count(h.Year)},
			{Name: "nav toggle", Selector: page.NavToggleSel, Count: count(h.NavToggle)},
			{Name: "nav panel", Selector: "#" + page.NavPanelID, Count: count(h.NavPanel)},
			{Name: "panel links", Selector: page.PanelLinksSel, Count: len(h.PanelLinks)},
			{Name: "nav links", Selector: page.NavLinksSel, Count: len(h.NavLinks), Required: true},
			{Name: "sections", Selector: page.SectionsSel, Count: len(h.Sections), Required: true},
			{Name: "reveal", Selector: page.RevealSel, Count: len(h.Reveal)},
			{Name: "carousel track", Selector: page.CarouselTrack, Count: count(h.CarouselTrack), Required: true},
			{Name: "carousel slides", Selector: page.CarouselSlides, Count: len(h.CarouselSlides), Required: true},
			{Name: "contact form", Selector: "form#" + page.ContactFormID, Count: countForm(h.Form)},
			{Name: "form status", Selector: "#" + page.FormStatusID, Count: count(h.FormStatus)},
		},
		FormStatusMissing: h.Form != nil && h.FormStatus == nil,
	}

	ids := make(map[string]bool, len(h.Sections))
	for _, s := range h.Sections {
		ids[s.ID()] = true
	}
	for _, link := range h.NavLinks {
		href, _ := link.Attr("href")
		if !strings.HasPrefix(href, "#") {
			continue
		}
		if !ids[strings.TrimPrefix(href, "#")] {
			report.DanglingLinks = append(report.DanglingLinks, href)
		}
	}
	return report
}

func count(el dom.Element) int {
	if el == nil {
		return 0
	}
	return 1
}

func countForm(f dom.Form) int {
	if f == nil {
		return 0
	}
	return 1
}

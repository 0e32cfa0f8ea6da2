// Package page wires the marketing page behaviors to a document. Each
// behavior is built from the handles it needs and none of them share state.
package page

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Its-donkey/landing/internal/ui/dom"
	"github.com/Its-donkey/landing/logging"
)

// Selectors the page markup is expected to provide.
const (
	YearID         = "year"
	NavToggleSel   = ".nav-toggle"
	NavPanelID     = "primary-nav"
	PanelLinksSel  = ".primary-nav a"
	NavLinksSel    = ".nav-link"
	SectionsSel    = "main section[id]"
	RevealSel      = ".reveal"
	CarouselRoot   = ".hero-carousel"
	CarouselTrack  = ".hero-carousel .carousel-track"
	CarouselSlides = ".hero-carousel .carousel-slide"
	ContactFormID  = "contact-form"
	FormStatusID   = "form-status"
)

// Attributes the site host stamps onto the page at serve time.
const (
	IntervalAttr = "data-interval-ms"
	TimeoutAttr  = "data-timeout-ms"
)

// DefaultEndpoint is used when neither the form nor the config names one.
const DefaultEndpoint = "https://formspree.io/f/yourFormId"

// DefaultRelayTimeout bounds a single form relay request.
const DefaultRelayTimeout = 10 * time.Second

// Handles are the document nodes the behaviors operate on. Nil entries and
// empty lists are tolerated.
type Handles struct {
	Year           dom.Element
	NavToggle      dom.Element
	NavPanel       dom.Element
	PanelLinks     []dom.Element
	NavLinks       []dom.Element
	Sections       []dom.Element
	Reveal         []dom.Element
	CarouselTrack  dom.Element
	CarouselSlides []dom.Element
	Form           dom.Form
	FormStatus     dom.Element
}

// ResolveHandles looks every handle up in doc.
func ResolveHandles(doc dom.Document) Handles {
	return Handles{
		Year:           doc.GetElementByID(YearID),
		NavToggle:      doc.QuerySelector(NavToggleSel),
		NavPanel:       doc.GetElementByID(NavPanelID),
		PanelLinks:     doc.QuerySelectorAll(PanelLinksSel),
		NavLinks:       doc.QuerySelectorAll(NavLinksSel),
		Sections:       doc.QuerySelectorAll(SectionsSel),
		Reveal:         doc.QuerySelectorAll(RevealSel),
		CarouselTrack:  doc.QuerySelector(CarouselTrack),
		CarouselSlides: doc.QuerySelectorAll(CarouselSlides),
		Form:           doc.Form(ContactFormID),
		FormStatus:     doc.GetElementByID(FormStatusID),
	}
}

// Options tune the behaviors. The zero value is usable.
type Options struct {
	Endpoint         string
	CarouselInterval time.Duration
	RelayTimeout     time.Duration
	Client           Doer
	Logger           *logging.Logger
}

// Controller holds the behaviors bound by Init.
type Controller struct {
	Nav      *NavController
	Spy      *ScrollSpy
	Reveal   *RevealAnimator
	Carousel *HeroCarousel
	Contact  *ContactForm
}

// Init binds every behavior once. Call it a single time after the document
// is ready.
func Init(host dom.Host, h Handles, opts Options) *Controller {
	logger := opts.Logger
	if logger == nil {
		logger = logging.New("page", logging.INFO)
	}
	client := opts.Client
	if client == nil {
		timeout := opts.RelayTimeout
		if timeout <= 0 {
			timeout = DefaultRelayTimeout
		}
		client = &http.Client{Timeout: timeout}
	}
	fallback := opts.Endpoint
	if fallback == "" {
		fallback = DefaultEndpoint
	}

	StampYear(host, h.Year)
	c := &Controller{
		Nav:      NewNavController(h.NavToggle, h.NavPanel, h.PanelLinks),
		Spy:      NewScrollSpy(host, h.Sections, h.NavLinks),
		Reveal:   NewRevealAnimator(host, h.Reveal),
		Carousel: NewHeroCarousel(host, h.CarouselTrack, h.CarouselSlides, opts.CarouselInterval),
		Contact:  NewContactForm(host, h.Form, h.FormStatus, ResolveEndpoint(h.Form, fallback), client, logger),
	}
	logger.Debug("page", "behaviors bound", map[string]any{
		"sections": len(h.Sections),
		"reveal":   len(h.Reveal),
		"slides":   len(h.CarouselSlides),
		"form":     h.Form != nil,
	})
	return c
}

// MillisAttr reads a positive millisecond count from el's name attribute.
// Anything else yields zero.
func MillisAttr(el dom.Element, name string) time.Duration {
	if el == nil {
		return 0
	}
	raw, ok := el.Attr(name)
	if !ok {
		return 0
	}
	ms, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || ms <= 0 {
		return 0
	}
	return time.Duration(ms) * time.Millisecond
}

package site

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/landing/internal/ui/page"
)

// Settings are stamped into the page before it is served so the wasm bundle
// picks them up from the DOM.
type Settings struct {
	FormEndpoint     string
	CarouselInterval time.Duration
	RelayTimeout     time.Duration
}

// Inject rewrites the page markup with s.
func Inject(r io.Reader, s Settings) ([]byte, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse page: %w", err)
	}

	form := doc.Find("form#" + page.ContactFormID)
	if s.FormEndpoint != "" {
		form.SetAttr("action", s.FormEndpoint)
		form.SetAttr("method", "POST")
	}
	if s.RelayTimeout > 0 {
		form.SetAttr(page.TimeoutAttr, strconv.FormatInt(s.RelayTimeout.Milliseconds(), 10))
	}
	if s.CarouselInterval > 0 {
		doc.Find(page.CarouselRoot).SetAttr(page.IntervalAttr, strconv.FormatInt(s.CarouselInterval.Milliseconds(), 10))
	}

	var buf bytes.Buffer
	if err := goquery.Render(&buf, doc.Selection); err != nil {
		return nil, fmt.Errorf("render page: %w", err)
	}
	return buf.Bytes(), nil
}

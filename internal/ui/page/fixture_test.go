package page

import (
	"testing"
	"time"

	"github.com/Its-donkey/landing/internal/ui/dom/headless"
)

const testPage = `<!doctype html>
<html>
<body>
<header>
  <button class="nav-toggle" aria-expanded="false" aria-controls="primary-nav">Menu</button>
  <nav id="primary-nav" class="primary-nav">
    <a class="nav-link" href="#home">Home</a>
    <a class="nav-link" href="#services">Services</a>
    <a class="nav-link" href="#contact">Contact</a>
  </nav>
</header>
<main>
  <section id="home" class="hero hero-carousel">
    <div class="carousel-track">
      <div class="carousel-slide"></div>
      <div class="carousel-slide"></div>
      <div class="carousel-slide"></div>
    </div>
  </section>
  <section id="services">
    <div class="card reveal">One</div>
    <div class="card reveal">Two</div>
  </section>
  <section id="contact">
    <form id="contact-form">
      <input name="name" required>
      <input name="email" type="email" required>
      <textarea name="message" required minlength="5"></textarea>
      <input name="subscribe" type="checkbox" value="yes">
      <button type="submit">Send</button>
    </form>
    <p id="form-status" aria-live="polite"></p>
  </section>
</main>
<footer>&copy; <span id="year"></span></footer>
</body>
</html>`

var testClock = time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)

func newTestPage(t *testing.T) (*headless.Document, *headless.Host) {
	t.Helper()
	doc, err := headless.ParseString(testPage)
	if err != nil {
		t.Fatalf("parse page: %v", err)
	}
	return doc, headless.NewHost(testClock)
}

func fillContactForm(t *testing.T, doc *headless.Document) *headless.Form {
	t.Helper()
	form := doc.FormElement(ContactFormID)
	if form == nil {
		t.Fatalf("contact form missing")
	}
	form.SetValue("name", "Ada")
	form.SetValue("email", "ada@example.com")
	form.SetValue("message", "Hello there")
	return form
}

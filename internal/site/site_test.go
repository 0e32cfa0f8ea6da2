package site

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Its-donkey/landing/internal/config"
	"github.com/Its-donkey/landing/logging"
)

const goodPage = `<!doctype html><html><body>
<button class="nav-toggle" aria-expanded="false">Menu</button>
<nav id="primary-nav" class="primary-nav">
  <a class="nav-link" href="#home">Home</a>
  <a class="nav-link" href="#contact">Contact</a>
</nav>
<main>
  <section id="home" class="hero-carousel">
    <div class="carousel-track"><div class="carousel-slide"></div><div class="carousel-slide"></div></div>
  </section>
  <section id="contact">
    <form id="contact-form"><input name="email" type="email" required></form>
    <p id="form-status"></p>
  </section>
</main>
<footer><span id="year"></span></footer>
</body></html>`

func TestCheckContractPasses(t *testing.T) {
	report, err := CheckContract(strings.NewReader(goodPage))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if !report.OK() {
		var buf bytes.Buffer
		_, _ = report.WriteTo(&buf)
		t.Fatalf("expected page to pass:\n%s", buf.String())
	}
}

func TestCheckContractFlagsProblems(t *testing.T) {
	page := strings.NewReplacer(
		`<div class="carousel-track">`, `<div class="track">`,
		`<p id="form-status"></p>`, ``,
		`href="#contact"`, `href="#pricing"`,
	).Replace(goodPage)

	report, err := CheckContract(strings.NewReader(page))
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	if report.OK() {
		t.Fatalf("expected contract failure")
	}
	if len(report.DanglingLinks) != 1 || report.DanglingLinks[0] != "#pricing" {
		t.Fatalf("expected dangling #pricing, got %v", report.DanglingLinks)
	}
	if !report.FormStatusMissing {
		t.Fatalf("expected missing form status flagged")
	}

	var buf bytes.Buffer
	if _, err := report.WriteTo(&buf); err != nil {
		t.Fatalf("write report: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "MISSING  carousel track") || !strings.Contains(out, "DANGLING nav link #pricing") {
		t.Fatalf("unexpected report:\n%s", out)
	}
}

func TestInjectStampsSettings(t *testing.T) {
	out, err := Inject(strings.NewReader(goodPage), Settings{
		FormEndpoint:     "https://formspree.io/f/abc",
		CarouselInterval: 5 * time.Second,
		RelayTimeout:     3 * time.Second,
	})
	if err != nil {
		t.Fatalf("inject: %v", err)
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	form := doc.Find("#contact-form")
	if form.AttrOr("action", "") != "https://formspree.io/f/abc" || form.AttrOr("method", "") != "POST" {
		t.Fatalf("form not rewritten: %s", out)
	}
	if form.AttrOr("data-timeout-ms", "") != "3000" {
		t.Fatalf("expected timeout stamped, got %q", form.AttrOr("data-timeout-ms", ""))
	}
	if got := doc.Find(".hero-carousel").AttrOr("data-interval-ms", ""); got != "5000" {
		t.Fatalf("expected interval stamped, got %q", got)
	}
	if !bytes.HasPrefix(bytes.ToLower(out), []byte("<!doctype html>")) {
		t.Fatalf("expected doctype preserved")
	}
}

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "index.html"), []byte(goodPage), 0o644); err != nil {
		t.Fatalf("write index: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "main.wasm"), []byte("\x00asm"), 0o644); err != nil {
		t.Fatalf("write wasm: %v", err)
	}
	cfg := config.Default()
	cfg.Dir = dir
	cfg.FormEndpoint = "https://formspree.io/f/served"

	var logs bytes.Buffer
	srv, err := NewServer(cfg, logging.New("site", logging.INFO, &logs))
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	return srv, &logs
}

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec.Result()
}

func TestServerServesInjectedIndex(t *testing.T) {
	srv, logs := newTestServer(t)
	h := srv.Handler()

	for _, path := range []string{"/", "/index.html"} {
		resp := get(t, h, path)
		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("%s: status %d", path, resp.StatusCode)
		}
		if !strings.Contains(string(body), `action="https://formspree.io/f/served"`) {
			t.Fatalf("%s: endpoint not injected: %s", path, body)
		}
	}
	if !strings.Contains(logs.String(), `"category":"http"`) {
		t.Fatalf("expected request logged, got %s", logs.String())
	}
}

func TestServerServesWasmAndHealth(t *testing.T) {
	srv, _ := newTestServer(t)
	h := srv.Handler()

	resp := get(t, h, "/main.wasm")
	if resp.StatusCode != http.StatusOK || resp.Header.Get("Content-Type") != "application/wasm" {
		t.Fatalf("unexpected wasm response %d %q", resp.StatusCode, resp.Header.Get("Content-Type"))
	}
	if resp := get(t, h, "/healthz"); resp.StatusCode != http.StatusNoContent {
		t.Fatalf("unexpected health status %d", resp.StatusCode)
	}
	if resp := get(t, h, "/nope.css"); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestNewServerRejectsBadDir(t *testing.T) {
	cfg := config.Default()
	cfg.Dir = filepath.Join(t.TempDir(), "missing")
	if _, err := NewServer(cfg, nil); err == nil {
		t.Fatalf("expected error for missing dir")
	}
}

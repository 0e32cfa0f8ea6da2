package page

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/Its-donkey/landing/internal/ui/dom"
	"github.com/Its-donkey/landing/logging"
)

// Status texts shown beneath the contact form.
const (
	StatusInvalid      = "Please fill out the form correctly."
	StatusSent         = "Thanks — your message has been sent."
	StatusFailed       = "There was a problem sending your message."
	StatusNetworkError = "Network error. Please try again later."
)

const maxRelayResponseBody = 64 * 1024

// Outcome classifies a submit attempt.
type Outcome int

const (
	OutcomeInvalid Outcome = iota
	OutcomeSent
	OutcomeRejected
	OutcomeNetworkError
)

func (o Outcome) String() string {
	switch o {
	case OutcomeInvalid:
		return "invalid"
	case OutcomeSent:
		return "sent"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Doer sends HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// ContactForm relays the contact form to a hosted form endpoint.
type ContactForm struct {
	host     dom.Host
	form     dom.Form
	status   dom.Element
	endpoint string
	client   Doer
	logger   *logging.Logger
}

// NewContactForm binds the submit listener. A nil form leaves it inert.
func NewContactForm(host dom.Host, form dom.Form, status dom.Element, endpoint string, client Doer, logger *logging.Logger) *ContactForm {
	if client == nil {
		client = &http.Client{Timeout: DefaultRelayTimeout}
	}
	if logger == nil {
		logger = logging.New("contact", logging.INFO, io.Discard)
	}
	c := &ContactForm{
		host:     host,
		form:     form,
		status:   status,
		endpoint: endpoint,
		client:   client,
		logger:   logger,
	}
	if form != nil {
		form.AddEventListener("submit", c.onSubmit)
	}
	return c
}

// Endpoint returns the URL submissions are posted to.
func (c *ContactForm) Endpoint() string {
	return c.endpoint
}

func (c *ContactForm) onSubmit(e dom.Event) {
	e.PreventDefault()
	values, ok := c.prepare()
	if !ok {
		return
	}
	c.host.Go(func() {
		c.send(context.Background(), values)
	})
}

// Submit runs one full attempt synchronously and reports how it ended.
func (c *ContactForm) Submit(ctx context.Context) Outcome {
	values, ok := c.prepare()
	if !ok {
		return OutcomeInvalid
	}
	return c.send(ctx, values)
}

func (c *ContactForm) prepare() (url.Values, bool) {
	if c.form == nil {
		return nil, false
	}
	c.setStatus("")
	if !c.form.CheckValidity() {
		c.setStatus(StatusInvalid)
		return nil, false
	}
	return c.form.Values(), true
}

func (c *ContactForm) send(ctx context.Context, values url.Values) Outcome {
	submissionID := uuid.New().String()
	fields := map[string]any{
		"endpoint":      c.endpoint,
		"submission_id": submissionID,
	}

	req, err := newRelayRequest(ctx, c.endpoint, values)
	if err != nil {
		c.logger.Error("contact", "build relay request", err, fields)
		c.setStatus(StatusNetworkError)
		return OutcomeNetworkError
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.logger.Error("contact", "Form submit error", err, fields)
		c.setStatus(StatusNetworkError)
		return OutcomeNetworkError
	}
	defer resp.Body.Close()

	fields["status"] = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		c.logger.Info("contact", "form submitted", fields)
		c.setStatus(StatusSent)
		c.form.Reset()
		return OutcomeSent
	}

	message := relayErrorMessage(resp.Body)
	c.logger.Warn("contact", "form rejected by relay", fields)
	if message == "" {
		message = StatusFailed
	}
	c.setStatus(message)
	return OutcomeRejected
}

func (c *ContactForm) setStatus(text string) {
	if c.status == nil {
		return
	}
	c.status.SetText(text)
}

// newRelayRequest encodes values as multipart/form-data, matching what a
// browser sends for a FormData body.
func newRelayRequest(ctx context.Context, endpoint string, values url.Values) (*http.Request, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		for _, v := range values[k] {
			if err := mw.WriteField(k, v); err != nil {
				return nil, fmt.Errorf("write field %q: %w", k, err)
			}
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// relayErrorMessage pulls the "error" string out of a relay response body.
// Anything unreadable yields "".
func relayErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxRelayResponseBody))
	if err != nil || len(bytes.TrimSpace(data)) == 0 {
		return ""
	}
	var payload struct {
		Error any `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err != nil {
		return ""
	}
	msg, ok := payload.Error.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(msg)
}

// ResolveEndpoint prefers the form's own absolute action URL and falls back to
// the configured endpoint.
func ResolveEndpoint(form dom.Form, fallback string) string {
	if form == nil {
		return fallback
	}
	action, ok := form.Attr("action")
	if !ok {
		return fallback
	}
	u, err := url.Parse(strings.TrimSpace(action))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fallback
	}
	return u.String()
}

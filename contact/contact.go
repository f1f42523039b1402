// Package contact forwards contact-form submissions to an external form
// endpoint and models the idle/success/error outcome shown next to the
// form.
package contact

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// RevertAfter is how long a success or error outcome stays visible before
// the form returns to idle.
const RevertAfter = 3 * time.Second

// Field names posted by the form.
const (
	FieldFormName = "form-name"
	FieldHoneypot = "bot-field"
	FieldName     = "name"
	FieldEmail    = "email"
	FieldSubject  = "subject"
	FieldMessage  = "message"

	FormName = "contact"
)

// Status is the observable outcome of a submission.
type Status int

const (
	Idle Status = iota
	Success
	Error
)

func (s Status) String() string {
	switch s {
	case Success:
		return "success"
	case Error:
		return "error"
	default:
		return "idle"
	}
}

// ParseStatus is the inverse of String. Unknown values are Idle.
func ParseStatus(s string) Status {
	switch s {
	case "success":
		return Success
	case "error":
		return Error
	default:
		return Idle
	}
}

// Message is the text shown for s.
func (s Status) Message() string {
	switch s {
	case Success:
		return "Message sent successfully!"
	case Error:
		return "Something went wrong. Please try again."
	default:
		return ""
	}
}

// Effective returns the status to display at now for an outcome recorded at
// since.
func Effective(s Status, since, now time.Time) Status {
	if s == Idle || !now.Before(since.Add(RevertAfter)) {
		return Idle
	}
	return s
}

// Outcome is a status with the time it was recorded.
type Outcome struct {
	Status Status
	At     time.Time
}

// Current is Effective applied to o.
func (o Outcome) Current(now time.Time) Status {
	return Effective(o.Status, o.At, now)
}

// Client posts submissions to Endpoint.
type Client struct {
	Endpoint string
	HTTP     *http.Client
	Log      *zap.Logger
}

// NewClient returns a client for endpoint with a bounded timeout.
func NewClient(endpoint string, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		Endpoint: endpoint,
		HTTP:     &http.Client{Timeout: 10 * time.Second},
		Log:      log,
	}
}

// Clean keeps only the known form fields and trims their values.
func Clean(form url.Values) url.Values {
	out := url.Values{}
	out.Set(FieldFormName, FormName)
	for _, k := range []string{FieldName, FieldEmail, FieldSubject, FieldMessage} {
		if v := strings.TrimSpace(form.Get(k)); v != "" {
			out.Set(k, v)
		}
	}
	return out
}

// Validate reports the first missing required field.
func Validate(form url.Values) error {
	for _, k := range []string{FieldName, FieldEmail, FieldMessage} {
		if strings.TrimSpace(form.Get(k)) == "" {
			return fmt.Errorf("contact: %s is required", k)
		}
	}
	if !strings.Contains(form.Get(FieldEmail), "@") {
		return fmt.Errorf("contact: email is invalid")
	}
	return nil
}

// Submit forwards form as a URL-encoded POST and reports the outcome.
// Submissions that fill the honeypot field are reported as successful and
// dropped. Every failure maps to Error; nothing is returned to the caller.
func (c *Client) Submit(ctx context.Context, form url.Values) Status {
	if form.Get(FieldHoneypot) != "" {
		c.Log.Info("contact honeypot triggered")
		return Success
	}
	if err := Validate(form); err != nil {
		c.Log.Debug("contact rejected", zap.Error(err))
		return Error
	}
	if c.Endpoint == "" {
		c.Log.Warn("contact endpoint not configured")
		return Error
	}

	body := Clean(form).Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, strings.NewReader(body))
	if err != nil {
		c.Log.Error("contact request", zap.Error(err))
		return Error
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := c.HTTP
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		c.Log.Error("contact submit", zap.Error(err))
		return Error
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Warn("contact endpoint rejected submission", zap.Int("status", resp.StatusCode))
		return Error
	}
	return Success
}

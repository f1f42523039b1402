// Package markup holds the small HTML writing helpers shared by the block
// resolver, the layout renderers and the page views.
package markup

import (
	"context"
	"html"
	"io"
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// Writer accumulates the first write error so callers can emit a long
// sequence of fragments and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes s without escaping.
func (w *Writer) Raw(parts ...string) *Writer {
	for _, s := range parts {
		if w.err != nil {
			return w
		}
		_, w.err = io.WriteString(w.w, s)
	}
	return w
}

// Text writes s HTML-escaped.
func (w *Writer) Text(s string) *Writer {
	return w.Raw(html.EscapeString(s))
}

// Attr writes ` name="value"` with the value escaped.
func (w *Writer) Attr(name, value string) *Writer {
	return w.Raw(" ", name, `="`, html.EscapeString(value), `"`)
}

// Component renders c into the underlying writer. Nil components are
// skipped.
func (w *Writer) Component(ctx context.Context, c templ.Component) *Writer {
	if w.err != nil || c == nil {
		return w
	}
	w.err = c.Render(ctx, w.w)
	return w
}

// Err returns the first error encountered.
func (w *Writer) Err() error {
	return w.err
}

// Class joins non-empty class names with a single space.
func Class(names ...string) string {
	var kept []string
	for _, n := range names {
		if n = strings.TrimSpace(n); n != "" {
			kept = append(kept, n)
		}
	}
	return strings.Join(kept, " ")
}

// SafeURL validates a URL for use in an HTML attribute. Relative paths,
// fragments and http(s)/mailto/tel URLs pass; everything else yields "".
// The result is not escaped, use Writer.Attr to emit it.
func SafeURL(raw string) string {
	val := strings.TrimSpace(raw)
	if val == "" {
		return ""
	}
	if strings.HasPrefix(val, "//") {
		return ""
	}
	if strings.HasPrefix(val, "/") || strings.HasPrefix(val, "#") {
		return val
	}
	parsed, err := url.Parse(val)
	if err != nil || parsed.Scheme == "" {
		return ""
	}
	switch strings.ToLower(parsed.Scheme) {
	case "http", "https", "mailto", "tel":
		return val
	default:
		return ""
	}
}

package storyframe

import (
	"bytes"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
)

// Render writes a templ component as an HTTP 200 HTML response.
func Render(c echo.Context, cmp templ.Component) error {
	return RenderStatus(c, http.StatusOK, cmp)
}

// RenderStatus renders cmp into a buffer and writes it with code. Rendering
// fully before writing means a failing component still yields a clean error
// page instead of a truncated response.
func RenderStatus(c echo.Context, code int, cmp templ.Component) error {
	var buf bytes.Buffer
	if err := cmp.Render(c.Request().Context(), &buf); err != nil {
		return err
	}
	return c.HTMLBlob(code, buf.Bytes())
}

// wantsJSON reports whether the client submitted through the embedded script
// and expects a JSON outcome instead of a redirect.
func wantsJSON(c echo.Context) bool {
	h := c.Request().Header
	return h.Get("X-Requested-With") == "XMLHttpRequest" ||
		strings.Contains(h.Get(echo.HeaderAccept), echo.MIMEApplicationJSON)
}

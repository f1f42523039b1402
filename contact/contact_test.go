package contact

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func validForm() url.Values {
	return url.Values{
		FieldName:    {"Ana"},
		FieldEmail:   {"ana@example.com"},
		FieldSubject: {" Fleet "},
		FieldMessage: {"Hello"},
	}
}

func TestSubmitSuccess(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		r.ParseForm()
		got = r.PostForm
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))
	assert.Equal(t, Success, c.Submit(context.Background(), validForm()))
	assert.Equal(t, FormName, got.Get(FieldFormName))
	assert.Equal(t, "Fleet", got.Get(FieldSubject))
}

func TestSubmitEndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, zaptest.NewLogger(t))
	assert.Equal(t, Error, c.Submit(context.Background(), validForm()))
}

func TestSubmitUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	addr := srv.URL
	srv.Close()

	c := NewClient(addr, zaptest.NewLogger(t))
	assert.Equal(t, Error, c.Submit(context.Background(), validForm()))
}

func TestSubmitHoneypot(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))
	defer srv.Close()

	form := validForm()
	form.Set(FieldHoneypot, "spam")
	c := NewClient(srv.URL, nil)
	assert.Equal(t, Success, c.Submit(context.Background(), form))
	assert.False(t, called)
}

func TestSubmitInvalid(t *testing.T) {
	c := NewClient("http://127.0.0.1:0", nil)
	form := validForm()
	form.Set(FieldEmail, "not-an-email")
	assert.Equal(t, Error, c.Submit(context.Background(), form))
	assert.Equal(t, Error, c.Submit(context.Background(), url.Values{}))
}

func TestEffectiveReverts(t *testing.T) {
	at := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	tests := []struct {
		status Status
		after  time.Duration
		want   Status
	}{
		{Success, 0, Success},
		{Success, 2999 * time.Millisecond, Success},
		{Success, 3 * time.Second, Idle},
		{Error, time.Second, Error},
		{Error, time.Minute, Idle},
		{Idle, 0, Idle},
	}
	for _, tt := range tests {
		if got := Effective(tt.status, at, at.Add(tt.after)); got != tt.want {
			t.Errorf("Effective(%v, +%v) = %v, want %v", tt.status, tt.after, got, tt.want)
		}
	}
	assert.Equal(t, Success, Outcome{Status: Success, At: at}.Current(at.Add(time.Second)))
}

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range []Status{Idle, Success, Error} {
		assert.Equal(t, s, ParseStatus(s.String()))
	}
	assert.Equal(t, Idle, ParseStatus("weird"))
	assert.Empty(t, Idle.Message())
}

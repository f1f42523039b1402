package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"
)

func newTestHTTP(t *testing.T, handler http.HandlerFunc) *HTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	h, err := NewHTTP(HTTPConfig{
		ProjectID: "proj",
		Dataset:   "production",
		Host:      srv.URL,
		Token:     "secret",
		Log:       zaptest.NewLogger(t),
	})
	require.NoError(t, err)
	return h
}

func TestHTTPDocument(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v2024-01-01/data/query/production", r.URL.Path)
		assert.Equal(t, `"capacity-cliffs"`, r.URL.Query().Get("$slug"))
		assert.Contains(t, r.URL.Query().Get("query"), "slug.current == $slug")
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ms":3,"result":{"_id":"p1","title":"Capacity cliffs"}}`))
	})

	data, err := h.Document(context.Background(), "capacity-cliffs")
	require.NoError(t, err)
	assert.Equal(t, "p1", gjson.GetBytes(data, "_id").String())
}

func TestHTTPDocumentNotFound(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ms":1,"result":null}`))
	})
	_, err := h.Document(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestHTTPErrorStatus(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":{"description":"param $slug referenced, but not provided"}}`))
	})
	_, err := h.List(context.Background(), 6)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "param $slug referenced")
}

func TestHTTPListLimit(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query().Get("query")
		assert.Contains(t, q, "order(publishedAt desc)[0...6]")
		assert.Empty(t, r.URL.Query().Get("$slug"))
		w.Write([]byte(`{"result":[{"_id":"a"},{"_id":"b"}]}`))
	})
	data, err := h.List(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(data, "#").Int())
}

func TestHTTPInvalidJSON(t *testing.T) {
	h := newTestHTTP(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>`))
	})
	_, err := h.List(context.Background(), 0)
	assert.Error(t, err)
}

func TestNewHTTPRequiresProject(t *testing.T) {
	_, err := NewHTTP(HTTPConfig{Dataset: "production"})
	assert.Error(t, err)
}

func TestListQueryUnbounded(t *testing.T) {
	assert.NotContains(t, listQuery(0), "[0...")
	assert.True(t, strings.HasSuffix(strings.TrimSpace(listQuery(3)), "}"))
}

func fixtures() fstest.MapFS {
	return fstest.MapFS{
		"old.json": {Data: []byte(`{"_id":"1","title":"Old","publishedAt":"2024-01-01T00:00:00Z","body":[{"_type":"block","children":[{"text":"first words"}]}]}`)},
		"new.json": {Data: []byte(`{"_id":"2","title":"New","publishedAt":"2025-01-01T00:00:00Z","excerpt":"fresh","author":{"name":"Ana"}}`)},
		"bad.json": {Data: []byte(`[1,2]`)},
	}
}

func TestFSDocument(t *testing.T) {
	s := NewFS(fixtures())
	data, err := s.Document(context.Background(), "new")
	require.NoError(t, err)
	assert.Equal(t, "New", gjson.GetBytes(data, "title").String())

	for _, slug := range []string{"missing", "", "../new", "index"} {
		_, err := s.Document(context.Background(), slug)
		assert.ErrorIs(t, err, ErrNotFound, slug)
	}
}

func TestFSListOrdersNewestFirst(t *testing.T) {
	s := NewFS(fixtures())
	data, err := s.List(context.Background(), 0)
	require.NoError(t, err)

	items := gjson.ParseBytes(data).Array()
	require.Len(t, items, 2)
	assert.Equal(t, "new", items[0].Get("slug").String())
	assert.Equal(t, "fresh", items[0].Get("excerpt").String())
	assert.Equal(t, "Ana", items[0].Get("authorName").String())
	assert.Equal(t, "old", items[1].Get("slug").String())
	assert.Equal(t, "first words", items[1].Get("excerpt").String())

	data, err = s.List(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), gjson.GetBytes(data, "#").Int())
}

func TestFSListUsesIndex(t *testing.T) {
	fsys := fixtures()
	fsys["index.json"] = &fstest.MapFile{Data: []byte(`[{"_id":"x"},{"_id":"y"},{"_id":"z"}]`)}
	data, err := NewFS(fsys).List(context.Background(), 2)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"_id":"x"},{"_id":"y"}]`, string(data))
}

func TestFSListEmpty(t *testing.T) {
	data, err := NewFS(fstest.MapFS{}).List(context.Background(), 6)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

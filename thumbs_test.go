package storyframe

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/eringen/storyframe/assets"
	"github.com/eringen/storyframe/source"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestMakeThumbnailResizesWideImages(t *testing.T) {
	out, w, h, err := makeThumbnail(pngBytes(t, 1600, 900))
	require.NoError(t, err)
	assert.Equal(t, 800, w)
	assert.Equal(t, 450, h)

	cfg, err := jpeg.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 800, cfg.Width)
}

func TestMakeThumbnailKeepsSmallImages(t *testing.T) {
	_, w, h, err := makeThumbnail(pngBytes(t, 400, 300))
	require.NoError(t, err)
	assert.Equal(t, 400, w)
	assert.Equal(t, 300, h)
}

func TestMakeThumbnailRejectsNonImages(t *testing.T) {
	_, _, _, err := makeThumbnail([]byte("%PDF-1.7 not an image"))
	assert.Error(t, err)
}

func TestThumbFilename(t *testing.T) {
	assert.Equal(t, "capacity-cliffs.jpg", thumbFilename("Capacity Cliffs"))
	assert.Equal(t, "untitled.jpg", thumbFilename("---"))
}

func TestSnapshotGeneratesThumbnails(t *testing.T) {
	ctx := context.Background()
	img := pngBytes(t, 1200, 600)
	var hits int
	cdn := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(img)
	}))
	defer cdn.Close()

	fsys := fstest.MapFS{
		"with-image.json": {Data: []byte(`{"title":"With","publishedAt":"2025-02-01T00:00:00Z","mainImage":{"asset":{"_ref":"image-abc-1200x600-png"}}}`)},
		"no-image.json":   {Data: []byte(`{"title":"Without","publishedAt":"2025-01-01T00:00:00Z"}`)},
	}
	resolver := assets.NewResolver(assets.BuilderFunc(func(id string) (string, error) {
		return cdn.URL + "/" + id, nil
	}), zaptest.NewLogger(t))

	static := t.TempDir()
	store := testStore(t)
	opts := SnapshotOptions{Thumbs: NewThumbnailer(static), Assets: resolver, Log: zaptest.NewLogger(t)}

	res, err := Snapshot(ctx, source.NewFS(fsys), store, opts)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Documents)
	assert.Equal(t, 1, res.Thumbnails)

	thumbs, err := store.Thumbnails(ctx)
	require.NoError(t, err)
	th, ok := thumbs["with-image"]
	require.True(t, ok)
	assert.Equal(t, 800, th.Width)
	_, err = os.Stat(filepath.Join(static, "thumbs", th.Filename))
	assert.NoError(t, err)

	// Unchanged sources are not fetched again.
	res, err = Snapshot(ctx, source.NewFS(fsys), store, opts)
	require.NoError(t, err)
	assert.Zero(t, res.Thumbnails)
	assert.Equal(t, 1, hits)
}

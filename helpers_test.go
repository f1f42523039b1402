package storyframe

import (
	"os"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// postFixture is a document payload shared by the root package tests.
func postFixture(t *testing.T) []byte {
	t.Helper()
	data, err := os.ReadFile("document/testdata/post.json")
	require.NoError(t, err)
	return data
}

func fixtures(t *testing.T) fstest.MapFS {
	t.Helper()
	return fstest.MapFS{
		"capacity-cliffs.json": {Data: postFixture(t)},
		"second-life.json": {Data: []byte(`{
			"_id": "post-2",
			"title": "Second Life Storage",
			"publishedAt": "2025-01-02T08:00:00Z",
			"excerpt": "Retired packs still hold value. Grid storage is one home. A third sentence.",
			"body": [{"_type": "block", "_key": "a", "children": [{"_type": "span", "text": "Retired packs."}]}]
		}`)},
	}
}

func TestBuildURL(t *testing.T) {
	tests := []struct {
		base string
		segs []string
		want string
	}{
		{"https://example.com", nil, "https://example.com"},
		{"https://example.com", []string{"blog"}, "https://example.com/blog/"},
		{"https://example.com/", []string{"blog", "capacity-cliffs"}, "https://example.com/blog/capacity-cliffs/"},
		{"https://example.com/site", []string{"blog"}, "https://example.com/site/blog/"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, BuildURL(tt.base, tt.segs...))
	}
}

func TestUnixTime(t *testing.T) {
	assert.True(t, unixTime(0).IsZero())
	at := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	assert.True(t, unixTime(at.Unix()).Equal(at))
}

func TestClampExcerpt(t *testing.T) {
	text := "Retired packs still hold value. Grid storage is one home. A third sentence."
	assert.Equal(t, "Retired packs still hold value. Grid storage is one home.", ClampExcerpt(text, 2))
	assert.Equal(t, text, ClampExcerpt(text, 5))
	assert.Equal(t, "", ClampExcerpt("   ", 2))
	assert.Equal(t, "", ClampExcerpt(text, 0))
}

func TestPagerFor(t *testing.T) {
	p := pagerFor(7, 0)
	assert.Equal(t, 3, p.Window)
	assert.Equal(t, 3, p.Dots)
	assert.Equal(t, 0, p.ActiveDot)
	assert.True(t, p.Controls)
	assert.Equal(t, 1, p.NextPage)

	last := pagerFor(7, 2)
	assert.Equal(t, 6, last.Index)
	assert.Equal(t, 2, last.ActiveDot)
	assert.Equal(t, 0, last.NextPage, "next wraps to the first page")

	// Out-of-range pages are clamped.
	assert.Equal(t, last.Index, pagerFor(7, 99).Index)

	few := pagerFor(2, 0)
	assert.False(t, few.Controls)
	assert.Equal(t, 1, few.Dots)
}

package storyframe

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/eringen/storyframe/source"
)

// countingSource records calls and serves canned payloads.
type countingSource struct {
	mu        sync.Mutex
	lists     int
	documents map[string]int
	list      []byte
	docs      map[string][]byte
	err       error
}

func newCountingSource() *countingSource {
	return &countingSource{
		documents: map[string]int{},
		list:      []byte(`[{"slug":"a"},{"slug":"b"},{"slug":"c"}]`),
		docs:      map[string][]byte{"a": []byte(`{"title":"A"}`)},
	}
}

func (s *countingSource) Document(ctx context.Context, slug string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[slug]++
	if s.err != nil {
		return nil, s.err
	}
	d, ok := s.docs[slug]
	if !ok {
		return nil, source.ErrNotFound
	}
	return d, nil
}

func (s *countingSource) List(ctx context.Context, limit int) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists++
	if s.err != nil {
		return nil, s.err
	}
	return source.Truncate(s.list, limit), nil
}

func TestListCacheServesLimitsFromOneLoad(t *testing.T) {
	ctx := context.Background()
	src := newCountingSource()
	c := NewListCache(src, time.Minute)

	all, err := c.List(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, gjson.ParseBytes(all).Array(), 3)

	two, err := c.List(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, gjson.ParseBytes(two).Array(), 2)
	assert.Equal(t, 1, src.lists)
}

func TestListCacheExpires(t *testing.T) {
	ctx := context.Background()
	src := newCountingSource()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	c := NewListCache(src, time.Minute)
	c.now = func() time.Time { return now }

	_, err := c.List(ctx, 0)
	require.NoError(t, err)
	now = now.Add(30 * time.Second)
	_, err = c.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, src.lists)

	now = now.Add(time.Minute)
	_, err = c.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, src.lists)

	c.Invalidate()
	_, err = c.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 3, src.lists)
}

func TestListCacheDoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	src := newCountingSource()
	src.err = errors.New("upstream down")
	c := NewListCache(src, time.Minute)

	_, err := c.List(ctx, 0)
	require.Error(t, err)

	src.err = nil
	_, err = c.List(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, src.lists)
}

func TestDocumentCacheCachesHitsOnly(t *testing.T) {
	ctx := context.Background()
	src := newCountingSource()
	c := NewDocumentCache(src, 8, time.Minute)

	for i := 0; i < 3; i++ {
		got, err := c.Document(ctx, "a")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"A"}`, string(got))
	}
	assert.Equal(t, 1, src.documents["a"])
	assert.Equal(t, 1, c.Len())

	for i := 0; i < 2; i++ {
		_, err := c.Document(ctx, "missing")
		assert.ErrorIs(t, err, source.ErrNotFound)
	}
	assert.Equal(t, 2, src.documents["missing"])

	c.Purge()
	assert.Zero(t, c.Len())
}

func TestCachedSourceRoutesToCaches(t *testing.T) {
	ctx := context.Background()
	src := newCountingSource()
	var cs source.Source = cachedSource{
		lists: NewListCache(src, time.Minute),
		docs:  NewDocumentCache(src, 8, time.Minute),
	}
	_, err := cs.List(ctx, 1)
	require.NoError(t, err)
	_, err = cs.List(ctx, 3)
	require.NoError(t, err)
	_, err = cs.Document(ctx, "a")
	require.NoError(t, err)
	_, err = cs.Document(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, src.lists)
	assert.Equal(t, 1, src.documents["a"])
}

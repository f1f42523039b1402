package storyframe

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap/zaptest"

	"github.com/eringen/storyframe/source"
)

func TestSnapshotMirrorsAndPrunes(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.SaveDocument(ctx, storedDoc("retired", time.Now())))

	src := source.NewFS(fixtures(t))
	res, err := Snapshot(ctx, src, store, SnapshotOptions{Log: zaptest.NewLogger(t), Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Documents)
	assert.Equal(t, int64(1), res.Pruned)

	payload, err := store.Document(ctx, "capacity-cliffs")
	require.NoError(t, err)
	assert.Equal(t, "Capacity Cliffs in Fleet Batteries", gjson.GetBytes(payload, "title").String())

	_, err = store.Document(ctx, "retired")
	assert.ErrorIs(t, err, source.ErrNotFound)

	// The mirror serves the same list order as the fixtures.
	list, err := store.List(ctx, 0)
	require.NoError(t, err)
	slugs := gjson.GetBytes(list, "#.slug").Array()
	require.Len(t, slugs, 2)
	assert.Equal(t, "capacity-cliffs", slugs[0].String())
	assert.Equal(t, "second-life", slugs[1].String())
}

// brokenDocSource lists documents but fails to fetch one of them.
type brokenDocSource struct {
	source.Source
	fail string
}

func (s brokenDocSource) Document(ctx context.Context, slug string) ([]byte, error) {
	if slug == s.fail {
		return nil, errors.New("upstream timeout")
	}
	return s.Source.Document(ctx, slug)
}

func TestSnapshotKeepsMirrorOnPartialFailure(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.SaveDocument(ctx, storedDoc("retired", time.Now())))

	src := brokenDocSource{Source: source.NewFS(fixtures(t)), fail: "second-life"}
	res, err := Snapshot(ctx, src, store, SnapshotOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second-life")
	assert.Equal(t, 1, res.Documents)

	// No pruning after a failed run.
	_, err = store.Document(ctx, "retired")
	assert.NoError(t, err)
	_, err = store.Document(ctx, "capacity-cliffs")
	assert.NoError(t, err)
}

func TestSnapshotListFailure(t *testing.T) {
	ctx := context.Background()
	store := testStore(t)
	require.NoError(t, store.SaveDocument(ctx, storedDoc("kept", time.Now())))

	src := newCountingSource()
	src.err = errors.New("upstream down")
	_, err := Snapshot(ctx, src, store, SnapshotOptions{})
	require.Error(t, err)

	_, err = store.Document(ctx, "kept")
	assert.NoError(t, err)
}

func TestSnapshotSkipsUnpublished(t *testing.T) {
	ctx := context.Background()
	fsys := fixtures(t)
	fsys["index.json"] = &fstest.MapFile{Data: []byte(`[{"slug":"capacity-cliffs"},{"slug":"draft"}]`)}

	res, err := Snapshot(ctx, source.NewFS(fsys), testStore(t), SnapshotOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.Documents)
}

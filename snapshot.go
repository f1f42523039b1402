package storyframe

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eringen/storyframe/assets"
	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/source"
)

// SnapshotOptions controls a mirror run.
type SnapshotOptions struct {
	// Concurrency bounds parallel document fetches. Defaults to 4.
	Concurrency int
	// Thumbs, when set, generates card thumbnails for documents with a
	// resolvable primary image.
	Thumbs *Thumbnailer
	// Assets resolves preview images for thumbnail generation.
	Assets *assets.Resolver
	Log    *zap.Logger
	Now    func() time.Time
}

// SnapshotResult summarizes a mirror run.
type SnapshotResult struct {
	Documents  int
	Pruned     int64
	Thumbnails int
}

// Snapshot mirrors every document of src into store and removes mirrored
// documents that are no longer listed. Per-document failures are collected
// and returned together; documents that did sync are kept, and pruning only
// happens when every document synced.
func Snapshot(ctx context.Context, src source.Source, store *Store, opts SnapshotOptions) (SnapshotResult, error) {
	if opts.Concurrency <= 0 {
		opts.Concurrency = 4
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	list, err := src.List(ctx, 0)
	if err != nil {
		return SnapshotResult{}, fmt.Errorf("snapshot: list: %w", err)
	}
	root := gjson.ParseBytes(list)
	if !root.IsArray() {
		return SnapshotResult{}, fmt.Errorf("snapshot: list: %w", document.ErrMalformed)
	}

	var (
		res  SnapshotResult
		keep []string
		errs = make([]error, len(root.Array()))
		done = make([]bool, len(root.Array()))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Concurrency)
	for i, el := range root.Array() {
		if !el.IsObject() {
			continue
		}
		preview, err := document.ParsePreview([]byte(el.Raw))
		if err != nil || preview.Slug == "" {
			continue
		}
		keep = append(keep, preview.Slug)

		raw := []byte(el.Raw)
		g.Go(func() error {
			done[i], errs[i] = syncDocument(gctx, src, store, preview, raw, opts)
			return nil
		})
	}
	_ = g.Wait()

	var combined error
	for i := range errs {
		combined = multierr.Append(combined, errs[i])
		if done[i] {
			res.Documents++
		}
	}
	if err := ctx.Err(); err != nil {
		return res, multierr.Append(combined, err)
	}
	if combined != nil {
		return res, combined
	}

	if res.Pruned, err = store.Prune(ctx, keep); err != nil {
		return res, fmt.Errorf("snapshot: prune: %w", err)
	}
	if opts.Thumbs != nil {
		res.Thumbnails = snapshotThumbnails(ctx, store, opts)
	}
	opts.Log.Info("snapshot complete",
		zap.Int("documents", res.Documents),
		zap.Int64("pruned", res.Pruned),
		zap.Int("thumbnails", res.Thumbnails))
	return res, nil
}

// syncDocument fetches one listed document and saves it. It reports whether
// the document was stored.
func syncDocument(ctx context.Context, src source.Source, store *Store, p document.PreviewItem, preview []byte, opts SnapshotOptions) (bool, error) {
	payload, err := src.Document(ctx, p.Slug)
	if errors.Is(err, source.ErrNotFound) {
		// listed but not readable yet
		opts.Log.Warn("listed document not found", zap.String("slug", p.Slug))
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("snapshot: %s: %w", p.Slug, err)
	}
	doc, err := document.Parse(payload)
	if err != nil {
		return false, fmt.Errorf("snapshot: %s: %w", p.Slug, err)
	}
	title := doc.Title
	if title == "" {
		title = p.Title
	}
	err = store.SaveDocument(ctx, StoredDocument{
		Slug:        p.Slug,
		ID:          doc.ID,
		Title:       title,
		PublishedAt: doc.PublishedAt,
		Payload:     payload,
		Preview:     preview,
		SyncedAt:    opts.Now(),
	})
	return err == nil, err
}

// snapshotThumbnails generates missing thumbnails. Failures are logged and
// the card falls back to the CDN image.
func snapshotThumbnails(ctx context.Context, store *Store, opts SnapshotOptions) int {
	if opts.Assets == nil {
		return 0
	}
	existing, err := store.Thumbnails(ctx)
	if err != nil {
		opts.Log.Warn("load thumbnails", zap.Error(err))
		return 0
	}
	docs, err := store.ListDocuments(ctx)
	if err != nil {
		opts.Log.Warn("list mirrored documents", zap.Error(err))
		return 0
	}

	n := 0
	for _, d := range docs {
		p, err := document.ParsePreview(d.Preview)
		if err != nil || p.Image == nil {
			continue
		}
		u := opts.Assets.URL(*p.Image)
		if u == "" {
			continue
		}
		if t, ok := existing[d.Slug]; ok && t.SourceURL == u {
			continue
		}
		t, err := opts.Thumbs.Generate(ctx, d.Slug, u)
		if err != nil {
			opts.Log.Warn("thumbnail failed", zap.String("slug", d.Slug), zap.Error(err))
			continue
		}
		if err := store.SaveThumbnail(ctx, t); err != nil {
			opts.Log.Warn("save thumbnail", zap.String("slug", d.Slug), zap.Error(err))
			continue
		}
		n++
	}
	return n
}

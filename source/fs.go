package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FS serves fixtures from a directory tree: one <slug>.json per document.
// List is assembled from the documents, newest first. An index.json, when
// present, is used as the list verbatim.
type FS struct {
	fsys fs.FS
}

// NewFS returns a fixture source over fsys.
func NewFS(fsys fs.FS) *FS {
	return &FS{fsys: fsys}
}

// Document implements Source.
func (s *FS) Document(ctx context.Context, slug string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if slug == "" || slug == "index" || strings.ContainsAny(slug, `/\`) {
		return nil, ErrNotFound
	}
	data, err := fs.ReadFile(s.fsys, slug+".json")
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("source: read fixture %s: %w", slug, err)
	}
	return data, nil
}

// List implements Source.
func (s *FS) List(ctx context.Context, limit int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if data, err := fs.ReadFile(s.fsys, "index.json"); err == nil {
		return Truncate(data, limit), nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("source: read index: %w", err)
	}

	names, err := fs.Glob(s.fsys, "*.json")
	if err != nil {
		return nil, fmt.Errorf("source: list fixtures: %w", err)
	}
	type entry struct {
		published string
		raw       string
	}
	var entries []entry
	for _, name := range names {
		data, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, fmt.Errorf("source: read fixture %s: %w", name, err)
		}
		doc := gjson.ParseBytes(data)
		if !doc.IsObject() {
			continue
		}
		slug := strings.TrimSuffix(path.Base(name), ".json")
		entries = append(entries, entry{
			published: doc.Get("publishedAt").String(),
			raw:       previewJSON(doc, slug),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].published > entries[j].published
	})
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	parts := make([]string, len(entries))
	for i, e := range entries {
		parts[i] = e.raw
	}
	return []byte("[" + strings.Join(parts, ",") + "]"), nil
}

// previewJSON projects a document payload to the preview shape, the same
// fields the list query selects.
func previewJSON(doc gjson.Result, slug string) string {
	out := "{}"
	set := func(key, raw string) {
		if next, err := sjson.SetRaw(out, key, raw); err == nil {
			out = next
		}
	}
	set("_id", rawOr(doc.Get("_id"), `""`))
	set("title", rawOr(doc.Get("title"), `""`))
	if next, err := sjson.Set(out, "slug", slug); err == nil {
		out = next
	}
	set("mainImage", rawOr(doc.Get("mainImage"), "null"))
	set("publishedAt", rawOr(doc.Get("publishedAt"), "null"))
	set("authorName", rawOr(doc.Get("author.name"), "null"))
	set("excerpt", rawOr(doc.Get("excerpt"), rawOr(doc.Get("body.0.children.0.text"), "null")))
	return out
}

func rawOr(r gjson.Result, fallback string) string {
	if !r.Exists() || r.Type == gjson.Null {
		return fallback
	}
	return r.Raw
}

// Truncate trims a JSON array payload to limit elements. A limit of zero
// or less keeps everything; anything but an array becomes "[]".
func Truncate(data []byte, limit int) []byte {
	arr := gjson.ParseBytes(data)
	if !arr.IsArray() {
		return []byte("[]")
	}
	items := arr.Array()
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = it.Raw
	}
	return []byte("[" + strings.Join(parts, ",") + "]")
}

// Package assets resolves media references from document payloads into
// concrete URLs and pixel dimensions.
//
// A reference arrives in one of two shapes: expanded, carrying a direct URL
// and usually its metadata, or bare, carrying only an opaque asset id that
// has to go through a Builder. Resolver is the single place that knows about
// both shapes; renderers only ever see an Asset.
package assets

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Dimensions used whenever a reference carries no metadata.
const (
	DefaultWidth  = 1200
	DefaultHeight = 800
)

// ErrMalformedRef is returned by builders for ids they cannot parse.
var ErrMalformedRef = errors.New("assets: malformed asset reference")

// Ref is a media reference as found in a document payload.
type Ref struct {
	URL     string // direct URL, set when the source expanded the asset
	AssetID string // opaque id (_ref or _id)
	Width   int    // metadata.dimensions.width, 0 when unknown
	Height  int    // metadata.dimensions.height, 0 when unknown
}

// Expanded reports whether the reference already carries a direct URL.
func (r Ref) Expanded() bool {
	return r.URL != ""
}

// IsZero reports whether the reference points at nothing at all.
func (r Ref) IsZero() bool {
	return r.URL == "" && r.AssetID == ""
}

// Asset is a resolved, renderable media element.
type Asset struct {
	URL    string
	Width  int
	Height int
}

// Builder turns an opaque asset id into a URL. Implementations must be
// deterministic for a given id and configuration.
type Builder interface {
	Build(assetID string) (string, error)
}

// BuilderFunc adapts a function to Builder.
type BuilderFunc func(assetID string) (string, error)

// Build calls f.
func (f BuilderFunc) Build(assetID string) (string, error) {
	return f(assetID)
}

// Resolver implements the expanded-then-reference resolution chain.
type Resolver struct {
	builder Builder
	log     *zap.Logger
}

// NewResolver returns a Resolver using b for bare references. A nil b means
// bare references never resolve. A nil log disables logging.
func NewResolver(b Builder, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	return &Resolver{builder: b, log: log}
}

// Resolve returns the asset for ref, or false when no usable URL could be
// produced. It never panics: builder errors and panics both count as "no URL".
func (r *Resolver) Resolve(ref Ref) (asset Asset, ok bool) {
	defer func() {
		if p := recover(); p != nil {
			r.log.Warn("asset builder panicked", zap.String("asset", ref.AssetID), zap.Any("panic", p))
			asset, ok = Asset{}, false
		}
	}()

	w, h := dimensions(ref)
	if ref.Expanded() {
		return Asset{URL: ref.URL, Width: w, Height: h}, true
	}
	if ref.AssetID == "" || r == nil || r.builder == nil {
		return Asset{}, false
	}
	u, err := r.builder.Build(ref.AssetID)
	if err != nil {
		r.log.Debug("asset reference did not resolve", zap.String("asset", ref.AssetID), zap.Error(err))
		return Asset{}, false
	}
	if u == "" {
		return Asset{}, false
	}
	return Asset{URL: u, Width: w, Height: h}, true
}

// URL is a convenience for callers that only need the address.
func (r *Resolver) URL(ref Ref) string {
	a, ok := r.Resolve(ref)
	if !ok {
		return ""
	}
	return a.URL
}

func dimensions(ref Ref) (int, int) {
	w, h := ref.Width, ref.Height
	if w <= 0 {
		w = DefaultWidth
	}
	if h <= 0 {
		h = DefaultHeight
	}
	return w, h
}

// String implements fmt.Stringer for log fields.
func (r Ref) String() string {
	if r.Expanded() {
		return r.URL
	}
	return fmt.Sprintf("ref:%s", r.AssetID)
}

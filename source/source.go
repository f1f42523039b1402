// Package source defines the read-only document source the site renders
// from, with an HTTP client for the hosted content API and a fixture source
// over an fs.FS.
//
// Sources return raw JSON. Parsing into typed documents happens in package
// document so every source degrades the same way on odd payloads.
package source

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Document when no document has the slug.
var ErrNotFound = errors.New("source: document not found")

// Source is the consumed query contract.
type Source interface {
	// Document returns the document payload (a JSON object) for slug.
	Document(ctx context.Context, slug string) ([]byte, error)
	// List returns a JSON array of preview payloads ordered by publish
	// time, newest first. A limit of zero or less returns everything.
	List(ctx context.Context, limit int) ([]byte, error)
}

// Package document defines the typed article model and parses content source
// payloads into it.
//
// Parsing is tolerant by construction: unknown block types become
// UnknownBlock, malformed fields fall back to their zero value and an
// unrecognized style resolves to StyleImmersive. Only a payload that is not a
// JSON object at all is rejected.
package document

import (
	"errors"
	"strings"
	"time"

	"github.com/eringen/storyframe/assets"
)

// ErrMalformed is returned when a payload is not a JSON object (or array for
// preview lists).
var ErrMalformed = errors.New("document: malformed payload")

// Style selects the presentation variant of a document.
type Style string

const (
	StyleImmersive Style = "immersive"
	StyleMagazine  Style = "magazine"
	StyleMinimal   Style = "minimal"
)

// ParseStyle maps a raw style tag to a Style. Anything unrecognized,
// including the empty string, is StyleImmersive.
func ParseStyle(s string) Style {
	switch Style(strings.ToLower(strings.TrimSpace(s))) {
	case StyleMagazine:
		return StyleMagazine
	case StyleMinimal:
		return StyleMinimal
	default:
		return StyleImmersive
	}
}

// Author is the optional attribution attached to a document.
type Author struct {
	Name  string
	Image *assets.Ref
	Bio   string
}

// Document is a fully parsed article.
type Document struct {
	ID           string
	Title        string
	Slug         string
	MainImage    *assets.Ref
	HeroVideoURL string
	Body         []Block
	PublishedAt  time.Time
	Excerpt      string
	Style        Style
	Author       *Author
}

// PreviewItem is the reduced shape used by list and carousel surfaces.
type PreviewItem struct {
	ID          string
	Title       string
	Slug        string
	Image       *assets.Ref
	PublishedAt time.Time
	AuthorName  string
	Excerpt     string
}

// Link returns the canonical path of the article.
func (p PreviewItem) Link() string {
	return "/blog/" + p.Slug + "/"
}

// Link returns the canonical path of the article.
func (d Document) Link() string {
	return "/blog/" + d.Slug + "/"
}

// FirstText returns the plain text of the first text block in body, or "".
func FirstText(body []Block) string {
	for _, b := range body {
		if t, ok := b.(TextBlock); ok {
			if s := strings.TrimSpace(t.PlainText()); s != "" {
				return s
			}
		}
	}
	return ""
}

package views

import "github.com/eringen/storyframe/contact"

// SiteConfig holds the site-wide settings the pages need.
type SiteConfig struct {
	Name        string
	URL         string
	Description string
	Author      string
}

// PageMeta carries per-page OpenGraph and SEO metadata into the <head>.
type PageMeta struct {
	Title       string
	Description string
	URL         string // canonical + og:url
	OGType      string // "website" or "article"
	Image       string // og:image, absolute
	JSONLD      string
}

// Card is a preview item ready for display. Image fields are empty when the
// preview's image did not resolve.
type Card struct {
	Title       string
	Link        string
	ImageURL    string
	ImageWidth  int
	ImageHeight int
	Date        string // "Jan 2, 2006"
	LongDate    string // "January 2, 2006"
	DateISO     string
	AuthorName  string
	Excerpt     string
}

// ContactForm is the state of the contact section.
type ContactForm struct {
	CSRF   string
	Status contact.Status
}

// Pager describes the carousel position for server-rendered navigation.
type Pager struct {
	Index     int
	Window    int
	Offset    float64
	Dots      int
	ActiveDot int
	Controls  bool
	PrevPage  int
	NextPage  int
}

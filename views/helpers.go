package views

import (
	"encoding/json"
	"net/url"
	"path"
	"strings"
	"time"
)

// buildURL joins path segments onto a base URL, ensuring a trailing slash.
func buildURL(base string, pathSegments ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	u.Path = path.Join(u.Path, path.Join(pathSegments...))
	if len(pathSegments) > 0 && !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	return u.String()
}

// WebsiteJsonLD produces a Schema.org WebSite JSON-LD block using cfg values.
func WebsiteJsonLD(cfg SiteConfig) string {
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     cfg.Name,
		"url":      buildURL(cfg.URL),
	}
	if cfg.Description != "" {
		data["description"] = cfg.Description
	}
	return marshalLD(data)
}

// PostingLD describes the fields BlogPostingJsonLD needs.
type PostingLD struct {
	Slug        string
	Title       string
	Description string
	Image       string
	AuthorName  string
	PublishedAt time.Time
}

// BlogPostingJsonLD produces a Schema.org BlogPosting JSON-LD block. The
// article author wins over the site author.
func BlogPostingJsonLD(cfg SiteConfig, a PostingLD) string {
	postURL := buildURL(cfg.URL, "blog", a.Slug)
	data := map[string]interface{}{
		"@context": "https://schema.org",
		"@type":    "BlogPosting",
		"headline": a.Title,
		"url":      postURL,
		"mainEntityOfPage": map[string]string{
			"@type": "WebPage",
			"@id":   postURL,
		},
		"publisher": map[string]string{
			"@type": "Organization",
			"name":  cfg.Name,
		},
	}
	if a.Description != "" {
		data["description"] = a.Description
	}
	if !a.PublishedAt.IsZero() {
		data["datePublished"] = a.PublishedAt.UTC().Format(time.RFC3339)
	}
	if a.Image != "" {
		data["image"] = a.Image
	}
	author := a.AuthorName
	if author == "" {
		author = cfg.Author
	}
	if author != "" {
		data["author"] = map[string]string{
			"@type": "Person",
			"name":  author,
		}
	}
	return marshalLD(data)
}

func marshalLD(data map[string]interface{}) string {
	b, err := json.Marshal(data)
	if err != nil {
		return "{}"
	}
	return string(b)
}

package storyframe

import (
	"encoding/xml"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/eringen/storyframe/document"
)

type rssXML struct {
	XMLName xml.Name   `xml:"rss"`
	Version string     `xml:"version,attr"`
	Channel rssChannel `xml:"channel"`
}

type rssChannel struct {
	Title       string    `xml:"title"`
	Link        string    `xml:"link"`
	Description string    `xml:"description"`
	Items       []rssItem `xml:"item"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	Description string `xml:"description"`
	Author      string `xml:"author,omitempty"`
	PubDate     string `xml:"pubDate,omitempty"`
	GUID        string `xml:"guid"`
}

func (a *App) renderRSS(c echo.Context, items []document.PreviewItem) error {
	base := a.Config.URL
	out := make([]rssItem, 0, len(items))
	for _, p := range items {
		pubDate := ""
		if !p.PublishedAt.IsZero() {
			pubDate = p.PublishedAt.UTC().Format(time.RFC1123Z)
		}
		link := BuildURL(base, "blog", p.Slug)
		out = append(out, rssItem{
			Title:       p.Title,
			Link:        link,
			Description: ClampExcerpt(p.Excerpt, excerptSentences),
			Author:      p.AuthorName,
			PubDate:     pubDate,
			GUID:        link,
		})
	}
	feed := rssXML{
		Version: "2.0",
		Channel: rssChannel{
			Title:       a.Config.Name,
			Link:        base,
			Description: a.Config.Description,
			Items:       out,
		},
	}
	c.Response().Header().Set(echo.HeaderContentType, "application/rss+xml; charset=utf-8")
	c.Response().WriteHeader(http.StatusOK)
	c.Response().Write([]byte(xml.Header))
	return xml.NewEncoder(c.Response()).Encode(feed)
}

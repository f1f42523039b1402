package storyframe

import (
	"context"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
	"go.uber.org/zap"

	"github.com/eringen/storyframe/document"
	"github.com/eringen/storyframe/layout"
	"github.com/eringen/storyframe/views"
)

// excerptSentences is how many sentences a card excerpt keeps.
const excerptSentences = 2

var (
	tokenizerOnce sync.Once
	tokenizer     *sentences.DefaultSentenceTokenizer
	tokenizerErr  error
)

func sentenceTokenizer() (*sentences.DefaultSentenceTokenizer, error) {
	tokenizerOnce.Do(func() {
		tokenizer, tokenizerErr = english.NewSentenceTokenizer(nil)
	})
	return tokenizer, tokenizerErr
}

// ClampExcerpt keeps the first n sentences of text.
func ClampExcerpt(text string, n int) string {
	text = strings.TrimSpace(text)
	if text == "" || n <= 0 {
		return ""
	}
	tok, err := sentenceTokenizer()
	if err != nil {
		return text
	}
	parts := tok.Tokenize(text)
	if len(parts) <= n {
		return text
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteString(parts[i].Text)
	}
	return strings.TrimSpace(b.String())
}

// loadPreviews fetches the preview list through the list cache and parses it.
func (a *App) loadPreviews(ctx context.Context, limit int) ([]document.PreviewItem, error) {
	payload, err := a.content.List(ctx, limit)
	if err != nil {
		return nil, err
	}
	return document.ParsePreviews(payload)
}

// cards converts previews for display, preferring generated thumbnails.
func (a *App) cards(ctx context.Context, items []document.PreviewItem) []views.Card {
	thumbs := a.thumbnails(ctx)
	out := make([]views.Card, 0, len(items))
	for _, it := range items {
		c := views.Card{
			Title:      it.Title,
			Link:       it.Link(),
			Date:       layout.ShortDate(it.PublishedAt),
			LongDate:   layout.FormatDate(it.PublishedAt),
			AuthorName: it.AuthorName,
			Excerpt:    ClampExcerpt(it.Excerpt, excerptSentences),
		}
		if !it.PublishedAt.IsZero() {
			c.DateISO = it.PublishedAt.UTC().Format("2006-01-02")
		}
		if th, ok := thumbs[it.Slug]; ok {
			c.ImageURL, c.ImageWidth, c.ImageHeight = ThumbURL(th), th.Width, th.Height
		} else if it.Image != nil {
			if img, ok := a.Assets.Resolve(*it.Image); ok {
				c.ImageURL, c.ImageWidth, c.ImageHeight = img.URL, img.Width, img.Height
			}
		}
		out = append(out, c)
	}
	return out
}

func (a *App) thumbnails(ctx context.Context) map[string]Thumbnail {
	if a.Store == nil {
		return nil
	}
	thumbs, err := a.Store.Thumbnails(ctx)
	if err != nil {
		a.Log.Warn("load thumbnails", zap.Error(err))
		return nil
	}
	return thumbs
}

package readtime

import (
	"strings"
	"testing"

	"github.com/eringen/storyframe/document"
)

func textOf(words int) document.TextBlock {
	return document.TextBlock{Spans: []document.Span{{Text: strings.Repeat("word ", words)}}}
}

func TestEstimate(t *testing.T) {
	tests := []struct {
		name string
		body []document.Block
		want int
	}{
		{"empty", nil, 1},
		{"one word", []document.Block{textOf(1)}, 1},
		{"exactly 200", []document.Block{textOf(200)}, 1},
		{"201", []document.Block{textOf(201)}, 2},
		{"split across blocks", []document.Block{textOf(150), textOf(250)}, 2},
		{"images ignored", []document.Block{document.ImageBlock{Caption: "many words here"}, textOf(10)}, 1},
		{"long", []document.Block{textOf(1001)}, 6},
	}
	for _, tt := range tests {
		if got := Estimate(tt.body); got != tt.want {
			t.Errorf("Estimate(%s) = %d, want %d", tt.name, got, tt.want)
		}
	}
}

func TestWordsAcrossSpans(t *testing.T) {
	tb := document.TextBlock{Spans: []document.Span{{Text: "two "}, {Text: "words\nand three"}}}
	if got := Words([]document.Block{tb}); got != 4 {
		t.Errorf("Words = %d, want 4", got)
	}
}

func TestLabel(t *testing.T) {
	if got := Label(3); got != "3 min read" {
		t.Errorf("Label(3) = %q", got)
	}
}

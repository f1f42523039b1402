// Package readtime estimates how long a document body takes to read.
package readtime

import (
	"fmt"
	"strings"

	"github.com/eringen/storyframe/document"
)

// WordsPerMinute is the assumed reading speed.
const WordsPerMinute = 200

// Words counts whitespace-separated words across the text blocks of body.
// Images, tables and unknown blocks contribute nothing.
func Words(body []document.Block) int {
	n := 0
	for _, b := range body {
		tb, ok := b.(document.TextBlock)
		if !ok {
			continue
		}
		for _, s := range tb.Spans {
			n += len(strings.Fields(s.Text))
		}
	}
	return n
}

// Estimate returns the reading time in whole minutes, rounded up, never
// less than one.
func Estimate(body []document.Block) int {
	words := Words(body)
	minutes := (words + WordsPerMinute - 1) / WordsPerMinute
	if minutes < 1 {
		return 1
	}
	return minutes
}

// Label formats minutes for display.
func Label(minutes int) string {
	return fmt.Sprintf("%d min read", minutes)
}

package blocks

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eringen/storyframe/assets"
	"github.com/eringen/storyframe/document"
)

type stubResolver map[string]assets.Asset

func (s stubResolver) Resolve(ref assets.Ref) (assets.Asset, bool) {
	a, ok := s[ref.AssetID]
	return a, ok
}

func para(key, text string) document.TextBlock {
	return document.TextBlock{BlockKey: key, Style: "normal", Spans: []document.Span{{Text: text}}}
}

func render(t *testing.T, c Components, nodes []Node) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, c.Render(nodes).Render(context.Background(), &buf))
	return buf.String()
}

func defaults() Components {
	return Components{
		Text:  TextComponent(TextOptions{}),
		List:  ListComponent(""),
		Image: FigureComponent(FigureOptions{}),
		Table: TableComponent(TableOptions{}),
	}
}

func TestResolveKeepsOrderAndDropsUnknown(t *testing.T) {
	body := []document.Block{
		para("a", "one"),
		document.UnknownBlock{BlockKey: "u", Type: "chart"},
		document.ImageBlock{BlockKey: "i", Ref: assets.Ref{AssetID: "img"}},
		para("b", "two"),
	}
	r := stubResolver{"img": {URL: "https://cdn.example/img.jpg", Width: 10, Height: 5}}

	nodes := Resolve(body, r)
	require.Len(t, nodes, 3)
	assert.Equal(t, "a", nodes[0].(Text).Key)
	assert.True(t, nodes[0].(Text).First)
	assert.Equal(t, "i", nodes[1].(Figure).Key)
	assert.Equal(t, "b", nodes[2].(Text).Key)
	assert.False(t, nodes[2].(Text).First)
}

func TestResolveDropsUnresolvedImage(t *testing.T) {
	body := []document.Block{
		document.ImageBlock{BlockKey: "i", Ref: assets.Ref{AssetID: "missing"}},
		document.ImageBlock{BlockKey: "z"},
	}
	assert.Empty(t, Resolve(body, stubResolver{}))
	assert.Empty(t, Resolve(body, nil))
}

func TestResolveGroupsLists(t *testing.T) {
	item := func(key, kind, text string) document.TextBlock {
		b := para(key, text)
		b.ListItem = kind
		return b
	}
	body := []document.Block{
		item("1", "bullet", "a"),
		item("2", "bullet", "b"),
		item("3", "number", "c"),
		para("p", "after"),
		item("4", "bullet", "d"),
	}
	nodes := Resolve(body, nil)
	require.Len(t, nodes, 4)

	first := nodes[0].(List)
	assert.False(t, first.Ordered)
	assert.Len(t, first.Items, 2)
	assert.True(t, nodes[1].(List).Ordered)
	assert.Equal(t, "p", nodes[2].(Text).Key)
	assert.Len(t, nodes[3].(List).Items, 1)
}

func TestResolveTable(t *testing.T) {
	tests := []struct {
		name   string
		rows   [][]string
		ok     bool
		header []string
		body   [][]string
	}{
		{"empty", nil, false, nil, nil},
		{"header only", [][]string{{"A", "B"}}, true, []string{"A", "B"}, [][]string{}},
		{"padded", [][]string{{"A", "B"}, {"x"}}, true, []string{"A", "B"}, [][]string{{"x", ""}}},
		{"truncated", [][]string{{"A"}, {"x", "y"}}, true, []string{"A"}, [][]string{{"x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl, ok := ResolveTable(document.TableBlock{Rows: tt.rows})
			assert.Equal(t, tt.ok, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.header, tbl.Header)
			assert.Equal(t, tt.body, tbl.Rows)
		})
	}
}

func TestRenderTableHeaderAndBody(t *testing.T) {
	nodes := Resolve([]document.Block{
		document.TableBlock{Rows: [][]string{{"Metric", "Value"}, {"SOH", "92%"}}},
	}, nil)
	out := render(t, defaults(), nodes)

	assert.Equal(t, 1, strings.Count(out, "<thead>"))
	assert.Equal(t, 2, strings.Count(out, "<tr>"))
	assert.Contains(t, out, "<th>Metric</th><th>Value</th>")
	assert.Contains(t, out, "<td>SOH</td><td>92%</td>")
}

func TestRenderSkipsUnsupportedKinds(t *testing.T) {
	nodes := Resolve([]document.Block{
		para("a", "before"),
		document.TableBlock{Rows: [][]string{{"Metric"}, {"SOH"}}},
		para("b", "after"),
	}, nil)
	c := defaults()
	c.Table = nil

	out := render(t, c, nodes)
	assert.Equal(t, "<p>before</p><p>after</p>", out)
}

func TestRenderSpans(t *testing.T) {
	blk := document.TextBlock{
		Style: "normal",
		Spans: []document.Span{
			{Text: "plain "},
			{Text: "bold", Marks: []string{"strong"}},
			{Text: " and ", Marks: nil},
			{Text: "link", Marks: []string{"em", "l1"}},
			{Text: " <tag>"},
		},
		MarkDefs: []document.MarkDef{{Key: "l1", Type: "link", Href: "https://example.com"}},
	}
	out := render(t, defaults(), Resolve([]document.Block{blk}, nil))
	assert.Equal(t,
		`<p>plain <strong>bold</strong> and <em><a href="https://example.com" target="_blank" rel="noopener noreferrer">link</a></em> &lt;tag&gt;</p>`,
		out)
}

func TestRenderDropsUnsafeLink(t *testing.T) {
	blk := document.TextBlock{
		Style:    "normal",
		Spans:    []document.Span{{Text: "x", Marks: []string{"l1"}}},
		MarkDefs: []document.MarkDef{{Key: "l1", Type: "link", Href: "javascript:alert(1)"}},
	}
	out := render(t, defaults(), Resolve([]document.Block{blk}, nil))
	assert.Equal(t, "<p>x</p>", out)
}

func TestRenderHeadingAnchor(t *testing.T) {
	blk := document.TextBlock{Style: "h2", Spans: []document.Span{{Text: "Why it matters"}}}
	out := render(t, defaults(), Resolve([]document.Block{blk}, nil))
	assert.Equal(t, `<h2 id="why-it-matters">Why it matters</h2>`, out)
}

func TestRenderFirstParagraphClass(t *testing.T) {
	c := defaults()
	c.Text = TextComponent(TextOptions{ParagraphClass: "body", FirstParagraphClass: "dropcap"})
	out := render(t, c, Resolve([]document.Block{para("a", "one"), para("b", "two")}, nil))
	assert.Equal(t, `<p class="body dropcap">one</p><p class="body">two</p>`, out)
}

func TestRenderFigure(t *testing.T) {
	nodes := []Node{Figure{
		Asset:   assets.Asset{URL: "https://cdn.example/a.jpg", Width: 800, Height: 600},
		Caption: "Capacity vs cycles",
	}}
	c := defaults()
	c.Image = FigureComponent(FigureOptions{DefaultAlt: "Article image"})
	out := render(t, c, nodes)
	assert.Contains(t, out, `src="https://cdn.example/a.jpg"`)
	assert.Contains(t, out, `alt="Article image"`)
	assert.Contains(t, out, `width="800" height="600"`)
	assert.Contains(t, out, `<figcaption>Capacity vs cycles</figcaption>`)
}

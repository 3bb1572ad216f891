package render

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"pdsite/internal/domain/content"
)

// headingIDs returns "tag#id" for every heading element in doc order.
func headingIDs(t *testing.T, fragment []byte) []string {
	t.Helper()
	root, err := html.Parse(bytes.NewReader(fragment))
	require.NoError(t, err)

	var out []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && len(n.Data) == 2 && n.Data[0] == 'h' && n.Data[1] >= '1' && n.Data[1] <= '6' {
			id := ""
			for _, a := range n.Attr {
				if a.Key == "id" {
					id = a.Val
				}
			}
			out = append(out, n.Data+"#"+id)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func TestRenderAssignsIDsToH2AndH3Only(t *testing.T) {
	src := []byte(`# Title

## Overview

Intro.

### Details *matter*

#### Deep

## Overview
`)
	res, err := NewMarkdownRenderer().Render(src)
	require.NoError(t, err)

	want := []string{"h1#", "h2#overview", "h3#details-matter", "h4#", "h2#overview-2"}
	if diff := cmp.Diff(want, headingIDs(t, res.HTML)); diff != "" {
		t.Fatalf("heading ids mismatch (-want +got):\n%s", diff)
	}

	wantTOC := []content.TocItem{
		{ID: "overview", Text: "Overview", Level: 2},
		{ID: "details-matter", Text: "Details matter", Level: 3},
		{ID: "overview-2", Text: "Overview", Level: 2},
	}
	if diff := cmp.Diff(wantTOC, res.Headings); diff != "" {
		t.Fatalf("headings mismatch (-want +got):\n%s", diff)
	}
}

func TestHeadingTextFlattensInlines(t *testing.T) {
	src := []byte("## Use `go test` with **care** and [links](https://example.com) ![img](x.png)\n")
	res, err := NewMarkdownRenderer().Render(src)
	require.NoError(t, err)
	require.Len(t, res.Headings, 1)
	require.Equal(t, "Use go test with care and links", res.Headings[0].Text)
	require.Equal(t, "use-go-test-with-care-and-links", res.Headings[0].ID)
}

func TestHeadingWithoutTextIsSkipped(t *testing.T) {
	src := []byte("## ![only an image](x.png)\n\n## Real\n")
	res, err := NewMarkdownRenderer().Render(src)
	require.NoError(t, err)
	require.Equal(t, []content.TocItem{{ID: "real", Text: "Real", Level: 2}}, res.Headings)
	require.Equal(t, []string{"h2#", "h2#real"}, headingIDs(t, res.HTML))
}

func TestSuffixCollisionKeepsIDsDistinct(t *testing.T) {
	src := []byte("## A\n\n## A 2\n\n## A\n")
	res, err := NewMarkdownRenderer().Render(src)
	require.NoError(t, err)

	var ids []string
	for _, h := range res.Headings {
		ids = append(ids, h.ID)
	}
	require.Equal(t, []string{"a", "a-2", "a-3"}, ids)
}

func TestNonASCIIHeadingFallsBackToSection(t *testing.T) {
	res, err := NewMarkdownRenderer().Render([]byte("## 🚀\n\n## Été\n"))
	require.NoError(t, err)
	require.Equal(t, "section", res.Headings[0].ID)
	require.Equal(t, "t", res.Headings[1].ID)
}

func TestRenderGFM(t *testing.T) {
	src := []byte(`| a | b |
|---|---|
| 1 | 2 |

~~gone~~ and https://example.com

- [x] done
`)
	res, err := NewMarkdownRenderer().Render(src)
	require.NoError(t, err)
	out := string(res.HTML)
	require.Contains(t, out, "<table>")
	require.Contains(t, out, "<del>gone</del>")
	require.Contains(t, out, `<a href="https://example.com">https://example.com</a>`)
	require.Contains(t, out, `type="checkbox"`)
}

func TestRenderIDsArePerDocument(t *testing.T) {
	r := NewMarkdownRenderer()
	src := []byte("## Intro\n\n## Intro\n")

	var wg sync.WaitGroup
	out := make([][]byte, 8)
	errs := make([]error, len(out))
	for i := range out {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			res, err := r.Render(src)
			out[i], errs[i] = res.HTML, err
		}(i)
	}
	wg.Wait()

	for i := range out {
		require.NoError(t, errs[i])
		require.Equal(t, []string{"h2#intro", "h2#intro-2"}, headingIDs(t, out[i]))
	}
}

func TestRenderKeepsRawHTML(t *testing.T) {
	res, err := NewMarkdownRenderer().Render([]byte("<div class=\"callout\">hi</div>\n"))
	require.NoError(t, err)
	require.True(t, strings.Contains(string(res.HTML), `<div class="callout">hi</div>`))
}

func TestAnchorSlug(t *testing.T) {
	cases := map[string]string{
		"Overview":               "overview",
		"  Why -- margins   ":    "why-margins",
		"Step 1: Plan & Execute": "step-1-plan-execute",
		"snake_case stays":       "snake_case-stays",
		"--":                     "",
	}
	for in, want := range cases {
		require.Equal(t, want, AnchorSlug(in), in)
	}
}

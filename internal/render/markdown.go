package render

import (
	"bytes"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
	"pdsite/internal/domain/content"
	"strings"
)

// MarkdownRenderer converts a markdown body to HTML and collects its H2/H3
// headings. It is safe for concurrent use.
type MarkdownRenderer struct {
	parser parser.Parser
}

// NewMarkdownRenderer keeps only the GFM parser. The renderer is built per
// document in Render because it closes over that document's heading ids.
func NewMarkdownRenderer() *MarkdownRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
	)
	return &MarkdownRenderer{parser: md.Parser()}
}

type MarkdownResult struct {
	HTML     []byte
	Headings []content.TocItem
}

// Render parses src once, assigns anchor ids to qualifying headings in a side
// table, then renders the untouched tree with a heading renderer that reads
// ids from that table.
func (r *MarkdownRenderer) Render(src []byte) (MarkdownResult, error) {
	doc := r.parser.Parse(text.NewReader(src))

	ids, heads := collectHeadings(doc, src)

	nr := renderer.NewRenderer(renderer.WithNodeRenderers(
		util.Prioritized(html.NewRenderer(html.WithUnsafe()), 1000),
		util.Prioritized(extension.NewTableHTMLRenderer(), 500),
		util.Prioritized(extension.NewStrikethroughHTMLRenderer(), 500),
		util.Prioritized(extension.NewTaskCheckBoxHTMLRenderer(), 500),
		util.Prioritized(&headingRenderer{ids: ids}, 100),
	))

	var buf bytes.Buffer
	if err := nr.Render(&buf, src, doc); err != nil {
		return MarkdownResult{}, err
	}
	return MarkdownResult{
		HTML:     buf.Bytes(),
		Headings: heads,
	}, nil
}

func collectHeadings(doc ast.Node, src []byte) (map[ast.Node]string, []content.TocItem) {
	ids := make(map[ast.Node]string)
	var heads []content.TocItem
	anchors := newAnchorSet()

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if h.Level != 2 && h.Level != 3 {
			return ast.WalkSkipChildren, nil
		}
		label := HeadingText(h, src)
		if label == "" {
			return ast.WalkSkipChildren, nil
		}
		id := anchors.next(AnchorSlug(label))
		ids[h] = id
		heads = append(heads, content.TocItem{ID: id, Text: label, Level: h.Level})
		return ast.WalkSkipChildren, nil
	})
	return ids, heads
}

// HeadingText flattens the inline children of a heading to plain text. Code
// spans, emphasis and link labels contribute their text; images and raw HTML
// contribute nothing.
func HeadingText(h *ast.Heading, src []byte) string {
	var b strings.Builder
	_ = ast.Walk(h, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(src))
			return ast.WalkSkipChildren, nil
		case *ast.Image, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

var _ renderer.NodeRenderer = (*headingRenderer)(nil)

type headingRenderer struct {
	ids map[ast.Node]string
}

func (r *headingRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindHeading, r.renderHeading)
}

func (r *headingRenderer) renderHeading(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	n := node.(*ast.Heading)
	if !entering {
		_, _ = w.WriteString("</h")
		_ = w.WriteByte("0123456"[n.Level])
		_, _ = w.WriteString(">\n")
		return ast.WalkContinue, nil
	}

	_, _ = w.WriteString("<h")
	_ = w.WriteByte("0123456"[n.Level])
	if id, ok := r.ids[node]; ok {
		_, _ = w.WriteString(` id="`)
		_, _ = w.Write(util.EscapeHTML([]byte(id)))
		_ = w.WriteByte('"')
	}
	if n.Attributes() != nil {
		html.RenderAttributes(w, node, html.HeadingAttributeFilter)
	}
	_ = w.WriteByte('>')
	return ast.WalkContinue, nil
}

package compose

import (
	"strconv"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Paragraphs splits free-text instructions into independently laid out
// paragraphs. Plain text splits on newlines. Markdown is parsed and
// flattened: headings and paragraphs become one paragraph each, list items
// are prefixed with "- " (or their number), and code lines are kept as-is.
func Paragraphs(src string, markdown bool) []string {
	if !markdown {
		return splitLines(src)
	}

	source := []byte(src)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var out []string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			var b strings.Builder
			inlineText(n, source, &b)
			if s := strings.Join(strings.Fields(b.String()), " "); s != "" {
				out = append(out, listPrefix(n)+s)
			}
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				if s := strings.TrimSpace(string(seg.Value(source))); s != "" {
					out = append(out, s)
				}
			}
			return ast.WalkSkipChildren, nil
		case ast.KindHTMLBlock:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return out
}

func inlineText(n ast.Node, source []byte, b *strings.Builder) {
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch v := child.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.URL(source))
		case *ast.RawHTML:
		default:
			inlineText(child, source, b)
		}
	}
}

// listPrefix returns the bullet for the first block of a list item.
func listPrefix(n ast.Node) string {
	item, ok := n.Parent().(*ast.ListItem)
	if !ok || item.FirstChild() != n {
		return ""
	}
	list, ok := item.Parent().(*ast.List)
	if !ok || !list.IsOrdered() {
		return "- "
	}
	pos := list.Start
	for sib := list.FirstChild(); sib != nil && sib != ast.Node(item); sib = sib.NextSibling() {
		pos++
	}
	return strconv.Itoa(pos) + ". "
}

package extract

import (
	"bytes"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"bookchunk/internal/doctext"
)

// MarkdownExtractor handles Markdown files using goldmark. ATX heading
// levels map to synthetic layout so the classifier treats "# " as a
// chapter and "## " as a sub-chapter under default criteria.
type MarkdownExtractor struct{}

func (e *MarkdownExtractor) Extract(r io.Reader, filename string) ([]doctext.Unit, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	md := goldmark.New()
	reader := text.NewReader(src)
	doc := md.Parser().Parse(reader)

	var units []doctext.Unit
	seq := 0
	emit := func(raw string, layout doctext.Layout) {
		cleaned := doctext.Clean(raw)
		if cleaned == "" {
			return
		}
		seq++
		units = append(units, doctext.Unit{Raw: raw, Text: cleaned, Layout: layout, Seq: seq})
	}

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch node := n.(type) {
		case *ast.Heading:
			emit(string(node.Text(src)), headingLayout(node.Level))
		default:
			emit(nodeText(n, src), bodyLayout())
		}
	}
	return units, nil
}

// nodeText gets the text content of a goldmark AST node. Blocks with
// source lines use them directly; container blocks (lists, quotes)
// recurse into their children.
func nodeText(n ast.Node, src []byte) string {
	var buf bytes.Buffer
	if n.Type() == ast.TypeBlock && n.Lines().Len() > 0 {
		lines := n.Lines()
		for i := 0; i < lines.Len(); i++ {
			line := lines.At(i)
			buf.Write(line.Value(src))
		}
		return strings.TrimSpace(buf.String())
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if t, ok := c.(*ast.Text); ok {
			buf.Write(t.Value(src))
			if t.HardLineBreak() || t.SoftLineBreak() {
				buf.WriteByte('\n')
			}
			continue
		}
		if s := nodeText(c, src); s != "" {
			if buf.Len() > 0 {
				buf.WriteByte('\n')
			}
			buf.WriteString(s)
		}
	}
	return strings.TrimSpace(buf.String())
}

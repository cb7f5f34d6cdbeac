package extract

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"bookchunk/internal/doctext"
)

// HTMLExtractor handles HTML files. h1..h6 map to synthetic heading
// layout; other block-level text accumulates into body units.
type HTMLExtractor struct{}

var skipElements = map[string]bool{
	"script": true,
	"style":  true,
	"nav":    true,
	"head":   true,
}

var blockElements = map[string]bool{
	"p":          true,
	"div":        true,
	"li":         true,
	"blockquote": true,
	"pre":        true,
	"td":         true,
	"section":    true,
	"article":    true,
}

func (e *HTMLExtractor) Extract(r io.Reader, filename string) ([]doctext.Unit, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

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

	var pending strings.Builder
	flush := func() {
		emit(pending.String(), bodyLayout())
		pending.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			if skipElements[n.Data] {
				return
			}
			if level := htmlHeadingLevel(n.Data); level > 0 {
				flush()
				emit(textContent(n), headingLayout(level))
				return
			}
			if blockElements[n.Data] {
				flush()
			}
		}
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				if pending.Len() > 0 {
					pending.WriteByte(' ')
				}
				pending.WriteString(t)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == html.ElementNode && blockElements[n.Data] {
			flush()
		}
	}
	walk(doc)
	flush()

	return units, nil
}

func htmlHeadingLevel(tag string) int {
	if len(tag) == 2 && tag[0] == 'h' && tag[1] >= '1' && tag[1] <= '6' {
		return int(tag[1] - '0')
	}
	return 0
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

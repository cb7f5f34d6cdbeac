package extract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fumiama/go-docx"

	"bookchunk/internal/doctext"
)

// DOCXExtractor handles .docx files.
type DOCXExtractor struct{}

func (e *DOCXExtractor) Extract(r io.Reader, filename string) ([]doctext.Unit, error) {
	// go-docx needs a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "bookchunk-docx-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmp, r)
	if err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("seek temp file: %w", err)
	}

	doc, err := docx.Parse(tmp, int64(size))
	tmp.Close()
	if err != nil {
		return nil, fmt.Errorf("parse docx: %w", err)
	}

	var units []doctext.Unit
	seq := 0
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		raw := paragraphText(para)
		text := doctext.Clean(raw)
		if text == "" {
			continue
		}

		layout := bodyLayout()
		if level := paragraphHeadingLevel(para); level > 0 {
			layout = headingLayout(level)
		}

		seq++
		units = append(units, doctext.Unit{
			Raw:    raw,
			Text:   text,
			Layout: layout,
			Seq:    seq,
		})
	}
	return units, nil
}

// paragraphHeadingLevel reads the heading level from the paragraph style.
func paragraphHeadingLevel(para *docx.Paragraph) int {
	if para.Properties == nil || para.Properties.Style == nil {
		return 0
	}
	style := strings.ToLower(para.Properties.Style.Val)
	style = strings.ReplaceAll(style, " ", "")
	for level := 1; level <= 6; level++ {
		if style == fmt.Sprintf("heading%d", level) {
			return level
		}
	}
	return 0
}

func paragraphText(para *docx.Paragraph) string {
	var buf strings.Builder
	for _, child := range para.Children {
		run, ok := child.(*docx.Run)
		if !ok {
			continue
		}
		for _, rc := range run.Children {
			if t, ok := rc.(*docx.Text); ok {
				buf.WriteString(t.Text)
			}
		}
	}
	return buf.String()
}

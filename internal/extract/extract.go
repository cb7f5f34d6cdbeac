// Package extract turns raw document bytes into the flat, ordered unit
// sequence the chunking engine consumes. Each format adapter reports
// per-unit layout properties (max font size, alignment) so the heading
// classifier can work uniformly across formats.
package extract

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"bookchunk/internal/doctext"
)

// ErrUnsupportedFormat is returned for file extensions no adapter handles.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// Extractor converts raw document bytes into ordered text units.
type Extractor interface {
	Extract(r io.Reader, filename string) ([]doctext.Unit, error)
}

// SupportedExtensions lists file extensions this service can handle.
// Plain text is deliberately absent: it carries no layout properties to
// classify headings against.
var SupportedExtensions = map[string]bool{
	".docx":     true,
	".pdf":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
}

// ForFile returns the appropriate extractor for a filename.
func ForFile(filename string) (Extractor, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".docx":
		return &DOCXExtractor{}, nil
	case ".pdf":
		return &PDFExtractor{}, nil
	case ".md", ".markdown":
		return &MarkdownExtractor{}, nil
	case ".html", ".htm":
		return &HTMLExtractor{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	return SupportedExtensions[strings.ToLower(filepath.Ext(filename))]
}

// Formats without real font metrics (DOCX styles, Markdown, HTML) map
// structural heading levels onto synthetic layout properties. Level 1
// lands above the default chapter threshold, level 2 in the sub-chapter
// band, deeper levels below both.
func headingLayout(level int) doctext.Layout {
	size := 12.0
	switch level {
	case 1:
		size = 24
	case 2:
		size = 16
	}
	return doctext.Layout{MaxFontSize: size, Alignment: doctext.AlignCenter}
}

func bodyLayout() doctext.Layout {
	return doctext.Layout{MaxFontSize: 11, Alignment: doctext.AlignLeft}
}

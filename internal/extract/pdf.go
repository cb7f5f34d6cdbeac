package extract

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"sort"
	"strings"

	pdflib "github.com/ledongthuc/pdf"

	"bookchunk/internal/doctext"
)

// PDFExtractor handles PDF files. It reads per-glyph font sizes and
// positions with the Go library and falls back to pdftotext (layoutless
// units) if available.
type PDFExtractor struct {
	FallbackPdftotext bool
}

const (
	rowTolerance   = 3.0 // Y tolerance for grouping glyphs into a row, in points
	wordGap        = 1.0 // X gap that implies a missing space between glyph runs
	fontBucket     = 0.5 // font sizes within half a point count as equal
	centerMarginPt = 6.0 // left/right margin difference tolerated for centering
)

func (e *PDFExtractor) Extract(r io.Reader, filename string) ([]doctext.Unit, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, so write to a temp file.
	tmp, err := os.CreateTemp("", "bookchunk-pdf-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	units, err := extractPDFUnits(tmpPath)
	if err != nil && e.FallbackPdftotext {
		units, err = extractPdftotextUnits(tmpPath)
	}
	if err != nil {
		return nil, fmt.Errorf("extract pdf: %w", err)
	}
	return units, nil
}

func extractPDFUnits(path string) ([]doctext.Unit, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var units []doctext.Unit
	seq := 0
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content := page.Content()
		for _, b := range buildBlocks(content.Text) {
			text := doctext.Clean(b.text())
			if text == "" {
				continue
			}
			seq++
			units = append(units, doctext.Unit{
				Raw:     b.text(),
				Text:    text,
				Layout:  b.layout(),
				Seq:     seq,
				Heading: doctext.Clean(b.embeddedHeading()),
			})
		}
	}
	return units, nil
}

// pdfRow is one visual line of glyph runs sharing a baseline.
type pdfRow struct {
	y      float64
	glyphs []pdflib.Text
}

func (r pdfRow) maxFont() float64 {
	max := 0.0
	for _, g := range r.glyphs {
		if g.FontSize > max {
			max = g.FontSize
		}
	}
	return max
}

func (r pdfRow) text() string {
	glyphs := append([]pdflib.Text(nil), r.glyphs...)
	sort.Slice(glyphs, func(i, j int) bool { return glyphs[i].X < glyphs[j].X })

	var b strings.Builder
	for i, g := range glyphs {
		if i > 0 {
			prev := glyphs[i-1]
			if g.X-(prev.X+prev.W) > wordGap && !strings.HasSuffix(b.String(), " ") {
				b.WriteByte(' ')
			}
		}
		b.WriteString(g.S)
	}
	return b.String()
}

// pdfBlock is a run of adjacent rows in the same font-size bucket.
type pdfBlock struct {
	rows                []pdfRow
	pageLeft, pageRight float64
}

func (b pdfBlock) text() string {
	parts := make([]string, len(b.rows))
	for i, r := range b.rows {
		parts[i] = r.text()
	}
	return strings.Join(parts, "\n")
}

func (b pdfBlock) bounds(rows []pdfRow) (left, right float64) {
	left, right = math.Inf(1), math.Inf(-1)
	for _, r := range rows {
		for _, g := range r.glyphs {
			if g.X < left {
				left = g.X
			}
			if g.X+g.W > right {
				right = g.X + g.W
			}
		}
	}
	return left, right
}

func (b pdfBlock) maxFont() float64 {
	max := 0.0
	for _, r := range b.rows {
		if f := r.maxFont(); f > max {
			max = f
		}
	}
	return max
}

func (b pdfBlock) layout() doctext.Layout {
	// When a heading is embedded at the tail of the block, judge alignment
	// by the heading rows, not the full-width body rows above them.
	rows := b.rows
	if start := b.headingStart(); start > 0 && start < len(b.rows) {
		rows = b.rows[start:]
	}
	left, right := b.bounds(rows)
	leftMargin := left - b.pageLeft
	rightMargin := b.pageRight - right
	pageWidth := b.pageRight - b.pageLeft

	align := doctext.AlignLeft
	// Full-width text has symmetric near-zero margins; require real
	// indentation on both sides before calling a block centered.
	if math.Abs(leftMargin-rightMargin) <= centerMarginPt && leftMargin >= 0.15*pageWidth {
		align = doctext.AlignCenter
	}
	return doctext.Layout{MaxFontSize: b.maxFont(), Alignment: align}
}

// embeddedHeading returns the text of a larger-font glyph run at the tail
// of the block, the shape produced when a heading shares a block with the
// end of the preceding paragraph. Empty when the block is uniform.
func (b pdfBlock) embeddedHeading() string {
	start := b.headingStart()
	if start == 0 || start == len(b.rows) {
		return "" // uniform block, or max font never reaches the tail
	}
	parts := make([]string, 0, len(b.rows)-start)
	for _, r := range b.rows[start:] {
		parts = append(parts, r.text())
	}
	return strings.Join(parts, "\n")
}

// headingStart returns the index of the first row of the max-font run at
// the tail of the block. 0 means the whole block shares the max font;
// len(rows) means the tail row is not in the max-font bucket.
func (b pdfBlock) headingStart() int {
	max := b.maxFont()
	start := len(b.rows)
	for start > 0 && sameFontBucket(b.rows[start-1].maxFont(), max) {
		start--
	}
	return start
}

func sameFontBucket(a, b float64) bool {
	return math.Abs(a-b) < fontBucket
}

// buildBlocks groups page glyphs into rows by baseline, then rows into
// blocks, breaking on vertical gaps. Font changes alone do not split a
// block; a heading set tight against the previous paragraph stays in the
// same block and is surfaced via embeddedHeading.
func buildBlocks(texts []pdflib.Text) []pdfBlock {
	glyphs := make([]pdflib.Text, 0, len(texts))
	for _, t := range texts {
		if strings.TrimSpace(t.S) == "" {
			continue
		}
		glyphs = append(glyphs, t)
	}
	if len(glyphs) == 0 {
		return nil
	}

	pageLeft, pageRight := math.Inf(1), math.Inf(-1)
	for _, g := range glyphs {
		if g.X < pageLeft {
			pageLeft = g.X
		}
		if g.X+g.W > pageRight {
			pageRight = g.X + g.W
		}
	}

	// Higher Y is higher on the page.
	sort.SliceStable(glyphs, func(i, j int) bool { return glyphs[i].Y > glyphs[j].Y })

	var rows []pdfRow
	for _, g := range glyphs {
		if len(rows) > 0 && math.Abs(rows[len(rows)-1].y-g.Y) < rowTolerance {
			last := &rows[len(rows)-1]
			last.glyphs = append(last.glyphs, g)
			continue
		}
		rows = append(rows, pdfRow{y: g.Y, glyphs: []pdflib.Text{g}})
	}

	var blocks []pdfBlock
	var cur []pdfRow
	flush := func() {
		if len(cur) > 0 {
			blocks = append(blocks, pdfBlock{rows: cur, pageLeft: pageLeft, pageRight: pageRight})
			cur = nil
		}
	}
	for i, r := range rows {
		if i > 0 {
			prev := rows[i-1]
			gap := prev.y - r.y
			if gap > 1.8*math.Max(prev.maxFont(), r.maxFont()) {
				flush()
			}
		}
		cur = append(cur, r)
	}
	flush()
	return blocks
}

// extractPdftotextUnits shells out to pdftotext. The output has no layout
// properties, so every unit classifies as plain text.
func extractPdftotextUnits(path string) ([]doctext.Unit, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w", err)
	}

	var units []doctext.Unit
	seq := 0
	for _, para := range strings.FieldsFunc(string(out), func(r rune) bool { return r == '\f' }) {
		for _, p := range strings.Split(para, "\n\n") {
			text := doctext.Clean(p)
			if text == "" {
				continue
			}
			seq++
			units = append(units, doctext.Unit{Raw: p, Text: text, Seq: seq})
		}
	}
	return units, nil
}

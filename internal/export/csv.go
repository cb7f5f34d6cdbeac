// Package export serializes chunk slices for delivery to callers.
package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"bookchunk/internal/doctext"
)

var csvHeader = []string{"chunk_text", "start_marker", "chapter", "subchapter"}

// WriteCSV writes chunks as CSV with a header row. Fields containing
// commas, quotes or newlines are quoted by the encoder.
func WriteCSV(w io.Writer, chunks []doctext.Chunk) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i, c := range chunks {
		rec := []string{c.Text, c.StartMarker, c.Chapter, c.Subchapter}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write csv record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

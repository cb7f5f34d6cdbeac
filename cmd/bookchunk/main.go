package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"bookchunk/internal/config"
	"bookchunk/internal/export"
	"bookchunk/internal/extract"
	"bookchunk/internal/pipeline"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bookchunk",
		Short: "Chunk structured documents by token budget or chapter",
		Long:  "Splits DOCX, PDF, Markdown and HTML documents into retrieval-sized chunks, each stamped with the chapter and sub-chapter active at its position.",
	}

	rootCmd.AddCommand(createProcessCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Fatal(err)
	}
}

func createProcessCommand() *cobra.Command {
	var (
		inputFile        string
		outputFile       string
		strategy         string
		targetTokens     int
		overlapSentences int
		tokenizerName    string
		splitMerged      bool
	)

	cmd := &cobra.Command{
		Use:   "process",
		Short: "Chunk a document and write CSV or JSON",
		Run: func(cmd *cobra.Command, args []string) {
			if err := processFile(inputFile, outputFile, pipeline.Options{
				Mode:             strategy,
				TargetTokens:     targetTokens,
				OverlapSentences: overlapSentences,
			}, tokenizerName, splitMerged); err != nil {
				log.Fatalf("Error processing file: %v", err)
			}
		},
	}

	cmd.Flags().StringVarP(&inputFile, "file", "f", "", "Input document (.docx, .pdf, .md, .html)")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file; .csv or .json by extension (default: JSON to stdout)")
	cmd.Flags().StringVar(&strategy, "strategy", pipeline.ModeToken, "Chunking strategy: token or chapter")
	cmd.Flags().IntVar(&targetTokens, "target-tokens", 300, "Token budget per chunk (token strategy)")
	cmd.Flags().IntVar(&overlapSentences, "overlap-sentences", 2, "Sentences carried over between adjacent chunks")
	cmd.Flags().StringVar(&tokenizerName, "tokenizer", "cl100k_base", "Token counter: a tiktoken encoding name, or \"words\"")
	cmd.Flags().BoolVar(&splitMerged, "split-merged", false, "Split sentences that merge trailing text with a sub-chapter title")
	cmd.MarkFlagRequired("file")

	return cmd
}

func processFile(inputFile, outputFile string, opts pipeline.Options, tokenizerName string, splitMerged bool) error {
	cfg := config.Config{
		Tokenizer:             tokenizerName,
		TargetTokens:          opts.TargetTokens,
		OverlapSentences:      opts.OverlapSentences,
		SplitMergedHeadings:   splitMerged,
		ChapterMinFontSize:    20,
		ChapterCentered:       true,
		SubchapterMinFontSize: 14,
		SubchapterCentered:    true,
	}
	engine, err := pipeline.NewEngine(cfg)
	if err != nil {
		return err
	}

	ex, err := extract.ForFile(inputFile)
	if err != nil {
		return err
	}
	if pe, ok := ex.(*extract.PDFExtractor); ok {
		pe.FallbackPdftotext = true
	}
	f, err := os.Open(inputFile)
	if err != nil {
		return fmt.Errorf("open %s: %w", inputFile, err)
	}
	defer f.Close()

	units, err := ex.Extract(f, inputFile)
	if err != nil {
		return fmt.Errorf("extract %s: %w", inputFile, err)
	}

	res, err := engine.Run(units, opts)
	if err != nil {
		return err
	}
	log.Printf("Processed %d units into %d sentences and %d chunks", len(units), res.Sentences, len(res.Chunks))

	out := os.Stdout
	if outputFile != "" {
		out, err = os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("create %s: %w", outputFile, err)
		}
		defer out.Close()
	}

	if strings.EqualFold(filepath.Ext(outputFile), ".csv") {
		return export.WriteCSV(out, res.Chunks)
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(res.Chunks)
}

package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8091"`

	// Auth
	APIKey string `env:"BOOKCHUNK_API_KEY"`

	// Sink connection
	SinkURL    string `env:"SINK_URL" envDefault:"http://localhost:8080"`
	SinkAPIKey string `env:"SINK_API_KEY"`

	// Worker pool
	WorkerCount  int `env:"WORKER_COUNT" envDefault:"4"`
	MaxQueueSize int `env:"MAX_QUEUE_SIZE" envDefault:"100"`

	// Upload limits
	MaxUploadBytes int64 `env:"MAX_UPLOAD_BYTES" envDefault:"52428800"` // 50MB

	// Job state
	JobTTL time.Duration `env:"JOB_TTL" envDefault:"1h"`

	// Chunking defaults
	TargetTokens     int    `env:"TARGET_TOKENS" envDefault:"300"`
	OverlapSentences int    `env:"OVERLAP_SENTENCES" envDefault:"2"`
	Tokenizer        string `env:"TOKENIZER" envDefault:"cl100k_base"`

	// Context tracking
	FallbackChapter     string `env:"FALLBACK_CHAPTER" envDefault:"Introduction"`
	SplitMergedHeadings bool   `env:"SPLIT_MERGED_HEADINGS" envDefault:"false"`

	// Heading criteria, in points. A zero value disables the rule.
	ChapterMinFontSize    float64 `env:"CHAPTER_MIN_FONT_SIZE" envDefault:"20"`
	ChapterCentered       bool    `env:"CHAPTER_CENTERED" envDefault:"true"`
	SubchapterMinFontSize float64 `env:"SUBCHAPTER_MIN_FONT_SIZE" envDefault:"14"`
	SubchapterCentered    bool    `env:"SUBCHAPTER_CENTERED" envDefault:"true"`

	// PDF
	PDFFallbackPdftotext bool `env:"PDF_FALLBACK_PDFTOTEXT" envDefault:"true"`
}

// Load reads .env if present, then parses the environment. Invalid
// numeric values are a parse error rather than a silent fallback.
func Load() (Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.TargetTokens <= 0 {
		cfg.TargetTokens = 300
	}
	if cfg.OverlapSentences < 0 {
		cfg.OverlapSentences = 0
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("BOOKCHUNK_API_KEY is required")
	}
	if c.SinkURL != "" && c.SinkAPIKey == "" {
		return fmt.Errorf("SINK_API_KEY is required when SINK_URL is set")
	}
	return nil
}

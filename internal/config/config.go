package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Chunking defaults
	DefaultMaxChars int
	ChunkPadWidth   int

	// Translation (Ollama)
	OllamaURL     string
	OllamaModel   string
	TranslateLang string

	// Worker pool
	WorkerCount            int
	MaxQueueSize           int
	MaxConcurrentTranslate int

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("PAGEMERGE_API_KEY"),

		DefaultMaxChars: envInt("DEFAULT_MAX_CHARS", 2000),
		ChunkPadWidth:   envInt("CHUNK_PAD_WIDTH", 3),

		OllamaURL:     envOr("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel:   envOr("OLLAMA_MODEL", "gemma3:4b"),
		TranslateLang: envOr("TRANSLATE_LANG", "Persian (Farsi)"),

		WorkerCount:            envInt("WORKER_COUNT", 2),
		MaxQueueSize:           envInt("MAX_QUEUE_SIZE", 32),
		MaxConcurrentTranslate: envInt("MAX_CONCURRENT_TRANSLATE", 2),

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.DefaultMaxChars <= 0 {
		cfg.DefaultMaxChars = 2000
	}
	if cfg.ChunkPadWidth <= 0 {
		cfg.ChunkPadWidth = 3
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 2
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 32
	}
	if cfg.MaxConcurrentTranslate <= 0 {
		cfg.MaxConcurrentTranslate = 2
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("PAGEMERGE_API_KEY is required")
	}
	if c.DefaultMaxChars <= 0 {
		return fmt.Errorf("DEFAULT_MAX_CHARS must be positive")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port string

	// Auth
	APIKey string

	// Boundary tokens. Empty means unbounded on that side.
	PromptStartToken   string
	PromptEndToken     string
	FeedbackStartToken string
	FeedbackEndToken   string

	// Record fields
	IncludeAuthor bool
	IncludeDate   bool

	// RequireTokens skips documents in which no configured feedback token
	// is found instead of falling back to the whole text.
	RequireTokens bool

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Output
	OutputDir      string
	DefaultFormats []string
}

func Load() Config {
	cfg := Config{
		Port: envOr("PORT", "8090"),

		APIKey: os.Getenv("REDLINE_API_KEY"),

		PromptStartToken:   os.Getenv("PROMPT_START_TOKEN"),
		PromptEndToken:     os.Getenv("PROMPT_END_TOKEN"),
		FeedbackStartToken: os.Getenv("FEEDBACK_START_TOKEN"),
		FeedbackEndToken:   os.Getenv("FEEDBACK_END_TOKEN"),

		IncludeAuthor: envBool("INCLUDE_AUTHOR", false),
		IncludeDate:   envBool("INCLUDE_DATE", false),
		RequireTokens: envBool("REQUIRE_TOKENS", false),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		OutputDir:      envOr("OUTPUT_DIR", "out"),
		DefaultFormats: splitFormats(envOr("OUTPUT_FORMATS", "json")),
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
	if len(cfg.DefaultFormats) == 0 {
		cfg.DefaultFormats = []string{"json"}
	}

	return cfg
}

func (c Config) Validate() error {
	if c.APIKey == "" {
		return fmt.Errorf("REDLINE_API_KEY is required")
	}
	return nil
}

func splitFormats(s string) []string {
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
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

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
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

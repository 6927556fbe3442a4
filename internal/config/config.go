// ABOUTME: Centralized configuration for the pantry knowledge server
// ABOUTME: Loads an optional YAML file, then environment variables, with validation and defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the pantry system
type Config struct {
	// Store settings
	DBPath string

	// OpenAI settings
	OpenAIKey       string
	EmbeddingModel  string
	EmbedBatchSize  int
	EmbedBatchDelay time.Duration
	EmbedTimeout    time.Duration
	MaxRetries      int
	RetryDelay      time.Duration

	// Chunking settings
	ChunkMaxChars int
	ChunkOverlap  int

	// Search settings
	FanoutFactor  int
	RRFK          int
	SearchTimeout time.Duration
}

// fileConfig is the YAML config file shape; every field is optional and
// environment variables override file values.
type fileConfig struct {
	DBPath          string `yaml:"db_path"`
	EmbeddingModel  string `yaml:"embedding_model"`
	EmbedBatchSize  int    `yaml:"embed_batch_size"`
	EmbedBatchDelay string `yaml:"embed_batch_delay"`
	ChunkMaxChars   int    `yaml:"chunk_max_chars"`
	ChunkOverlap    int    `yaml:"chunk_overlap"`
	FanoutFactor    int    `yaml:"fanout_factor"`
	RRFK            int    `yaml:"rrf_k"`
	SearchTimeout   string `yaml:"search_timeout"`
}

// Load reads configuration from environment variables only
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile reads a YAML config file (missing file is fine), overlays
// environment variables, and validates the result.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{
		// Defaults
		EmbeddingModel:  "text-embedding-3-small",
		EmbedBatchSize:  64,
		EmbedBatchDelay: 200 * time.Millisecond,
		EmbedTimeout:    30 * time.Second,
		MaxRetries:      3,
		RetryDelay:      2 * time.Second,
		ChunkMaxChars:   1000,
		ChunkOverlap:    150,
		FanoutFactor:    5,
		RRFK:            60,
		SearchTimeout:   15 * time.Second,
	}

	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	cfg.DBPath = getEnv("PANTRY_DB_PATH", cfg.DBPath)
	cfg.OpenAIKey = os.Getenv("OPENAI_API_KEY")
	cfg.EmbeddingModel = getEnv("PANTRY_EMBEDDING_MODEL", cfg.EmbeddingModel)
	cfg.EmbedBatchSize = getEnvInt("PANTRY_EMBED_BATCH_SIZE", cfg.EmbedBatchSize)
	cfg.EmbedBatchDelay = getEnvDuration("PANTRY_EMBED_BATCH_DELAY", cfg.EmbedBatchDelay)
	cfg.EmbedTimeout = getEnvDuration("OPENAI_TIMEOUT", cfg.EmbedTimeout)
	cfg.MaxRetries = getEnvInt("OPENAI_MAX_RETRIES", cfg.MaxRetries)
	cfg.RetryDelay = getEnvDuration("OPENAI_RETRY_DELAY", cfg.RetryDelay)
	cfg.ChunkMaxChars = getEnvInt("PANTRY_CHUNK_MAX_CHARS", cfg.ChunkMaxChars)
	cfg.ChunkOverlap = getEnvInt("PANTRY_CHUNK_OVERLAP", cfg.ChunkOverlap)
	cfg.FanoutFactor = getEnvInt("PANTRY_FANOUT_FACTOR", cfg.FanoutFactor)
	cfg.RRFK = getEnvInt("PANTRY_RRF_K", cfg.RRFK)
	cfg.SearchTimeout = getEnvDuration("PANTRY_SEARCH_TIMEOUT", cfg.SearchTimeout)

	return cfg, cfg.Validate()
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if fc.DBPath != "" {
		c.DBPath = fc.DBPath
	}
	if fc.EmbeddingModel != "" {
		c.EmbeddingModel = fc.EmbeddingModel
	}
	if fc.EmbedBatchSize > 0 {
		c.EmbedBatchSize = fc.EmbedBatchSize
	}
	if fc.EmbedBatchDelay != "" {
		d, err := time.ParseDuration(fc.EmbedBatchDelay)
		if err != nil {
			return fmt.Errorf("config file %s: embed_batch_delay: %w", path, err)
		}
		c.EmbedBatchDelay = d
	}
	if fc.ChunkMaxChars > 0 {
		c.ChunkMaxChars = fc.ChunkMaxChars
	}
	if fc.ChunkOverlap > 0 {
		c.ChunkOverlap = fc.ChunkOverlap
	}
	if fc.FanoutFactor > 0 {
		c.FanoutFactor = fc.FanoutFactor
	}
	if fc.RRFK > 0 {
		c.RRFK = fc.RRFK
	}
	if fc.SearchTimeout != "" {
		d, err := time.ParseDuration(fc.SearchTimeout)
		if err != nil {
			return fmt.Errorf("config file %s: search_timeout: %w", path, err)
		}
		c.SearchTimeout = d
	}

	return nil
}

// Validate checks parameter sanity. The OpenAI key is deliberately not
// checked here: operations that do not embed (list, delete, stats) work
// without one, and the embedding client rejects a missing key itself.
func (c *Config) Validate() error {
	if c.ChunkMaxChars <= 0 {
		return fmt.Errorf("PANTRY_CHUNK_MAX_CHARS must be positive, got %d", c.ChunkMaxChars)
	}
	if c.ChunkOverlap < 0 || c.ChunkOverlap >= c.ChunkMaxChars {
		return fmt.Errorf("PANTRY_CHUNK_OVERLAP must be in [0, max chars), got %d", c.ChunkOverlap)
	}
	if c.EmbedBatchSize <= 0 {
		return fmt.Errorf("PANTRY_EMBED_BATCH_SIZE must be positive, got %d", c.EmbedBatchSize)
	}
	if c.MaxRetries < 0 || c.MaxRetries > 10 {
		return fmt.Errorf("OPENAI_MAX_RETRIES must be 0-10, got %d", c.MaxRetries)
	}
	if c.FanoutFactor <= 0 {
		return fmt.Errorf("PANTRY_FANOUT_FACTOR must be positive, got %d", c.FanoutFactor)
	}
	if c.RRFK <= 0 {
		return fmt.Errorf("PANTRY_RRF_K must be positive, got %d", c.RRFK)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}

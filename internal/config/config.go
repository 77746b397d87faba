// Package config provides configuration loading and validation for the CLI
// and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Defaults applied when neither the config file, environment, nor flags
// provide a value.
const (
	DefaultEmbeddingModel = "text-embedding-004"
	DefaultEmbeddingDim   = 768
	DefaultChunkMaxChars  = 800
	DefaultTopK           = 8
	DefaultPort           = 8080
	DefaultIndexWorkers   = 4
)

// Config represents the application configuration that can be loaded from a
// JSON file. All fields are optional; missing values use defaults or must be
// provided via environment / CLI flags.
type Config struct {
	// Infrastructure
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL (pgvector required)
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Embedding / indexing
	EmbeddingModel string `json:"embedding_model,omitempty"` // Must match between index and query time
	EmbeddingDim   int    `json:"embedding_dim,omitempty"`   // Expected vector dimensionality
	ChunkMaxChars  int    `json:"chunk_max_chars,omitempty"` // Max characters per section chunk
	IndexWorkers   int    `json:"index_workers,omitempty"`   // Concurrent jobs during batch indexing

	// Generative models; blank falls back to the built-in Gemini defaults
	ParserModel string `json:"parser_model,omitempty"` // Model for query filter extraction
	AnswerModel string `json:"answer_model,omitempty"` // Model for answer synthesis

	// Retrieval
	DefaultTopK int `json:"default_top_k,omitempty"` // Documents returned when the caller does not say

	// Server
	Port int `json:"port,omitempty"` // HTTP port for the chat API

	// Behavior
	Debug   bool `json:"debug,omitempty"`    // Debug-level logging
	JSONLog bool `json:"json_log,omitempty"` // JSON log encoding instead of console
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// FromEnv returns a Config populated from environment variables. Call after
// godotenv has loaded any .env file.
func FromEnv() Config {
	return Config{
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		APIKey:         os.Getenv("GEMINI_API_KEY"),
		EmbeddingModel: os.Getenv("RAG_EMBEDDING_MODEL"),
		ParserModel:    os.Getenv("GEMINI_QUERY_MODEL"),
		AnswerModel:    os.Getenv("GEMINI_CHAT_MODEL"),
		EmbeddingDim:   envInt("RAG_EMBEDDING_DIM"),
		ChunkMaxChars:  envInt("RAG_CHUNK_MAX_CHARS"),
		IndexWorkers:   envInt("RAG_INDEX_WORKERS"),
		DefaultTopK:    envInt("RAG_DEFAULT_TOP_K"),
		Port:           envInt("PORT"),
	}
}

func envInt(key string) int {
	v := os.Getenv(key)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// Validate checks that the configuration has valid values. Required fields
// are checked at the point of use, after merging.
func (c *Config) Validate() error {
	if c.EmbeddingDim < 0 {
		return fmt.Errorf("config error: 'embedding_dim' must be non-negative")
	}
	if c.ChunkMaxChars < 0 {
		return fmt.Errorf("config error: 'chunk_max_chars' must be non-negative")
	}
	if c.DefaultTopK < 0 {
		return fmt.Errorf("config error: 'default_top_k' must be non-negative")
	}
	if c.IndexWorkers < 0 {
		return fmt.Errorf("config error: 'index_workers' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid TCP port")
	}
	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from
// defaults. Used to layer config file < environment < built-in defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}
	if result.ParserModel == "" {
		result.ParserModel = defaults.ParserModel
	}
	if result.AnswerModel == "" {
		result.AnswerModel = defaults.AnswerModel
	}
	if result.EmbeddingDim == 0 {
		result.EmbeddingDim = defaults.EmbeddingDim
	}
	if result.ChunkMaxChars == 0 {
		result.ChunkMaxChars = defaults.ChunkMaxChars
	}
	if result.IndexWorkers == 0 {
		result.IndexWorkers = defaults.IndexWorkers
	}
	if result.DefaultTopK == 0 {
		result.DefaultTopK = defaults.DefaultTopK
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Resolved returns the configuration with built-in defaults applied to any
// field still unset.
func (c *Config) Resolved() Config {
	return c.MergeWithDefaults(Config{
		EmbeddingModel: DefaultEmbeddingModel,
		EmbeddingDim:   DefaultEmbeddingDim,
		ChunkMaxChars:  DefaultChunkMaxChars,
		IndexWorkers:   DefaultIndexWorkers,
		DefaultTopK:    DefaultTopK,
		Port:           DefaultPort,
	})
}

package main

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/jobfinder/job-assistant/internal/config"
	"github.com/jobfinder/job-assistant/internal/llm"
	"github.com/jobfinder/job-assistant/internal/logger"
)

var (
	configPath string
	debug      bool
	jsonLog    bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLog, "json-log", false, "Log in JSON instead of console format")
}

// loadConfig layers config file < environment < built-in defaults and
// returns the resolved configuration plus a logger built from it.
func loadConfig() (config.Config, *zap.Logger, error) {
	env := config.FromEnv()

	cfg := env
	if configPath != "" {
		fileCfg, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, nil, err
		}
		// Environment wins over the file. MergeWithDefaults skips bools,
		// so the file's flags are layered in explicitly here.
		cfg = env.MergeWithDefaults(*fileCfg)
		cfg.Debug = cfg.Debug || fileCfg.Debug
		cfg.JSONLog = cfg.JSONLog || fileCfg.JSONLog
	}

	cfg.Debug = cfg.Debug || debug
	cfg.JSONLog = cfg.JSONLog || jsonLog

	if err := cfg.Validate(); err != nil {
		return config.Config{}, nil, err
	}
	resolved := cfg.Resolved()

	log, err := logger.New(resolved.JSONLog, resolved.Debug)
	if err != nil {
		return config.Config{}, nil, fmt.Errorf("failed to create logger: %w", err)
	}

	return resolved, log, nil
}

// llmConfig builds the model tier configuration, applying any model
// overrides from the resolved config.
func llmConfig(cfg config.Config) *llm.Config {
	mc := llm.DefaultConfig()
	if cfg.ParserModel != "" {
		mc = mc.WithModel(llm.TierLite, cfg.ParserModel)
	}
	if cfg.AnswerModel != "" {
		mc = mc.WithModel(llm.TierStandard, cfg.AnswerModel)
	}
	return mc
}

// requireInfra checks for the settings every command that touches the
// database and Gemini needs.
func requireInfra(cfg config.Config) error {
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required (environment, .env, or config file)")
	}
	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required (environment, .env, or config file)")
	}
	return nil
}

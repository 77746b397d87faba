package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobfinder/job-assistant/internal/chat"
	"github.com/jobfinder/job-assistant/internal/db"
	"github.com/jobfinder/job-assistant/internal/embedding"
	"github.com/jobfinder/job-assistant/internal/llm"
	"github.com/jobfinder/job-assistant/internal/queryparse"
	"github.com/jobfinder/job-assistant/internal/retrieval"
	"github.com/jobfinder/job-assistant/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the chat API server",
	Long:  `Start an HTTP server that exposes the chat assistant (POST /chat) and a health endpoint.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	if err := requireInfra(cfg); err != nil {
		return err
	}
	if servePort > 0 {
		cfg.Port = servePort
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	embedder, err := embedding.NewGeminiProvider(cfg.APIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer embedder.Close()

	llmClient, err := llm.NewClient(ctx, llmConfig(cfg), cfg.APIKey)
	if err != nil {
		return fmt.Errorf("failed to create LLM client: %w", err)
	}
	defer llmClient.Close()

	chatSvc := chat.NewService(
		queryparse.New(llmClient, log),
		retrieval.New(database, embedder, log),
		chat.NewLLMSynthesizer(llmClient),
		cfg.DefaultTopK,
		log,
	)

	srv := server.New(server.Config{Port: cfg.Port}, chatSvc, database, log)
	return srv.Start()
}

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jobfinder/job-assistant/internal/db"
	"github.com/jobfinder/job-assistant/internal/embedding"
	"github.com/jobfinder/job-assistant/internal/indexing"
)

var (
	indexLimit  int
	indexMode   string
	indexJobID  int64
	indexDelete bool
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Index job listings into the vector store",
	Long: `Build embedding documents for job listings and store them in the pgvector table.

The default mode indexes only active jobs that have no documents yet. Use
--mode full to rebuild everything, or --job to reindex a single job.`,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntVar(&indexLimit, "limit", 0, "Maximum number of jobs to index (0 = no limit)")
	indexCmd.Flags().StringVar(&indexMode, "mode", string(indexing.ModeIncremental), "Batch mode: incremental or full")
	indexCmd.Flags().Int64Var(&indexJobID, "job", 0, "Index a single job by id")
	indexCmd.Flags().BoolVar(&indexDelete, "delete", false, "Delete the given job's documents instead of indexing (requires --job)")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	if indexDelete && indexJobID <= 0 {
		return fmt.Errorf("--delete requires --job")
	}
	if cfg.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required (environment, .env, or config file)")
	}

	ctx := cmd.Context()

	database, err := db.Connect(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()

	if indexDelete {
		overview, section, err := database.CountJobDocuments(ctx, indexJobID)
		if err != nil {
			return err
		}
		if err := database.DeleteJobDocuments(ctx, indexJobID); err != nil {
			return err
		}
		fmt.Printf("Deleted %d documents of job %d\n", overview+section, indexJobID)
		return nil
	}

	if cfg.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required (environment, .env, or config file)")
	}

	embedder, err := embedding.NewGeminiProvider(cfg.APIKey, cfg.EmbeddingModel, cfg.EmbeddingDim)
	if err != nil {
		return fmt.Errorf("failed to create embedding provider: %w", err)
	}
	defer embedder.Close()

	indexer := indexing.New(database, embedder, log, cfg.ChunkMaxChars, cfg.IndexWorkers)

	if indexJobID > 0 {
		n, err := indexer.IndexJob(ctx, indexJobID)
		if err != nil {
			return fmt.Errorf("failed to index job %d: %w", indexJobID, err)
		}
		fmt.Printf("Indexed job %d (%d documents)\n", indexJobID, n)
		return nil
	}

	mode, err := indexing.ParseMode(indexMode)
	if err != nil {
		return err
	}
	return indexer.IndexAll(ctx, indexLimit, mode)
}

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jobfinder/job-assistant/internal/chat"
	"github.com/jobfinder/job-assistant/internal/db"
	"github.com/jobfinder/job-assistant/internal/embedding"
	"github.com/jobfinder/job-assistant/internal/llm"
	"github.com/jobfinder/job-assistant/internal/queryparse"
	"github.com/jobfinder/job-assistant/internal/retrieval"
)

var (
	askTopK  int
	askJobID int64
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question against the indexed jobs",
	Long: `Run the full retrieval pipeline for a single question and print the raw
answer with the jobs it was grounded on. Useful for checking what the chat
endpoint would respond with.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().IntVar(&askTopK, "top-k", 0, "Number of documents to retrieve (overrides config)")
	askCmd.Flags().Int64Var(&askJobID, "job", 0, "Pin a job's documents into the context, as if viewing its page")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, log, err := loadConfig()
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck
	if err := requireInfra(cfg); err != nil {
		return err
	}

	ctx := cmd.Context()
	question := strings.Join(args, " ")

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

	parser := queryparse.New(llmClient, log)
	filters := parser.ParseQuery(ctx, question)

	topK := askTopK
	if topK <= 0 {
		topK = cfg.DefaultTopK
	}

	req := retrieval.Request{
		Query:   question,
		TopK:    topK,
		Filters: filters,
	}
	if askJobID > 0 {
		req.CurrentJobID = &askJobID
	}

	retriever := retrieval.New(database, embedder, log)
	docs, err := retriever.Retrieve(ctx, req)
	if err != nil {
		return fmt.Errorf("retrieval failed: %w", err)
	}

	answer, err := llmClient.GenerateContent(ctx, chat.BuildAnswerPrompt(question, filters, docs), llm.TierStandard)
	if err != nil {
		return fmt.Errorf("answer generation failed: %w", err)
	}

	fmt.Println(strings.TrimSpace(answer))

	jobs := chat.ContextJobs(docs)
	if len(jobs) > 0 {
		fmt.Println("\nGrounded on:")
		for _, j := range jobs {
			score := "pinned"
			if j.Score != nil {
				score = fmt.Sprintf("%.3f", *j.Score)
			}
			fmt.Printf("  [%s] %s – %s (%s)\n", score, j.Title, j.CompanyName, j.URL)
		}
	}
	return nil
}

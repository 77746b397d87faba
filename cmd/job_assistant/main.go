// Package main provides the entry point for the JobFinder assistant CLI and
// API server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "job_assistant",
	Short: "JobFinder retrieval-augmented job assistant",
	Long:  "job_assistant indexes job listings into a pgvector store and answers candidate questions about them over CLI or HTTP, grounded on the indexed data.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

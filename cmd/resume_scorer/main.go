// Package main provides the entry point for the resume scoring CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "resume_scorer",
	Short: "Resume Scoring Engine",
	Long:  "Resume Scorer evaluates a parsed resume against a target role and experience level, producing a calibrated 0-100 score with a category breakdown and actionable feedback.",
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

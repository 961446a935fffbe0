package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jonathan/resume-scorer/internal/config"
	"github.com/jonathan/resume-scorer/internal/jdtext"
	"github.com/jonathan/resume-scorer/internal/matcher"
	"github.com/jonathan/resume-scorer/internal/scoring"
	"github.com/jonathan/resume-scorer/internal/thresholds"
	"github.com/jonathan/resume-scorer/internal/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a parsed resume against a target role and level",
	Long:  "Scores a normalized resume document (JSON) against a role, experience level, and optional job description, printing the composite score, category breakdown, and feedback.",
	RunE:  runScore,
}

var (
	scoreDocument   string
	scoreRole       string
	scoreLevel      string
	scoreJobDesc    string
	scoreThresholds string
	scoreConfigPath string
	scoreExactOnly  bool
	scoreJSON       bool
)

func init() {
	scoreCmd.Flags().StringVarP(&scoreDocument, "document", "d", "", "Path to normalized resume JSON (required)")
	scoreCmd.Flags().StringVarP(&scoreRole, "role", "r", "", "Target role, e.g. \"backend engineer\" (required)")
	scoreCmd.Flags().StringVarP(&scoreLevel, "level", "l", "", "Experience level: junior, mid, or senior (required)")
	scoreCmd.Flags().StringVarP(&scoreJobDesc, "job-description", "j", "", "Path to a job description file (text or HTML)")
	scoreCmd.Flags().StringVar(&scoreThresholds, "thresholds", "", "Path to a threshold table JSON (default: embedded v1)")
	scoreCmd.Flags().StringVar(&scoreConfigPath, "config", "", "Path to a CLI config JSON")
	scoreCmd.Flags().BoolVar(&scoreExactOnly, "exact-only", false, "Skip the semantic matching backend")
	scoreCmd.Flags().BoolVar(&scoreJSON, "json", false, "Print the full score result as JSON")

	if err := scoreCmd.MarkFlagRequired("document"); err != nil {
		panic(fmt.Sprintf("failed to mark document flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("role"); err != nil {
		panic(fmt.Sprintf("failed to mark role flag as required: %v", err))
	}
	if err := scoreCmd.MarkFlagRequired("level"); err != nil {
		panic(fmt.Sprintf("failed to mark level flag as required: %v", err))
	}

	rootCmd.AddCommand(scoreCmd)
}

func runScore(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(scoreConfigPath)
	if err != nil {
		return err
	}
	if scoreExactOnly {
		cfg.ExactOnly = true
		cfg.APIKey = ""
	}
	if scoreThresholds != "" {
		cfg.Thresholds = scoreThresholds
	}

	doc, err := loadDocument(scoreDocument)
	if err != nil {
		return err
	}

	sctx := types.ScoringContext{
		Role:  scoreRole,
		Level: types.Level(scoreLevel),
	}
	if scoreJobDesc != "" {
		text, err := jdtext.LoadFile(scoreJobDesc)
		if err != nil {
			return err
		}
		sctx.JobDescription = text
	}

	engine, closeMatcher, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeMatcher()

	result, err := engine.ScoreDocument(ctx, doc, sctx)
	if err != nil {
		return err
	}
	result.RequestID = uuid.New()

	if scoreJSON {
		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode result: %w", err)
		}
		fmt.Println(string(encoded))
		return nil
	}

	printSummary(result)
	return nil
}

// loadCLIConfig merges the optional config file with environment fallbacks.
func loadCLIConfig(path string) (*config.Config, error) {
	cfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	cfg.ApplyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func loadDocument(path string) (*types.NormalizedDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}
	var doc types.NormalizedDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse document %s: %w", path, err)
	}
	return &doc, nil
}

// buildEngine assembles the threshold table and matcher per configuration.
// The returned func releases the semantic backend, if any.
func buildEngine(ctx context.Context, cfg *config.Config) (*scoring.Engine, func(), error) {
	table := thresholds.Default()
	if cfg.Thresholds != "" {
		loaded, err := thresholds.Load(cfg.Thresholds)
		if err != nil {
			return nil, nil, err
		}
		table = loaded
	}

	m := matcher.NewExact()
	cleanup := func() {}
	if !cfg.ExactOnly && cfg.APIKey != "" {
		embedder, err := matcher.NewGeminiEmbedder(ctx, cfg.APIKey, cfg.EmbeddingModel)
		if err != nil {
			return nil, nil, err
		}
		m = matcher.New(embedder, matcher.Weights{
			Semantic: table.Match.SemanticWeight,
			Exact:    table.Match.ExactWeight,
		})
		cleanup = func() { _ = embedder.Close() }
	}

	engine, err := scoring.NewEngine(table, m)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, cleanup, nil
}

func printSummary(result *types.ScoreResult) {
	fmt.Printf("Overall score: %.1f / 100 (thresholds %s)\n", result.Overall, result.ThresholdVersion)
	if result.Degraded {
		fmt.Println("Note: semantic matching was unavailable; keyword scores reflect exact matching only.")
	}

	fmt.Println("\nCategory breakdown:")
	for _, category := range types.Categories {
		total, ok := result.CategoryTotals[category]
		if !ok {
			continue
		}
		if total.Max > 0 {
			fmt.Printf("  %-12s %6.1f / %.0f\n", category, total.Score, total.Max)
		} else {
			fmt.Printf("  %-12s %6.1f (penalties)\n", category, total.Score)
		}
	}

	if len(result.Feedback.Strengths) > 0 {
		fmt.Println("\nStrengths:")
		for _, s := range result.Feedback.Strengths {
			fmt.Printf("  + %s\n", s)
		}
	}
	if len(result.Feedback.Weaknesses) > 0 {
		fmt.Println("\nWeaknesses:")
		for _, w := range result.Feedback.Weaknesses {
			fmt.Printf("  - %s\n", w)
		}
	}
	if len(result.Feedback.Recommendations) > 0 {
		fmt.Println("\nRecommendations (highest impact first):")
		recs := make([]types.Recommendation, len(result.Feedback.Recommendations))
		copy(recs, result.Feedback.Recommendations)
		sort.SliceStable(recs, func(i, j int) bool { return recs[i].EstimatedImpact > recs[j].EstimatedImpact })
		for i, rec := range recs {
			fmt.Printf("  %d. [%.1f pts] %s\n", i+1, rec.EstimatedImpact, rec.Message)
		}
	}
}

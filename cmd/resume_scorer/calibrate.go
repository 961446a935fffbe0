package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jonathan/resume-scorer/internal/calibration"
	"github.com/jonathan/resume-scorer/internal/db"
	"github.com/jonathan/resume-scorer/internal/logger"
)

var calibrateCmd = &cobra.Command{
	Use:   "calibrate",
	Short: "Run the scoring engine over a benchmark corpus and report deltas",
	Long:  "Scores every benchmark document against its externally known target score, reports signed per-document errors and convergence, and optionally records the run to the database for threshold audit history.",
	RunE:  runCalibrate,
}

var (
	calibrateBenchmarkDir string
	calibrateThresholds   string
	calibrateConfigPath   string
	calibrateInnerBand    float64
	calibrateOuterBand    float64
	calibrateRecord       bool
	calibrateJSONLog      bool
	calibrateVerbose      bool
)

func init() {
	calibrateCmd.Flags().StringVarP(&calibrateBenchmarkDir, "benchmark-dir", "b", "", "Directory of benchmark document JSON files (required)")
	calibrateCmd.Flags().StringVar(&calibrateThresholds, "thresholds", "", "Path to a threshold table JSON (default: embedded v1)")
	calibrateCmd.Flags().StringVar(&calibrateConfigPath, "config", "", "Path to a CLI config JSON")
	calibrateCmd.Flags().Float64Var(&calibrateInnerBand, "inner-band", calibration.DefaultBands.Inner, "Tight absolute error band in points")
	calibrateCmd.Flags().Float64Var(&calibrateOuterBand, "outer-band", calibration.DefaultBands.Outer, "Loose absolute error band every document must meet")
	calibrateCmd.Flags().BoolVar(&calibrateRecord, "record", false, "Record the run to the configured database")
	calibrateCmd.Flags().BoolVar(&calibrateJSONLog, "json-log", false, "Emit the report as JSON log lines")
	calibrateCmd.Flags().BoolVarP(&calibrateVerbose, "verbose", "v", false, "Debug logging")

	if err := calibrateCmd.MarkFlagRequired("benchmark-dir"); err != nil {
		panic(fmt.Sprintf("failed to mark benchmark-dir flag as required: %v", err))
	}

	rootCmd.AddCommand(calibrateCmd)
}

func runCalibrate(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadCLIConfig(calibrateConfigPath)
	if err != nil {
		return err
	}
	if calibrateThresholds != "" {
		cfg.Thresholds = calibrateThresholds
	}

	log, err := logger.New(calibrateJSONLog || cfg.JSONLog, calibrateVerbose || cfg.Verbose)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	corpus, err := calibration.LoadCorpus(calibrateBenchmarkDir)
	if err != nil {
		return err
	}
	log.Info("loaded benchmark corpus",
		zap.Int("documents", len(corpus)),
		zap.String("dir", calibrateBenchmarkDir))

	engine, closeMatcher, err := buildEngine(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeMatcher()

	harness, err := calibration.NewHarness(engine, corpus, calibration.Bands{
		Inner:         calibrateInnerBand,
		InnerFraction: calibration.DefaultBands.InnerFraction,
		Outer:         calibrateOuterBand,
	})
	if err != nil {
		return err
	}

	report, err := harness.Run(ctx)
	if err != nil {
		return err
	}

	for _, res := range report.Results {
		log.Info("benchmark result",
			zap.String("name", res.Name),
			zap.Float64("score", res.Score),
			zap.Float64("target", res.Target),
			zap.Float64("error", res.Error),
			zap.Bool("degraded", res.Degraded))
	}
	log.Info("calibration summary",
		zap.String("threshold_version", report.ThresholdVersion),
		zap.Float64("mean_error", report.MeanError),
		zap.Float64("mean_abs_error", report.MeanAbsError),
		zap.Float64("max_abs_error", report.MaxAbsError),
		zap.Int("within_inner", report.WithinInner),
		zap.Int("within_outer", report.WithinOuter),
		zap.Bool("converged", report.Converged))

	fmt.Print(report.Summary())

	if calibrateRecord {
		if cfg.DatabaseURL == "" {
			return fmt.Errorf("--record requires a database URL (config or DATABASE_URL)")
		}
		database, err := db.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer database.Close()

		logPriorConvergedVersion(ctx, log, database)

		runID, err := database.RecordCalibrationRun(ctx, report)
		if err != nil {
			return err
		}
		log.Info("recorded calibration run", zap.String("run_id", runID.String()))
	}

	if !report.Converged {
		return fmt.Errorf("calibration did not converge: %d/%d within ±%.0f, %d/%d within ±%.0f",
			report.WithinInner, len(report.Results), report.Bands.Inner,
			report.WithinOuter, len(report.Results), report.Bands.Outer)
	}
	return nil
}

// convergedVersionSource reports recorded calibration history.
type convergedVersionSource interface {
	LatestConvergedVersion(ctx context.Context) (string, error)
}

// logPriorConvergedVersion reports the threshold version of the last
// converged run on record, for comparison against the run being recorded.
// History lookup failures never abort the run.
func logPriorConvergedVersion(ctx context.Context, log *zap.Logger, src convergedVersionSource) {
	version, err := src.LatestConvergedVersion(ctx)
	switch {
	case err != nil:
		log.Warn("failed to look up last converged calibration run", zap.Error(err))
	case version == "":
		log.Info("no previously converged calibration run on record")
	default:
		log.Info("last converged calibration run", zap.String("threshold_version", version))
	}
}

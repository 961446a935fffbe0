package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/resume-scorer/internal/calibration"
)

// Schema for calibration history:
//
//	CREATE TABLE calibration_runs (
//	    id UUID PRIMARY KEY,
//	    threshold_version TEXT NOT NULL,
//	    mean_error DOUBLE PRECISION NOT NULL,
//	    mean_abs_error DOUBLE PRECISION NOT NULL,
//	    max_abs_error DOUBLE PRECISION NOT NULL,
//	    converged BOOLEAN NOT NULL,
//	    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
//	CREATE TABLE calibration_run_docs (
//	    run_id UUID NOT NULL REFERENCES calibration_runs(id) ON DELETE CASCADE,
//	    name TEXT NOT NULL,
//	    score DOUBLE PRECISION NOT NULL,
//	    target DOUBLE PRECISION NOT NULL,
//	    error DOUBLE PRECISION NOT NULL,
//	    degraded BOOLEAN NOT NULL,
//	    PRIMARY KEY (run_id, name)
//	);

// RecordCalibrationRun persists a calibration report and its per-document
// results in one transaction. Returns the new run ID.
func (db *DB) RecordCalibrationRun(ctx context.Context, report *calibration.Report) (uuid.UUID, error) {
	if report == nil {
		return uuid.Nil, fmt.Errorf("report is nil")
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	runID := uuid.New()
	_, err = tx.Exec(ctx,
		`INSERT INTO calibration_runs (id, threshold_version, mean_error, mean_abs_error, max_abs_error, converged)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		runID, report.ThresholdVersion, report.MeanError, report.MeanAbsError, report.MaxAbsError, report.Converged,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert calibration run: %w", err)
	}

	for _, res := range report.Results {
		_, err = tx.Exec(ctx,
			`INSERT INTO calibration_run_docs (run_id, name, score, target, error, degraded)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			runID, res.Name, res.Score, res.Target, res.Error, res.Degraded,
		)
		if err != nil {
			return uuid.Nil, fmt.Errorf("failed to insert calibration result %s: %w", res.Name, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return uuid.Nil, fmt.Errorf("failed to commit calibration run: %w", err)
	}
	return runID, nil
}

// LatestConvergedVersion returns the threshold version of the most recent
// converged calibration run, or empty string when none exists.
func (db *DB) LatestConvergedVersion(ctx context.Context) (string, error) {
	var version string
	err := db.pool.QueryRow(ctx,
		`SELECT threshold_version FROM calibration_runs
		 WHERE converged ORDER BY created_at DESC LIMIT 1`,
	).Scan(&version)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("failed to query latest converged run: %w", err)
	}
	return version, nil
}

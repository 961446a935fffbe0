package calibration

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-scorer/internal/scoring"
)

// Bands configure the convergence criteria: what fraction of the corpus
// must land inside the inner error band, with everything inside the outer.
type Bands struct {
	// Inner is the tight absolute error band, in points.
	Inner float64
	// InnerFraction is the share of documents that must fall within Inner.
	InnerFraction float64
	// Outer is the loose absolute error band every document must meet.
	Outer float64
}

// DefaultBands is the standard convergence criterion: 90% of the corpus
// within 3 points, all of it within 5.
var DefaultBands = Bands{Inner: 3, InnerFraction: 0.9, Outer: 5}

// DocResult is the outcome for one benchmark document. Error is signed:
// positive means the engine scored above the target.
type DocResult struct {
	Name     string  `json:"name"`
	Score    float64 `json:"score"`
	Target   float64 `json:"target"`
	Error    float64 `json:"error"`
	Degraded bool    `json:"degraded,omitempty"`
}

// Report summarizes one calibration run over the corpus.
type Report struct {
	ThresholdVersion string      `json:"threshold_version"`
	Results          []DocResult `json:"results"`

	// MeanError is the signed average error; a large magnitude signals
	// systematic bias rather than noise.
	MeanError    float64 `json:"mean_error"`
	MeanAbsError float64 `json:"mean_abs_error"`
	MaxAbsError  float64 `json:"max_abs_error"`

	WithinInner int   `json:"within_inner"`
	WithinOuter int   `json:"within_outer"`
	Bands       Bands `json:"bands"`

	// Converged is true when the band criteria are met.
	Converged bool `json:"converged"`
}

// Summary renders the report as a human-readable table.
func (r *Report) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "calibration run (thresholds %s)\n", r.ThresholdVersion)
	for _, res := range r.Results {
		fmt.Fprintf(&sb, "  %-24s score %6.1f  target %6.1f  error %+6.1f\n",
			res.Name, res.Score, res.Target, res.Error)
	}
	fmt.Fprintf(&sb, "mean error %+.2f, mean abs error %.2f, max abs error %.2f\n",
		r.MeanError, r.MeanAbsError, r.MaxAbsError)
	fmt.Fprintf(&sb, "%d/%d within ±%.0f, %d/%d within ±%.0f, converged=%v\n",
		r.WithinInner, len(r.Results), r.Bands.Inner,
		r.WithinOuter, len(r.Results), r.Bands.Outer, r.Converged)
	return sb.String()
}

// Harness wraps an engine and a corpus for repeated calibration runs.
type Harness struct {
	engine      *scoring.Engine
	corpus      Corpus
	bands       Bands
	concurrency int
}

// NewHarness builds a harness. Zero bands select DefaultBands.
func NewHarness(engine *scoring.Engine, corpus Corpus, bands Bands) (*Harness, error) {
	if engine == nil {
		return nil, fmt.Errorf("engine is required")
	}
	if len(corpus) == 0 {
		return nil, fmt.Errorf("corpus is empty")
	}
	if bands == (Bands{}) {
		bands = DefaultBands
	}
	if bands.Inner <= 0 || bands.Outer < bands.Inner {
		return nil, fmt.Errorf("invalid bands: inner %.1f, outer %.1f", bands.Inner, bands.Outer)
	}
	return &Harness{engine: engine, corpus: corpus, bands: bands, concurrency: 4}, nil
}

// Run scores the whole corpus, in parallel across documents, and builds the
// convergence report. Scoring requests are independent and share no mutable
// state, so parallelism is safe.
func (h *Harness) Run(ctx context.Context) (*Report, error) {
	results := make([]DocResult, len(h.corpus))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.concurrency)
	for i, bench := range h.corpus {
		i, bench := i, bench
		g.Go(func() error {
			score, err := h.engine.ScoreDocument(gctx, &bench.Document, bench.Context)
			if err != nil {
				return fmt.Errorf("benchmark %s: %w", bench.Name, err)
			}
			results[i] = DocResult{
				Name:     bench.Name,
				Score:    score.Overall,
				Target:   bench.Target,
				Error:    score.Overall - bench.Target,
				Degraded: score.Degraded,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return h.buildReport(results), nil
}

func (h *Harness) buildReport(results []DocResult) *Report {
	sort.Slice(results, func(i, j int) bool { return results[i].Name < results[j].Name })

	report := &Report{
		ThresholdVersion: h.engine.ThresholdVersion(),
		Results:          results,
		Bands:            h.bands,
	}

	sum := 0.0
	absSum := 0.0
	for _, res := range results {
		sum += res.Error
		abs := math.Abs(res.Error)
		absSum += abs
		if abs > report.MaxAbsError {
			report.MaxAbsError = abs
		}
		if abs <= h.bands.Inner {
			report.WithinInner++
		}
		if abs <= h.bands.Outer {
			report.WithinOuter++
		}
	}
	n := float64(len(results))
	report.MeanError = sum / n
	report.MeanAbsError = absSum / n
	report.Converged = report.WithinOuter == len(results) &&
		float64(report.WithinInner) >= h.bands.InnerFraction*n

	return report
}

package scoring

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jonathan/resume-scorer/internal/matcher"
	"github.com/jonathan/resume-scorer/internal/thresholds"
	"github.com/jonathan/resume-scorer/internal/types"
)

// maxOverall is the ceiling of the composite score.
const maxOverall = 100.0

// Engine orchestrates the full parameter scorer set over one document. The
// scorer list is closed and fixed at construction; engines are safe for
// concurrent use across requests since all shared state is read-only.
type Engine struct {
	table   *thresholds.Table
	matcher *matcher.Matcher
	scorers []ParameterScorer
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock substitutes the time source used by chronology-based scorers.
// Tests use this to pin "now" for deterministic gap and tenure math.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// NewEngine validates the threshold table and registers the closed scorer
// list. A table missing any level/parameter entry fails here, never
// mid-request.
func NewEngine(table *thresholds.Table, m *matcher.Matcher, opts ...Option) (*Engine, error) {
	if table == nil {
		return nil, fmt.Errorf("threshold table is required")
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid threshold table: %w", err)
	}
	if m == nil {
		m = matcher.NewExact()
	}

	e := &Engine{table: table, matcher: m, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	e.scorers = registerScorers(e.now)
	return e, nil
}

// registerScorers builds the full parameter set. The list is fixed at build
// time; there is no runtime plugin discovery.
func registerScorers(now func() time.Time) []ParameterScorer {
	return []ParameterScorer{
		requiredKeywordScorer{},
		preferredKeywordScorer{},
		skillsSectionScorer{},
		quantificationScorer{},
		actionVerbScorer{},
		bulletDepthScorer{},
		pageCountScorer{},
		sectionBalanceScorer{},
		atsFormatScorer{},
		wordCountScorer{},
		bulletCountScorer{},
		grammarScorer{},
		contactScorer{},
		sentenceLengthScorer{},
		buzzwordScorer{},
		voiceScorer{},
		gapScorer{now: now},
		hoppingScorer{now: now},
		dateFormatScorer{},
		photoScorer{},
	}
}

// ThresholdVersion returns the version of the threshold table the engine
// was built with.
func (e *Engine) ThresholdVersion() string {
	return e.table.Version
}

// ScoreDocument runs every registered scorer once over the document and
// aggregates the results into a ScoreResult. Individual scorer failures are
// isolated: a failing scorer contributes a zero score with error detail and
// the rest of the parameters still count.
func (e *Engine) ScoreDocument(ctx context.Context, doc *types.NormalizedDocument, sctx types.ScoringContext) (*types.ScoreResult, error) {
	if err := sctx.Validate(); err != nil {
		return nil, err
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}

	in := &Input{
		Doc:     doc,
		Context: sctx,
		Table:   e.table,
		Match:   e.matcher.NewSession(doc.FullText()),
		Profile: ResolveProfile(sctx),
	}

	results := make([]types.ParameterResult, 0, len(e.scorers))
	for _, scorer := range e.scorers {
		results = append(results, e.runScorer(ctx, scorer, in))
	}

	categoryTotals := make(map[types.Category]types.CategoryTotal)
	additiveTotal := 0.0
	penaltyTotal := 0.0
	for _, r := range results {
		total := categoryTotals[r.Category]
		switch r.Kind {
		case types.KindPenalty:
			// Penalties reduce the overall score only, never a
			// positive category bucket.
			total.Score += r.Points
			penaltyTotal += -r.Points
		default:
			total.Score += r.Points
			total.Max += r.MaxPoints
			additiveTotal += r.Points
		}
		categoryTotals[r.Category] = total
	}

	overall := additiveTotal - penaltyTotal
	if overall < 0 {
		overall = 0
	}
	if overall > maxOverall {
		overall = maxOverall
	}

	return &types.ScoreResult{
		Overall:          overall,
		CategoryTotals:   categoryTotals,
		Parameters:       results,
		Feedback:         buildFeedback(results),
		Degraded:         in.Match.Degraded(),
		ThresholdVersion: e.table.Version,
	}, nil
}

// runScorer executes one scorer with panic and error isolation.
func (e *Engine) runScorer(ctx context.Context, scorer ParameterScorer, in *Input) types.ParameterResult {
	result, err := func() (r types.ParameterResult, err error) {
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("scorer panicked: %v", p)
			}
		}()
		return scorer.Score(ctx, in)
	}()
	if err != nil {
		return e.zeroResult(scorer, err)
	}
	if verr := result.Validate(); verr != nil {
		return e.zeroResult(scorer, verr)
	}
	return result
}

// zeroResult substitutes a neutral result for a failed scorer so partial
// scoring can complete.
func (e *Engine) zeroResult(scorer ParameterScorer, err error) types.ParameterResult {
	kind := types.KindAdditive
	if strings.HasPrefix(scorer.Code(), "penalty.") {
		kind = types.KindPenalty
	}
	max := 0.0
	if spec, specErr := e.table.Parameter(scorer.Code()); specErr == nil {
		max = spec.MaxPoints
	}
	return types.ParameterResult{
		Code:      scorer.Code(),
		Category:  scorer.Category(),
		Kind:      kind,
		Points:    0,
		MaxPoints: max,
		Err:       err.Error(),
	}
}

// Package scoring implements the multi-parameter scoring engine: twenty
// independent parameter scorers grouped into six categories, and the
// orchestrator that aggregates them into a calibrated 0-100 score with
// structured feedback.
package scoring

import (
	"context"

	"github.com/jonathan/resume-scorer/internal/matcher"
	"github.com/jonathan/resume-scorer/internal/thresholds"
	"github.com/jonathan/resume-scorer/internal/types"
)

// Input bundles everything a parameter scorer may read. All fields are
// read-only to scorers; they share no mutable state.
type Input struct {
	Doc     *types.NormalizedDocument
	Context types.ScoringContext
	Table   *thresholds.Table
	// Match is the request-scoped matcher session for the document text.
	Match *matcher.Session
	// Profile is the resolved role keyword profile for the request.
	Profile RoleProfile
}

// ParameterScorer evaluates one rubric dimension. Implementations must be
// pure with respect to Input and degrade to neutral scores on missing or
// malformed data rather than failing.
type ParameterScorer interface {
	// Code is the stable parameter identifier, e.g. "keyword.required".
	Code() string
	// Category is the breakdown category the parameter belongs to.
	Category() types.Category
	// Score evaluates the parameter against the input.
	Score(ctx context.Context, in *Input) (types.ParameterResult, error)
}

// levelSpec resolves the scorer's level spec from the table. Load-time
// validation guarantees presence; the error path covers tables constructed
// directly in tests.
func levelSpec(in *Input, code string) (thresholds.LevelSpec, float64, error) {
	spec, err := in.Table.Parameter(code)
	if err != nil {
		return thresholds.LevelSpec{}, 0, err
	}
	ls, err := in.Table.Level(code, in.Context.Level)
	if err != nil {
		return thresholds.LevelSpec{}, 0, err
	}
	return ls, spec.MaxPoints, nil
}

// additive builds an additive result, clamping points into [0, max].
func additive(code string, category types.Category, points, max float64, detail map[string]any) types.ParameterResult {
	if points < 0 {
		points = 0
	}
	if points > max {
		points = max
	}
	return types.ParameterResult{
		Code:      code,
		Category:  category,
		Kind:      types.KindAdditive,
		Points:    points,
		MaxPoints: max,
		Detail:    detail,
	}
}

// penalty builds a penalty result from a non-negative deduction, clamping
// the deduction at max.
func penalty(code string, deduction, max float64, detail map[string]any) types.ParameterResult {
	if deduction < 0 {
		deduction = 0
	}
	if deduction > max {
		deduction = max
	}
	return types.ParameterResult{
		Code:      code,
		Category:  types.CategoryConsistency,
		Kind:      types.KindPenalty,
		Points:    -deduction,
		MaxPoints: max,
		Detail:    detail,
	}
}

// bandPoints maps a metric through a healthy band: full points inside,
// half within tolerance outside, none beyond.
func bandPoints(value float64, band thresholds.Band, max float64) float64 {
	const tolerance = 0.2
	switch {
	case band.Contains(value):
		return max
	case band.Near(value, tolerance):
		return max * 0.5
	default:
		return 0
	}
}

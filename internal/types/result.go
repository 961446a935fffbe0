package types

import (
	"fmt"

	"github.com/google/uuid"
)

// ResultKind distinguishes additive parameters from penalty-only parameters.
type ResultKind string

// Result kinds.
const (
	// KindAdditive parameters award 0..MaxPoints toward their category.
	KindAdditive ResultKind = "additive"
	// KindPenalty parameters report -MaxPoints..0 and are subtracted from
	// the overall total only, never from a category bucket.
	KindPenalty ResultKind = "penalty"
)

// Category groups related parameters for the score breakdown.
type Category string

// Scoring categories.
const (
	CategoryKeywords    Category = "keywords"
	CategoryImpact      Category = "impact"
	CategoryStructure   Category = "structure"
	CategoryPolish      Category = "polish"
	CategoryReadability Category = "readability"
	CategoryConsistency Category = "consistency"
)

// Categories lists every category in breakdown display order.
var Categories = []Category{
	CategoryKeywords,
	CategoryImpact,
	CategoryStructure,
	CategoryPolish,
	CategoryReadability,
	CategoryConsistency,
}

// ParameterResult is the outcome of one parameter scorer.
type ParameterResult struct {
	// Code is the stable parameter identifier, e.g. "keyword.required".
	Code     string     `json:"code"`
	Category Category   `json:"category"`
	Kind     ResultKind `json:"kind"`

	// Points earned. Additive: 0..MaxPoints. Penalty: -MaxPoints..0.
	Points    float64 `json:"points"`
	MaxPoints float64 `json:"max_points"`

	// Detail holds the scorer's structured diagnostics: matched/missing
	// items, rates, penalty reasons. Shape is parameter-specific.
	Detail map[string]any `json:"detail,omitempty"`

	// Err records an isolated scorer failure. The orchestrator substitutes
	// a zero-score result and sets this; it never surfaces in feedback.
	Err string `json:"error,omitempty"`
}

// Validate checks the kind-specific points bound.
func (r *ParameterResult) Validate() error {
	if r.MaxPoints < 0 {
		return fmt.Errorf("%s: max_points must be non-negative, got %.2f", r.Code, r.MaxPoints)
	}
	switch r.Kind {
	case KindAdditive:
		if r.Points < 0 || r.Points > r.MaxPoints {
			return fmt.Errorf("%s: additive points %.2f outside [0, %.2f]", r.Code, r.Points, r.MaxPoints)
		}
	case KindPenalty:
		if r.Points > 0 || r.Points < -r.MaxPoints {
			return fmt.Errorf("%s: penalty points %.2f outside [%.2f, 0]", r.Code, r.Points, -r.MaxPoints)
		}
	default:
		return fmt.Errorf("%s: unknown result kind %q", r.Code, r.Kind)
	}
	return nil
}

// CategoryTotal is the summed score for one category.
type CategoryTotal struct {
	Score float64 `json:"score"`
	Max   float64 `json:"max"`
}

// Recommendation is one actionable improvement suggestion.
type Recommendation struct {
	ParameterCode string `json:"parameter_code"`
	// EstimatedImpact is the points recoverable by addressing it.
	EstimatedImpact float64 `json:"estimated_impact"`
	Message         string  `json:"message"`
}

// Feedback is the human-readable portion of a score result.
type Feedback struct {
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	// Recommendations are ordered by estimated impact, highest first.
	Recommendations []Recommendation `json:"recommendations"`
}

// ScoreResult is the final output of one scoring request. It is constructed
// once and immutable after return.
type ScoreResult struct {
	RequestID uuid.UUID `json:"request_id"`

	// Overall is the calibrated composite score in [0, 100].
	Overall        float64                    `json:"overall"`
	CategoryTotals map[Category]CategoryTotal `json:"category_totals"`
	Parameters     []ParameterResult          `json:"parameters"`
	Feedback       Feedback                   `json:"feedback"`

	// Degraded reports that the semantic matching backend was unavailable
	// and keyword scores reflect exact matching only.
	Degraded bool `json:"degraded,omitempty"`

	// ThresholdVersion identifies the threshold table the score was
	// produced with, for calibration auditability.
	ThresholdVersion string `json:"threshold_version"`
}

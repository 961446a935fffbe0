package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestBuildFeedback_StrengthsAndWeaknesses(t *testing.T) {
	results := []types.ParameterResult{
		{Code: "keyword.required", Kind: types.KindAdditive, Points: 20, MaxPoints: 20},
		{Code: "impact.quantification", Kind: types.KindAdditive, Points: 2, MaxPoints: 12,
			Detail: map[string]any{"weighted_rate": 0.1}},
		{Code: "penalty.photo", Kind: types.KindPenalty, Points: -3, MaxPoints: 3},
	}

	feedback := buildFeedback(results)

	assert.Contains(t, feedback.Strengths, strengthMessages["keyword.required"])
	require.Len(t, feedback.Recommendations, 2)
	// The 10-point quantification gap outranks the 3-point photo penalty.
	assert.Equal(t, "impact.quantification", feedback.Recommendations[0].ParameterCode)
	assert.Equal(t, 10.0, feedback.Recommendations[0].EstimatedImpact)
	assert.Equal(t, "penalty.photo", feedback.Recommendations[1].ParameterCode)
	assert.Equal(t, 3.0, feedback.Recommendations[1].EstimatedImpact)
	assert.Len(t, feedback.Weaknesses, 2)
}

func TestBuildFeedback_TinyGapsIgnored(t *testing.T) {
	results := []types.ParameterResult{
		{Code: "structure.word_count", Kind: types.KindAdditive, Points: 1.8, MaxPoints: 2},
	}

	feedback := buildFeedback(results)
	assert.Empty(t, feedback.Weaknesses)
	assert.Empty(t, feedback.Recommendations)
}

func TestBuildFeedback_CapsRecommendations(t *testing.T) {
	results := []types.ParameterResult{
		{Code: "keyword.required", Kind: types.KindAdditive, Points: 0, MaxPoints: 20},
		{Code: "impact.quantification", Kind: types.KindAdditive, Points: 0, MaxPoints: 12},
		{Code: "impact.action_verbs", Kind: types.KindAdditive, Points: 0, MaxPoints: 8},
		{Code: "polish.grammar", Kind: types.KindAdditive, Points: 0, MaxPoints: 8},
		{Code: "polish.contact", Kind: types.KindAdditive, Points: 0, MaxPoints: 7},
		{Code: "keyword.preferred", Kind: types.KindAdditive, Points: 0, MaxPoints: 6},
		{Code: "structure.page_count", Kind: types.KindAdditive, Points: 0, MaxPoints: 6},
	}

	feedback := buildFeedback(results)
	assert.Len(t, feedback.Recommendations, maxWeaknesses)
	assert.Len(t, feedback.Weaknesses, maxWeaknesses)
	// Largest recoverable gap first.
	assert.Equal(t, "keyword.required", feedback.Recommendations[0].ParameterCode)
}

func TestBuildFeedback_TieBreaksOnCode(t *testing.T) {
	results := []types.ParameterResult{
		{Code: "readability.voice", Kind: types.KindAdditive, Points: 0, MaxPoints: 3},
		{Code: "readability.buzzwords", Kind: types.KindAdditive, Points: 0, MaxPoints: 3},
	}

	feedback := buildFeedback(results)
	require.Len(t, feedback.Recommendations, 2)
	assert.Equal(t, "readability.buzzwords", feedback.Recommendations[0].ParameterCode)
	assert.Equal(t, "readability.voice", feedback.Recommendations[1].ParameterCode)
}

func TestBuildFeedback_RecommendationNamesMissingKeywords(t *testing.T) {
	results := []types.ParameterResult{
		{
			Code: "keyword.required", Kind: types.KindAdditive, Points: 4, MaxPoints: 20,
			Detail: map[string]any{"missing": []string{"kafka", "terraform"}},
		},
	}

	feedback := buildFeedback(results)
	require.Len(t, feedback.Recommendations, 1)
	assert.Contains(t, feedback.Recommendations[0].Message, "kafka")
	assert.Contains(t, feedback.Recommendations[0].Message, "terraform")
}

func TestBuildFeedback_CleanPenaltyIsNotAWeakness(t *testing.T) {
	results := []types.ParameterResult{
		{Code: "penalty.employment_gaps", Kind: types.KindPenalty, Points: 0, MaxPoints: 10},
	}

	feedback := buildFeedback(results)
	assert.Empty(t, feedback.Weaknesses)
	assert.Empty(t, feedback.Recommendations)
	// A penalty at zero is not a strength either; it is simply absent.
	assert.Empty(t, feedback.Strengths)
}

func TestDetailStrings(t *testing.T) {
	r := types.ParameterResult{Detail: map[string]any{
		"as_strings": []string{"a", "b"},
		"as_any":     []any{"c", "d", 7},
		"scalar":     "x",
	}}

	assert.Equal(t, []string{"a", "b"}, detailStrings(r, "as_strings"))
	assert.Equal(t, []string{"c", "d"}, detailStrings(r, "as_any"))
	assert.Nil(t, detailStrings(r, "scalar"))
	assert.Nil(t, detailStrings(r, "absent"))
	assert.Nil(t, detailStrings(types.ParameterResult{}, "x"))
}

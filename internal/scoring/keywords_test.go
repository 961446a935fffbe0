package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestRequiredKeywords_FullCoverage(t *testing.T) {
	in := newTestInput(t, strongBackendDoc(), "backend engineer", types.LevelMid)

	result, err := requiredKeywordScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 20.0, result.Points)
	assert.Equal(t, 20.0, result.MaxPoints)
	assert.Equal(t, types.KindAdditive, result.Kind)
	assert.Equal(t, 1.0, result.Detail["match_rate"])
	assert.Empty(t, result.Detail["missing"])
}

func TestRequiredKeywords_NoCoverage(t *testing.T) {
	in := newTestInput(t, weakDoc(), "backend engineer", types.LevelMid)

	result, err := requiredKeywordScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 0.0, result.Points)
	missing, ok := result.Detail["missing"].([]string)
	require.True(t, ok)
	assert.Len(t, missing, 5)
}

func TestRequiredKeywords_JuniorTiersAreEasier(t *testing.T) {
	// Half coverage: a mid candidate lands in the 0.6 fraction tier, a
	// junior already earns full points at the same rate.
	doc := &types.NormalizedDocument{
		Experience: []types.ExperienceEntry{
			{
				Company: "Acme", Title: "Engineer",
				Bullets: []string{
					"Built the public API for partner onboarding",
					"Wrote SQL migrations for the orders service",
				},
			},
		},
		Layout: types.LayoutMetadata{PageCount: 1, WordCount: 200},
	}
	required := []string{"api", "sql", "kafka", "terraform"}

	midIn := newTestInput(t, doc, "backend engineer", types.LevelMid)
	midIn.Profile.RequiredKeywords = required
	juniorIn := newTestInput(t, doc, "backend engineer", types.LevelJunior)
	juniorIn.Profile.RequiredKeywords = required

	midResult, err := requiredKeywordScorer{}.Score(context.Background(), midIn)
	require.NoError(t, err)
	juniorResult, err := requiredKeywordScorer{}.Score(context.Background(), juniorIn)
	require.NoError(t, err)

	assert.InDelta(t, 12.0, midResult.Points, 1e-9)
	assert.InDelta(t, 20.0, juniorResult.Points, 1e-9)
}

func TestScoreKeywordSet_EmptySetIsNeutral(t *testing.T) {
	in := newTestInput(t, weakDoc(), "backend engineer", types.LevelMid)
	in.Profile.RequiredKeywords = nil

	result, err := requiredKeywordScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, result.MaxPoints, result.Points)
	assert.Contains(t, result.Detail, "note")
}

func TestPreferredKeywords_PartialCoverage(t *testing.T) {
	in := newTestInput(t, strongBackendDoc(), "backend engineer", types.LevelMid)
	// strongBackendDoc mentions docker (skills) out of the six preferred
	// backend keywords: 1/6 is below the lowest paying tier.
	result, err := preferredKeywordScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, 6.0, result.MaxPoints)
	assert.LessOrEqual(t, result.Points, 6.0)
	assert.GreaterOrEqual(t, result.Points, 0.0)
}

func TestSkillsSection_FullCoverage(t *testing.T) {
	in := newTestInput(t, strongBackendDoc(), "backend engineer", types.LevelMid)

	result, err := skillsSectionScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	// Core backend skills (sql, rest, git, docker, linux) all appear in
	// the skills list.
	assert.Equal(t, 4.0, result.Points)
	assert.Equal(t, 1.0, result.Detail["coverage"])
}

func TestSkillsSection_MatchesSynonyms(t *testing.T) {
	doc := strongBackendDoc()
	doc.Skills = []string{"Golang", "Postgres", "RESTful", "Git", "Docker", "Linux", "SQL"}
	in := newTestInput(t, doc, "backend engineer", types.LevelMid)

	result, err := skillsSectionScorer{}.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 1.0, result.Detail["coverage"])
}

func TestSkillsSection_EmptySkillsList(t *testing.T) {
	doc := strongBackendDoc()
	doc.Skills = nil
	in := newTestInput(t, doc, "backend engineer", types.LevelMid)

	result, err := skillsSectionScorer{}.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Points)
	assert.Equal(t, 0.0, result.Detail["coverage"])
}

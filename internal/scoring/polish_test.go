package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

func TestGrammar_CleanText(t *testing.T) {
	in := newTestInput(t, strongBackendDoc(), "backend engineer", types.LevelMid)

	result, err := grammarScorer{}.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 8.0, result.Points)
	assert.Equal(t, 0, result.Detail["issue_count"])
}

func TestGrammar_DetectsIssues(t *testing.T) {
	doc := &types.NormalizedDocument{
		Experience: []types.ExperienceEntry{{
			Company: "Acme", Title: "Engineer",
			Bullets: []string{
				"Recieved the the award for best project", // misspelling + doubled word
				"I managed the rollout",                   // first person
				"maintained the build system",             // lowercase opening
			},
		}},
		Layout: types.LayoutMetadata{PageCount: 1, WordCount: 100},
	}
	in := newTestInput(t, doc, "backend engineer", types.LevelMid)

	result, err := grammarScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	// Four issues at 0.15 each leave 40% of the points.
	assert.Equal(t, 4, result.Detail["issue_count"])
	assert.InDelta(t, 8*0.4, result.Points, 1e-9)

	issues, ok := result.Detail["issues"].([]string)
	require.True(t, ok)
	assert.Len(t, issues, 4)
}

func TestGrammar_ManyIssuesFloorAtZero(t *testing.T) {
	bullets := make([]string, 8)
	for i := range bullets {
		bullets[i] = "I recieved seperate  feedback"
	}
	doc := &types.NormalizedDocument{
		Experience: []types.ExperienceEntry{{Company: "Acme", Title: "Engineer", Bullets: bullets}},
		Layout:     types.LayoutMetadata{PageCount: 1, WordCount: 100},
	}
	in := newTestInput(t, doc, "backend engineer", types.LevelMid)

	result, err := grammarScorer{}.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Points)
	assert.NoError(t, result.Validate())
}

func TestContact_AllFieldsPresent(t *testing.T) {
	in := newTestInput(t, strongBackendDoc(), "backend engineer", types.LevelMid)

	result, err := contactScorer{}.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 7.0, result.Points)
	assert.Empty(t, result.Detail["missing"])
}

func TestContact_MissingFields(t *testing.T) {
	doc := strongBackendDoc()
	doc.Contact = types.Contact{Name: "Jordan Smith", Email: "jordan@example.com"}
	in := newTestInput(t, doc, "backend engineer", types.LevelMid)

	result, err := contactScorer{}.Score(context.Background(), in)
	require.NoError(t, err)

	// email 3 + name 0.5
	assert.InDelta(t, 3.5, result.Points, 1e-9)
	missing, ok := result.Detail["missing"].([]string)
	require.True(t, ok)
	assert.Equal(t, []string{"phone", "profile_link"}, missing)
}

func TestContact_NoContactInfo(t *testing.T) {
	doc := strongBackendDoc()
	doc.Contact = types.Contact{}
	in := newTestInput(t, doc, "backend engineer", types.LevelMid)

	result, err := contactScorer{}.Score(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, 0.0, result.Points)
}

func TestDoubledWord(t *testing.T) {
	assert.Equal(t, "the", doubledWord("won the the award"))
	assert.Equal(t, "design", doubledWord("Design design reviews weekly"))
	assert.Equal(t, "", doubledWord("no repeats in here"))
	assert.Equal(t, "", doubledWord(""))
}

func TestCapList(t *testing.T) {
	items := []string{"a", "b", "c", "d"}
	assert.Equal(t, items, capList(items, 5))
	assert.Equal(t, []string{"a", "b"}, capList(items, 2))
}

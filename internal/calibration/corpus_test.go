package calibration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/types"
)

func writeBenchmark(t *testing.T, dir, file string, doc BenchmarkDoc) {
	t.Helper()
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, file), data, 0o644))
}

func benchmarkFixture(name string, target float64) BenchmarkDoc {
	return BenchmarkDoc{
		Name:    name,
		Target:  target,
		Context: types.ScoringContext{Role: "backend engineer", Level: types.LevelMid},
		Document: types.NormalizedDocument{
			Experience: []types.ExperienceEntry{
				{Company: "Acme", Title: "Engineer", Bullets: []string{"Built the API"}},
			},
			Layout: types.LayoutMetadata{PageCount: 1, WordCount: 300},
		},
	}
}

func TestLoadCorpus(t *testing.T) {
	dir := t.TempDir()
	writeBenchmark(t, dir, "beta.json", benchmarkFixture("beta", 60))
	writeBenchmark(t, dir, "alpha.json", benchmarkFixture("alpha", 80))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))

	corpus, err := LoadCorpus(dir)
	require.NoError(t, err)
	require.Len(t, corpus, 2)

	// Sorted by name regardless of directory order.
	assert.Equal(t, "alpha", corpus[0].Name)
	assert.Equal(t, "beta", corpus[1].Name)
	assert.Equal(t, 80.0, corpus[0].Target)
}

func TestLoadCorpus_NameDefaultsToFilename(t *testing.T) {
	dir := t.TempDir()
	doc := benchmarkFixture("", 50)
	writeBenchmark(t, dir, "unnamed-doc.json", doc)

	corpus, err := LoadCorpus(dir)
	require.NoError(t, err)
	require.Len(t, corpus, 1)
	assert.Equal(t, "unnamed-doc", corpus[0].Name)
}

func TestLoadCorpus_RejectsInvalidEntries(t *testing.T) {
	dir := t.TempDir()
	writeBenchmark(t, dir, "bad.json", benchmarkFixture("bad", 140))

	_, err := LoadCorpus(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside [0, 100]")
}

func TestLoadCorpus_RejectsMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{nope"), 0o644))

	_, err := LoadCorpus(dir)
	assert.Error(t, err)
}

func TestLoadCorpus_EmptyDirectory(t *testing.T) {
	_, err := LoadCorpus(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no benchmark documents")
}

func TestLoadCorpus_MissingDirectory(t *testing.T) {
	_, err := LoadCorpus(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}

func TestBenchmarkDoc_Validate(t *testing.T) {
	doc := benchmarkFixture("ok", 50)
	assert.NoError(t, doc.Validate())

	doc = benchmarkFixture("", 50)
	assert.Error(t, doc.Validate())

	doc = benchmarkFixture("bad-level", 50)
	doc.Context.Level = "staff"
	assert.Error(t, doc.Validate())

	doc = benchmarkFixture("bad-doc", 50)
	doc.Document.Layout.PageCount = -2
	assert.Error(t, doc.Validate())
}

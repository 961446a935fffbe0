package jdtext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_PlainText(t *testing.T) {
	text := Extract("Senior Backend Engineer\n\nRequirements:   Go,  SQL\n")
	assert.Equal(t, "Senior Backend Engineer\nRequirements: Go, SQL", text)
}

func TestExtract_HTML(t *testing.T) {
	html := `<!doctype html>
<html><head>
<style>body { color: red; }</style>
<script>track();</script>
</head><body>
<h1>Senior Backend Engineer</h1>
<p>We build payment infrastructure.</p>
<ul><li>5+ years with Go</li><li>PostgreSQL experience</li></ul>
</body></html>`

	text := Extract(html)

	assert.Contains(t, text, "Senior Backend Engineer")
	assert.Contains(t, text, "We build payment infrastructure.")
	assert.Contains(t, text, "5+ years with Go")
	assert.Contains(t, text, "PostgreSQL experience")
	assert.NotContains(t, text, "track()")
	assert.NotContains(t, text, "color: red")
	assert.NotContains(t, text, "<p>")
}

func TestExtract_NestedContainersNotDuplicated(t *testing.T) {
	html := `<html><body><div><div><p>Only once</p></div></div></body></html>`
	text := Extract(html)
	assert.Equal(t, "Only once", text)
}

func TestExtract_FragmentWithClosingTags(t *testing.T) {
	// Fragments without a doctype still count as HTML when they carry
	// block close tags.
	text := Extract("<div>Role: Data Engineer</div><p>Spark required</p>")
	assert.Contains(t, text, "Role: Data Engineer")
	assert.Contains(t, text, "Spark required")
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jd.html")
	require.NoError(t, os.WriteFile(path, []byte("<html><body><p>Kafka experience</p></body></html>"), 0o644))

	text, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Kafka experience", text)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

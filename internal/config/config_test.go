package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{
		"api_key": "test-key",
		"embedding_model": "text-embedding-004",
		"verbose": true
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "text-embedding-004", cfg.EmbeddingModel)
	assert.True(t, cfg.Verbose)
	assert.False(t, cfg.ExactOnly)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	assert.Error(t, err)
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadConfig_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")
	t.Setenv("DATABASE_URL", "postgres://localhost/scoring")

	cfg := &Config{}
	cfg.ApplyEnv()
	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "postgres://localhost/scoring", cfg.DatabaseURL)
}

func TestApplyEnv_FileValuesWin(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "env-key")

	cfg := &Config{APIKey: "file-key"}
	cfg.ApplyEnv()
	assert.Equal(t, "file-key", cfg.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.NoError(t, cfg.Validate())
}

func TestValidate_MissingThresholdFile(t *testing.T) {
	cfg := &Config{Thresholds: filepath.Join(t.TempDir(), "absent.json")}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "threshold table not found")
}

func TestValidate_BenchmarkDirChecks(t *testing.T) {
	cfg := &Config{BenchmarkDir: filepath.Join(t.TempDir(), "absent")}
	assert.Error(t, cfg.Validate())

	// A file where a directory is expected is also rejected.
	path := filepath.Join(t.TempDir(), "file.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0o644))
	cfg = &Config{BenchmarkDir: path}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestValidate_ExactOnlyExcludesAPIKey(t *testing.T) {
	cfg := &Config{ExactOnly: true, APIKey: "key"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")

	cfg = &Config{ExactOnly: true}
	assert.NoError(t, cfg.Validate())
}

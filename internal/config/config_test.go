// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("AMQP_URL", "")
	t.Setenv("HTTP_ADDR", "")
	t.Setenv("AZURE_OPENAI_TIMEOUT", "")

	cfg := FromEnv()

	assert.Empty(t, cfg.AMQPURL)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 30*time.Second, cfg.OpenAITimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("AZURE_OPENAI_ENDPOINT", "https://example.openai.azure.com")
	t.Setenv("AZURE_OPENAI_API_KEY", "secret")
	t.Setenv("AZURE_OPENAI_TIMEOUT", "10s")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg := FromEnv()

	assert.Equal(t, "https://example.openai.azure.com", cfg.OpenAIEndpoint)
	assert.Equal(t, "secret", cfg.OpenAIAPIKey)
	assert.Equal(t, 10*time.Second, cfg.OpenAITimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
}

func TestDefaultPipeline(t *testing.T) {
	p := DefaultPipeline()

	assert.Len(t, p.Sources, 7)
	assert.Equal(t, 15, p.TopTokens)
	assert.Equal(t, 45, p.HorizonDays)
	assert.Equal(t, 10, p.TopVerticals)
	assert.Equal(t, 3, p.EventsPerVertical)
	assert.True(t, p.UsePromoExclusions)
	assert.Equal(t, "marcom-output", p.OutputDir)
}

func TestLoadPipelineMergesOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "pipeline.yaml")
	body := `sources:
  - one.csv
top_tokens: 5
horizon_days: 30
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	p, err := LoadPipeline(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"one.csv"}, p.Sources)
	assert.Equal(t, 5, p.TopTokens)
	assert.Equal(t, 30, p.HorizonDays)
	// Untouched fields keep their defaults.
	assert.Equal(t, 10, p.TopVerticals)
	assert.Equal(t, "marcom-output", p.OutputDir)
}

func TestLoadPipelineMissingFile(t *testing.T) {
	_, err := LoadPipeline("does-not-exist.yaml")
	assert.Error(t, err)
}

func TestLoadPipelineEmptyPath(t *testing.T) {
	p, err := LoadPipeline("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPipeline(), p)
}

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(content), 0o644))
	return dir
}

func TestLoadConfig_DefaultsAndBadges(t *testing.T) {
	uploads := filepath.Join(t.TempDir(), "uploads")
	dir := writeYAML(t, `
database:
  driver: sqlite
  path: test.db
storage:
  type: local
  local_path: `+uploads+`
badges:
  - id: 1
    name: Mulai
    points: 5
    metric: correct_count
    threshold: 1
  - id: 2
    name: Ceria
    points: 15
    metric: emotion
    emotion: happy
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, 0.5, cfg.Classifier.Threshold)
	assert.Equal(t, 600, cfg.Redis.NarrativeTTL)
	assert.Equal(t, "https://api.openai.com/v1", cfg.AI.BaseURL)
	require.Len(t, cfg.Badges, 2)
	assert.Equal(t, "emotion", cfg.Badges[1].Metric)
	assert.Equal(t, "happy", cfg.Badges[1].Emotion)

	assert.DirExists(t, uploads)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("DATABASE_DRIVER", "mysql")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("CLASSIFIER_URL", "http://classifier:5001")

	dir := writeYAML(t, `
storage:
  type: local
  local_path: `+t.TempDir()+`
`)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "mysql", cfg.Database.Driver)
	assert.Equal(t, "sk-test", cfg.AI.APIKey)
	assert.Equal(t, "http://classifier:5001", cfg.Classifier.URL)
}

func TestLoadConfig_Validation(t *testing.T) {
	tests := map[string]string{
		"driver":    "database:\n  driver: oracle\n",
		"storage":   "storage:\n  type: s3\n",
		"threshold": "classifier:\n  threshold: 1.5\n",
	}
	for name, content := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeYAML(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

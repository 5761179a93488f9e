package bot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: \"123:abc\"\n  creator_id: 9\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, int64(9), cfg.CoreConfig().Telegram.CreatorID)
	assert.Equal(t, SourceFile, cfg.Questions.Source)
	assert.Equal(t, defaultQuestionsFile, cfg.Questions.File)
	assert.False(t, cfg.UsesDatabase())
	assert.Empty(t, cfg.Metrics.Listen)
}

func TestLoadDatabaseSource(t *testing.T) {
	path := writeConfig(t, `
telegram:
  token: "123:abc"
questions:
  source: Database
  seed_file: questions.txt
database:
  host: localhost
  name: interview
metrics:
  listen: ":9100"
`)
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.Equal(t, ":9100", cfg.Metrics.Listen)
}

func TestNormalizeRejectsBadSource(t *testing.T) {
	cfg := &Config{}
	cfg.Telegram.Token = "t"
	cfg.Questions.Source = "s3"
	assert.Error(t, cfg.Normalize())

	cfg.Questions.Source = SourceDatabase
	assert.Error(t, cfg.Normalize(), "database source without connection settings")
}

func TestLoadEnvQuestionsFile(t *testing.T) {
	path := writeConfig(t, "telegram:\n  token: \"123:abc\"\n")
	t.Setenv("QUESTIONS_FILE", "/srv/questions.txt")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/srv/questions.txt", cfg.Questions.File)
}

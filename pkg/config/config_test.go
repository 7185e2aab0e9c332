package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "vocabulary.json", cfg.Lexicon.Source)
	assert.Equal(t, "tr", cfg.LocaleTag().String())
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout())
	assert.Equal(t, "pink", cfg.Render.HighlightClass)
	assert.Equal(t, "clickable-word", cfg.Render.ClickableClass)
	assert.Equal(t, 60, cfg.Server.MaxQuery)
	assert.True(t, cfg.CLI.ShowGhost)
}

func TestInitConfigCreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg, err := InitConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.FileExists(t, path)

	again, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), again)
}

func TestLoadConfigKeepsMissingDefaults(t *testing.T) {
	path := writeConfig(t, "[server]\nmax_query = 10\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 10, cfg.Server.MaxQuery)
	assert.Equal(t, "tr", cfg.Lexicon.Locale)
	assert.Equal(t, "pink", cfg.Render.HighlightClass)
}

func TestLoadConfigPartialRecovery(t *testing.T) {
	path := writeConfig(t, `
[lexicon]
locale = "en"
source = "https://example.org/vocabulary.json"

[server]
max_query = "long"

[cli]
show_ghost = false
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Lexicon.Locale)
	assert.Equal(t, "https://example.org/vocabulary.json", cfg.Lexicon.Source)
	assert.Equal(t, 60, cfg.Server.MaxQuery, "bad value falls back to default")
	assert.False(t, cfg.CLI.ShowGhost)
}

func TestLoadConfigUnparseable(t *testing.T) {
	path := writeConfig(t, "[lexicon\nlocale = ")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigWithPriorityCustomPath(t *testing.T) {
	path := writeConfig(t, "[render]\nhighlight_class = \"hl\"\n")

	cfg, active, err := LoadConfigWithPriority(path)
	require.NoError(t, err)
	assert.Equal(t, path, active)
	assert.Equal(t, "hl", cfg.Render.HighlightClass)
	assert.Equal(t, path, GetActiveConfigPath(active))
}

func TestLocaleTagFallback(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Lexicon.Locale = "not a locale!"
	assert.Equal(t, "tr", cfg.LocaleTag().String())

	cfg.Lexicon.Locale = "en"
	assert.Equal(t, "en", cfg.LocaleTag().String())
}

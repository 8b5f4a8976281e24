package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	in := &Config{
		Confluence: ConfluenceConfig{
			BaseURL:  "https://example.atlassian.net",
			Email:    "dev@example.com",
			APIToken: "token",
			SpaceKey: "DOC",
			ParentID: "1000",
		},
		Gemini: GeminiConfig{APIKey: "gkey", Model: "gemini-2.5-flash"},
		Notion: NotionConfig{APIKey: "nkey", DatabaseID: "db-1"},
	}
	require.NoError(t, Save(path, in))

	out, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestLoad_MissingFileYieldsEmptyConfig(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	require.NoError(t, err)
	assert.Empty(t, cfg.Confluence.BaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, Save(path, &Config{
		Confluence: ConfluenceConfig{BaseURL: "https://file.example.com"},
	}))

	t.Setenv(EnvConfluenceBaseURL, "https://env.example.com")
	t.Setenv(EnvGeminiAPIKey, "env-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.Confluence.BaseURL)
	assert.Equal(t, "env-key", cfg.Gemini.APIKey)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	assert.ErrorContains(t, cfg.Validate(), "confluence.base_url")

	cfg.Confluence.BaseURL = "https://example.atlassian.net"
	assert.ErrorContains(t, cfg.Validate(), "confluence.space_key")

	cfg.Confluence.SpaceKey = "DOC"
	assert.ErrorContains(t, cfg.Validate(), "gemini.api_key")

	cfg.Gemini.APIKey = "k"
	assert.NoError(t, cfg.Validate())
}

func TestMirrorConfigured(t *testing.T) {
	cfg := &Config{}
	assert.False(t, cfg.MirrorConfigured())

	cfg.Notion.APIKey = "k"
	assert.False(t, cfg.MirrorConfigured())

	cfg.Notion.DatabaseID = "db"
	assert.True(t, cfg.MirrorConfigured())
}

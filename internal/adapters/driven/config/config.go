// Package config loads and persists the TOML configuration file.
// Configuration is stored in ~/.inkwell/config.toml unless overridden;
// environment variables take precedence over file values for secrets.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Config is the full application configuration.
type Config struct {
	Confluence ConfluenceConfig `toml:"confluence"`
	Gemini     GeminiConfig     `toml:"gemini"`
	Notion     NotionConfig     `toml:"notion"`
	History    HistoryConfig    `toml:"history"`
}

// ConfluenceConfig configures the wiki store connector.
type ConfluenceConfig struct {
	BaseURL  string `toml:"base_url"`
	Email    string `toml:"email"`
	APIToken string `toml:"api_token"`
	SpaceKey string `toml:"space_key"`
	ParentID string `toml:"parent_id"`
}

// GeminiConfig configures the rewrite connector.
type GeminiConfig struct {
	APIKey string `toml:"api_key"`
	Model  string `toml:"model,omitempty"`
}

// NotionConfig configures the optional mirror publisher.
type NotionConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	DatabaseID string `toml:"database_id,omitempty"`
	RelationID string `toml:"relation_id,omitempty"`
}

// HistoryConfig configures the publish history ledger.
type HistoryConfig struct {
	// DataDir holds the ledger database. Empty selects the default
	// under the config directory; "off" disables durable history.
	DataDir string `toml:"data_dir,omitempty"`
}

// DefaultPath returns the default config file location, ~/.inkwell/config.toml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".inkwell", "config.toml"), nil
}

// Load reads configuration from path (DefaultPath when empty) and applies
// environment overrides. A missing file yields an empty config so that
// env-only setups work.
func Load(path string) (*Config, error) {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	cfg := &Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	} else if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	applyEnv(cfg)
	return cfg, nil
}

// Save writes configuration to path (DefaultPath when empty) with
// restricted permissions, creating the directory if needed.
func Save(path string, cfg *Config) error {
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return err
		}
		path = p
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Environment variable overrides, checked at load time.
const (
	EnvConfluenceBaseURL = "INKWELL_CONFLUENCE_BASE_URL"
	EnvConfluenceEmail   = "INKWELL_CONFLUENCE_EMAIL"
	EnvConfluenceToken   = "INKWELL_CONFLUENCE_API_TOKEN"
	EnvConfluenceSpace   = "INKWELL_CONFLUENCE_SPACE_KEY"
	EnvConfluenceParent  = "INKWELL_CONFLUENCE_PARENT_ID"
	EnvGeminiAPIKey      = "INKWELL_GEMINI_API_KEY"
	EnvGeminiModel       = "INKWELL_GEMINI_MODEL"
	EnvNotionAPIKey      = "INKWELL_NOTION_API_KEY"
	EnvNotionDatabaseID  = "INKWELL_NOTION_DATABASE_ID"
	EnvNotionRelationID  = "INKWELL_NOTION_RELATION_ID"
)

func applyEnv(cfg *Config) {
	override(&cfg.Confluence.BaseURL, EnvConfluenceBaseURL)
	override(&cfg.Confluence.Email, EnvConfluenceEmail)
	override(&cfg.Confluence.APIToken, EnvConfluenceToken)
	override(&cfg.Confluence.SpaceKey, EnvConfluenceSpace)
	override(&cfg.Confluence.ParentID, EnvConfluenceParent)
	override(&cfg.Gemini.APIKey, EnvGeminiAPIKey)
	override(&cfg.Gemini.Model, EnvGeminiModel)
	override(&cfg.Notion.APIKey, EnvNotionAPIKey)
	override(&cfg.Notion.DatabaseID, EnvNotionDatabaseID)
	override(&cfg.Notion.RelationID, EnvNotionRelationID)
}

func override(field *string, env string) {
	if v := os.Getenv(env); v != "" {
		*field = v
	}
}

// Validate reports the first missing required field. Mirror settings are
// optional, history is optional.
func (c *Config) Validate() error {
	switch {
	case c.Confluence.BaseURL == "":
		return fmt.Errorf("confluence.base_url is required (run: inkwell configure)")
	case c.Confluence.SpaceKey == "":
		return fmt.Errorf("confluence.space_key is required (run: inkwell configure)")
	case c.Gemini.APIKey == "":
		return fmt.Errorf("gemini.api_key is required (run: inkwell configure)")
	}
	return nil
}

// MirrorConfigured reports whether the optional mirror is fully configured.
func (c *Config) MirrorConfigured() bool {
	return c.Notion.APIKey != "" && c.Notion.DatabaseID != ""
}

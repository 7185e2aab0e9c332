/*
Package config manages TOML config for lexserve.
*/
package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/bastiangx/lexserve/internal/utils"
	"github.com/charmbracelet/log"
	"golang.org/x/text/language"
)

// Config holds the entire config structure
type Config struct {
	Lexicon LexiconConfig `toml:"lexicon"`
	Render  RenderConfig  `toml:"render"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// LexiconConfig says where the document lives and how headwords are ordered.
type LexiconConfig struct {
	Source         string `toml:"source"`
	Locale         string `toml:"locale"`
	FetchTimeoutMs int    `toml:"fetch_timeout_ms"`
}

// RenderConfig holds the class names written into rendered markup.
type RenderConfig struct {
	HighlightClass  string `toml:"highlight_class"`
	ClickableClass  string `toml:"clickable_class"`
	SearchableClass string `toml:"searchable_class"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxQuery int `toml:"max_query"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ShowGhost bool `toml:"show_ghost"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Lexicon: LexiconConfig{
			Source:         "vocabulary.json",
			Locale:         "tr",
			FetchTimeoutMs: 10000,
		},
		Render: RenderConfig{
			HighlightClass:  "pink",
			ClickableClass:  "clickable-word",
			SearchableClass: "searchable",
		},
		Server: ServerConfig{
			MaxQuery: 60,
		},
		CLI: CliConfig{
			ShowGhost: true,
		},
	}
}

// LocaleTag parses the configured collation locale, falling back to Turkish.
func (c *Config) LocaleTag() language.Tag {
	tag, err := language.Parse(c.Lexicon.Locale)
	if err != nil {
		log.Warnf("Invalid locale %q: %v. Using tr", c.Lexicon.Locale, err)
		return language.Turkish
	}
	return tag
}

// FetchTimeout returns the lexicon fetch timeout as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.Lexicon.FetchTimeoutMs) * time.Millisecond
}

// GetDefaultConfigPath returns <UserConfigDir>/lexserve/config.toml
func GetDefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "lexserve", "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/lexserve/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	if !utils.FileExists(configPath) {
		if status := utils.CheckDirStatus(filepath.Dir(configPath)); !status.Writable {
			log.Warnf("Config directory for %s is not writable: %v. Using built-in defaults...", configPath, status.Err)
			return DefaultConfig(), nil
		}
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return config, nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}
	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file. Keys missing from the file keep their
// defaults; a file that fails to decode is salvaged section by section.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse extracts whatever sections still parse with the right types.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	raw, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(raw, "lexicon"); ok {
		if v, ok := utils.ExtractString(section, "source"); ok {
			config.Lexicon.Source = v
		}
		if v, ok := utils.ExtractString(section, "locale"); ok {
			config.Lexicon.Locale = v
		}
		if v, ok := utils.ExtractInt64(section, "fetch_timeout_ms"); ok {
			config.Lexicon.FetchTimeoutMs = v
		}
	}
	if section, ok := utils.ExtractSection(raw, "render"); ok {
		if v, ok := utils.ExtractString(section, "highlight_class"); ok {
			config.Render.HighlightClass = v
		}
		if v, ok := utils.ExtractString(section, "clickable_class"); ok {
			config.Render.ClickableClass = v
		}
		if v, ok := utils.ExtractString(section, "searchable_class"); ok {
			config.Render.SearchableClass = v
		}
	}
	if section, ok := utils.ExtractSection(raw, "server"); ok {
		if v, ok := utils.ExtractInt64(section, "max_query"); ok {
			config.Server.MaxQuery = v
		}
	}
	if section, ok := utils.ExtractSection(raw, "cli"); ok {
		if v, ok := utils.ExtractBool(section, "show_ghost"); ok {
			config.CLI.ShowGhost = v
		}
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.AbsolutePath(configPath)
}

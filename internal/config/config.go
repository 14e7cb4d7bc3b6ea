// Package config loads the TOML configuration for the mpt CLI.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Paths holds the storage layout root.
type Paths struct {
	Root string `toml:"root"`
}

// Split controls word-level caption output.
type Split struct {
	Uppercase   bool   `toml:"uppercase"`
	Language    string `toml:"language"`
	Suffix      string `toml:"suffix"`
	Format      string `toml:"format"`
	Concurrency int    `toml:"concurrency"`
}

// Translate configures the LLM providers used to translate captions.
type Translate struct {
	Provider        string `toml:"provider"`
	Model           string `toml:"model"`
	GeminiAPIKey    string `toml:"gemini_api_key"`
	OpenAIAPIKey    string `toml:"openai_api_key"`
	AnthropicAPIKey string `toml:"anthropic_api_key"`
	BatchSize       int    `toml:"batch_size"`
	Concurrency     int    `toml:"concurrency"`
	RateLimit       int    `toml:"rate_limit_rpm"`
}

// Video configures subtitle burn-in.
type Video struct {
	FFmpegPath string `toml:"ffmpeg_path"`
	FontName   string `toml:"font_name"`
	FontSize   int    `toml:"font_size"`
}

// Config is the full mpt configuration.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Split     Split     `toml:"split"`
	Translate Translate `toml:"translate"`
	Video     Video     `toml:"video"`
}

const (
	defaultSuffix      = ".words"
	defaultFormat      = "srt"
	defaultProvider    = "gemini"
	defaultBatchSize   = 50
	defaultConcurrency = 3
	defaultFontName    = "Arial"
	defaultFontSize    = 20
)

// Default returns the built-in configuration.
func Default() Config {
	root := "."
	if wd, err := os.Getwd(); err == nil {
		root = wd
	}
	return Config{
		Paths: Paths{Root: root},
		Split: Split{
			Uppercase:   true,
			Suffix:      defaultSuffix,
			Format:      defaultFormat,
			Concurrency: defaultConcurrency,
		},
		Translate: Translate{
			Provider:    defaultProvider,
			BatchSize:   defaultBatchSize,
			Concurrency: defaultConcurrency,
		},
		Video: Video{
			FontName: defaultFontName,
			FontSize: defaultFontSize,
		},
	}
}

// Load locates, parses, and validates a configuration file. A missing file
// is not an error; the defaults are used and exists is false.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := ExpandPath(path)
		if err != nil {
			return "", false, err
		}
		if _, err := os.Stat(expanded); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	projectPath, err := filepath.Abs("mpt.toml")
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}
	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}

	return defaultPath, false, nil
}

// DefaultConfigPath returns the per-user configuration file location.
func DefaultConfigPath() (string, error) {
	return ExpandPath("~/.config/mpt/config.toml")
}

// ExpandPath resolves a leading ~ and returns an absolute, cleaned path.
func ExpandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	absolute, err := filepath.Abs(filepath.Clean(pathValue))
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", pathValue, err)
	}
	return absolute, nil
}

// APIKey returns the configured key for a translation provider.
func (c *Config) APIKey(provider string) string {
	switch strings.ToLower(provider) {
	case "gemini":
		return c.Translate.GeminiAPIKey
	case "openai":
		return c.Translate.OpenAIAPIKey
	case "anthropic":
		return c.Translate.AnthropicAPIKey
	default:
		return ""
	}
}

// Marshal renders the configuration as TOML.
func (c *Config) Marshal() ([]byte, error) {
	return toml.Marshal(c)
}

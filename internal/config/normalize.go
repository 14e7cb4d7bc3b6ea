package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeSplit()
	c.normalizeTranslate()
	c.normalizeVideo()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := lookupEnv("MPT_ROOT"); ok {
		c.Paths.Root = value
	}
	root, err := ExpandPath(strings.TrimSpace(c.Paths.Root))
	if err != nil {
		return fmt.Errorf("paths.root: %w", err)
	}
	c.Paths.Root = root
	return nil
}

func (c *Config) normalizeSplit() {
	c.Split.Language = strings.TrimSpace(c.Split.Language)
	if c.Split.Suffix == "" {
		c.Split.Suffix = defaultSuffix
	}
	c.Split.Format = strings.ToLower(strings.TrimSpace(c.Split.Format))
	if c.Split.Format == "" {
		c.Split.Format = defaultFormat
	}
	if c.Split.Concurrency == 0 {
		c.Split.Concurrency = defaultConcurrency
	}
}

func (c *Config) normalizeTranslate() {
	c.Translate.Provider = strings.ToLower(strings.TrimSpace(c.Translate.Provider))
	if c.Translate.Provider == "" {
		c.Translate.Provider = defaultProvider
	}
	c.Translate.Model = strings.TrimSpace(c.Translate.Model)
	if c.Translate.GeminiAPIKey == "" {
		c.Translate.GeminiAPIKey, _ = lookupEnv("GEMINI_API_KEY")
	}
	if c.Translate.OpenAIAPIKey == "" {
		c.Translate.OpenAIAPIKey, _ = lookupEnv("OPENAI_API_KEY")
	}
	if c.Translate.AnthropicAPIKey == "" {
		c.Translate.AnthropicAPIKey, _ = lookupEnv("ANTHROPIC_API_KEY")
	}
	if c.Translate.BatchSize == 0 {
		c.Translate.BatchSize = defaultBatchSize
	}
	if c.Translate.Concurrency == 0 {
		c.Translate.Concurrency = defaultConcurrency
	}
}

func (c *Config) normalizeVideo() {
	if c.Video.FFmpegPath == "" {
		c.Video.FFmpegPath, _ = lookupEnv("MPT_FFMPEG_PATH")
	}
	c.Video.FFmpegPath = strings.TrimSpace(c.Video.FFmpegPath)
	c.Video.FontName = strings.TrimSpace(c.Video.FontName)
	if c.Video.FontName == "" {
		c.Video.FontName = defaultFontName
	}
	if c.Video.FontSize == 0 {
		c.Video.FontSize = defaultFontSize
	}
}

func lookupEnv(key string) (string, bool) {
	value, ok := os.LookupEnv(key)
	value = strings.TrimSpace(value)
	return value, ok && value != ""
}

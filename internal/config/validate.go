package config

import (
	"errors"
	"fmt"
)

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error

	if c.Paths.Root == "" {
		errs = append(errs, errors.New("paths.root must be set"))
	}

	switch c.Split.Format {
	case "srt", "vtt", "ass", "ssa":
	default:
		errs = append(errs, fmt.Errorf("split.format: unsupported format %q", c.Split.Format))
	}
	if c.Split.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("split.concurrency must be positive, got %d", c.Split.Concurrency))
	}

	switch c.Translate.Provider {
	case "gemini", "openai", "anthropic":
	default:
		errs = append(errs, fmt.Errorf("translate.provider: unsupported provider %q", c.Translate.Provider))
	}
	if c.Translate.BatchSize < 1 {
		errs = append(errs, fmt.Errorf("translate.batch_size must be positive, got %d", c.Translate.BatchSize))
	}
	if c.Translate.Concurrency < 1 {
		errs = append(errs, fmt.Errorf("translate.concurrency must be positive, got %d", c.Translate.Concurrency))
	}
	if c.Translate.RateLimit < 0 {
		errs = append(errs, fmt.Errorf("translate.rate_limit_rpm must not be negative, got %d", c.Translate.RateLimit))
	}

	if c.Video.FontSize < 1 {
		errs = append(errs, fmt.Errorf("video.font_size must be positive, got %d", c.Video.FontSize))
	}

	return errors.Join(errs...)
}

package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds all environment-driven settings for a pipeline run.
// OPENAI_API_KEY is the only required value; everything else has a
// sensible default.
type Config struct {
	// OpenAIKey authenticates the DALL-E image generation backend.
	OpenAIKey string `env:"OPENAI_API_KEY"`

	// GeminiKey authenticates the Gemini translation backend. Optional:
	// without it, localization falls back to the original message text.
	GeminiKey string `env:"GEMINI_API_KEY"`

	// MaxRetries is the total number of image generation attempts per
	// product before the failure is surfaced.
	MaxRetries int `env:"GENERATION_MAX_RETRIES" envDefault:"3"`

	// RetryDelay is the wait between generation attempts.
	RetryDelay time.Duration `env:"GENERATION_RETRY_DELAY" envDefault:"0s"`

	// ContinueOnError keeps the run going when a single product fails to
	// generate. The failed product is reported with source "unknown" and
	// no variants. When false (the default) the whole run aborts.
	ContinueOnError bool `env:"CONTINUE_ON_ERROR" envDefault:"false"`

	// ComplianceRatio names the aspect ratio whose render is used for the
	// once-per-product brand compliance check.
	ComplianceRatio string `env:"COMPLIANCE_RATIO" envDefault:"square"`

	// MinResolution optionally enables a minimum resolution compliance
	// check, given as "WIDTHxHEIGHT" (e.g. "1080x1080"). Empty disables it.
	MinResolution string `env:"COMPLIANCE_MIN_RESOLUTION"`

	// AIModeration enables the OpenAI moderation API as an additional
	// text check next to the keyword filter.
	AIModeration bool `env:"AI_MODERATION" envDefault:"false"`
}

// LoadConfig parses the configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, &ConfigError{Reason: fmt.Sprintf("failed to parse environment: %v", err)}
	}
	return cfg, nil
}

// Validate reports configuration problems that must stop the run before
// any campaign work happens.
func (c Config) Validate() error {
	if c.OpenAIKey == "" {
		return &ConfigError{Reason: "OPENAI_API_KEY environment variable not set (set it in the environment or a .env file)"}
	}
	if c.MaxRetries < 1 {
		return &ConfigError{Reason: fmt.Sprintf("GENERATION_MAX_RETRIES must be at least 1, got %d", c.MaxRetries)}
	}
	if c.ComplianceRatio == "" {
		return &ConfigError{Reason: "COMPLIANCE_RATIO must not be empty"}
	}
	if c.MinResolution != "" {
		if _, _, ok := c.MinResolutionBounds(); !ok {
			return &ConfigError{Reason: fmt.Sprintf("COMPLIANCE_MIN_RESOLUTION must look like 1080x1080, got %q", c.MinResolution)}
		}
	}
	return nil
}

// MinResolutionBounds parses the MinResolution setting. The boolean is
// false when the setting is empty or malformed.
func (c Config) MinResolutionBounds() (width, height int, ok bool) {
	w, h, found := strings.Cut(c.MinResolution, "x")
	if !found {
		return 0, 0, false
	}
	width, errW := strconv.Atoi(strings.TrimSpace(w))
	height, errH := strconv.Atoi(strings.TrimSpace(h))
	if errW != nil || errH != nil || width < 1 || height < 1 {
		return 0, 0, false
	}
	return width, height, true
}

// DefaultAspectRatios returns the fixed output formats every product is
// rendered into, in configuration order.
func DefaultAspectRatios() []AspectRatio {
	return []AspectRatio{
		{Name: "square", Width: 1080, Height: 1080},
		{Name: "story", Width: 1080, Height: 1920},
		{Name: "landscape", Width: 1920, Height: 1080},
	}
}

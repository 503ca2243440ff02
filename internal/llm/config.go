// Package llm defines the generation gateway collaborator: the request shape,
// model tier selection and an HTTP client for a gateway service.
package llm

import (
	"time"

	"github.com/jonathan/resume-studio/internal/types"
)

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for simple tasks: classification, extraction, basic summarization
	TierLite ModelTier = "lite"
	// TierStandard is for moderate reasoning: parsing, structured output
	TierStandard ModelTier = "standard"
	// TierAdvanced is for complex reasoning: rewriting, long-form generation
	TierAdvanced ModelTier = "advanced"
)

// Config holds the gateway location and the model used for each tier.
type Config struct {
	GatewayURL  string
	Timeout     time.Duration
	MaxAttempts uint
	Models      map[ModelTier]string
}

// DefaultConfig returns the default configuration without a gateway URL.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     60 * time.Second,
		MaxAttempts: 3,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := *c
	newConfig.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return &newConfig
}

// TierFor picks the model tier for a mode.
func TierFor(mode types.Mode) ModelTier {
	switch mode {
	case types.ModeATS:
		return TierLite
	case types.ModeCover, types.ModeRewrite:
		return TierAdvanced
	default:
		return TierStandard
	}
}

// TemperatureFor picks the sampling temperature for a mode. Scoring and
// parsing stay near-deterministic; writing tasks get more room.
func TemperatureFor(mode types.Mode) float32 {
	switch mode {
	case types.ModeATS, types.ModeATSAudit:
		return 0.1
	case types.ModeAnalysis, types.ModeMatch:
		return 0.3
	case types.ModeInterview:
		return 0.5
	case types.ModeRewrite, types.ModeCover:
		return 0.7
	default:
		return 0.3
	}
}

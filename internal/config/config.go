// Package config provides configuration loading and validation for the server.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-studio/internal/llm"
	"github.com/jonathan/resume-studio/internal/workspace"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, with dots in keys
// replaced by underscores (RESUME_STUDIO_GATEWAY_URL for gateway.url).
const EnvPrefix = "RESUME_STUDIO"

var validate = validator.New()

// Config is the full server configuration.
type Config struct {
	Port    int           `mapstructure:"port" validate:"min=1,max=65535"`
	Session SessionConfig `mapstructure:"session"`
	Token   TokenConfig   `mapstructure:"token"`
	Gateway GatewayConfig `mapstructure:"gateway"`
}

// SessionConfig bounds editing sessions.
type SessionConfig struct {
	TTL           time.Duration `mapstructure:"ttl"`
	MaxSessions   int           `mapstructure:"max_sessions" validate:"gte=0"`
	HistoryLimit  int           `mapstructure:"history_limit" validate:"gte=0"`
	SweepInterval time.Duration `mapstructure:"sweep_interval"`
}

// GatewayConfig locates the generation gateway. An empty URL disables the
// run and audit endpoints.
type GatewayConfig struct {
	URL         string        `mapstructure:"url" validate:"omitempty,url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxAttempts uint          `mapstructure:"max_attempts" validate:"min=1,max=10"`
	Models      ModelsConfig  `mapstructure:"models"`
}

// ModelsConfig names the model used for each tier.
type ModelsConfig struct {
	Lite     string `mapstructure:"lite" validate:"required"`
	Standard string `mapstructure:"standard" validate:"required"`
	Advanced string `mapstructure:"advanced" validate:"required"`
}

func setDefaults(v *viper.Viper) {
	llmDefaults := llm.DefaultConfig()
	wsDefaults := workspace.DefaultConfig()

	v.SetDefault("port", 8080)

	v.SetDefault("session.ttl", wsDefaults.TTL)
	v.SetDefault("session.max_sessions", wsDefaults.MaxSessions)
	v.SetDefault("session.history_limit", wsDefaults.HistoryLimit)
	v.SetDefault("session.sweep_interval", wsDefaults.SweepInterval)

	v.SetDefault("token.secret", "")
	v.SetDefault("token.expiration", DefaultTokenExpiration)

	v.SetDefault("gateway.url", "")
	v.SetDefault("gateway.timeout", llmDefaults.Timeout)
	v.SetDefault("gateway.max_attempts", llmDefaults.MaxAttempts)
	v.SetDefault("gateway.models.lite", llmDefaults.Models[llm.TierLite])
	v.SetDefault("gateway.models.standard", llmDefaults.Models[llm.TierStandard])
	v.SetDefault("gateway.models.advanced", llmDefaults.Models[llm.TierAdvanced])
}

// Load reads configuration from defaults, the optional file at path (YAML,
// JSON or TOML by extension) and RESUME_STUDIO_* environment variables, in
// increasing order of precedence. JWT_SECRET is accepted as a fallback for
// token.secret.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("token.secret", EnvPrefix+"_TOKEN_SECRET", "JWT_SECRET"); err != nil {
		return nil, fmt.Errorf("failed to bind token secret: %w", err)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("config error: 'session.ttl' must be non-negative")
	}
	if c.Session.SweepInterval < 0 {
		return fmt.Errorf("config error: 'session.sweep_interval' must be non-negative")
	}
	if c.Gateway.Timeout <= 0 {
		return fmt.Errorf("config error: 'gateway.timeout' must be positive")
	}
	return c.Token.normalize()
}

// GatewayEnabled reports whether a gateway URL is configured.
func (c *Config) GatewayEnabled() bool {
	return c.Gateway.URL != ""
}

// LLM returns the gateway client configuration.
func (c *Config) LLM() *llm.Config {
	return &llm.Config{
		GatewayURL:  c.Gateway.URL,
		Timeout:     c.Gateway.Timeout,
		MaxAttempts: c.Gateway.MaxAttempts,
		Models: map[llm.ModelTier]string{
			llm.TierLite:     c.Gateway.Models.Lite,
			llm.TierStandard: c.Gateway.Models.Standard,
			llm.TierAdvanced: c.Gateway.Models.Advanced,
		},
	}
}

// Workspace returns the session manager configuration.
func (c *Config) Workspace() workspace.Config {
	return workspace.Config{
		HistoryLimit:  c.Session.HistoryLimit,
		TTL:           c.Session.TTL,
		MaxSessions:   c.Session.MaxSessions,
		SweepInterval: c.Session.SweepInterval,
	}
}

// RecommendedHistoryLimit is a per-field history bound suitable for a shared
// deployment. The default stays unbounded.
const RecommendedHistoryLimit = 500

// Warnings lists settings that are valid but leave memory use unbounded on a
// server reachable by untrusted clients.
func (c *Config) Warnings() []string {
	var warnings []string
	if c.Session.HistoryLimit == 0 {
		warnings = append(warnings, fmt.Sprintf(
			"session.history_limit is 0: every committed field value is kept until the session expires; set it (e.g. %d) for shared deployments",
			RecommendedHistoryLimit))
	}
	if c.Session.TTL == 0 {
		warnings = append(warnings, "session.ttl is 0: idle sessions are never expired")
	}
	if c.Session.MaxSessions == 0 {
		warnings = append(warnings, "session.max_sessions is 0: the number of open sessions is not capped")
	}
	return warnings
}

package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, path.Match glob, or prefix ending in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	defaultLimit := getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000)
	defaultWindow := getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute)
	cleanupInterval := getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute)

	whitelist := parseIPList(getEnvString("RATE_LIMIT_WHITELIST", ""))
	blacklist := parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", ""))

	endpoints := DefaultEndpointConfigs()
	runLimit := getEnvInt("RATE_LIMIT_RUN_LIMIT", 0)
	runWindow := getEnvDuration("RATE_LIMIT_RUN_WINDOW", 0)
	for i := range endpoints {
		if !isGenerationEndpoint(endpoints[i].Path) {
			continue
		}
		if runLimit > 0 {
			endpoints[i].Limit = runLimit
		}
		if runWindow > 0 {
			endpoints[i].Window = runWindow
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: cleanupInterval,
		Whitelist:       whitelist,
		Blacklist:       blacklist,
		EndpointConfigs: endpoints,
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: Generation requests (strictest limits)
		{Path: "/sessions/*/run", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/sessions/*/audit", Method: "POST", Limit: 30, Window: time.Hour, Burst: 5},

		// Tier 2: Session creation
		{Path: "/sessions", Method: "POST", Limit: 20, Window: time.Minute, Burst: 5},

		// Tier 3: Editing (typing commits every keystroke, so lenient)
		{Path: "/sessions/*/fields/*", Method: "PUT", Limit: 1200, Window: time.Minute, Burst: 120},
		{Path: "/sessions/*/fields/*/undo", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},
		{Path: "/sessions/*/fields/*/redo", Method: "POST", Limit: 600, Window: time.Minute, Burst: 60},

		// Tier 4: Reads - handled by default limit
		// Tier 5: Health check (unlimited) - handled by special case in matcher
	}
}

func isGenerationEndpoint(p string) bool {
	return strings.HasSuffix(p, "/run") || strings.HasSuffix(p, "/audit")
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a map.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	if list == "" {
		return result
	}

	ips := strings.Split(list, ",")
	for _, ip := range ips {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}

	return result
}


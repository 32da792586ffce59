package ratelimit

import (
	"strings"
	"time"

	"github.com/jonathan/dev-portfolio/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Exact path, or a prefix when it ends in "/"
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	if !config.EnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    config.EnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   config.EnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: config.EnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTimeout:     config.EnvDuration("RATE_LIMIT_IDLE_TIMEOUT", time.Hour),
		Whitelist:       parseIPList(config.EnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(config.EnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
// Limits follow what each route costs upstream: README and repository
// listings spend GitHub API quota (60 requests an hour unauthenticated), and
// resume routes can trigger a download plus a parse on a cache miss.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: one GitHub call per request, no cache in front.
		// The prefix rule covers every README route.
		{Path: "/api/repos/", Method: "GET", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/api/repos", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/repos/recent", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/portfolio", Method: "GET", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: cached upstream work
		{Path: "/api/resume", Method: "GET", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/resume/", Method: "GET", Limit: 120, Window: time.Minute, Burst: 20},

		// Tier 3: everything else uses the default limit
		// Tier 4: health check is unlimited, see MatchEndpoint
	}
}

// parseIPList turns a comma-separated list of client IDs into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}

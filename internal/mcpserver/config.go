package mcpserver

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/erraggy/oasvet/validator"
)

// serverConfig holds all configurable MCP server defaults.
// Loaded once at startup from environment variables via loadConfig().
type serverConfig struct {
	// Cache settings.
	CacheEnabled       bool
	CacheMaxSize       int
	CacheFileTTL       time.Duration
	CacheURLTTL        time.Duration
	CacheContentTTL    time.Duration
	CacheSweepInterval time.Duration

	// Result pagination.
	ResultLimit int
	MaxLimit    int

	// Validate tool defaults.
	ValidateStrict       bool
	ValidateNoWarnings   bool
	ValidateMaxErrors    int
	MaxExternalDocuments int

	// Input limits and network policy.
	MaxInlineSize   int64
	AllowRemoteRefs bool
	AllowPrivateIPs bool
}

// cfg is the active server configuration, initialized at package load time.
var cfg = loadConfig()

// loadConfig reads configuration from OASVET_* environment variables.
// Invalid values log a warning and fall back to the hardcoded default.
func loadConfig() *serverConfig {
	return &serverConfig{
		CacheEnabled:         envBool("OASVET_CACHE_ENABLED", true),
		CacheMaxSize:         envInt("OASVET_CACHE_MAX_SIZE", 10),
		CacheFileTTL:         envDuration("OASVET_CACHE_FILE_TTL", 15*time.Minute),
		CacheURLTTL:          envDuration("OASVET_CACHE_URL_TTL", 5*time.Minute),
		CacheContentTTL:      envDuration("OASVET_CACHE_CONTENT_TTL", 15*time.Minute),
		CacheSweepInterval:   envDuration("OASVET_CACHE_SWEEP_INTERVAL", 60*time.Second),
		ResultLimit:          envInt("OASVET_RESULT_LIMIT", 100),
		MaxLimit:             envInt("OASVET_MAX_LIMIT", 1000),
		ValidateStrict:       envBool("OASVET_VALIDATE_STRICT", false),
		ValidateNoWarnings:   envBool("OASVET_VALIDATE_NO_WARNINGS", false),
		ValidateMaxErrors:    envInt("OASVET_VALIDATE_MAX_ERRORS", 0),
		MaxExternalDocuments: envInt("OASVET_MAX_EXTERNAL_DOCUMENTS", validator.DefaultMaxExternalDocuments),
		MaxInlineSize:        int64(envInt("OASVET_MAX_INLINE_SIZE", 10*1024*1024)),
		AllowRemoteRefs:      envBool("OASVET_ALLOW_REMOTE_REFS", true),
		AllowPrivateIPs:      envBool("OASVET_ALLOW_PRIVATE_IPS", false),
	}
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		slog.Warn("invalid bool env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return b
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		slog.Warn("invalid int env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return n
}

func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", fallback) //nolint:gosec // G706: values are structured log fields, not format strings
		return fallback
	}
	return d
}

package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Backend   BackendConfig
	UI        UIConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Log       LogConfig
}

// ServerConfig controls the web front-end's HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8090
	Mode string // "debug", "release", "test"; default: "release"
}

// BackendConfig points at the scraping backend that serves /scrape and /export.
type BackendConfig struct {
	// BaseURL is the backend origin, without trailing slash.
	BaseURL string // default: "http://127.0.0.1:5000"

	// Timeout bounds each backend request. Zero means no timeout: a hung
	// request keeps the loading indicator up until it settles.
	Timeout time.Duration // default: 0
}

// UIConfig controls controller behaviour and form defaults.
type UIConfig struct {
	// Websites populates the site selector.
	Websites []string // default: ["flipkart", "amazon"]

	// DefaultWebsite is preselected in the site selector.
	DefaultWebsite string // default: first of Websites

	// DefaultMaxReviews prefills the max reviews field.
	DefaultMaxReviews string // default: "10"

	// AllowOverlappingSubmits keeps the submit control enabled while a scrape
	// is in flight. Only the most recently issued submission may then update
	// the page.
	AllowOverlappingSubmits bool // default: false

	// DownloadDir receives exported spreadsheets in the CLI and MCP front-ends.
	DownloadDir string // default: "."
}

// SessionConfig controls per-browser page state on the web front-end.
type SessionConfig struct {
	// MaxEntries caps the number of live sessions.
	MaxEntries int // default: 1000

	// TTL evicts sessions idle for longer than this.
	TTL time.Duration // default: 1h

	// CookieName names the session cookie.
	CookieName string // default: "reviewui_session"
}

// RateLimitConfig controls per-client rate limiting of UI actions.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per client.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per client.
	Burst int // default: 5
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
// A .env file in the working directory is loaded first when present;
// variables already set in the environment win.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		slog.Warn("could not load .env file", "error", err)
	}

	websites := envSliceOr("REVIEWUI_WEBSITES", []string{"flipkart", "amazon"})
	defaultWebsite := ""
	if len(websites) > 0 {
		defaultWebsite = websites[0]
	}

	return &Config{
		Server: ServerConfig{
			Host: envOr("REVIEWUI_HOST", "0.0.0.0"),
			Port: envIntOr("REVIEWUI_PORT", 8090),
			Mode: envOr("REVIEWUI_MODE", "release"),
		},
		Backend: BackendConfig{
			BaseURL: strings.TrimRight(envOr("REVIEWUI_BACKEND_URL", "http://127.0.0.1:5000"), "/"),
			Timeout: envDurationOr("REVIEWUI_BACKEND_TIMEOUT", 0),
		},
		UI: UIConfig{
			Websites:                websites,
			DefaultWebsite:          envOr("REVIEWUI_DEFAULT_WEBSITE", defaultWebsite),
			DefaultMaxReviews:       envOr("REVIEWUI_DEFAULT_MAX_REVIEWS", "10"),
			AllowOverlappingSubmits: envBoolOr("REVIEWUI_ALLOW_OVERLAPPING_SUBMITS", false),
			DownloadDir:             envOr("REVIEWUI_DOWNLOAD_DIR", "."),
		},
		Session: SessionConfig{
			MaxEntries: envIntOr("REVIEWUI_SESSION_MAX", 1000),
			TTL:        envDurationOr("REVIEWUI_SESSION_TTL", time.Hour),
			CookieName: envOr("REVIEWUI_SESSION_COOKIE", "reviewui_session"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("REVIEWUI_RATE_RPS", 2.0),
			Burst:             envIntOr("REVIEWUI_RATE_BURST", 5),
		},
		Log: LogConfig{
			Level:  envOr("REVIEWUI_LOG_LEVEL", "info"),
			Format: envOr("REVIEWUI_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}

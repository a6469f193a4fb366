package fetcher

import (
	"fmt"
	"time"

	"bookmark-preview/internal/pkg/config"
)

// Config holds the configuration for bounded page fetching.
//
// Security settings:
//   - DenyPrivateIPs: Prevents SSRF by refusing private-network destinations
//   - MaxBodyBytes: Prevents memory exhaustion from oversized responses
//   - MaxRedirects: Bounds the redirect chain
//   - Timeout: Single deadline covering the whole multi-hop attempt
type Config struct {
	// Timeout is the overall deadline for one fetch, covering every redirect
	// hop and the body read. It is not a per-request timeout.
	// Default: 5s
	Timeout time.Duration

	// MaxBodyBytes is the maximum response body size in bytes. The cap is
	// enforced incrementally while streaming; the transfer is aborted the
	// moment it would be exceeded, never after buffering the full body.
	// Default: 524288 (512 KiB)
	MaxBodyBytes int64

	// MaxRedirects is the maximum number of redirect hops to follow.
	// Each hop target is re-validated with the full DNS-aware SSRF check.
	// Default: 3
	MaxRedirects int

	// DenyPrivateIPs controls whether destinations classifying as private are
	// refused. Should always be true in production; tests against local
	// httptest servers disable it to exercise transport behavior.
	// Default: true
	DenyPrivateIPs bool

	// UserAgent identifies this service to target sites.
	UserAgent string
}

// DefaultConfig returns the production defaults for page fetching.
func DefaultConfig() Config {
	return Config{
		Timeout:        5 * time.Second,
		MaxBodyBytes:   512 * 1024,
		MaxRedirects:   3,
		DenyPrivateIPs: true,
		UserAgent:      "BookmarkPreviewBot/1.0",
	}
}

// ConfigFromEnv returns DefaultConfig overridden by environment variables.
// Invalid values fall back to the default with a logged warning.
//
// Environment variables:
//   - FETCH_TIMEOUT (duration, e.g. "5s")
//   - FETCH_MAX_BODY_BYTES (int64)
//   - FETCH_MAX_REDIRECTS (int)
//   - FETCH_DENY_PRIVATE_IPS (bool)
//   - FETCH_USER_AGENT (string)
func ConfigFromEnv() Config {
	def := DefaultConfig()
	return Config{
		Timeout:        config.EnvDuration("FETCH_TIMEOUT", def.Timeout),
		MaxBodyBytes:   config.EnvInt64("FETCH_MAX_BODY_BYTES", def.MaxBodyBytes),
		MaxRedirects:   config.EnvInt("FETCH_MAX_REDIRECTS", def.MaxRedirects),
		DenyPrivateIPs: config.EnvBool("FETCH_DENY_PRIVATE_IPS", def.DenyPrivateIPs),
		UserAgent:      config.EnvString("FETCH_USER_AGENT", def.UserAgent),
	}
}

// Validate checks that the configuration values are safe to run with.
func (c Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("max body bytes must be at least 1024, got %d", c.MaxBodyBytes)
	}
	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be in [0, 10], got %d", c.MaxRedirects)
	}
	return nil
}

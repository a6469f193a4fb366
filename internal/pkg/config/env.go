// Package config provides configuration loading helpers.
//
// Environment values are loaded with validated fallbacks: an unset variable
// silently uses the default, while an unparseable value falls back to the
// default with a logged warning. Loading never fails; the service always
// starts with a usable configuration.
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"
)

// EnvString loads a string from the environment, or returns def if unset.
func EnvString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvInt loads an int from the environment, falling back to def with a
// warning when the value does not parse.
func EnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		warnFallback(key, v, err)
		return def
	}
	return n
}

// EnvInt64 loads an int64 from the environment, falling back to def with a
// warning when the value does not parse.
func EnvInt64(key string, def int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		warnFallback(key, v, err)
		return def
	}
	return n
}

// EnvFloat loads a float64 from the environment, falling back to def with a
// warning when the value does not parse.
func EnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		warnFallback(key, v, err)
		return def
	}
	return f
}

// EnvBool loads a bool from the environment, falling back to def with a
// warning when the value does not parse. Accepts the strconv.ParseBool forms.
func EnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		warnFallback(key, v, err)
		return def
	}
	return b
}

// EnvDuration loads a time.Duration from the environment, falling back to def
// with a warning when the value does not parse or is not positive.
func EnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		warnFallback(key, v, err)
		return def
	}
	return d
}

func warnFallback(key, value string, err error) {
	slog.Default().Warn("invalid configuration value, using default",
		slog.String("key", key),
		slog.String("value", value),
		slog.Any("error", err))
}

package config

import (
	"fmt"
	"os"
	"strings"
	"time"
	"unicode"
)

// Config holds service configuration
type Config struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// GroqAPIKey enables model-backed analysis when set; without it every
	// scan uses the heuristic analyzer
	GroqAPIKey string
	// GroqModel overrides the default completion model
	GroqModel string
	// PreservedScript names an additional Unicode script to keep through
	// text normalization, e.g. "hebrew"
	PreservedScript string
}

// New creates a new configuration from environment variables
func New() *Config {
	return &Config{
		Port:            getEnv("DOMAINCHECK_PORT", "8080"),
		ReadTimeout:     getDurationEnv("DOMAINCHECK_READ_TIMEOUT", 30*time.Second),
		WriteTimeout:    getDurationEnv("DOMAINCHECK_WRITE_TIMEOUT", 150*time.Second),
		ShutdownTimeout: getDurationEnv("DOMAINCHECK_SHUTDOWN_TIMEOUT", 30*time.Second),
		GroqAPIKey:      getEnv("GROQ_API_KEY", ""),
		GroqModel:       getEnv("DOMAINCHECK_GROQ_MODEL", ""),
		PreservedScript: getEnv("DOMAINCHECK_PRESERVED_SCRIPT", ""),
	}
}

// Script resolves the configured preserved script name to a Unicode range
// table. An empty name means no extra script is preserved.
func (c *Config) Script() (*unicode.RangeTable, error) {
	switch strings.ToLower(c.PreservedScript) {
	case "":
		return nil, nil
	case "hebrew":
		return unicode.Hebrew, nil
	case "arabic":
		return unicode.Arabic, nil
	case "cyrillic":
		return unicode.Cyrillic, nil
	case "greek":
		return unicode.Greek, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownScript, c.PreservedScript)
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return defaultValue
}

// getDurationEnv gets a duration environment variable with a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}

	return defaultValue
}

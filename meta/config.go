// Package meta implements the engine that runs one compiled dialect pattern.
//
// The meta-engine coordinates four searchers:
//   - Host: the transpiled pattern on regexp2 with the ECMAScript option
//   - Literal: Aho-Corasick for patterns that are pure literal alternations
//   - Never: the substitute for a pattern the host rejected
//   - Fallback: the untranspiled pattern on a dialect-native engine (RE2 when
//     the pattern is RE2-safe, else regexp2 in ECMAScript mode), built lazily
//     and used only after the host fails catastrophically
//
// Strategy selection is based on:
//   - Whether the pattern is an infix-free literal alternation
//   - Whether the host accepts the transpiled pattern
//
// All positions are code point indices into the subject.
package meta

import (
	"log"
	"os"
	"time"
)

// Logger is the logging interface used by the engine. *log.Logger satisfies
// it.
type Logger interface {
	Printf(format string, v ...interface{})
}

var defaultLogger Logger = log.New(os.Stderr, "jscompat: ", log.LstdFlags)

// Config controls engine behavior.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.MatchTimeout = 100 * time.Millisecond // Give up on the host sooner
//	engine := meta.Compile(`(a+)+b`, 0, config)
type Config struct {
	// MatchTimeout bounds one host search. A search that exceeds it is a
	// catastrophic failure and the operation is rerun on the fallback
	// engine.
	// Default: 2s
	MatchTimeout time.Duration

	// FallbackTimeout bounds one search of the backtracking fallback engine.
	// A fallback search that exceeds it makes the operation report no match.
	// Zero means no limit. RE2 searches are never bounded.
	// Default: 10s
	FallbackTimeout time.Duration

	// CacheSize is the number of compiled patterns kept in memory.
	// Default: 4096
	CacheSize int

	// ExpandGroupZero makes "$0" in replacement templates expand to the
	// whole match instead of staying literal.
	// Default: false
	ExpandGroupZero bool

	// EnableLiteralSearch routes pure literal alternations (foo|bar) to an
	// Aho-Corasick searcher instead of the host.
	// Default: true
	EnableLiteralSearch bool

	// MetricsDirectory is the tricorder directory metrics are registered
	// under. Empty disables metrics.
	// Default: ""
	MetricsDirectory string

	// Logger receives compile rejections and catastrophic failures.
	// Nil means a stderr logger with the "jscompat: " prefix.
	Logger Logger
}

// DefaultConfig returns a configuration with sensible defaults.
//
// Example:
//
//	config := meta.DefaultConfig()
//	config.CacheSize = 100 // Small embedded interpreter
func DefaultConfig() Config {
	return Config{
		MatchTimeout:        2 * time.Second,
		FallbackTimeout:     10 * time.Second,
		CacheSize:           4096,
		ExpandGroupZero:     false,
		EnableLiteralSearch: true,
	}
}

// Validate checks if the configuration is valid.
// Returns an error if any parameter is out of range.
//
// Valid ranges:
//   - MatchTimeout: 1ms to 10m
//   - FallbackTimeout: 0 (unlimited) to 10m
//   - CacheSize: 1 to 1,000,000
func (c Config) Validate() error {
	if c.MatchTimeout < time.Millisecond || c.MatchTimeout > 10*time.Minute {
		return &ConfigError{
			Field:   "MatchTimeout",
			Message: "must be between 1ms and 10m",
		}
	}
	if c.FallbackTimeout < 0 || c.FallbackTimeout > 10*time.Minute {
		return &ConfigError{
			Field:   "FallbackTimeout",
			Message: "must be between 0 and 10m",
		}
	}
	if c.CacheSize < 1 || c.CacheSize > 1_000_000 {
		return &ConfigError{
			Field:   "CacheSize",
			Message: "must be between 1 and 1,000,000",
		}
	}
	return nil
}

// Log returns the configured logger or the default one.
func (c Config) Log() Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return defaultLogger
}

// ConfigError represents an invalid configuration parameter.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "jscompat: invalid config: " + e.Field + ": " + e.Message
}

package sqlitepage

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/RichardKnop/sqlitepage/internal/sqlitepage"
)

// ConnectionConfig holds parsed connection string parameters
type ConnectionConfig struct {
	FilePath       string // Database file path
	LogLevel       string // Log level: debug, info, warn, error (default: warn)
	LogEncoding    string // Log encoding: json or console (default: json)
	MaxCachedPages int    // Maximum number of decoded pages to cache (default: 64)
}

// DefaultConnectionConfig returns default configuration
func DefaultConnectionConfig(filePath string) *ConnectionConfig {
	return &ConnectionConfig{
		FilePath:       filePath,
		LogLevel:       "warn",
		LogEncoding:    "json",
		MaxCachedPages: sqlitepage.DefaultMaxCachedPages,
	}
}

// ParseConnectionString parses a connection string with optional query parameters.
//
// Format: /path/to/database.db?param1=value1&param2=value2
//
// Supported parameters:
//   - log_level=debug|info|warn|error : Set logging level (default: warn)
//   - log_encoding=json|console       : Set log output encoding (default: json)
//   - max_cached_pages=N              : Pages other than page 1 kept decoded in memory (default: 64)
//
// Examples:
//   - "./my.db"                                  : Default settings
//   - "./my.db?log_level=debug"                  : Enable debug logging
//   - "./my.db?log_level=info&max_cached_pages=8" : Both settings
func ParseConnectionString(connStr string) (*ConnectionConfig, error) {
	// Split on first '?' to separate path from query params
	parts := strings.SplitN(connStr, "?", 2)

	if parts[0] == "" {
		return nil, fmt.Errorf("connection string is missing a database path")
	}

	config := DefaultConnectionConfig(parts[0])

	if len(parts) == 1 {
		return config, nil
	}

	queryParams, err := url.ParseQuery(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid connection string query parameters: %w", err)
	}

	if logLevel := queryParams.Get("log_level"); logLevel != "" {
		logLevel = strings.ToLower(logLevel)
		switch logLevel {
		case "debug", "info", "warn", "error":
			config.LogLevel = logLevel
		default:
			return nil, fmt.Errorf("invalid log_level parameter: must be 'debug', 'info', 'warn', or 'error', got %q", logLevel)
		}
	}

	if logEncoding := queryParams.Get("log_encoding"); logEncoding != "" {
		switch logEncoding {
		case "json", "console":
			config.LogEncoding = logEncoding
		default:
			return nil, fmt.Errorf("invalid log_encoding parameter: must be 'json' or 'console', got %q", logEncoding)
		}
	}

	if maxPagesStr := queryParams.Get("max_cached_pages"); maxPagesStr != "" {
		maxPages, err := strconv.Atoi(maxPagesStr)
		if err != nil {
			return nil, fmt.Errorf("invalid max_cached_pages parameter: must be a positive integer, got %q", maxPagesStr)
		}
		if maxPages < 1 {
			return nil, fmt.Errorf("invalid max_cached_pages parameter: must be positive, got %d", maxPages)
		}
		config.MaxCachedPages = maxPages
	}

	return config, nil
}

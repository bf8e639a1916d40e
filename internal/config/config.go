// Package config handles application configuration and environment loading.
package config

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the configuration for the HTTP API and the AWS integration.
type Config struct {
	ListenAddr string // HTTP listen address (default ":8080")
	Region     string // AWS region queried and polled (default "us-east-1")

	// Database is the Glue database holding the Security Lake tables. For
	// cross-account deployments this is the resource-link database name;
	// otherwise it is derived from the region.
	Database string

	OutputBucket string // S3 bucket for Athena scratch results
	Workgroup    string // Athena workgroup (optional, service default when empty)

	// Synchronous poll budget per HTTP request. The underlying execution is
	// not bounded or cancelled by these.
	PollInterval time.Duration
	MaxWait      time.Duration

	LogLevel string // log level: debug, info, warn, error (default "info")

	// Rate limiting
	RateLimitRPS   float64 // sustained requests per second (default 100)
	RateLimitBurst int     // burst capacity (default 200)

	// CORS
	CORSAllowedOrigins []string // allowed origins for CORS (default: ["*"])

	// Warnings collects non-fatal warnings generated during config loading.
	// These are logged by the caller after the logger is initialised.
	Warnings []string
}

// SlogLevel maps the LogLevel string to an slog.Level.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// OutputLocation returns the s3:// URI Athena writes scratch results to.
func (c *Config) OutputLocation() string {
	return fmt.Sprintf("s3://%s/query-results/", c.OutputBucket)
}

// DeriveDatabase returns the Glue database name Security Lake creates for a
// region, e.g. amazon_security_lake_glue_db_us_east_1.
func DeriveDatabase(region string) string {
	return "amazon_security_lake_glue_db_" + strings.ReplaceAll(region, "-", "_")
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:   os.Getenv("LISTEN_ADDR"),
		Region:       os.Getenv("AWS_REGION"),
		Database:     os.Getenv("SECURITY_LAKE_DATABASE"),
		OutputBucket: os.Getenv("ATHENA_OUTPUT_BUCKET"),
		Workgroup:    os.Getenv("ATHENA_WORKGROUP"),
		LogLevel:     os.Getenv("LOG_LEVEL"),
	}

	var err error
	if cfg.PollInterval, err = parseDurationEnv("QUERY_POLL_INTERVAL"); err != nil {
		return nil, err
	}
	if cfg.MaxWait, err = parseDurationEnv("QUERY_MAX_WAIT"); err != nil {
		return nil, err
	}

	// Rate limiting
	if v := os.Getenv("RATE_LIMIT_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.RateLimitRPS = f
		}
	}
	if v := os.Getenv("RATE_LIMIT_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RateLimitBurst = n
		}
	}

	// CORS
	if v := os.Getenv("CORS_ALLOWED_ORIGINS"); v != "" {
		origins := strings.Split(v, ",")
		for i := range origins {
			origins[i] = strings.TrimSpace(origins[i])
		}
		cfg.CORSAllowedOrigins = origins
	}

	// Defaults
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1"
		cfg.Warnings = append(cfg.Warnings, "AWS_REGION not set, defaulting to us-east-1")
	}
	if cfg.Database == "" {
		cfg.Database = DeriveDatabase(cfg.Region)
	}
	if cfg.OutputBucket == "" {
		cfg.OutputBucket = "lakewatch-athena-results"
		cfg.Warnings = append(cfg.Warnings, "ATHENA_OUTPUT_BUCKET not set, using lakewatch-athena-results")
	}
	if cfg.PollInterval == 0 {
		cfg.PollInterval = time.Second
	}
	if cfg.MaxWait == 0 {
		cfg.MaxWait = 30 * time.Second
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.RateLimitRPS == 0 {
		cfg.RateLimitRPS = 100
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst = 200
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	if cfg.PollInterval > cfg.MaxWait {
		return nil, fmt.Errorf("QUERY_POLL_INTERVAL (%s) must not exceed QUERY_MAX_WAIT (%s)", cfg.PollInterval, cfg.MaxWait)
	}

	return cfg, nil
}

func parseDurationEnv(key string) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

// LoadDotEnv reads a .env file and sets any variables not already in the
// environment. Lines must be in KEY=VALUE format. Comments (#) and blank
// lines are skipped.
func LoadDotEnv(path string) error {
	f, err := os.Open(path) //nolint:gosec // path is caller-controlled
	if err != nil {
		if os.IsNotExist(err) {
			return nil // .env not found is not an error
		}
		return fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close() //nolint:errcheck

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		value = stripQuotes(strings.TrimSpace(value))
		// Only set if not already in the environment (env vars take precedence)
		if os.Getenv(key) == "" {
			if err := os.Setenv(key, value); err != nil {
				return fmt.Errorf("setenv %s: %w", key, err)
			}
		}
	}
	return scanner.Err()
}

// stripQuotes removes surrounding double or single quotes from a value.
// Only strips if both the first and last characters are matching quotes.
func stripQuotes(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

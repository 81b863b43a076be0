// Package config loads the configuration of the rootfind service.
//
// Configuration is read from a YAML file. Defaults are applied before the
// file is decoded, so a file only needs to name the settings it changes:
//
//	listen: ":9000"
//	limits:
//	  max_iterations: 500
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"time"

	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"
)

// Config is the service configuration.
type Config struct {
	// Listen is the TCP address of the HTTP server.
	Listen string `yaml:"listen"`
	// Metrics enables the /metrics endpoint.
	Metrics bool      `yaml:"metrics"`
	Log     LogConfig `yaml:"log"`
	Limits  Limits    `yaml:"limits"`
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn or error
	Format string `yaml:"format"` // text or json
}

// NewLogger returns a logger writing to w at the configured level and
// format.
func (c LogConfig) NewLogger(w io.Writer) *slog.Logger {
	var level slog.Level
	// Validate has rejected unknown names; the zero value is info.
	_ = level.UnmarshalText([]byte(c.Level))
	opts := &slog.HandlerOptions{Level: level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// Limits bounds the work a single request may cause.
type Limits struct {
	MaxIterations    int     `yaml:"max_iterations"`
	DefaultEpsilon   float64 `yaml:"default_epsilon"`
	MaxBatchSize     int     `yaml:"max_batch_size"`
	BatchConcurrency int     `yaml:"batch_concurrency"`
	MaxSamplePoints  int     `yaml:"max_sample_points"`
	MaxBodyBytes     int64   `yaml:"max_body_bytes"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Listen:  ":8080",
		Metrics: true,
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Limits: Limits{
			MaxIterations:    1000,
			DefaultEpsilon:   0.0001,
			MaxBatchSize:     64,
			BatchConcurrency: 4,
			MaxSamplePoints:  2000,
			MaxBodyBytes:     1 << 20,
		},
		ShutdownTimeout: 10 * time.Second,
	}
}

// Load reads and validates the configuration file at path. An empty path
// yields Default().
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg, err := Parse(bytes.NewReader(data))
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a YAML document from r over the defaults and validates the
// result. Unknown keys are rejected.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid setting in c.
func (c Config) Validate() error {
	var errs *multierror.Error
	if _, _, err := net.SplitHostPort(c.Listen); err != nil {
		errs = multierror.Append(errs, fmt.Errorf("listen: %w", err))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = multierror.Append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		errs = multierror.Append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}

	l := c.Limits
	if l.MaxIterations <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("limits.max_iterations: must be positive, got %d", l.MaxIterations))
	}
	if !(l.DefaultEpsilon > 0) {
		errs = multierror.Append(errs, fmt.Errorf("limits.default_epsilon: must be positive, got %g", l.DefaultEpsilon))
	}
	if l.MaxBatchSize <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("limits.max_batch_size: must be positive, got %d", l.MaxBatchSize))
	}
	if l.BatchConcurrency <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("limits.batch_concurrency: must be positive, got %d", l.BatchConcurrency))
	}
	if l.MaxSamplePoints < 2 {
		errs = multierror.Append(errs, fmt.Errorf("limits.max_sample_points: must be at least 2, got %d", l.MaxSamplePoints))
	}
	if l.MaxBodyBytes <= 0 {
		errs = multierror.Append(errs, fmt.Errorf("limits.max_body_bytes: must be positive, got %d", l.MaxBodyBytes))
	}
	if c.ShutdownTimeout < 0 {
		errs = multierror.Append(errs, fmt.Errorf("shutdown_timeout: must not be negative, got %s", c.ShutdownTimeout))
	}
	return errs.ErrorOrNil()
}

// Package config provides configuration for the loader binaries.
// Environment variables supply defaults (loaded via reflection on env tags);
// command-line flags layered on top mirror the operator-facing surface:
//
//	customload [flags] <csv-path> <api-url>
//
// Validation happens at startup so a misconfigured run fails before the
// first row is read.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"time"
)

// Config holds the environment-derived settings shared by both loaders.
type Config struct {
	HTTP    HTTPConfig
	Logging LoggingConfig
}

// HTTPConfig holds outbound request settings.
type HTTPConfig struct {
	// TimeoutSeconds is the per-request timeout (default: 10)
	TimeoutSeconds int `env:"LOADER_TIMEOUT" default:"10"`

	// AuthToken is the bearer token; prefer setting it here (or in .env)
	// over the --auth-token flag so it stays out of shell history
	AuthToken string `env:"AUTH_TOKEN"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks settings that would otherwise fail mid-run.
func (c *Config) Validate() error {
	if c.HTTP.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout must be positive, got %d", c.HTTP.TimeoutSeconds)
	}
	return nil
}

// Options is the fully resolved per-run configuration: environment defaults
// with command-line flags applied on top.
type Options struct {
	CSVPath    string
	APIURL     string
	AuthToken  string
	IDColumn   string
	ResourceID string
	Timeout    time.Duration
	DryRun     bool

	Logging LoggingConfig
}

// ErrUsage indicates the command line did not match the expected surface.
var ErrUsage = errors.New("usage: [flags] <csv-path> <api-url>")

// ParseArgs resolves Options from the environment and the given argument
// list (excluding the program name). Flag defaults come from the
// environment-backed Config, so e.g. AUTH_TOKEN works without --auth-token.
func ParseArgs(name string, args []string, errOut io.Writer) (*Options, error) {
	cfg, err := Load()
	if err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(errOut)

	authToken := fs.String("auth-token", cfg.HTTP.AuthToken,
		"Bearer auth token (Authorization: Bearer <token>)")
	idColumn := fs.String("id-column", "",
		"column whose value is appended to the URL as /<value>")
	resourceID := fs.String("resource-id", "",
		"static resourceId for the payload (overrides the resourceId column)")
	timeout := fs.Int("timeout", cfg.HTTP.TimeoutSeconds,
		"request timeout in seconds")
	dryRun := fs.Bool("dry-run", false,
		"print what would be sent instead of making requests")

	fs.Usage = func() {
		fmt.Fprintf(errOut, "Usage: %s [flags] <csv-path> <api-url>\n", name)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if fs.NArg() != 2 {
		fs.Usage()
		return nil, ErrUsage
	}

	if *timeout <= 0 {
		return nil, fmt.Errorf("timeout must be positive, got %d", *timeout)
	}

	return &Options{
		CSVPath:    fs.Arg(0),
		APIURL:     fs.Arg(1),
		AuthToken:  *authToken,
		IDColumn:   *idColumn,
		ResourceID: *resourceID,
		Timeout:    time.Duration(*timeout) * time.Second,
		DryRun:     *dryRun,
		Logging:    cfg.Logging,
	}, nil
}

package loader

import (
	"context"
	"log/slog"
	"os"

	"github.com/JonMunkholm/resourceload/internal/client"
	"github.com/JonMunkholm/resourceload/internal/config"
	"github.com/JonMunkholm/resourceload/internal/csvsource"
	"github.com/JonMunkholm/resourceload/internal/logging"
	"github.com/JonMunkholm/resourceload/internal/payload"
	"github.com/joho/godotenv"
)

// Execute is the shared entry point for the loader binaries: it loads
// configuration, opens the CSV source, and runs the batch with the given
// payload builder. Returns the process exit code.
//
// A completed run exits 0 even when individual rows failed; only fatal
// errors (bad configuration, missing header, a payload build failure) exit
// nonzero.
func Execute(name string, build payload.BuildFunc, args []string) int {
	// Load .env if present (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err == nil {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	opts, err := config.ParseArgs(name, args, os.Stderr)
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		return 1
	}

	logging.Setup(opts.Logging.Level, opts.Logging.Format)
	log := logging.WithRun()
	log.Info("configuration loaded",
		"csv", opts.CSVPath,
		"url", opts.APIURL,
		"timeout", opts.Timeout,
		"id_column", opts.IDColumn,
		"dry_run", opts.DryRun,
	)

	src, err := csvsource.Open(opts.CSVPath)
	if err != nil {
		log.Error("failed to open csv", "path", opts.CSVPath, "error", err)
		return 1
	}
	defer src.Close()

	runner := &Runner{
		Source:     src,
		Build:      build,
		Dispatcher: client.New(opts.Timeout, opts.AuthToken),
		Out:        os.Stdout,
		Log:        log,
		APIURL:     opts.APIURL,
		IDColumn:   opts.IDColumn,
		ResourceID: opts.ResourceID,
		DryRun:     opts.DryRun,
	}

	if _, err := runner.Run(context.Background()); err != nil {
		log.Error("run aborted", "error", err)
		return 1
	}
	return 0
}

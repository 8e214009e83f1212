// Command preprocess consolidates a set of tabular data files into one
// cleaned spreadsheet: all sheets stacked, all-null columns dropped and
// textual values trimmed.
package main

import (
	"context"
	"flag"
	"log/slog"
	"os"

	"ledatools/internal/config"
	"ledatools/internal/infrastructure"
	"ledatools/internal/preprocess"
)

func main() {
	outPath := flag.String("out", "cleaned.xlsx", "output xlsx file")
	cfgFile := flag.String("config", "", "config file (defaults to ledatools.yaml next to the executable)")
	flag.Parse()

	cfg, err := config.Load(*cfgFile)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	if paths, err := config.GetPaths(); err == nil {
		cfg.ResolvePaths(paths)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	ctx := infrastructure.EnsureRunID(context.Background())
	logger = infrastructure.LoggerWithContext(ctx)

	inputs := flag.Args()
	if len(inputs) == 0 {
		logger.Error("No input files given")
		os.Exit(1)
	}

	written, failures, err := preprocess.New(logger).Run(inputs, *outPath)
	for _, f := range failures {
		logger.Warn("Input file skipped",
			slog.String("path", f.Path),
			slog.String("error", f.Err.Error()))
	}
	if err != nil {
		logger.Error("Failed to write consolidated file", slog.String("error", err.Error()))
		os.Exit(1)
	}

	logger.Info("Consolidated file written",
		slog.String("path", written),
		slog.Int("skipped_files", len(failures)))
}

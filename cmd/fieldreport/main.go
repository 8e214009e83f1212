// Command fieldreport profiles the columns of a set of tabular data files
// and writes the consolidated field report workbook.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"ledatools/internal/config"
	"ledatools/internal/exporter"
	"ledatools/internal/files"
	"ledatools/internal/infrastructure"
	"ledatools/internal/report"
	"ledatools/internal/table"
)

func main() {
	inDir := flag.String("in", "", "directory to scan for input files (ignored when files are passed as arguments)")
	outDir := flag.String("out", "", "output directory for the report (defaults to the first input's directory)")
	cfgFile := flag.String("config", "", "config file (defaults to ledatools.yaml next to the executable)")
	alsoCSV := flag.Bool("csv", false, "additionally write the report as plain CSV")
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

	inputs, err := resolveInputs(flag.Args(), *inDir)
	if err != nil {
		logger.Error("Failed to resolve input files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Starting field report generation",
		slog.Int("input_files", len(inputs)),
		slog.String("report_file", cfg.Report.FileName))

	asm := report.NewAssembler(report.LoaderFunc(table.LoadFile), logger)
	tbl, failures := asm.Assemble(inputs)
	for _, f := range failures {
		logger.Warn("Input file skipped",
			slog.String("path", f.Path),
			slog.String("error", f.Err.Error()))
	}

	outPath, err := resolveOutputPath(cfg.Report, inputs, *outDir)
	if err != nil {
		logger.Error("Failed to resolve output path", slog.String("error", err.Error()))
		os.Exit(1)
	}

	written, err := exporter.WriteFormatted(tbl, outPath, reportOptions(cfg.Report.SheetName, tbl))
	if err != nil {
		logger.Error("Failed to write report", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if *alsoCSV {
		csvPath := strings.TrimSuffix(written, filepath.Ext(written)) + ".csv"
		if err := exporter.NewCSVWriter(logger).WriteTable(tbl, csvPath); err != nil {
			logger.Error("Failed to write CSV report", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("Field report written",
		slog.String("path", written),
		slog.Int("profiled_columns", tbl.RowCount()),
		slog.Int("skipped_files", len(failures)))
}

// resolveInputs returns the explicit file arguments when given, otherwise
// the discovered data files of the input directory (default: the current
// directory).
func resolveInputs(args []string, inDir string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if inDir == "" {
		inDir = "."
	}
	return files.FindDataFiles(inDir)
}

// resolveOutputPath places the report next to the first input (or in the
// explicit output directory) and picks a numbered sibling name unless
// overwriting is configured.
func resolveOutputPath(cfg config.ReportConfig, inputs []string, outDir string) (string, error) {
	dir := outDir
	if dir == "" {
		if len(inputs) > 0 {
			dir = filepath.Dir(inputs[0])
		} else {
			dir = "."
		}
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, cfg.FileName)
	if cfg.Overwrite {
		return path, nil
	}
	return report.NextAvailablePath(path)
}

// reportOptions is the field report's house style: dark header, frozen
// first row, dropdown on the Import column, hidden Flag column and the
// conditional formats derived from the assembled table.
func reportOptions(sheetName string, tbl *table.Table) exporter.Options {
	return exporter.Options{
		SheetName: sheetName,
		Header: exporter.HeaderStyle{
			FontName:  "Calibri",
			FontSize:  11,
			Bold:      true,
			Alignment: "center",
			BgColor:   "#0B2763",
			FontColor: "#FFFFFF",
		},
		HeaderColumnColors: map[string]report.Style{
			report.ColImport: {BgColor: "#524B4B", FontColor: "#FFFFFF"},
		},
		FreezeHeader: true,
		AutoFilter:   true,
		AllBorders:   true,
		ColumnWidths: map[string]float64{
			report.ColFile:         30,
			report.ColTop5Distinct: 50,
		},
		DefaultWidthMax: 20,
		ValidationColumns: map[string][]string{
			report.ColImport: {report.ImportYes, report.ImportNo},
		},
		HiddenColumns:  []string{report.ColFlag},
		FormatRules:    report.Rules(tbl),
		PercentColumns: []string{report.ColEmptyValues},
	}
}

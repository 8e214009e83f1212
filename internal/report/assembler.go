// Package report assembles per-column profiles into the consolidated field
// report table and derives its formatting rules.
package report

import (
	"log/slog"
	"path/filepath"
	"strings"

	"ledatools/internal/profile"
	"ledatools/internal/table"
)

// Loader reads a file path into a table. Unreadable files return an error;
// the assembler skips them and continues the batch.
type Loader interface {
	Load(path string) (*table.Table, error)
}

// LoaderFunc adapts a function to the Loader interface
type LoaderFunc func(path string) (*table.Table, error)

// Load implements Loader
func (f LoaderFunc) Load(path string) (*table.Table, error) {
	return f(path)
}

// FileError records a per-file failure that was skipped during assembly
type FileError struct {
	Path string
	Err  error
}

// Assembler builds the consolidated profile table from a list of input files
type Assembler struct {
	loader Loader
	logger *slog.Logger
}

// NewAssembler creates an assembler using the given loader
func NewAssembler(loader Loader, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Assembler{loader: loader, logger: logger}
}

// profileRow is one assembled report row before table construction
type profileRow struct {
	file    string
	column  string
	metrics profile.Metrics
}

// Assemble profiles every column of every input file, in input order, and
// returns the report table plus the list of files that could not be read.
// Files named like earlier reports are excluded. An input list that yields
// no columns at all still produces a valid, empty-bodied table.
func (a *Assembler) Assemble(paths []string) (*table.Table, []FileError) {
	var rows []profileRow
	var failures []FileError

	for _, path := range paths {
		if IsReportFile(path) {
			a.logger.Debug("skipping earlier report", slog.String("path", path))
			continue
		}

		t, err := a.loader.Load(path)
		if err != nil {
			a.logger.Warn("skipping unreadable file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			failures = append(failures, FileError{Path: path, Err: err})
			continue
		}
		if t == nil {
			continue
		}

		name := filepath.Base(path)
		for _, col := range t.Columns {
			rows = append(rows, profileRow{
				file:    name,
				column:  col.Name,
				metrics: profile.Column(col),
			})
		}
		a.logger.Info("profiled file",
			slog.String("file", name),
			slog.Int("columns", t.ColumnCount()))
	}

	return buildReportTable(rows), failures
}

// buildReportTable lays the profile rows out in the fixed report column
// order, inserts the empty Import column after FileColumn and appends the
// alternating per-file Flag column.
func buildReportTable(rows []profileRow) *table.Table {
	cols := map[string]*table.Column{
		ColFile:          {Name: ColFile, Storage: table.KindText},
		ColColumn:        {Name: ColColumn, Storage: table.KindText},
		ColInferredType:  {Name: ColInferredType, Storage: table.KindText},
		ColTop5Distinct:  {Name: ColTop5Distinct, Storage: table.KindText},
		ColDistinctCount: {Name: ColDistinctCount, Storage: table.KindNumber},
		ColValueCount:    {Name: ColValueCount, Storage: table.KindNumber},
		ColEmptyValues:   {Name: ColEmptyValues, Storage: table.KindNumber},
		ColMaxCharLength: {Name: ColMaxCharLength, Storage: table.KindNumber},
		ColImport:        {Name: ColImport, Storage: table.KindText},
		ColFlag:          {Name: ColFlag, Storage: table.KindNumber},
	}

	flag := 0
	for i, r := range rows {
		if i > 0 && rows[i-1].file != r.file {
			flag = (flag + 1) % 2
		}
		m := r.metrics
		cols[ColFile].Values = append(cols[ColFile].Values, table.String(r.file))
		cols[ColColumn].Values = append(cols[ColColumn].Values, table.String(r.column))
		cols[ColInferredType].Values = append(cols[ColInferredType].Values, table.String(string(m.InferredType)))
		cols[ColTop5Distinct].Values = append(cols[ColTop5Distinct].Values, table.String(m.Top5Distinct))
		cols[ColDistinctCount].Values = append(cols[ColDistinctCount].Values, table.Number(float64(m.DistinctCount)))
		cols[ColValueCount].Values = append(cols[ColValueCount].Values, table.Number(float64(m.ValueCount)))
		cols[ColEmptyValues].Values = append(cols[ColEmptyValues].Values, table.Number(m.EmptyFraction))
		cols[ColMaxCharLength].Values = append(cols[ColMaxCharLength].Values, table.Number(float64(m.MaxCharLength)))
		cols[ColImport].Values = append(cols[ColImport].Values, table.Null())
		cols[ColFlag].Values = append(cols[ColFlag].Values, table.Number(float64(flag)))
	}

	t := table.New()
	order := []string{
		ColFile, ColColumn, ColImport, ColInferredType, ColTop5Distinct,
		ColDistinctCount, ColValueCount, ColEmptyValues, ColMaxCharLength, ColFlag,
	}
	for _, name := range order {
		// Construction above guarantees equal lengths.
		_ = t.AddColumn(cols[name])
	}
	return t
}

// IsReportFile reports whether a path names a previously generated field
// report, matching the report prefix case-insensitively against the file
// name without its extension.
func IsReportFile(path string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasPrefix(strings.ToLower(stem), strings.ToLower(FilePrefix))
}

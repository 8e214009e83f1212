// Package preprocess builds the cleaned, consolidated spreadsheet from a set
// of tabular input files: every sheet of every input is concatenated into one
// table, all-null columns are dropped and textual values are trimmed.
package preprocess

import (
	"log/slog"
	"sort"
	"strings"

	"ledatools/internal/exporter"
	"ledatools/internal/table"
)

// FileError records a per-file failure that was skipped during consolidation
type FileError struct {
	Path string
	Err  error
}

// Preprocessor consolidates input files into one cleaned table
type Preprocessor struct {
	logger *slog.Logger
}

// New creates a preprocessor
func New(logger *slog.Logger) *Preprocessor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Preprocessor{logger: logger}
}

// Consolidate loads every sheet of every input file, in input order, and
// stacks their rows into one table whose columns are the union of all input
// columns (matched case-insensitively, first spelling wins). Unreadable
// files are skipped and reported; missing cells become nulls.
func (p *Preprocessor) Consolidate(paths []string) (*table.Table, []FileError) {
	out := table.New()
	var failures []FileError

	for _, path := range paths {
		sheets, err := table.LoadSheets(path)
		if err != nil {
			p.logger.Warn("skipping unreadable file",
				slog.String("path", path),
				slog.String("error", err.Error()))
			failures = append(failures, FileError{Path: path, Err: err})
			continue
		}

		names := make([]string, 0, len(sheets))
		for name := range sheets {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			appendTable(out, sheets[name])
		}
		p.logger.Info("consolidated file",
			slog.String("path", path),
			slog.Int("sheets", len(names)))
	}

	clean(out)
	return out, failures
}

// Run consolidates the inputs and writes the result to outPath
func (p *Preprocessor) Run(paths []string, outPath string) (string, []FileError, error) {
	t, failures := p.Consolidate(paths)
	written, err := exporter.WriteFormatted(t, outPath, exporter.Options{
		SheetName:    "Consolidated",
		Header:       exporter.HeaderStyle{Bold: true},
		FreezeHeader: true,
	})
	if err != nil {
		return "", failures, err
	}
	return written, failures, nil
}

// appendTable stacks src's rows under dst, aligning columns by name and
// padding both sides with nulls where needed.
func appendTable(dst, src *table.Table) {
	if src.ColumnCount() == 0 {
		return
	}
	baseRows := dst.RowCount()

	for _, col := range src.Columns {
		if dst.ColumnIndex(col.Name) >= 0 {
			continue
		}
		values := make([]table.Value, baseRows)
		for i := range values {
			values[i] = table.Null()
		}
		// Length matches the current row count by construction.
		_ = dst.AddColumn(&table.Column{Name: col.Name, Storage: col.Storage, Values: values})
	}

	for _, dstCol := range dst.Columns {
		if srcCol := src.Column(dstCol.Name); srcCol != nil {
			dstCol.Values = append(dstCol.Values, srcCol.Values...)
		} else {
			for i := 0; i < src.RowCount(); i++ {
				dstCol.Values = append(dstCol.Values, table.Null())
			}
		}
	}
}

// clean drops all-null columns and trims textual values in place
func clean(t *table.Table) {
	kept := t.Columns[:0]
	for _, col := range t.Columns {
		if len(col.NonNull()) == 0 && col.Len() > 0 {
			continue
		}
		kept = append(kept, col)
	}
	t.Columns = kept

	for _, col := range t.Columns {
		if col.Storage != table.KindText {
			continue
		}
		for i, v := range col.Values {
			if v.IsNull() {
				continue
			}
			if trimmed := strings.TrimSpace(v.String()); trimmed != v.String() {
				col.Values[i] = table.String(trimmed)
			}
		}
	}
}

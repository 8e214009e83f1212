package exporter

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	apperrors "ledatools/internal/errors"
	"ledatools/internal/table"
)

// CSVWriter provides plain CSV export of a table, for callers that want the
// report data without spreadsheet formatting.
type CSVWriter struct {
	logger *slog.Logger
}

// NewCSVWriter creates a new CSV writer instance
func NewCSVWriter(logger *slog.Logger) *CSVWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &CSVWriter{logger: logger}
}

// WriteTable writes the table as UTF-8 CSV with a BOM prefix so Excel
// recognizes the encoding. Null values become empty fields.
func (w *CSVWriter) WriteTable(t *table.Table, path string) error {
	w.logger.Info("writing CSV file",
		slog.String("path", path),
		slog.Int("rows", t.RowCount()),
		slog.Int("columns", t.ColumnCount()))

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewWriteError("create directory", path, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return apperrors.NewWriteError("open file", path, err)
	}
	defer file.Close()

	if _, err := file.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return apperrors.NewWriteError("write BOM", path, err)
	}

	writer := csv.NewWriter(file)
	defer writer.Flush()

	if err := writer.Write(t.Names()); err != nil {
		return apperrors.NewWriteError("write header", path, err)
	}
	for r := 0; r < t.RowCount(); r++ {
		record := make([]string, t.ColumnCount())
		for c, v := range t.Row(r) {
			record[c] = v.String()
		}
		if err := writer.Write(record); err != nil {
			return apperrors.NewWriteError("write record", path, fmt.Errorf("row %d: %w", r, err))
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return apperrors.NewWriteError("flush file", path, err)
	}
	return nil
}

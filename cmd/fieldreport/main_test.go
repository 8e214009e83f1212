package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ledatools/internal/config"
	"ledatools/internal/report"
	"ledatools/internal/table"
)

func TestResolveInputsPrefersArguments(t *testing.T) {
	inputs, err := resolveInputs([]string{"a.csv", "b.xlsx"}, "ignored")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv", "b.xlsx"}, inputs)
}

func TestResolveInputsDiscoversDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.csv"), []byte("A\n1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "_FieldReport.xlsx"), []byte("x"), 0644))

	inputs, err := resolveInputs(nil, dir)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "data.csv")}, inputs)
}

func TestResolveOutputPath(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().Report

	path, err := resolveOutputPath(cfg, []string{filepath.Join(dir, "a.csv")}, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_FieldReport.xlsx"), path)
}

func TestResolveOutputPathPicksFreeName(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().Report
	require.NoError(t, os.WriteFile(filepath.Join(dir, cfg.FileName), []byte("x"), 0644))

	path, err := resolveOutputPath(cfg, nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "_FieldReport_2.xlsx"), path)
}

func TestResolveOutputPathOverwrite(t *testing.T) {
	dir := t.TempDir()
	cfg := config.Default().Report
	cfg.Overwrite = true
	require.NoError(t, os.WriteFile(filepath.Join(dir, cfg.FileName), []byte("x"), 0644))

	path, err := resolveOutputPath(cfg, nil, dir)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, cfg.FileName), path)
}

func TestReportOptions(t *testing.T) {
	tbl := table.New()
	require.NoError(t, tbl.AddColumn(&table.Column{Name: report.ColImport}))
	require.NoError(t, tbl.AddColumn(&table.Column{Name: report.ColFlag}))

	opts := reportOptions("FieldReport", tbl)

	assert.Equal(t, "FieldReport", opts.SheetName)
	assert.True(t, opts.FreezeHeader)
	assert.True(t, opts.AutoFilter)
	assert.Equal(t, []string{report.ColFlag}, opts.HiddenColumns)
	assert.Equal(t, []string{report.ImportYes, report.ImportNo}, opts.ValidationColumns[report.ColImport])
	assert.Len(t, opts.FormatRules, 3)
	assert.Equal(t, 30.0, opts.ColumnWidths[report.ColFile])
}

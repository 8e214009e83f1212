// Package files locates tabular input files for a batch run.
package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"ledatools/internal/report"
)

// dataExtensions are the file types the loader understands
var dataExtensions = map[string]struct{}{
	".csv":  {},
	".xlsx": {},
	".xlsm": {},
	".xls":  {},
}

// FindDataFiles lists the tabular files in dir, sorted by name so batch
// order (and therefore the report's group flag) is deterministic. Earlier
// generated reports are excluded.
func FindDataFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if _, ok := dataExtensions[strings.ToLower(filepath.Ext(name))]; !ok {
			continue
		}
		if report.IsReportFile(name) {
			continue
		}
		paths = append(paths, filepath.Join(dir, name))
	}

	sort.Strings(paths)
	return paths, nil
}

package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	apperrors "ledatools/internal/errors"
)

// maxNameAttempts bounds the numbered-suffix search. Reaching it means
// something is badly wrong with the output directory.
const maxNameAttempts = 10000

// NextAvailablePath returns path if no file exists there, otherwise the
// first numbered sibling (name_2.xlsx, name_3.xlsx, ...) that is free.
func NextAvailablePath(path string) (string, error) {
	if !exists(path) {
		return path, nil
	}

	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	for i := 2; i <= maxNameAttempts; i++ {
		candidate := fmt.Sprintf("%s_%d%s", stem, i, ext)
		if !exists(candidate) {
			return candidate, nil
		}
	}
	return "", apperrors.NewNamingError(path)
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package util

import (
	"errors"
	"strings"
)

var pathSeparators = strings.NewReplacer("/", "_", "\\", "_")

// SanitizeFileName flattens path separators out of an upload name and rejects
// traversal attempts. The result is safe to embed in a storage key.
func SanitizeFileName(name string) (string, error) {
	if strings.Contains(name, "..") {
		return "", errors.New("invalid file name")
	}
	s := pathSeparators.Replace(strings.TrimSpace(name))
	if s == "" {
		return "", errors.New("invalid file name")
	}
	return s, nil
}

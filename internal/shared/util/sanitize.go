package util

import (
	"path/filepath"
	"strings"
)

// BaseName returns the final path element of an uploaded file name,
// treating both slash styles as separators.
func BaseName(name string) string {
	name = strings.ReplaceAll(strings.TrimSpace(name), "\\", "/")
	if name == "" {
		return ""
	}
	return filepath.Base(filepath.FromSlash(name))
}

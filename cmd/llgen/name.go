package main

import (
	"path/filepath"
	"strings"
)

// tableName returns the explicit name, or the base name of the grammar file
// without its extension.
func tableName(explicit, path string) string {
	if explicit != "" {
		return explicit
	}
	if path == "" {
		return ""
	}
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

package source

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/theirongolddev/bizdash/internal/common"
)

// Scan resolves paths into importable files. Directories are walked
// recursively and keep only recognized extensions; a file named directly
// must have one. Hidden entries (including export temp files) are skipped
// and each file is reported once.
func Scan(paths ...string) ([]DiscoveredFile, error) {
	var files []DiscoveredFile
	seen := make(map[string]struct{})

	add := func(path string, format Format) {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if _, ok := seen[abs]; ok {
			return
		}
		seen[abs] = struct{}{}
		files = append(files, DiscoveredFile{Path: abs, Format: format})
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}

		if !info.IsDir() {
			format, ok := formatFor(root)
			if !ok {
				return nil, common.Invalid("file", "%s: unsupported format (want .csv, .jsonl or .json)", root)
			}
			add(root, format)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return nil //nolint:nilerr // intentionally skip unreadable entries
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			if format, ok := formatFor(path); ok {
				add(path, format)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("scanning %s: %w", root, err)
		}
	}

	return files, nil
}

func formatFor(path string) (Format, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV, true
	case ".jsonl", ".ndjson":
		return FormatJSONL, true
	case ".json":
		return FormatReport, true
	default:
		return 0, false
	}
}

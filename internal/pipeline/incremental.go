package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/source"
)

// Tracker remembers which file versions have been imported.
type Tracker interface {
	ImportedFiles() (map[string]model.ImportedFile, error)
	MarkImported(f model.ImportedFile) error
}

// IncrementalResult extends LoadResult with the files skipped as unchanged.
type IncrementalResult struct {
	LoadResult
	Unchanged int
}

// LoadIncremental diffs files against tracker and parses only those that
// are new or changed since their last import.
func LoadIncremental(files []source.DiscoveredFile, tracker Tracker, progressFn ProgressFunc) (*IncrementalResult, error) {
	result := &IncrementalResult{
		LoadResult: LoadResult{TotalFiles: len(files)},
	}
	if len(files) == 0 {
		return result, nil
	}

	tracked, err := tracker.ImportedFiles()
	if err != nil {
		return nil, fmt.Errorf("reading import history: %w", err)
	}

	// Diff: partition into changed and unchanged
	var toParse []source.DiscoveredFile
	for _, f := range files {
		info, err := os.Stat(f.Path)
		if err != nil {
			toParse = append(toParse, f) // parseOne reports it
			continue
		}
		prev, ok := tracked[f.Path]
		if ok && prev.Same(versionOf(f.Path, info)) {
			result.Unchanged++
			slog.Debug("skipping unchanged file", "file", f.Path, "imported_at", prev.ImportedAt)
			continue
		}
		toParse = append(toParse, f)
	}

	if progressFn != nil && result.Unchanged > 0 {
		progressFn(result.Unchanged, result.TotalFiles)
	}
	parseAll(&result.LoadResult, toParse, result.Unchanged, progressFn)
	return result, nil
}

// Commit records every file version in res as imported. Call it once the
// samples have been stored.
func Commit(tracker Tracker, res *LoadResult) error {
	for _, f := range res.Parsed {
		if err := tracker.MarkImported(f); err != nil {
			return fmt.Errorf("recording import of %s: %w", f.Path, err)
		}
	}
	return nil
}

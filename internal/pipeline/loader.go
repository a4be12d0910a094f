// Package pipeline loads figures files in parallel and folds them into
// monthly samples ready for the store.
package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/source"
)

// LoadResult holds the output of loading a set of files.
type LoadResult struct {
	Samples     []model.HistoricalSample // in file order, then record order
	TotalFiles  int
	ParsedFiles int
	ParseErrors int
	FileErrors  int
	Errors      []error // one per file that could not be read

	// Parsed lists the file versions read successfully, for Commit.
	Parsed []model.ImportedFile
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load parses every file with a bounded worker pool.
func Load(files []source.DiscoveredFile, progressFn ProgressFunc) *LoadResult {
	result := &LoadResult{TotalFiles: len(files)}
	parseAll(result, files, 0, progressFn)
	return result
}

type parsed struct {
	res     source.ParseResult
	version model.ImportedFile
}

// parseAll parses files in parallel and folds the results into result in
// input order. done offsets the progress count for files handled earlier.
func parseAll(result *LoadResult, files []source.DiscoveredFile, done int, progressFn ProgressFunc) {
	if len(files) == 0 {
		return
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]parsed, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	// Feed work
	for i := range files {
		work <- i
	}
	close(work)

	// Spawn workers
	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = parseOne(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(done+int(n), result.TotalFiles)
				}
			}
		}()
	}

	wg.Wait()

	// Collect results
	for _, p := range results {
		if p.res.Err != nil {
			result.FileErrors++
			result.Errors = append(result.Errors, p.res.Err)
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += p.res.ParseErrors
		result.Samples = append(result.Samples, p.res.Samples...)
		result.Parsed = append(result.Parsed, p.version)
	}
}

// parseOne stats df before reading it, so a write racing the import marks
// the file as changed for the next run.
func parseOne(df source.DiscoveredFile) parsed {
	info, err := os.Stat(df.Path)
	if err != nil {
		return parsed{res: source.ParseResult{Err: fmt.Errorf("%s: %w", df.Path, err)}}
	}
	return parsed{
		res:     source.ParseFile(df),
		version: versionOf(df.Path, info),
	}
}

func versionOf(path string, info os.FileInfo) model.ImportedFile {
	return model.ImportedFile{
		Path:      path,
		MtimeNs:   info.ModTime().UnixNano(),
		SizeBytes: info.Size(),
	}
}

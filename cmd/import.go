package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/theirongolddev/bizdash/internal/cli"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
	"github.com/theirongolddev/bizdash/internal/pipeline"
	"github.com/theirongolddev/bizdash/internal/source"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func runForecastImport(cmd *cobra.Command, args []string) error {
	files, err := source.Scan(args...)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		info(cmd.ErrOrStderr(), "No .csv, .jsonl or .json files found.")
		return nil
	}

	s, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	var progressFn pipeline.ProgressFunc
	if !flagQuiet {
		bar := newImportBar(cmd.ErrOrStderr(), len(files))
		progressFn = func(current, _ int) {
			if err := bar.Set(current); err != nil {
				slog.Warn("Failed to update progress bar", "error", err)
			}
		}
	}

	var res *pipeline.LoadResult
	unchanged := 0
	if flagReimport {
		res = pipeline.Load(files, progressFn)
	} else {
		inc, err := pipeline.LoadIncremental(files, s, progressFn)
		if err != nil {
			return err
		}
		res, unchanged = &inc.LoadResult, inc.Unchanged
	}

	for _, fileErr := range res.Errors {
		slog.Warn("file not imported", "error", fileErr)
	}

	history, err := s.History()
	if err != nil {
		return err
	}
	plan := pipeline.PlanImport(history, pipeline.AggregateMonths(res.Samples))

	inputs := make([]forecast.SampleInput, len(plan.Add))
	for i, sample := range plan.Add {
		inputs[i] = pipeline.Input(sample)
	}
	if _, err := s.AddSamples(inputs); err != nil {
		return fmt.Errorf("adding imported months: %w", err)
	}
	if err := pipeline.Commit(s, res); err != nil {
		return err
	}

	w := cmd.ErrOrStderr()
	info(w, "Read %d of %d files (%d unchanged, %d unreadable, %d bad rows)",
		res.ParsedFiles, res.TotalFiles, unchanged, res.FileErrors, res.ParseErrors)
	info(w, "Added %s months", cli.FormatNumber(int64(len(plan.Add))))
	if n := len(plan.Existing); n > 0 {
		info(w, "Kept %d months already recorded: %s", n, monthList(plan.Existing))
	}
	if res.FileErrors > 0 {
		return fmt.Errorf("%d file(s) could not be imported", res.FileErrors)
	}
	return nil
}

func newImportBar(w io.Writer, total int) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan]Importing files...[reset]"),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "[green]=[reset]",
			SaucerHead:    "[green]>[reset]",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(w); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func monthList(samples []model.HistoricalSample) string {
	names := make([]string, len(samples))
	for i, s := range samples {
		names[i] = cli.FormatMonth(s.Month)
	}
	return strings.Join(names, ", ")
}

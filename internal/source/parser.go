// Package source discovers and parses files of monthly revenue and expense
// figures for import.
package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
)

// ParseResult holds the output of parsing a single file.
type ParseResult struct {
	Samples     []model.HistoricalSample
	ParseErrors int
	Err         error
}

// ParseFile reads df and validates every record it holds. Malformed or
// invalid records are counted in ParseErrors and skipped; Err is set only
// when the file as a whole cannot be read.
func ParseFile(df DiscoveredFile) ParseResult {
	f, err := os.Open(df.Path)
	if err != nil {
		return ParseResult{Err: err}
	}
	defer func() { _ = f.Close() }()

	var res ParseResult
	switch df.Format {
	case FormatCSV:
		res = parseCSV(f, df.Path)
	case FormatJSONL:
		res = parseJSONL(f, df.Path)
	default:
		res = parseReport(f, df.Path)
	}
	if res.Err != nil {
		res.Err = fmt.Errorf("%s: %w", df.Path, res.Err)
	}
	return res
}

// reject counts one unusable record.
func (r *ParseResult) reject(path string, line int, err error) {
	r.ParseErrors++
	slog.Debug("skipping record", "file", path, "line", line, "error", err)
}

func (r *ParseResult) accept(path string, line int, in forecast.SampleInput) {
	sample, err := forecast.ParseSample(in)
	if err != nil {
		r.reject(path, line, err)
		return
	}
	r.Samples = append(r.Samples, sample)
}

// monthOf prefers an explicit month and otherwise truncates a date.
func monthOf(month, date string) string {
	if strings.TrimSpace(month) != "" || strings.TrimSpace(date) == "" {
		return month
	}
	d, err := model.ParseDate(date)
	if err != nil {
		return date // let month validation report it
	}
	return d.Format(model.MonthLayout)
}

func parseCSV(r io.Reader, path string) ParseResult {
	var res ParseResult

	cr := csv.NewReader(bufio.NewReader(r))
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return res
	}
	if err != nil {
		return ParseResult{Err: fmt.Errorf("reading header: %w", err)}
	}

	cols := map[string]int{}
	for i, name := range header {
		cols[strings.ToLower(strings.TrimSpace(name))] = i
	}
	period, ok := cols["month"]
	if !ok {
		period, ok = cols["date"]
	}
	revenue, hasRevenue := cols["revenue"]
	expenses, hasExpenses := cols["expenses"]
	if !ok || !hasRevenue || !hasExpenses {
		return ParseResult{Err: common.Invalid("header", "want month (or date), revenue and expenses columns, got %q", header)}
	}
	width := max(period, revenue, expenses) + 1

	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			line := 0
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				line = pe.Line
			}
			res.reject(path, line, err)
			continue
		}
		line, _ := cr.FieldPos(0)
		if len(rec) < width {
			res.reject(path, line, fmt.Errorf("expected at least %d columns, got %d", width, len(rec)))
			continue
		}

		in := forecast.SampleInput{Revenue: rec[revenue], Expenses: rec[expenses]}
		if _, isMonth := cols["month"]; isMonth {
			in.Month = rec[period]
		} else {
			in.Month = monthOf("", rec[period])
		}
		res.accept(path, line, in)
	}
	return res
}

func parseJSONL(r io.Reader, path string) ParseResult {
	var res ParseResult

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}

		var rec RawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			res.reject(path, line, err)
			continue
		}
		res.accept(path, line, forecast.SampleInput{
			Month:    monthOf(rec.Month, rec.Date),
			Revenue:  rec.Revenue.String(),
			Expenses: rec.Expenses.String(),
		})
	}

	if err := scanner.Err(); err != nil {
		return ParseResult{Err: err}
	}
	return res
}

func parseReport(r io.Reader, path string) ParseResult {
	var report struct {
		HistoricalData []model.HistoricalSample `json:"historicalData"`
		Budget         json.RawMessage          `json:"budget"`
	}
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return ParseResult{Err: fmt.Errorf("decoding report: %w", err)}
	}
	if report.Budget != nil {
		return ParseResult{Err: common.Invalid("file", "budget reports hold no monthly figures")}
	}
	if report.HistoricalData == nil {
		return ParseResult{Err: common.Invalid("file", "not a financial-forecast report (no historicalData)")}
	}

	var res ParseResult
	for i, s := range report.HistoricalData {
		res.accept(path, i+1, forecast.SampleInput{
			Month:    s.Month,
			Revenue:  strconv.FormatFloat(s.Revenue, 'f', -1, 64),
			Expenses: strconv.FormatFloat(s.Expenses, 'f', -1, 64),
		})
	}
	return res
}

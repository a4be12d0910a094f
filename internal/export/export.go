// Package export writes JSON reports of the budget and forecast views.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

func init() {
	// Reports carry money as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true
}

// Encode writes v as two-space indented JSON followed by a newline.
func Encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

// Slug lowercases s and collapses each whitespace run into a single dash.
func Slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(strings.TrimSpace(s)), unicode.IsSpace)
	return strings.Join(fields, "-")
}

// BudgetFileName is the report file name for the named budget.
func BudgetFileName(name string) string {
	slug := Slug(name)
	if slug == "" {
		slug = "untitled"
	}
	slug = strings.ReplaceAll(slug, string(os.PathSeparator), "-")
	return "budget-report-" + slug + ".json"
}

// ForecastFileName is the report file name for a forecast exported at at.
func ForecastFileName(at time.Time) string {
	return "financial-forecast-" + at.UTC().Format("2006-01-02") + ".json"
}

// WriteFile encodes v into dir/name, replacing any existing file
// atomically, and returns the written path.
func WriteFile(dir, name string, v any) (string, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+name+".*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := Encode(tmp, v); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing temp file: %w", err)
	}

	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("saving %s: %w", name, err)
	}

	slog.Debug("report exported", "path", path)
	return path, nil
}

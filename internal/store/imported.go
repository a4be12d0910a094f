package store

import (
	"fmt"
	"maps"
	"time"

	"github.com/theirongolddev/bizdash/internal/model"
)

// ImportedFiles returns the last imported version of each file, by path.
func (s *DB) ImportedFiles() (map[string]model.ImportedFile, error) {
	rows, err := s.db.Query("SELECT path, mtime_ns, size_bytes, imported_at FROM imported_files")
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	files := make(map[string]model.ImportedFile)
	for rows.Next() {
		var f model.ImportedFile
		var at string
		if err := rows.Scan(&f.Path, &f.MtimeNs, &f.SizeBytes, &at); err != nil {
			return nil, err
		}
		f.ImportedAt, _ = time.Parse(time.RFC3339Nano, at)
		files[f.Path] = f
	}
	return files, rows.Err()
}

// MarkImported records f as the imported version of its path.
func (s *DB) MarkImported(f model.ImportedFile) error {
	if f.ImportedAt.IsZero() {
		f.ImportedAt = time.Now()
	}
	_, err := s.db.Exec(`INSERT INTO imported_files (path, mtime_ns, size_bytes, imported_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mtime_ns = excluded.mtime_ns,
			size_bytes = excluded.size_bytes,
			imported_at = excluded.imported_at`,
		f.Path, f.MtimeNs, f.SizeBytes, f.ImportedAt.UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("recording import: %w", err)
	}
	return nil
}

func (m *Memory) ImportedFiles() (map[string]model.ImportedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.imported), nil
}

func (m *Memory) MarkImported(f model.ImportedFile) error {
	if f.ImportedAt.IsZero() {
		f.ImportedAt = time.Now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.imported == nil {
		m.imported = make(map[string]model.ImportedFile)
	}
	m.imported[f.Path] = f
	return nil
}

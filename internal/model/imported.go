package model

import "time"

// ImportedFile records the version of a figures file that was last
// imported, so unchanged files can be skipped on the next run.
type ImportedFile struct {
	Path       string
	MtimeNs    int64
	SizeBytes  int64
	ImportedAt time.Time
}

// Same reports whether o describes the same file version as f.
func (f ImportedFile) Same(o ImportedFile) bool {
	return f.Path == o.Path && f.MtimeNs == o.MtimeNs && f.SizeBytes == o.SizeBytes
}

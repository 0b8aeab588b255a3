package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"GlobalPulse/internal/domain"
	"GlobalPulse/internal/ports"
)

const latestFileName = "latest.json"

// FileArchive writes one poster JSON per date plus the latest pointer the
// renderer reads.
type FileArchive struct {
	dir string
}

var _ ports.Archive = (*FileArchive)(nil)

// NewFileArchive roots the archive at dir; the directory is created on
// first write.
func NewFileArchive(dir string) *FileArchive {
	return &FileArchive{dir: dir}
}

// WriteRecord stores poster-<date>.json and overwrites latest.json.
func (a *FileArchive) WriteRecord(record domain.DailyRecord) error {
	if a.dir == "" {
		return fmt.Errorf("archive directory is not configured")
	}

	if err := os.MkdirAll(a.dir, 0o755); err != nil {
		return fmt.Errorf("create archive dir: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	dated := filepath.Join(a.dir, fmt.Sprintf("poster-%s.json", record.Date))
	if err := os.WriteFile(dated, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", dated, err)
	}

	latest := filepath.Join(a.dir, latestFileName)
	if err := os.WriteFile(latest, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", latest, err)
	}

	return nil
}

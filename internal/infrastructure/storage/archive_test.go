package storage

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"GlobalPulse/internal/domain"
)

func sampleRecord(date string) domain.DailyRecord {
	return domain.DailyRecord{
		Date:        date,
		DisplayDate: "AUG 31, 2026",
		MoodWord:    "TENSE",
		Stories: []domain.Story{
			{
				ID:        1,
				Headline:  "Ceasefire Holds In Contested Region",
				Intensity: 72,
				Color:     "#ff2d55",
			},
		},
	}
}

func TestWriteRecordWritesDatedAndLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := NewFileArchive(filepath.Join(dir, "archive"))

	if err := archive.WriteRecord(sampleRecord("2026-08-31")); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	for _, name := range []string{"poster-2026-08-31.json", "latest.json"} {
		data, err := os.ReadFile(filepath.Join(dir, "archive", name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		var record domain.DailyRecord
		if err := json.Unmarshal(data, &record); err != nil {
			t.Fatalf("unmarshal %s: %v", name, err)
		}
		if record.Date != "2026-08-31" || record.MoodWord != "TENSE" {
			t.Fatalf("%s holds unexpected record: %+v", name, record)
		}
	}
}

func TestWriteRecordOverwritesLatest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := NewFileArchive(dir)

	if err := archive.WriteRecord(sampleRecord("2026-08-30")); err != nil {
		t.Fatalf("first WriteRecord: %v", err)
	}
	if err := archive.WriteRecord(sampleRecord("2026-08-31")); err != nil {
		t.Fatalf("second WriteRecord: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "latest.json"))
	if err != nil {
		t.Fatalf("read latest.json: %v", err)
	}
	var record domain.DailyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		t.Fatalf("unmarshal latest.json: %v", err)
	}
	if record.Date != "2026-08-31" {
		t.Fatalf("latest.json must point at the newest record, got %s", record.Date)
	}

	if _, err := os.Stat(filepath.Join(dir, "poster-2026-08-30.json")); err != nil {
		t.Fatalf("older dated file must survive: %v", err)
	}
}

func TestWriteRecordKeepsNullLocation(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	archive := NewFileArchive(dir)

	record := sampleRecord("2026-08-31")
	record.Stories[0].MainLocation = nil
	if err := archive.WriteRecord(record); err != nil {
		t.Fatalf("WriteRecord: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "latest.json"))
	if err != nil {
		t.Fatalf("read latest.json: %v", err)
	}
	var decoded struct {
		Stories []map[string]json.RawMessage `json:"stories"`
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	raw, ok := decoded.Stories[0]["mainLocation"]
	if !ok {
		t.Fatalf("mainLocation key must be present")
	}
	if string(raw) != "null" {
		t.Fatalf("global stories must serialize mainLocation as null, got %s", raw)
	}
}

func TestWriteRecordRequiresDirectory(t *testing.T) {
	t.Parallel()

	archive := NewFileArchive("")
	if err := archive.WriteRecord(sampleRecord("2026-08-31")); err == nil {
		t.Fatalf("expected error for unconfigured directory")
	}
}

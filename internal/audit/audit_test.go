package audit

import (
	"testing"

	"github.com/kete-vault/kete/internal/configs"
)

func useTempConfigDir(t *testing.T) {
	t.Helper()
	previous := configs.UseConfigDir(t.TempDir())
	t.Cleanup(func() {
		configs.KeteSettings = previous
	})
}

func TestLogAndReadEntries(t *testing.T) {
	useTempConfigDir(t)

	Log(Entry{Operation: "generate", Name: "github", EntryID: "id-1"})
	Log(Entry{Operation: "rotate", Name: "github", EntryID: "id-2", ReplacedID: "id-1"})
	Log(Entry{Operation: "delete", Name: "github", RemovedCount: 2})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	if entries[0].Operation != "generate" || entries[0].EntryID != "id-1" {
		t.Errorf("unexpected first entry: %+v", entries[0])
	}
	if entries[1].ReplacedID != "id-1" {
		t.Errorf("expected rotate entry to record the replaced id, got %+v", entries[1])
	}
	if entries[2].RemovedCount != 2 {
		t.Errorf("expected delete entry to record the removed count, got %+v", entries[2])
	}

	for i, entry := range entries {
		if entry.Timestamp == "" {
			t.Errorf("entry %d has no timestamp", i)
		}
	}
}

func TestReadEntriesMissingLog(t *testing.T) {
	useTempConfigDir(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}

func TestParseEntriesSkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"2026-01-02T03:04:05.000000Z","op":"generate","name":"a"}
not json at all
{"ts":"2026-01-02T03:04:06.000000Z","op":"delete","name":"a","removed_count":1}

{"truncated`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 parsed entries, got %d", len(entries))
	}
	if entries[0].Operation != "generate" || entries[1].Operation != "delete" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestParseEntriesEmpty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil for empty input, got %+v", entries)
	}
}

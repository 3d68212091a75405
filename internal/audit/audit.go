package audit

import (
	"encoding/json"
	"os"
	"time"

	"github.com/kete-vault/kete/internal/configs"
)

// Entry represents a single audit log entry. Audit entries carry entry
// names, ids, and counts only, never passwords or payloads.
type Entry struct {
	Timestamp string `json:"ts"` // RFC3339 with microseconds.
	Operation string `json:"op"` // Operation name.

	// Optional fields depending on operation.
	Name         string `json:"name,omitempty"`          // Credential name.
	EntryID      string `json:"entry_id,omitempty"`      // Entry created or acted on.
	ReplacedID   string `json:"replaced_id,omitempty"`   // For rotate/replace.
	RemovedCount int    `json:"removed_count,omitempty"` // For delete.
}

// Log appends an entry to the audit log.
// If logging fails, the operation it records must still succeed, so Log
// never returns an error.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format("2006-01-02T15:04:05.000000Z")
	}

	logPath := configs.KeteSettings.AuditPath

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(configs.KeteSettings.AuditPath)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				// Skip malformed entries.
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}

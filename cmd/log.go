package cmd

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kete-vault/kete/internal/audit"
	"github.com/kete-vault/kete/internal/ui"

	"github.com/spf13/cobra"
)

var (
	logLimit   int
	logReverse bool
	logName    string
	logOneline bool
	logJSON    bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logName, "name", "", "filter by credential name")
	logCmd.Flags().BoolVar(&logOneline, "oneline", false, "compact one-line format")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logName = ""
	logOneline = false
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the vault's operation history",
	Long: `Displays the operation history of the vault.

Every generate, rotate, replace, and delete is recorded with its
timestamp, credential name, and entry ids. Secrets themselves are never
logged, so viewing the history requires no authentication.

Examples:
  kete log                  # Full history, oldest first
  kete log -n 10            # Last 10 entries
  kete log --reverse        # Most recent first
  kete log --name github    # One credential's history
  kete log --json           # JSON output`,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	entries, err := audit.ReadEntries()
	if err != nil {
		return Logger.ErrorfAndReturn("failed to read operation history: %v", err)
	}

	Logger.Debugf("Parsed %d entries from the operation history", len(entries))

	if logName != "" {
		entries = filterLogByName(entries, logName)
	}
	if logReverse {
		entries = reverseLogEntries(entries)
	}
	entries = limitLogEntries(entries, logLimit, logReverse)

	if len(entries) == 0 {
		fmt.Println("No history entries found.")
		return nil
	}

	if logJSON {
		return outputLogJSON(entries)
	}
	if logOneline {
		outputLogOneline(entries)
		return nil
	}
	outputLogDefault(entries)
	return nil
}

func filterLogByName(entries []audit.Entry, name string) []audit.Entry {
	var filtered []audit.Entry
	for _, e := range entries {
		if e.Name == name {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func reverseLogEntries(entries []audit.Entry) []audit.Entry {
	reversed := make([]audit.Entry, len(entries))
	for i, e := range entries {
		reversed[len(entries)-1-i] = e
	}
	return reversed
}

// limitLogEntries keeps the n most recent entries. With newest-first
// ordering that is the head of the slice, otherwise the tail.
func limitLogEntries(entries []audit.Entry, n int, newestFirst bool) []audit.Entry {
	if n <= 0 || n >= len(entries) {
		return entries
	}
	if newestFirst {
		return entries[:n]
	}
	return entries[len(entries)-n:]
}

func outputLogJSON(entries []audit.Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogOneline(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%s %s %s\n", formatLogDate(e.Timestamp), e.Operation, formatLogDetails(e))
	}
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		fmt.Printf("%-19s  %-10s  %s\n", formatLogDateTime(e.Timestamp), e.Operation, formatLogDetails(e))
	}
}

// formatLogDate renders just the date portion of a history timestamp.
// Unparseable timestamps are shown as-is.
func formatLogDate(ts string) string {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Format("2006-01-02")
}

func formatLogDateTime(ts string) string {
	parsed, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return parsed.Format("2006-01-02 15:04:05")
}

func formatLogDetails(e audit.Entry) string {
	var parts []string
	if e.Name != "" {
		parts = append(parts, ui.Highlight.Sprint(e.Name))
	}
	if e.EntryID != "" {
		parts = append(parts, "id "+shortEntryID(e.EntryID))
	}
	if e.ReplacedID != "" {
		parts = append(parts, "replaced "+shortEntryID(e.ReplacedID))
	}
	if e.RemovedCount > 0 {
		parts = append(parts, fmt.Sprintf("removed %d", e.RemovedCount))
	}
	return strings.Join(parts, ", ")
}

// shortEntryID abbreviates a uuid to its first block for display.
func shortEntryID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

package cmd

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/kete-vault/kete/internal/audit"
	"github.com/kete-vault/kete/internal/vault"
)

// testSession builds a session over the temporary config directory with
// scripted stdin.
func testSession(t *testing.T, input string) *session {
	t.Helper()

	cipher, err := vault.NewCipher(bytes.Repeat([]byte{0x42}, vault.KeySize), vault.AlgorithmAESGCM)
	if err != nil {
		t.Fatalf("NewCipher failed: %v", err)
	}

	files := vault.DefaultFileStore()
	return &session{
		manager: vault.NewManager(cipher, files),
		files:   files,
		reader:  bufio.NewReader(strings.NewReader(input)),
	}
}

func TestRetrieveOffersDeprecatedEntries(t *testing.T) {
	useTempConfigDir(t)

	// Selection input is prepared up front: active entries list first, so
	// the deprecated original is entry 2.
	s := testSession(t, "2\n")

	original, originalPassword, err := s.manager.Generate("db", vault.DefaultPasswordLength)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, _, err := s.manager.Rotate(original.ID, vault.DefaultPasswordLength); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	output, err := captureOutput(s.retrieve)
	if err != nil {
		t.Fatalf("retrieve failed: %v\nOutput: %s", err, output)
	}

	if !strings.Contains(output, originalPassword) {
		t.Errorf("expected the deprecated entry's password in the output, got: %s", output)
	}
}

func TestRetrieveCorruptedDeprecatedEntryIsNotReplaced(t *testing.T) {
	useTempConfigDir(t)

	s := testSession(t, "2\n")

	original, _, err := s.manager.Generate("db", vault.DefaultPasswordLength)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if _, _, err := s.manager.Rotate(original.ID, vault.DefaultPasswordLength); err != nil {
		t.Fatalf("Rotate failed: %v", err)
	}

	// Corrupt the deprecated entry's payload by flipping a hex digit of
	// its tag.
	store, err := s.files.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for i := range store.Entries {
		if store.Entries[i].ID != original.ID {
			continue
		}
		parts := strings.Split(store.Entries[i].Secret, ":")
		tag := []byte(parts[2])
		if tag[0] == 'a' {
			tag[0] = 'b'
		} else {
			tag[0] = 'a'
		}
		parts[2] = string(tag)
		store.Entries[i].Secret = strings.Join(parts, ":")
	}
	if err := s.files.Save(store); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	output, err := captureOutput(s.retrieve)
	if err != nil {
		t.Fatalf("retrieve failed: %v\nOutput: %s", err, output)
	}
	if !strings.Contains(output, "are not replaced") {
		t.Errorf("expected the deprecated-entry notice, got: %s", output)
	}

	// Nothing was removed or added.
	store, err = s.files.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Entries) != 2 {
		t.Errorf("expected the store to be untouched, got %d entries", len(store.Entries))
	}
}

func TestSessionHistory(t *testing.T) {
	useTempConfigDir(t)

	s := testSession(t, "")

	output, err := captureOutput(func() error {
		s.history()
		return nil
	})
	if err != nil {
		t.Fatalf("captureOutput failed: %v", err)
	}
	if !strings.Contains(output, "no history yet") {
		t.Errorf("expected the empty-history notice, got: %s", output)
	}

	audit.Log(audit.Entry{Operation: "generate", Name: "db", EntryID: "id-1"})
	audit.Log(audit.Entry{Operation: "rotate", Name: "db", EntryID: "id-2", ReplacedID: "id-1"})

	output, err = captureOutput(func() error {
		s.history()
		return nil
	})
	if err != nil {
		t.Fatalf("captureOutput failed: %v", err)
	}
	if !strings.Contains(output, "generate") || !strings.Contains(output, "rotate") {
		t.Errorf("expected both operations in the history, got: %s", output)
	}
}

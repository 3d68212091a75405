package vault

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	kerrors "github.com/kete-vault/kete/internal/errors"
)

func tempStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "store.json"))
}

func TestLoadCreatesEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	fs := NewFileStore(path)

	store, err := fs.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(store.Entries) != 0 {
		t.Errorf("expected empty store, got %d entries", len(store.Entries))
	}

	// The empty store must have been persisted as a valid document.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected store file to exist: %v", err)
	}
	if !strings.Contains(string(data), `"entries"`) {
		t.Errorf("expected persisted store to contain an entries field, got %s", data)
	}
}

func TestLoadCorruptStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatalf("failed to write corrupt store: %v", err)
	}

	_, err := NewFileStore(path).Load()
	if !errors.Is(err, kerrors.ErrStoreCorrupt) {
		t.Errorf("expected ErrStoreCorrupt, got %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	fs := tempStore(t)

	store := &Store{Entries: []Entry{
		newEntry("github", "payload-a"),
		newEntry("aws", "payload-b"),
	}}
	if err := fs.Save(store); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := fs.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(loaded.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(loaded.Entries))
	}
	if loaded.Entries[0].Name != "github" || loaded.Entries[1].Name != "aws" {
		t.Errorf("expected insertion order preserved, got %s then %s", loaded.Entries[0].Name, loaded.Entries[1].Name)
	}
}

func TestListActiveAndDeprecated(t *testing.T) {
	a := newEntry("first", "p1")
	b := newEntry("second", "p2")
	c := newEntry("third", "p3")
	b.deprecate(time.Now().UTC())

	store := &Store{Entries: []Entry{a, b, c}}

	active := store.ListActive()
	if len(active) != 2 {
		t.Fatalf("expected 2 active entries, got %d", len(active))
	}
	if active[0].Name != "first" || active[1].Name != "third" {
		t.Errorf("expected active order first, third; got %s, %s", active[0].Name, active[1].Name)
	}

	deprecated := store.ListDeprecated()
	if len(deprecated) != 1 {
		t.Fatalf("expected 1 deprecated entry, got %d", len(deprecated))
	}
	if deprecated[0].Name != "second" {
		t.Errorf("expected deprecated entry second, got %s", deprecated[0].Name)
	}
	if deprecated[0].DeprecatedAt == nil {
		t.Error("expected DeprecatedAt to be set on a deprecated entry")
	}
}

func TestFindByID(t *testing.T) {
	entry := newEntry("target", "payload")
	store := &Store{Entries: []Entry{newEntry("other", "p"), entry}}

	found, err := store.FindByID(entry.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if found.Name != "target" {
		t.Errorf("expected entry target, got %s", found.Name)
	}

	if _, err := store.FindByID("no-such-id"); !errors.Is(err, kerrors.ErrEntryNotFound) {
		t.Errorf("expected ErrEntryNotFound, got %v", err)
	}
}

func TestRemoveAllByName(t *testing.T) {
	active := newEntry("db", "p1")
	old1 := newEntry("db", "p2")
	old2 := newEntry("db", "p3")
	old1.deprecate(time.Now().UTC())
	old2.deprecate(time.Now().UTC())
	keep := newEntry("api", "p4")

	store := &Store{Entries: []Entry{old1, active, old2, keep}}

	removed := store.RemoveAllByName("db")
	if removed != 3 {
		t.Errorf("expected 3 removed, got %d", removed)
	}
	if len(store.Entries) != 1 || store.Entries[0].Name != "api" {
		t.Errorf("expected only api to survive, got %+v", store.Entries)
	}

	if removed := store.RemoveAllByName("db"); removed != 0 {
		t.Errorf("expected 0 removed on second pass, got %d", removed)
	}
}

func TestRemoveByID(t *testing.T) {
	a := newEntry("a", "p1")
	b := newEntry("b", "p2")
	store := &Store{Entries: []Entry{a, b}}

	if !store.removeByID(a.ID) {
		t.Error("expected removeByID to report success")
	}
	if len(store.Entries) != 1 || store.Entries[0].ID != b.ID {
		t.Errorf("expected only b to remain, got %+v", store.Entries)
	}

	if store.removeByID("missing") {
		t.Error("expected removeByID to report failure for an unknown id")
	}
}

func TestDeprecatedAtOmittedForActiveEntries(t *testing.T) {
	fs := tempStore(t)

	store := &Store{Entries: []Entry{newEntry("svc", "payload")}}
	if err := fs.Save(store); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	data, err := os.ReadFile(fs.path)
	if err != nil {
		t.Fatalf("failed to read store file: %v", err)
	}
	if strings.Contains(string(data), "deprecatedAt") {
		t.Error("expected deprecatedAt to be omitted for active entries")
	}
}

package vault

import (
	"fmt"
	"os"

	"github.com/kete-vault/kete/internal/configs"
	kerrors "github.com/kete-vault/kete/internal/errors"
)

// Store is the in-memory representation of the persisted entry store.
// Entries keep their insertion order; selection lists in the UI rely on
// it reflecting creation order.
type Store struct {
	Entries []Entry `json:"entries"`
}

// ListActive returns the entries that have not been deprecated, in
// insertion order.
func (s *Store) ListActive() []Entry {
	var active []Entry
	for _, entry := range s.Entries {
		if !entry.Deprecated {
			active = append(active, entry)
		}
	}
	return active
}

// ListDeprecated returns the deprecated entries, in insertion order.
func (s *Store) ListDeprecated() []Entry {
	var deprecated []Entry
	for _, entry := range s.Entries {
		if entry.Deprecated {
			deprecated = append(deprecated, entry)
		}
	}
	return deprecated
}

// FindByID returns the entry with the given id, or ErrEntryNotFound.
func (s *Store) FindByID(id string) (Entry, error) {
	for _, entry := range s.Entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return Entry{}, fmt.Errorf("id %s: %w", id, kerrors.ErrEntryNotFound)
}

// RemoveAllByName deletes every entry sharing the given name, active and
// deprecated alike, and returns how many were removed.
func (s *Store) RemoveAllByName(name string) int {
	kept := s.Entries[:0]
	removed := 0
	for _, entry := range s.Entries {
		if entry.Name == name {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	s.Entries = kept
	return removed
}

// removeByID deletes the single entry with the given id.
// Used by the replace-on-corruption path, where the entry's secret is
// unrecoverable and deprecation would preserve nothing of value.
func (s *Store) removeByID(id string) bool {
	for i, entry := range s.Entries {
		if entry.ID == id {
			s.Entries = append(s.Entries[:i], s.Entries[i+1:]...)
			return true
		}
	}
	return false
}

// FileStore persists a Store as a single JSON document. Every save
// rewrites the whole file; there is no incremental append.
type FileStore struct {
	path string
}

// NewFileStore returns a file store backed by the given path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultFileStore returns a file store at the configured store path.
func DefaultFileStore() *FileStore {
	return NewFileStore(configs.KeteSettings.StorePath)
}

// Load reads the persisted store. If the file does not exist yet, Load
// persists an empty store first and returns it, so later operations
// never need their own existence checks.
//
// An unreadable or unparseable store file is fatal for the session: Load
// never attempts partial recovery.
func (fs *FileStore) Load() (*Store, error) {
	store := &Store{Entries: []Entry{}}

	if _, err := os.Stat(fs.path); os.IsNotExist(err) {
		if err := fs.Save(store); err != nil {
			return nil, fmt.Errorf("failed to initialize empty store: %w", err)
		}
		return store, nil
	}

	if err := configs.LoadJSON(fs.path, store); err != nil {
		return nil, fmt.Errorf("failed to load store at %s: %w", fs.path, kerrors.ErrStoreCorrupt)
	}

	return store, nil
}

// Save overwrites the persisted store with the given state. The write
// goes through a temporary file and rename, so a crash never leaves a
// partially-written store behind.
func (fs *FileStore) Save(store *Store) error {
	if err := configs.SaveJSON(fs.path, store); err != nil {
		return fmt.Errorf("failed to save store at %s: %w", fs.path, err)
	}
	return nil
}

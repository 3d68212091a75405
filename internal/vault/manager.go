package vault

import (
	"fmt"
	"time"

	kerrors "github.com/kete-vault/kete/internal/errors"
)

// Manager orchestrates the credential lifecycle on top of the cipher and
// the file store. It enforces the deprecate-then-replace policy: a
// healthy active entry is only ever superseded by rotation, which keeps
// the old entry around in deprecated form.
//
// Every mutation re-loads the on-disk store immediately before saving,
// so the session never overwrites external edits it could have seen.
// This is best-effort only; the vault is single-user by contract and
// tolerates losing to a concurrent external edit rather than detecting it.
type Manager struct {
	cipher *Cipher
	files  *FileStore
}

// NewManager wires a lifecycle manager from its two collaborators.
func NewManager(cipher *Cipher, files *FileStore) *Manager {
	return &Manager{cipher: cipher, files: files}
}

// Generate creates a new active entry under the given name with a freshly
// generated password of the requested length. Returns the stored entry
// and the plaintext password for one-time display.
func (m *Manager) Generate(name string, length int) (Entry, string, error) {
	if name == "" {
		return Entry{}, "", fmt.Errorf("entry name must not be empty")
	}

	password, err := GeneratePassword(length)
	if err != nil {
		return Entry{}, "", err
	}

	payload, err := m.cipher.Encrypt(password)
	if err != nil {
		return Entry{}, "", err
	}

	store, err := m.files.Load()
	if err != nil {
		return Entry{}, "", err
	}

	entry := newEntry(name, payload)
	store.Entries = append(store.Entries, entry)

	if err := m.files.Save(store); err != nil {
		return Entry{}, "", err
	}

	return entry, password, nil
}

// Retrieve decrypts the secret of the entry with the given id.
//
// Decrypt failures (ErrIntegrity, ErrPayloadFormat) leave the entry
// untouched; the caller decides between aborting and Replace.
func (m *Manager) Retrieve(id string) (string, error) {
	store, err := m.files.Load()
	if err != nil {
		return "", err
	}

	entry, err := store.FindByID(id)
	if err != nil {
		return "", err
	}

	return m.cipher.Decrypt(entry.Secret)
}

// Rotate deprecates the active entry with the given id and creates a new
// active entry under the same name with a fresh password, in one save.
// The old entry keeps its id and name; only the deprecation fields change.
func (m *Manager) Rotate(id string, length int) (Entry, string, error) {
	password, err := GeneratePassword(length)
	if err != nil {
		return Entry{}, "", err
	}

	payload, err := m.cipher.Encrypt(password)
	if err != nil {
		return Entry{}, "", err
	}

	store, err := m.files.Load()
	if err != nil {
		return Entry{}, "", err
	}

	old := -1
	for i := range store.Entries {
		if store.Entries[i].ID == id {
			old = i
			break
		}
	}
	if old == -1 {
		return Entry{}, "", fmt.Errorf("id %s: %w", id, kerrors.ErrEntryNotFound)
	}
	if store.Entries[old].Deprecated {
		return Entry{}, "", fmt.Errorf("entry %s is already deprecated", id)
	}

	store.Entries[old].deprecate(time.Now().UTC())

	entry := newEntry(store.Entries[old].Name, payload)
	store.Entries = append(store.Entries, entry)

	if err := m.files.Save(store); err != nil {
		return Entry{}, "", err
	}

	return entry, password, nil
}

// Delete removes every entry sharing the given name, active and
// deprecated alike, and returns the number removed. Irreversible.
func (m *Manager) Delete(name string) (int, error) {
	store, err := m.files.Load()
	if err != nil {
		return 0, err
	}

	removed := store.RemoveAllByName(name)
	if removed == 0 {
		return 0, nil
	}

	if err := m.files.Save(store); err != nil {
		return 0, err
	}

	return removed, nil
}

// Replace is the replace-on-corruption remediation: the entry with the
// given id is removed outright (no deprecation, its secret is
// unrecoverable) and a fresh active entry is created under the same name.
func (m *Manager) Replace(id string, length int) (Entry, string, error) {
	password, err := GeneratePassword(length)
	if err != nil {
		return Entry{}, "", err
	}

	payload, err := m.cipher.Encrypt(password)
	if err != nil {
		return Entry{}, "", err
	}

	store, err := m.files.Load()
	if err != nil {
		return Entry{}, "", err
	}

	corrupted, err := store.FindByID(id)
	if err != nil {
		return Entry{}, "", err
	}
	store.removeByID(id)

	entry := newEntry(corrupted.Name, payload)
	store.Entries = append(store.Entries, entry)

	if err := m.files.Save(store); err != nil {
		return Entry{}, "", err
	}

	return entry, password, nil
}

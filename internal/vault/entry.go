package vault

import (
	"time"

	"github.com/google/uuid"
)

// Entry is one stored credential record, active or deprecated.
//
// Names are not unique: rotations leave multiple entries sharing a name,
// at most one of them active. IDs are unique within the store. The secret
// is always a complete, independently decryptable payload.
type Entry struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Secret     string    `json:"secret"`
	CreatedAt  time.Time `json:"createdAt"`
	Deprecated bool      `json:"deprecated"`

	// DeprecatedAt is set if and only if Deprecated is true.
	DeprecatedAt *time.Time `json:"deprecatedAt,omitempty"`
}

// newEntry creates a fresh active entry for the given name and sealed payload.
func newEntry(name, secret string) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Name:      name,
		Secret:    secret,
		CreatedAt: time.Now().UTC(),
	}
}

// deprecate marks the entry as superseded at the given time.
func (e *Entry) deprecate(at time.Time) {
	e.Deprecated = true
	e.DeprecatedAt = &at
}

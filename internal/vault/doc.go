// Package vault implements the core of the Kete secrets vault: the
// authenticated-encryption engine, the entry store, and the credential
// lifecycle.
//
// # Encryption
//
// Each secret is sealed individually with an AEAD (AES-256-GCM by
// default, ChaCha20-Poly1305 selectable) under the fixed 32-byte master
// key. Every encryption draws a fresh 12-byte nonce from crypto/rand;
// the key is never derived per entry. Payloads are stored as
//
//	nonce_hex:ciphertext_hex:tag_hex
//
// so the same plaintext encrypts to a different payload every time, and
// any tampering with the ciphertext or tag fails verification before a
// single byte of plaintext is released.
//
// # Entry lifecycle
//
// An entry is either active or deprecated. Rotation is the only path
// from healthy-active to deprecated: it stamps the old entry with its
// deprecation time and appends a fresh active entry under the same name,
// preserving the rotation history. A corrupted entry is the exception:
// its secret is gone, so replace-on-corruption removes it outright and
// generates a new credential in its place.
//
// # Persistence
//
// The store is a single JSON file rewritten whole on every mutation.
// Loading a missing store creates it empty; loading a broken one is
// fatal for the session, never partially repaired. The file store is the
// sole authority for persistence; the cipher holds no secret material
// between calls, and the manager holds no entry state between operations.
package vault

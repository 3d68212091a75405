// Package configs manages Kete's on-disk configuration.
//
// All files live under a single per-user directory, resolved once at
// startup from os.UserConfigDir (override with KETE_CONFIG_DIR):
//
//	config.json — master password and base64-encoded 32-byte key, 0600
//	store.json  — the encrypted credential store
//	audit.jsonl — best-effort operation trail
//
// The package also implements the identity gate: Authenticate checks the
// submitted master password, UnlockKey decodes and validates the
// encryption key. Both must succeed before any credential operation runs;
// on failure the process exits without touching the store.
//
// # Security Considerations
//
// The master password is stored in plaintext inside config.json. This is
// a documented weakness of the file format, not an oversight: the file
// carries 0600 permissions and the threat model is a single-user machine.
// The encryption key is never written anywhere in decoded form.
package configs

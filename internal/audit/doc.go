// Package audit records a best-effort trail of vault operations.
//
// Every generate, rotate, delete, and replace appends one JSON line to
// audit.jsonl in the config directory. The log exists so a user can
// answer "when did I last rotate this?". It never contains passwords,
// payloads, or key material, only names, ids, and counts.
//
// Logging failures are swallowed: an operation must never fail because
// its audit record could not be written.
package audit

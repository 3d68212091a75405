// Package errors provides typed error values for the Kete application.
//
// Using sentinel errors allows callers to handle specific error conditions
// programmatically with errors.Is() rather than string matching.
//
// # Error Categories
//
// Errors are grouped by how the application must react:
//
//   - Gate errors: fatal, the process exits before any credential flow
//     (ErrUnauthorized, ErrInvalidKeyLength, ErrInvalidConfig)
//   - Crypto errors: recoverable per entry, the session continues
//     (ErrIntegrity, ErrPayloadFormat)
//   - Store errors: ErrStoreCorrupt is fatal for the session,
//     ErrEntryNotFound is an ordinary lookup miss
//
// # Usage
//
// Return errors from internal packages:
//
//	if len(key) != KeySize {
//	    return nil, errors.ErrInvalidKeyLength
//	}
//
// Handle errors in the CLI layer:
//
//	plaintext, err := manager.Retrieve(id)
//	if errors.Is(err, kerrors.ErrIntegrity) {
//	    // Offer the replace-on-corruption remediation
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("decrypting entry %s: %w", entry.ID, errors.ErrIntegrity)
package errors

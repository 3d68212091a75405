package errors

import "errors"

// Gate errors are fatal: the session must not start when they occur.
var (
	// ErrUnauthorized indicates the submitted master password does not match.
	ErrUnauthorized = errors.New("master password does not match")

	// ErrConfigNotFound indicates the master config file does not exist yet.
	ErrConfigNotFound = errors.New("master config not found")

	// ErrInvalidConfig indicates the master config file is malformed or corrupt.
	ErrInvalidConfig = errors.New("master config is invalid")

	// ErrInvalidKeyLength indicates the decoded encryption key is not 32 bytes.
	ErrInvalidKeyLength = errors.New("invalid encryption key length")
)

// Cryptographic errors indicate failures while sealing or opening a secret payload.
var (
	// ErrUnknownAlgorithm indicates the configured encryption algorithm is not supported.
	ErrUnknownAlgorithm = errors.New("unknown encryption algorithm")

	// ErrPayloadFormat indicates a payload could not be parsed into its
	// nonce, ciphertext, and tag components.
	ErrPayloadFormat = errors.New("malformed secret payload")

	// ErrIntegrity indicates authentication tag verification failed.
	// The payload has been tampered with, or was encrypted under a different key.
	ErrIntegrity = errors.New("secret payload failed integrity check")
)

// Store errors indicate issues with the persisted entry store.
var (
	// ErrStoreCorrupt indicates the persisted store could not be parsed.
	// This is fatal for the session; the store is never partially recovered.
	ErrStoreCorrupt = errors.New("secret store is corrupt")

	// ErrEntryNotFound indicates no entry exists with the given id.
	ErrEntryNotFound = errors.New("entry not found")
)

package vault

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"

	"golang.org/x/crypto/chacha20poly1305"

	kerrors "github.com/kete-vault/kete/internal/errors"
)

// Algorithm selects the AEAD used to seal secret payloads.
type Algorithm string

const (
	// AlgorithmAESGCM is AES-256 in Galois/Counter Mode. The default.
	AlgorithmAESGCM Algorithm = "aes-gcm"

	// AlgorithmChaCha20Poly1305 is an alternative for machines without
	// AES hardware acceleration. Same key, nonce, and tag sizes, so the
	// payload format is identical.
	AlgorithmChaCha20Poly1305 Algorithm = "chacha20-poly1305"
)

const (
	// KeySize is the required master key length in bytes.
	KeySize = 32

	nonceSize = 12
	tagSize   = 16
)

// payloadDelimiter separates the hex-encoded nonce, ciphertext, and tag.
// A colon never appears in the hex alphabet, so splitting is unambiguous.
const payloadDelimiter = ":"

// Cipher seals and opens individual secret strings under the fixed master
// key. It retains no secret material between calls and is stateless apart
// from the key schedule.
type Cipher struct {
	aead cipher.AEAD
}

// NewCipher creates a cipher for the given 32-byte key and algorithm.
// An empty algorithm means AES-256-GCM.
func NewCipher(key []byte, alg Algorithm) (*Cipher, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("expected %d bytes, got %d: %w", KeySize, len(key), kerrors.ErrInvalidKeyLength)
	}

	aead, err := newAEAD(key, alg)
	if err != nil {
		return nil, err
	}

	return &Cipher{aead: aead}, nil
}

func newAEAD(key []byte, alg Algorithm) (cipher.AEAD, error) {
	switch alg {
	case AlgorithmAESGCM, "":
		block, err := aes.NewCipher(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create AES cipher: %w", err)
		}
		aead, err := cipher.NewGCM(block)
		if err != nil {
			return nil, fmt.Errorf("failed to create GCM: %w", err)
		}
		return aead, nil
	case AlgorithmChaCha20Poly1305:
		aead, err := chacha20poly1305.New(key)
		if err != nil {
			return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
		}
		return aead, nil
	default:
		return nil, fmt.Errorf("%q: %w", alg, kerrors.ErrUnknownAlgorithm)
	}
}

// Encrypt seals a plaintext into a payload of the form
//
//	nonce_hex:ciphertext_hex:tag_hex
//
// A fresh 12-byte nonce is drawn from crypto/rand on every call. Nonces
// are never reused under the same key: reuse would break the AEAD's
// security guarantees entirely.
func (c *Cipher) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, nonceSize)
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)

	// Seal appends the 16-byte authentication tag to the ciphertext.
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	return strings.Join([]string{
		hex.EncodeToString(nonce),
		hex.EncodeToString(ciphertext),
		hex.EncodeToString(tag),
	}, payloadDelimiter), nil
}

// Decrypt opens a payload produced by Encrypt.
//
// Returns ErrPayloadFormat when the payload does not parse into its three
// components, and ErrIntegrity when tag verification fails. On integrity
// failure no plaintext is returned, partial or otherwise: the AEAD
// verifies before releasing any output.
func (c *Cipher) Decrypt(payload string) (string, error) {
	nonce, ciphertext, tag, err := splitPayload(payload)
	if err != nil {
		return "", err
	}

	plaintext, err := c.aead.Open(nil, nonce, append(ciphertext, tag...), nil)
	if err != nil {
		return "", fmt.Errorf("authentication failed: %w", kerrors.ErrIntegrity)
	}

	return string(plaintext), nil
}

// splitPayload parses a payload into its nonce, ciphertext, and tag.
func splitPayload(payload string) (nonce, ciphertext, tag []byte, err error) {
	parts := strings.Split(payload, payloadDelimiter)
	if len(parts) != 3 {
		return nil, nil, nil, fmt.Errorf("expected 3 components, got %d: %w", len(parts), kerrors.ErrPayloadFormat)
	}

	nonce, err = hex.DecodeString(parts[0])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid nonce encoding: %w", kerrors.ErrPayloadFormat)
	}
	if len(nonce) != nonceSize {
		return nil, nil, nil, fmt.Errorf("nonce must be %d bytes, got %d: %w", nonceSize, len(nonce), kerrors.ErrPayloadFormat)
	}

	ciphertext, err = hex.DecodeString(parts[1])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid ciphertext encoding: %w", kerrors.ErrPayloadFormat)
	}

	tag, err = hex.DecodeString(parts[2])
	if err != nil {
		return nil, nil, nil, fmt.Errorf("invalid tag encoding: %w", kerrors.ErrPayloadFormat)
	}
	if len(tag) != tagSize {
		return nil, nil, nil, fmt.Errorf("tag must be %d bytes, got %d: %w", tagSize, len(tag), kerrors.ErrPayloadFormat)
	}

	return nonce, ciphertext, tag, nil
}

package configs

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"os"

	kerrors "github.com/kete-vault/kete/internal/errors"
)

// KeySize is the required length of the decoded master encryption key.
const KeySize = 32

// MasterConfig holds the master password and the encryption key that
// protects every stored secret. Exactly one instance exists per process,
// loaded once at startup and immutable for the rest of the session.
//
// Known weakness, kept deliberately: AppPassword is stored and compared
// as plaintext. Hashing it would change the meaning of the config file,
// so the file relies on its 0600 permissions instead. The comparison is
// constant-time, which is all the stored format allows.
type MasterConfig struct {
	AppPassword   string `json:"appPassword"`
	EncryptionKey string `json:"encryptionKey"`
	Algorithm     string `json:"algorithm,omitempty"`
}

// MasterConfigExists reports whether the master config file is present.
func MasterConfigExists() (bool, error) {
	_, err := os.Stat(KeteSettings.ConfigPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check for master config: %w", err)
	}
	return true, nil
}

// LoadMasterConfig loads the master configuration from the config file.
func LoadMasterConfig() (*MasterConfig, error) {
	config := &MasterConfig{}

	if _, err := os.Stat(KeteSettings.ConfigPath); os.IsNotExist(err) {
		return nil, kerrors.ErrConfigNotFound
	}

	if err := LoadJSON(KeteSettings.ConfigPath, config); err != nil {
		return nil, fmt.Errorf("failed to load master config: %w", kerrors.ErrInvalidConfig)
	}

	return config, nil
}

// SaveMasterConfig saves the master configuration to the config file.
func SaveMasterConfig(config *MasterConfig) error {
	if err := SaveJSON(KeteSettings.ConfigPath, config); err != nil {
		return fmt.Errorf("failed to save master config: %w", err)
	}
	return nil
}

// NewMasterConfig builds a config with the given master password and a
// freshly generated 32-byte encryption key.
func NewMasterConfig(password string) (*MasterConfig, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("failed to generate encryption key: %w", err)
	}

	return &MasterConfig{
		AppPassword:   password,
		EncryptionKey: base64.StdEncoding.EncodeToString(key),
	}, nil
}

// Authenticate compares the submitted password against the configured one.
// Returns ErrUnauthorized on mismatch.
func (c *MasterConfig) Authenticate(input string) error {
	if subtle.ConstantTimeCompare([]byte(input), []byte(c.AppPassword)) != 1 {
		return kerrors.ErrUnauthorized
	}
	return nil
}

// UnlockKey decodes the configured encryption key and validates its length.
// A key of any length other than 32 bytes is a fatal configuration error:
// the caller must terminate without entering any credential flow.
func (c *MasterConfig) UnlockKey() ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode encryption key: %w", kerrors.ErrInvalidConfig)
	}

	if len(key) != KeySize {
		return nil, fmt.Errorf("expected %d bytes, got %d: %w", KeySize, len(key), kerrors.ErrInvalidKeyLength)
	}

	return key, nil
}

package vault

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Character classes for generated passwords. Every generated password
// contains at least one character from each class.
const (
	passwordLower  = "abcdefghijklmnopqrstuvwxyz"
	passwordUpper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	passwordDigits = "0123456789"

	// PasswordSpecials is the fixed special-character set used in
	// generated passwords.
	PasswordSpecials = "!@#$%^&*()-_=+"
)

const (
	// MinPasswordLength is the enforced floor: shorter requests are
	// raised to this length, never rejected.
	MinPasswordLength = 8

	// DefaultPasswordLength is used when the caller requests no
	// particular length.
	DefaultPasswordLength = 12
)

// GeneratePassword produces a random password of the requested length
// (floor MinPasswordLength) containing at least one lowercase letter, one
// uppercase letter, one digit, and one character from PasswordSpecials.
//
// One representative per class is drawn first, the remaining positions
// are drawn uniformly from the union of all classes, and the result is
// shuffled with Fisher-Yates so the class representatives are not
// predictably front-loaded. All randomness comes from crypto/rand: the
// output is a secret, so a general-purpose PRNG would not do.
func GeneratePassword(length int) (string, error) {
	if length < MinPasswordLength {
		length = MinPasswordLength
	}

	classes := []string{passwordLower, passwordUpper, passwordDigits, PasswordSpecials}
	union := passwordLower + passwordUpper + passwordDigits + PasswordSpecials

	password := make([]byte, 0, length)
	for _, class := range classes {
		c, err := randomChar(class)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	for len(password) < length {
		c, err := randomChar(union)
		if err != nil {
			return "", err
		}
		password = append(password, c)
	}

	// Fisher-Yates shuffle.
	for i := len(password) - 1; i > 0; i-- {
		j, err := randomIndex(i + 1)
		if err != nil {
			return "", err
		}
		password[i], password[j] = password[j], password[i]
	}

	return string(password), nil
}

// randomChar draws one character uniformly from the given set.
func randomChar(set string) (byte, error) {
	i, err := randomIndex(len(set))
	if err != nil {
		return 0, err
	}
	return set[i], nil
}

// randomIndex draws an unbiased index in [0, n) from crypto/rand.
func randomIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("failed to draw random index: %w", err)
	}
	return int(v.Int64()), nil
}

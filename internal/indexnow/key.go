// SPDX-License-Identifier: MIT

package indexnow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"
)

// KeyLength is the required length of an IndexNow key (UUID text form).
const KeyLength = 36

// ErrInvalidKey is returned for a missing or malformed IndexNow key.
var ErrInvalidKey = errors.New("invalid IndexNow key")

// ValidateKey checks that key is present and KeyLength characters long.
// It is the only check applied before submitting or serving a key.
func ValidateKey(key string) error {
	switch {
	case key == "":
		return fmt.Errorf("%w: key is empty", ErrInvalidKey)
	case len(key) != KeyLength:
		return fmt.Errorf("%w: want %d characters, got %d", ErrInvalidKey, KeyLength, len(key))
	}
	return nil
}

// ValidateKeyFormat is the stricter check used before writing a key file:
// on top of ValidateKey the key must be in UUID text form, so it contains '-'.
func ValidateKeyFormat(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if !strings.Contains(key, "-") {
		return fmt.Errorf("%w: key file requires a UUID-style key containing '-'", ErrInvalidKey)
	}
	return nil
}

// GenerateKey returns a fresh random key suitable for IndexNow.
func GenerateKey() string {
	return uuid.NewString()
}

// KeyFileName is the name of the verification file served at the site root.
func KeyFileName(key string) string {
	return key + ".txt"
}

// EnsureKeyFile makes sure {dir}/{key}.txt exists with the key as content.
// An existing file is left untouched. It reports whether a file was written.
func EnsureKeyFile(dir, key string) (path string, created bool, err error) {
	if err := ValidateKeyFormat(key); err != nil {
		return "", false, err
	}
	path = filepath.Join(dir, KeyFileName(key))

	if _, err := os.Stat(path); err == nil {
		return path, false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return path, false, fmt.Errorf("check key file: %w", err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return path, false, fmt.Errorf("create key directory: %w", err)
	}
	if err := renameio.WriteFile(path, []byte(key), 0o644); err != nil {
		return path, false, fmt.Errorf("write key file: %w", err)
	}
	return path, true, nil
}

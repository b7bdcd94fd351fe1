// SPDX-License-Identifier: MIT

package indexnow

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testKey         = "0f5e8a3c-1b2d-4e6f-8a9b-0c1d2e3f4a5b"
	testKeyNoHyphen = "0f5e8a3c01b2d04e6f08a9b00c1d2e3f4a5b"
)

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{"uuid", testKey, false},
		{"generated", GenerateKey(), false},
		{"empty", "", true},
		{"short", "abc-def", true},
		{"no hyphen", testKeyNoHyphen, false},
		{"too long", testKey + "0", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidKey)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateKeyFormat(t *testing.T) {
	assert.NoError(t, ValidateKeyFormat(testKey))
	assert.NoError(t, ValidateKeyFormat(GenerateKey()))
	assert.ErrorIs(t, ValidateKeyFormat(""), ErrInvalidKey)

	err := ValidateKeyFormat(testKeyNoHyphen)
	require.ErrorIs(t, err, ErrInvalidKey)
	assert.Contains(t, err.Error(), "UUID-style")
}

func TestEnsureKeyFile_Creates(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "public")

	path, created, err := EnsureKeyFile(dir, testKey)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, filepath.Join(dir, testKey+".txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, testKey, string(data))
}

func TestEnsureKeyFile_KeepsExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, testKey+".txt")
	require.NoError(t, os.WriteFile(path, []byte("hand-edited"), 0o644))

	got, created, err := EnsureKeyFile(dir, testKey)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, path, got)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hand-edited", string(data))
}

func TestEnsureKeyFile_InvalidKey(t *testing.T) {
	dir := t.TempDir()
	_, _, err := EnsureKeyFile(dir, "nope")
	assert.ErrorIs(t, err, ErrInvalidKey)
	_, _, err = EnsureKeyFile(dir, testKeyNoHyphen)
	assert.ErrorIs(t, err, ErrInvalidKey)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

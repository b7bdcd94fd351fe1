// SPDX-License-Identifier: MIT

package indexnow

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// ErrLedgerEmpty is returned by Load when nothing has been recorded yet.
var ErrLedgerEmpty = errors.New("indexnow ledger is empty")

// Ledger persists the URL set sent by the previous run.
type Ledger interface {
	Load(ctx context.Context) ([]string, error)
	Save(ctx context.Context, urls []string) error
}

// FileLedger stores the URL set as a JSON array in a local file.
type FileLedger struct {
	path string
}

// NewFileLedger returns a ledger backed by path.
func NewFileLedger(path string) *FileLedger {
	return &FileLedger{path: path}
}

// Path returns the ledger file path.
func (l *FileLedger) Path() string { return l.path }

// Load reads the recorded URLs. A missing file yields ErrLedgerEmpty.
func (l *FileLedger) Load(context.Context) ([]string, error) {
	data, err := os.ReadFile(l.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrLedgerEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}
	return decodeURLs(data)
}

// Save atomically replaces the ledger file with urls.
func (l *FileLedger) Save(_ context.Context, urls []string) error {
	data, err := encodeURLs(urls)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(l.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	pending, err := renameio.NewPendingFile(l.path, renameio.WithPermissions(0o644))
	if err != nil {
		return fmt.Errorf("create pending ledger file: %w", err)
	}
	defer func() { _ = pending.Cleanup() }()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("atomically replace ledger: %w", err)
	}
	return nil
}

func decodeURLs(data []byte) ([]string, error) {
	var urls []string
	if err := json.Unmarshal(data, &urls); err != nil {
		return nil, fmt.Errorf("decode ledger: %w", err)
	}
	return urls, nil
}

func encodeURLs(urls []string) ([]byte, error) {
	if urls == nil {
		urls = []string{}
	}
	data, err := json.Marshal(urls)
	if err != nil {
		return nil, fmt.Errorf("encode ledger: %w", err)
	}
	return data, nil
}

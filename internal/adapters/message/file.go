// Package message provides the adapter for commit-message files.
package message

import (
	"fmt"
	"os"

	"github.com/ndcoders/commitcraft/internal/domain"
)

// filePerm is the permission used when the message file has to be
// re-created; git creates COMMIT_EDITMSG with the same mode.
const filePerm = 0o644

// FileStore implements domain.MessageStore on the local filesystem.
// The commit-message file is mutated in place; no backup is kept.
type FileStore struct{}

// NewFileStore creates a new FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// Read returns the full contents of the message file.
func (s *FileStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", domain.ErrMessageRead, path, err)
	}
	return string(data), nil
}

// Write overwrites the message file with the given contents.
func (s *FileStore) Write(path string, contents string) error {
	if err := os.WriteFile(path, []byte(contents), filePerm); err != nil {
		return fmt.Errorf("%w: %s: %w", domain.ErrMessageWrite, path, err)
	}
	return nil
}

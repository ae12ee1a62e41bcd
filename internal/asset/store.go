package asset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/apnaswastha/registry-api/pkg/apperror"
)

// Store keeps one blob per identifier on disk. The stored name is derived
// deterministically from the identifier, so a resource locator can be
// reconstructed from the identifier alone.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create asset directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Filename returns the stored name for an identifier.
func (s *Store) Filename(id string) string {
	return id + ".png"
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, s.Filename(id))
}

// Put overwrites the blob for id in place and returns the stored name.
func (s *Store) Put(id string, data []byte) (string, error) {
	if err := os.WriteFile(s.path(id), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write asset for %s: %w", id, err)
	}
	return s.Filename(id), nil
}

// Get returns the blob for id, or a not-found error.
func (s *Store) Get(id string) ([]byte, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return nil, apperror.NewNotFound("asset")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read asset for %s: %w", id, err)
	}
	return data, nil
}

// Delete removes the blob for id. Missing blobs are not an error.
func (s *Store) Delete(id string) error {
	err := os.Remove(s.path(id))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete asset for %s: %w", id, err)
	}
	return nil
}

// Package kvstore provides a file-per-key implementation of domain.KeyValueStore.
package kvstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/runoshun/g2g/internal/domain"
)

const valueExt = ".json"

// FileStore keeps each key in its own file under dir. Writes are atomic:
// a reader sees either the previous or the new value, never a torn one.
type FileStore struct {
	dir string
}

// Ensure FileStore implements domain.KeyValueStore.
var _ domain.KeyValueStore = (*FileStore)(nil)

// New creates a FileStore rooted at dir. The directory is created on first write.
func New(dir string) *FileStore {
	return &FileStore{dir: dir}
}

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string {
	return filepath.Join(s.dir, key+valueExt)
}

// Get returns the value stored under key, or domain.ErrKeyNotFound.
func (s *FileStore) Get(key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, domain.ErrKeyNotFound
		}
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	if len(strings.TrimSpace(string(data))) == 0 {
		return nil, domain.ErrEmptyFile
	}
	return data, nil
}

// Set stores value under key.
func (s *FileStore) Set(key string, value []byte) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	if err := writeAtomic(s.Path(key), value, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *FileStore) Delete(key string) error {
	if err := validateKey(key); err != nil {
		return err
	}
	if err := os.Remove(s.Path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

// validateKey accepts dotted names made of letters, digits, '-' and '_'.
func validateKey(key string) error {
	if key == "" || strings.HasPrefix(key, ".") || strings.HasSuffix(key, ".") || strings.Contains(key, "..") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidKey, key)
	}
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
		default:
			return fmt.Errorf("%w: %q", domain.ErrInvalidKey, key)
		}
	}
	return nil
}

func writeAtomic(path string, content []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	file, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return err
	}
	name := file.Name()
	cleanup := func() {
		_ = os.Remove(name)
	}
	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		cleanup()
		return err
	}
	if err := file.Chmod(perm); err != nil {
		_ = file.Close()
		cleanup()
		return err
	}
	if err := file.Sync(); err != nil {
		_ = file.Close()
		cleanup()
		return err
	}
	if err := file.Close(); err != nil {
		cleanup()
		return err
	}
	if err := os.Rename(name, path); err != nil {
		cleanup()
		return err
	}
	return nil
}

// Package evidence stores uploaded evidence files on the local filesystem.
// Objects are addressed by an opaque key; the database keeps the key and the
// original file name, never the bytes.
package evidence

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrNotFound   = errors.New("evidence: object not found")
	ErrInvalidKey = errors.New("evidence: invalid object key")
)

// MaxObjectSize caps a single upload at 10 MiB.
const MaxObjectSize = 10 << 20

// Store is a flat directory of evidence objects.
type Store struct {
	root string
}

func NewStore(root string) (*Store, error) {
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("evidence: create root: %w", err)
	}
	return &Store{root: root}, nil
}

// Put writes an object under key, replacing any previous content. The write
// goes through a temp file and rename so readers never see a partial object.
func (s *Store) Put(key string, r io.Reader) (int64, error) {
	path, err := s.path(key)
	if err != nil {
		return 0, err
	}

	tmp, err := os.CreateTemp(s.root, ".upload-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	n, err := io.Copy(tmp, io.LimitReader(r, MaxObjectSize+1))
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if n > MaxObjectSize {
		tmp.Close()
		return 0, fmt.Errorf("evidence: object exceeds %d bytes", MaxObjectSize)
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}

	return n, os.Rename(tmp.Name(), path)
}

// Open returns a reader over the object's bytes. The caller must close it.
func (s *Store) Open(key string) (io.ReadCloser, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return f, nil
}

// Delete removes the object. Deleting a missing object is not an error.
func (s *Store) Delete(key string) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// path validates the key and resolves it inside the root. Keys are single
// flat names; anything that could escape the directory is rejected.
func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key != filepath.Base(key) || strings.HasPrefix(key, ".") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.root, key), nil
}

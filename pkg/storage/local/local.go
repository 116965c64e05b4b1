// Package local provides a storage.Storage backed by a directory on the local
// filesystem.
package local

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"qrvalidator/pkg/serrors"
	"qrvalidator/pkg/storage"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Storage writes uploads into a single directory. The directory is created
// once, on Init or on the first Save, whichever comes first.
type Storage struct {
	dir string

	once    sync.Once
	initErr error
}

// Ensure Storage conforms to the storage.Storage interface at compile time.
var _ storage.Storage = (*Storage)(nil)

// New returns a Storage rooted at dir. Nothing is created on disk until Init
// or Save is called.
func New(dir string) *Storage {
	return &Storage{dir: dir}
}

// Dir returns the storage root.
func (s *Storage) Dir() string { return s.dir }

// Init creates the storage directory if it does not exist yet. It is
// idempotent and only touches the filesystem once per Storage.
func (s *Storage) Init() error {
	s.once.Do(func() {
		if err := os.MkdirAll(s.dir, dirPerm); err != nil {
			s.initErr = fmt.Errorf("could not create upload directory: %w", err)
		}
	})

	return s.initErr
}

// Save writes data to <dir>/<name> and returns that path.
func (s *Storage) Save(_ context.Context, name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.HasPrefix(name, ".") {
		return "", fmt.Errorf("%w: %q", storage.ErrInvalidName, name)
	}
	if err := s.Init(); err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, name)
	// O_EXCL: a name clash means the unique id generator is broken, never overwrite.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, filePerm)
	if err != nil {
		return "", fmt.Errorf("could not create file: %w", err)
	}
	if _, err := f.Write(data); err != nil {
		_ = f.Close()

		return "", fmt.Errorf("could not write file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("could not close file: %w", err)
	}

	return path, nil
}

// Read returns the content of a file previously returned by Save.
func (s *Storage) Read(_ context.Context, path string) ([]byte, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, serrors.Wrap(serrors.ErrNotFound, err, "file %s not found", path)
		}

		return nil, fmt.Errorf("could not read file: %w", err)
	}

	return b, nil
}

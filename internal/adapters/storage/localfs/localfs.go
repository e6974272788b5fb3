// Package localfs stores product images on the local filesystem and serves
// as the object-storage adapter behind domain.FileStorage.
package localfs

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
)

type Storage struct {
	dir string
}

func New(dir string) *Storage { return &Storage{dir: dir} }

func (s *Storage) SaveImage(_ context.Context, name string, data []byte) (string, error) {
	name = filepath.Base(name)
	if name == "" || name == "." {
		return "", errors.New("empty file name")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(s.dir, name)
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return "", err
	}
	return "/" + filepath.ToSlash(dst), nil
}

// Remove deletes a previously stored image. Paths outside the storage dir
// are refused so callers cannot unlink arbitrary files.
func (s *Storage) Remove(_ context.Context, path string) error {
	p := strings.TrimPrefix(strings.TrimSpace(path), "/")
	if p == "" {
		return nil
	}
	if !strings.HasPrefix(filepath.ToSlash(p), filepath.ToSlash(s.dir)+"/") {
		return nil
	}
	if _, err := os.Stat(p); err != nil {
		return nil
	}
	return os.Remove(p)
}

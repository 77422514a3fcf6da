package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/flaneur2020/pngme/pngme/logger"
)

// LocalStorage reads and writes files on the local filesystem.
type LocalStorage struct {
	perm os.FileMode
}

// NewLocalStorage creates a filesystem storage that writes files with perm.
func NewLocalStorage(perm os.FileMode) *LocalStorage {
	if perm == 0 {
		perm = 0644
	}
	return &LocalStorage{perm: perm}
}

func (s *LocalStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	logger.Debug("opened %s for reading", path)
	return f, nil
}

// Create writes to a temporary file in the target directory and renames it
// over path on Close, so a failed write never leaves a half-written PNG.
func (s *LocalStorage) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	logger.Debug("writing %s via %s", path, tmp.Name())
	return &atomicFile{f: tmp, path: path, perm: s.perm}, nil
}

type atomicFile struct {
	f    *os.File
	path string
	perm os.FileMode
	err  error
}

func (a *atomicFile) Write(p []byte) (int, error) {
	n, err := a.f.Write(p)
	if err != nil && a.err == nil {
		a.err = err
	}
	return n, err
}

func (a *atomicFile) Close() error {
	tmpName := a.f.Name()
	closeErr := a.f.Close()
	if a.err == nil {
		a.err = closeErr
	}
	if a.err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write %s: %w", a.path, a.err)
	}
	if err := os.Chmod(tmpName, a.perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set mode on %s: %w", a.path, err)
	}
	if err := os.Rename(tmpName, a.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace %s: %w", a.path, err)
	}
	return nil
}

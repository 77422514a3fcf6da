package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/opencontainers/go-digest"
)

// MockStorage is a simple in-memory Storage implementation for tests.
type MockStorage struct {
	mu      sync.RWMutex
	files   map[string][]byte
	history []digest.Digest
}

// NewMockStorage constructs an empty MockStorage.
func NewMockStorage() *MockStorage {
	return &MockStorage{
		files: make(map[string][]byte),
	}
}

// Open returns a reader over a copy of the stored file.
func (m *MockStorage) Open(ctx context.Context, path string) (io.ReadCloser, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path]
	if !ok {
		return nil, fmt.Errorf("mock storage: file not found: %s", path)
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), data...))), nil
}

// Create buffers writes and stores the file when the writer is closed.
func (m *MockStorage) Create(ctx context.Context, path string) (io.WriteCloser, error) {
	return &mockWriter{m: m, path: path}, nil
}

// AddFile stores content under path and returns its digest.
func (m *MockStorage) AddFile(path string, data []byte) digest.Digest {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.files[path] = append([]byte(nil), data...)
	return digest.FromBytes(data)
}

// File returns the stored content for path.
func (m *MockStorage) File(path string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.files[path]
	if !ok {
		return nil, false
	}
	return append([]byte(nil), data...), true
}

// Writes returns the digests of every file written through Create, in order.
func (m *MockStorage) Writes() []digest.Digest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]digest.Digest(nil), m.history...)
}

type mockWriter struct {
	m    *MockStorage
	path string
	buf  bytes.Buffer
}

func (w *mockWriter) Write(p []byte) (int, error) {
	return w.buf.Write(p)
}

func (w *mockWriter) Close() error {
	w.m.mu.Lock()
	defer w.m.mu.Unlock()

	data := append([]byte(nil), w.buf.Bytes()...)
	w.m.files[w.path] = data
	w.m.history = append(w.m.history, digest.FromBytes(data))
	return nil
}

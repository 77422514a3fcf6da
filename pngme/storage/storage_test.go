package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/opencontainers/go-digest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAll(t *testing.T, s Storage, path string, data []byte) {
	t.Helper()
	w, err := s.Create(context.Background(), path)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
}

func readAll(t *testing.T, s Storage, path string) []byte {
	t.Helper()
	r, err := s.Open(context.Background(), path)
	require.NoError(t, err)
	defer r.Close()
	data, err := io.ReadAll(r)
	require.NoError(t, err)
	return data
}

func TestLocalStorage_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "out.png")
	s := NewLocalStorage(0600)

	writeAll(t, s, path, []byte("first"))
	assert.Equal(t, []byte("first"), readAll(t, s, path))

	writeAll(t, s, path, []byte("second"))
	assert.Equal(t, []byte("second"), readAll(t, s, path))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files must not be left behind")

	fi, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), fi.Mode().Perm())
}

func TestLocalStorage_OpenMissing(t *testing.T) {
	s := NewLocalStorage(0)
	_, err := s.Open(context.Background(), filepath.Join(t.TempDir(), "missing.png"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestLocalStorage_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewLocalStorage(0)
	_, err := s.Open(ctx, "whatever.png")
	assert.ErrorIs(t, err, context.Canceled)
	_, err = s.Create(ctx, filepath.Join(t.TempDir(), "whatever.png"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMockStorage(t *testing.T) {
	m := NewMockStorage()
	dgst := m.AddFile("a.png", []byte("hello"))
	assert.Equal(t, digest.FromString("hello"), dgst)
	assert.Equal(t, []byte("hello"), readAll(t, m, "a.png"))

	_, err := m.Open(context.Background(), "b.png")
	assert.Error(t, err)

	writeAll(t, m, "b.png", []byte("world"))
	data, ok := m.File("b.png")
	require.True(t, ok)
	assert.Equal(t, []byte("world"), data)
	assert.Equal(t, []digest.Digest{digest.FromString("world")}, m.Writes())
}

func TestMockStorage_FileReturnsCopy(t *testing.T) {
	m := NewMockStorage()
	m.AddFile("a.png", []byte("hello"))

	data, ok := m.File("a.png")
	require.True(t, ok)
	data[0] = 'j'

	again, _ := m.File("a.png")
	assert.Equal(t, []byte("hello"), again)
	assert.Equal(t, []byte("hello"), readAll(t, m, "a.png"))
}

package storage

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFSStore_PutGet(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	key, err := s.Put("banks/questions.json", strings.NewReader("[]"))
	require.NoError(t, err)
	assert.Equal(t, "banks/questions.json", key)

	rc, err := s.Get("banks/questions.json")
	require.NoError(t, err)
	defer rc.Close()
	b, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(b))
}

func TestFSStore_Overwrite(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Put("a.txt", strings.NewReader("one"))
	require.NoError(t, err)
	_, err = s.Put("a.txt", strings.NewReader("two"))
	require.NoError(t, err)

	rc, err := s.Get("a.txt")
	require.NoError(t, err)
	defer rc.Close()
	b, _ := io.ReadAll(rc)
	assert.Equal(t, "two", string(b))
}

func TestFSStore_Missing(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get("nope.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, os.Mkdir(filepath.Join(s.base, "dir"), 0o755))
	_, err = s.Get("dir")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFSStore_StaysInsideBase(t *testing.T) {
	root := t.TempDir()
	base := filepath.Join(root, "store")
	s, err := NewFSStore(base)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(root, "secret.txt"), []byte("x"), 0o644))

	_, err = s.Get("../secret.txt")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Put("../../escape.txt", strings.NewReader("x"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(base, "escape.txt"))
	assert.NoError(t, err, "write is confined to the base directory")
}

func TestFSStore_EmptyKey(t *testing.T) {
	s, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	_, err = s.Put("", strings.NewReader("x"))
	assert.Error(t, err)
}

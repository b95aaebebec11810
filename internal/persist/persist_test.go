package persist

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stringEncoder string

func (s stringEncoder) Encode(w io.Writer) error {
	_, err := io.WriteString(w, string(s))
	return err
}

type failingEncoder struct{}

func (failingEncoder) Encode(w io.Writer) error {
	_, _ = io.WriteString(w, "partial")
	return errors.New("disk on fire")
}

type pickerFunc func(string) (string, error)

func (f pickerFunc) Pick(name string) (string, error) { return f(name) }

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	require.NoError(t, WriteFile(path, stringEncoder("x,y\n1,2\n")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x,y\n1,2\n", string(data))
}

func TestWriteFileFailureKeepsExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.csv")
	require.NoError(t, os.WriteFile(path, []byte("original"), 0o644))

	err := WriteFile(path, failingEncoder{})
	var se *SaveError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, path, se.Path)
	assert.Contains(t, err.Error(), "disk on fire")

	data, _ := os.ReadFile(path)
	assert.Equal(t, "original", string(data))

	entries, _ := os.ReadDir(dir)
	assert.Len(t, entries, 1, "temporary file is cleaned up")
}

func TestWriteFileUnwritableDestination(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "dir", "out.csv")
	err := WriteFile(path, stringEncoder("x"))
	var se *SaveError
	require.True(t, errors.As(err, &se))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestAdapterSave(t *testing.T) {
	dir := t.TempDir()
	var asked string
	a := &Adapter{
		DefaultName: "edited_raceline.csv",
		Picker: pickerFunc(func(name string) (string, error) {
			asked = name
			return filepath.Join(dir, name), nil
		}),
	}

	path, err := a.Save(stringEncoder("x,y\n"))
	require.NoError(t, err)
	assert.Equal(t, "edited_raceline.csv", asked)
	assert.Equal(t, filepath.Join(dir, "edited_raceline.csv"), path)
}

func TestAdapterCancelled(t *testing.T) {
	a := &Adapter{Picker: FixedPath("")}
	_, err := a.Save(stringEncoder("x"))
	assert.ErrorIs(t, err, ErrSaveCancelled)

	var se *SaveError
	assert.True(t, errors.As(err, &se))
	assert.True(t, strings.HasPrefix(err.Error(), "save: "))
}

func TestFixedPath(t *testing.T) {
	p, err := FixedPath("/tmp/a.csv").Pick("ignored")
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.csv", p)
}

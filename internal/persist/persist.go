// Package persist writes the edited waypoint table back to disk on request.
package persist

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

var ErrSaveCancelled = errors.New("save cancelled")

// SaveError reports a failed save. The in-memory table is never affected.
type SaveError struct {
	Path string
	Err  error
}

func (e *SaveError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("save: %v", e.Err)
	}
	return fmt.Sprintf("save %s: %v", e.Path, e.Err)
}

func (e *SaveError) Unwrap() error {
	return e.Err
}

// Encoder serializes a table in its original tabular format.
type Encoder interface {
	Encode(w io.Writer) error
}

// Picker resolves where a save should go.
type Picker interface {
	Pick(defaultName string) (string, error)
}

// FixedPath is a Picker that always answers with the same path.
type FixedPath string

func (p FixedPath) Pick(string) (string, error) {
	if p == "" {
		return "", ErrSaveCancelled
	}
	return string(p), nil
}

// Adapter asks its Picker for a destination and writes the table there.
type Adapter struct {
	Picker      Picker
	DefaultName string
}

// Save writes enc to a destination chosen by the picker and returns the path.
func (a *Adapter) Save(enc Encoder) (string, error) {
	path, err := a.Picker.Pick(a.DefaultName)
	if err != nil {
		return "", &SaveError{Err: err}
	}
	if err := WriteFile(path, enc); err != nil {
		return "", err
	}
	return path, nil
}

// WriteFile writes enc to path through a temporary file in the same directory
// that is renamed into place, so a failure leaves any existing file intact.
func WriteFile(path string, enc Encoder) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	tmpName := tmp.Name()
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}

	if err := enc.Encode(tmp); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

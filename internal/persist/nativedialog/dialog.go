// Package nativedialog resolves save destinations with the platform file dialog.
// It lives apart from persist because it links the native GUI toolkit.
package nativedialog

import (
	"errors"
	"path/filepath"

	"github.com/sqweek/dialog"

	"raceline-editor/internal/persist"
)

// Dialog is a persist.Picker backed by the native save-file dialog.
type Dialog struct {
	Title    string
	StartDir string
}

func (d Dialog) Pick(defaultName string) (string, error) {
	b := dialog.File().Filter("CSV files", "csv").Title(d.Title)
	if d.StartDir != "" {
		b = b.SetStartDir(d.StartDir)
	}
	if defaultName != "" {
		b = b.SetStartFile(defaultName)
	}

	path, err := b.Save()
	if errors.Is(err, dialog.ErrCancelled) {
		return "", persist.ErrSaveCancelled
	}
	if err != nil {
		return "", err
	}
	if filepath.Ext(path) == "" {
		path += ".csv"
	}
	return path, nil
}

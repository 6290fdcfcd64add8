// Package fsutil provides small filesystem helpers shared by the
// schedule/results store and the override store: both persist JSON state
// atomically (write-to-temp, rename) so a crash mid-write never leaves a
// truncated file behind.
package fsutil

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// WriteJSONAtomic marshals v and writes it to path by creating a temp file
// in the same directory, writing the full payload, then renaming over the
// target — the rename is atomic on the same filesystem, so readers never
// observe a partially written file.
func WriteJSONAtomic(path string, v any) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	base := filepath.Base(path)
	tmp, err := os.CreateTemp(dir, "."+base+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, path)
}

// ReadJSON reads and unmarshals path into v. Returns os.ErrNotExist
// unwrapped via os.IsNotExist when the file is absent, so callers can
// distinguish "not yet created" from a real read failure.
func ReadJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

package storage

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Tiliavir/campus-timetable/internal/csvio"
	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
)

// BaseDir returns the root data directory (~/.ctt).
func BaseDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".ctt"), nil
}

// WriteFileAtomic writes data to path through a temp file and a rename, so
// readers never observe a half-written file. Parent directories are created.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("storage error creating directories: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, perm); err != nil {
		return fmt.Errorf("storage error writing temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("storage error renaming temp file: %w", err)
	}
	return nil
}

// WriteAtomic renders into memory with fn and then stores the result with
// WriteFileAtomic. Nothing is written if fn fails.
func WriteAtomic(path string, fn func(io.Writer) error) error {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		return err
	}
	return WriteFileAtomic(path, buf.Bytes(), 0o644)
}

// LoadSchedule reads a schedule document. A missing file is an empty
// schedule. Entries are restored in file order without re-running conflict
// detection, because a batch import may legitimately have stored entries
// that overlap each other.
func LoadSchedule(path string) (*schedule.Schedule, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return schedule.New(), nil
	}
	entries, err := csvio.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading schedule %s: %w", path, err)
	}
	return schedule.New(entries...), nil
}

// SaveSchedule atomically writes entries as a BOM-prefixed CSV document.
func SaveSchedule(path string, entries []model.Entry) error {
	return WriteAtomic(path, func(w io.Writer) error {
		return csvio.Write(w, entries)
	})
}

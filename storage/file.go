package storage

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// fileMechanism is the filesystem "file" backend. Each key is stored as a
// separate file in the configured directory, named by the hex encoding of the
// key so arbitrary key strings stay valid file names.
type fileMechanism struct {
	dir string
}

// newFileMechanism creates the "file" backend. Recognized options:
//
//	dir  directory holding key files, required, created if missing
func newFileMechanism(opts map[string]string) (Mechanism, error) {
	dir := opts["dir"]
	if dir == "" {
		return nil, fmt.Errorf("file mechanism: dir option is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("file mechanism: %w", err)
	}
	return &fileMechanism{dir: dir}, nil
}

func (m *fileMechanism) path(key string) string {
	return filepath.Join(m.dir, hex.EncodeToString([]byte(key)))
}

func (m *fileMechanism) Get(key string) ([]byte, bool, error) {
	data, err := os.ReadFile(m.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

func (m *fileMechanism) Set(key string, value []byte) error {
	return os.WriteFile(m.path(key), value, 0o644)
}

func (m *fileMechanism) Delete(key string) error {
	err := os.Remove(m.path(key))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

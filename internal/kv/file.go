package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Dir keeps one <key>.json file per key in a directory.
type Dir struct {
	root string
}

// OpenDir creates root if it does not exist.
func OpenDir(root string) (*Dir, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Dir{root: root}, nil
}

func (d *Dir) path(key string) string {
	return filepath.Join(d.root, key+".json")
}

func (d *Dir) Load(_ context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(d.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return data, true, nil
}

func (d *Dir) Save(_ context.Context, key string, value []byte) error {
	path := d.path(key)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, value, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func (d *Dir) Close() error { return nil }

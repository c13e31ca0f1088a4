// Package kv is the persistence boundary: whole-document blobs stored by key.
package kv

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Store loads and saves opaque values by key. Load reports ok=false for an
// absent key; that is not an error.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, bool, error)
	Save(ctx context.Context, key string, value []byte) error
	Close() error
}

// Open returns the store named by rawURL: mem://, bolt://path, file://dir,
// sqlite://path or gs://bucket/prefix. A bare path opens a bolt file.
func Open(ctx context.Context, rawURL string) (Store, error) {
	if !strings.Contains(rawURL, "://") {
		return store(OpenBolt(rawURL))
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parse store url %q: %w", rawURL, err)
	}
	switch u.Scheme {
	case "mem", "memory":
		return NewMemory(), nil
	case "bolt":
		return store(OpenBolt(filePath(u)))
	case "file", "dir":
		return store(OpenDir(filePath(u)))
	case "sqlite", "sqlite3":
		return store(OpenSQLite(filePath(u)))
	case "gs":
		return store(OpenGCS(ctx, u.Host, strings.Trim(u.Path, "/")))
	}
	return nil, fmt.Errorf("unsupported store scheme %q", u.Scheme)
}

// filePath accepts both bolt:///abs/path and bolt://relative/path.
func filePath(u *url.URL) string {
	return u.Host + u.Path
}

// store drops typed nil pointers so a failed open never yields a non-nil Store.
func store[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}

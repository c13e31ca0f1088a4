package cmd

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ensureDir creates the parent directory of file-backed stores.
func ensureDir(rawURL string) error {
	path := rawURL
	if strings.Contains(rawURL, "://") {
		u, err := url.Parse(rawURL)
		if err != nil {
			return fmt.Errorf("parse store url %q: %w", rawURL, err)
		}
		switch u.Scheme {
		case "bolt", "sqlite", "sqlite3":
			path = u.Host + u.Path
		default:
			return nil
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir store dir: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Dir is an ObjectStore backed by a local directory, for development.
// Objects are served by the web server under /uploads/.
type Dir struct {
	root    string
	baseURL string
}

// NewDir creates a directory-backed store. baseURL is the externally
// visible server address; it may be empty for relative URLs.
func NewDir(root, baseURL string) *Dir {
	return &Dir{root: root, baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Root returns the directory objects are written to.
func (d *Dir) Root() string {
	return d.root
}

func (d *Dir) objectPath(name string) (string, error) {
	// Object names come from the upload handler, but refuse path
	// traversal anyway.
	clean := path.Clean("/" + name)
	if strings.Contains(clean, "..") {
		return "", fmt.Errorf("invalid object name %q", name)
	}
	return filepath.Join(d.root, filepath.FromSlash(clean)), nil
}

// Put writes an object under the root directory and returns the URL it
// is served from.
func (d *Dir) Put(ctx context.Context, name, contentType string, data []byte) (string, error) {
	p, err := d.objectPath(name)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return "", fmt.Errorf("creating upload directory: %w", err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return "", fmt.Errorf("writing object: %w", err)
	}

	return d.baseURL + "/uploads/" + name, nil
}

// Remove deletes an object; a missing object is not an error.
func (d *Dir) Remove(ctx context.Context, name string) error {
	p, err := d.objectPath(name)
	if err != nil {
		return err
	}

	if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing object: %w", err)
	}
	return nil
}

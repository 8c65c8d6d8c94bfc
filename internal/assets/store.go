// Package assets provides read-only access to the bundled exam content
// (question files, sign and markup catalogs, images) behind a single
// path-to-bytes abstraction, regardless of where the bytes physically live.
package assets

import (
	"context"
	"io/fs"
	"path"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Store defines read-only access to logical asset paths.
// Paths are slash separated and relative to the store root, "." is the root.
type Store interface {
	// ReadFile returns the content of a file.
	// Missing files return an error matching fs.ErrNotExist.
	ReadFile(ctx context.Context, name string) ([]byte, error)

	// ReadDir returns names of the files directly inside dir, in no particular order.
	// A missing directory returns an error matching fs.ErrNotExist.
	ReadDir(ctx context.Context, dir string) ([]string, error)

	// Ping checks that the backing storage is reachable
	Ping(ctx context.Context) error

	Close() error
}

// CleanPath converts a logical path to its canonical form: NFC-normalized,
// slash separated, without leading "./" or "/". The root is ".".
func CleanPath(name string) string {
	name = norm.NFC.String(strings.ReplaceAll(name, "\\", "/"))
	name = path.Clean("/" + name)
	name = strings.TrimPrefix(name, "/")
	if name == "" {
		return "."
	}
	return name
}

// Join joins path elements into a clean logical path
func Join(elem ...string) string {
	return CleanPath(path.Join(elem...))
}

func notExist(op, name string) error {
	return &fs.PathError{Op: op, Path: name, Err: fs.ErrNotExist}
}

package assets

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"golang.org/x/text/unicode/norm"
)

// FSStore serves assets from an fs.FS: a bundled directory, an embed.FS or an in-memory tree
type FSStore struct {
	fsys fs.FS
}

// NewFSStore creates a store over fsys
func NewFSStore(fsys fs.FS) *FSStore {
	return &FSStore{fsys: fsys}
}

// NewDirStore creates a store rooted at a directory on disk
func NewDirStore(dir string) (*FSStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open assets directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("assets path %s is not a directory", dir)
	}
	return NewFSStore(os.DirFS(dir)), nil
}

// ReadFile reads a single asset.
// Names are matched after NFC normalization, so an NFD name on disk
// still resolves when it is requested in composed form.
func (s *FSStore) ReadFile(_ context.Context, name string) ([]byte, error) {
	name = CleanPath(name)
	data, err := fs.ReadFile(s.fsys, name)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	dir, base := splitPath(name)
	entries, derr := fs.ReadDir(s.fsys, dir)
	if derr != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() && e.Name() != base && norm.NFC.String(e.Name()) == base {
			return fs.ReadFile(s.fsys, joinRaw(dir, e.Name()))
		}
	}
	return nil, err
}

// ReadDir lists the files of a directory, NFC-normalized
func (s *FSStore) ReadDir(_ context.Context, dir string) ([]string, error) {
	entries, err := fs.ReadDir(s.fsys, CleanPath(dir))
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, norm.NFC.String(e.Name()))
	}
	return names, nil
}

// Ping checks the root is readable
func (s *FSStore) Ping(_ context.Context) error {
	_, err := fs.Stat(s.fsys, ".")
	return err
}

// Close is a no-op
func (s *FSStore) Close() error {
	return nil
}

func splitPath(name string) (dir, base string) {
	dir, base = path.Split(name)
	return CleanPath(dir), base
}

func joinRaw(dir, name string) string {
	if dir == "." {
		return name
	}
	return dir + "/" + name
}

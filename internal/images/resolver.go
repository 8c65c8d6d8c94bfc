// Package images resolves image path strings found in exam content to the
// bytes of the bundled image. A missing image is a normal outcome and is
// never reported as an error.
package images

import (
	"context"
	"encoding/hex"
	"errors"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/zeebo/blake3"

	"github.com/terra-clan/examkit/internal/assets"
)

const (
	// Root is the store directory holding image folders
	Root = "images"

	// noImageToken marks content that intentionally has no picture
	noImageToken = "no_image"
)

// Folders are the image folders a path may reference: one per exam
// category plus the sign and markup catalogs
var Folders = []string{"A_B", "C_D", "signs", "markup"}

// Resolver maps image paths to store files
type Resolver struct {
	store assets.Store
}

// NewResolver creates a resolver over store
func NewResolver(store assets.Store) *Resolver {
	return &Resolver{store: store}
}

// Locate returns the store path an image path refers to, without reading it.
// ok is false for the no-image sentinel and for paths without a known folder.
func (r *Resolver) Locate(imagePath string) (string, bool) {
	if imagePath == "" || strings.Contains(imagePath, noImageToken) {
		return "", false
	}

	clean := strings.ReplaceAll(imagePath, "\\", "/")
	dir, file := path.Split(clean)
	if file == "" {
		return "", false
	}

	folder := folderHint(dir)
	if folder == "" {
		return "", false
	}
	return assets.Join(Root, folder, file), true
}

// Resolve returns the image bytes, or false when the image is absent.
// A single lookup is made per call.
func (r *Resolver) Resolve(ctx context.Context, imagePath string) ([]byte, bool) {
	name, ok := r.Locate(imagePath)
	if !ok {
		return nil, false
	}

	data, err := r.store.ReadFile(ctx, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Debug("image not found", "path", imagePath, "file", name)
		} else {
			slog.Warn("failed to read image", "path", imagePath, "file", name, "error", err)
		}
		return nil, false
	}
	return data, true
}

// Digest returns the hex BLAKE3 hash of image bytes, used as an entity tag
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// folderHint returns the first directory segment naming a known folder
func folderHint(dir string) string {
	for _, seg := range strings.Split(dir, "/") {
		for _, f := range Folders {
			if seg == f {
				return f
			}
		}
	}
	return ""
}

package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"github.com/terra-clan/examkit/internal/assets"
	"github.com/terra-clan/examkit/internal/models"
)

const (
	// ticketMarker is the token that marks ticket files in a flat bundle
	ticketMarker = "Билет"

	questionsRoot = "questions"
	ticketsDir    = "tickets"
	topicsDir     = "topics"

	SignsFile  = "signs.json"
	MarkupFile = "markup.json"
)

// Resource is a located file together with the display name derived from it
type Resource struct {
	Path string // logical store path
	Name string // file stem without the category prefix, e.g. "Билет 12"
}

// Locator finds the files backing a category and kind
type Locator struct {
	store assets.Store
}

// NewLocator creates a locator over store
func NewLocator(store assets.Store) *Locator {
	return &Locator{store: store}
}

// Tickets returns the ticket files of a category.
// The order of the result is unspecified.
func (l *Locator) Tickets(ctx context.Context, category models.Category) ([]Resource, error) {
	return l.locate(ctx, category, KindTickets)
}

// Topics returns the topic files of a category.
// The order of the result is unspecified.
func (l *Locator) Topics(ctx context.Context, category models.Category) ([]Resource, error) {
	return l.locate(ctx, category, KindTopics)
}

// Catalog returns the single file backing the signs or markup catalog
func (l *Locator) Catalog(ctx context.Context, kind Kind) (Resource, error) {
	var name string
	switch kind {
	case KindSigns:
		name = SignsFile
	case KindMarkup:
		name = MarkupFile
	default:
		return Resource{}, fmt.Errorf("unknown catalog kind %q", kind)
	}

	names, err := l.store.ReadDir(ctx, ".")
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Resource{}, fmt.Errorf("failed to list assets: %w", err)
	}
	for _, n := range names {
		if n == name {
			return Resource{Path: name, Name: stem(name)}, nil
		}
	}
	return Resource{}, &NotFoundError{Kind: kind}
}

func (l *Locator) locate(ctx context.Context, category models.Category, kind Kind) ([]Resource, error) {
	folder := category.Folder()
	if folder == "" {
		return nil, &NotFoundError{Kind: kind, Category: category}
	}

	// Directory-per-category layout first
	sub := ticketsDir
	if kind == KindTopics {
		sub = topicsDir
	}
	dir := assets.Join(questionsRoot, folder, sub)

	names, err := l.store.ReadDir(ctx, dir)
	switch {
	case err == nil:
		var found []Resource
		for _, n := range names {
			if !isJSON(n) {
				continue
			}
			found = append(found, Resource{
				Path: assets.Join(dir, n),
				Name: cleanName(stem(n), folder),
			})
		}
		if len(found) > 0 {
			return found, nil
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	// Flat bundle layout
	names, err = l.store.ReadDir(ctx, ".")
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Kind: kind, Category: category}
		}
		return nil, fmt.Errorf("failed to list assets: %w", err)
	}

	prefix := folder + "_"
	var found []Resource
	for _, n := range names {
		if !isJSON(n) || !strings.HasPrefix(n, prefix) {
			continue
		}
		isTicket := strings.HasPrefix(n, prefix+ticketMarker)
		if kind == KindTickets && !isTicket {
			continue
		}
		if kind == KindTopics && strings.Contains(n, ticketMarker) {
			continue
		}
		found = append(found, Resource{Path: n, Name: cleanName(stem(n), folder)})
	}

	if len(found) == 0 {
		slog.Debug("no resources located", "kind", kind, "category", category)
		return nil, &NotFoundError{Kind: kind, Category: category}
	}
	return found, nil
}

func isJSON(name string) bool {
	return strings.EqualFold(path.Ext(name), ".json")
}

func stem(name string) string {
	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}

// cleanName strips the "<folder>_" prefix from a file stem
func cleanName(name, folder string) string {
	return strings.TrimPrefix(name, folder+"_")
}

// Package examkit is the public entry point for loading driving exam content:
// tickets, topics, the traffic sign catalog and the road markup catalog.
//
// A Kit is built over a read-only asset tree and keeps no state between calls,
// so it may be shared freely:
//
//	kit, err := examkit.Open("./resources")
//	tickets, err := kit.GetTickets(ctx, examkit.CategoryAB)
package examkit

import (
	"context"
	"image"
	"io/fs"

	"github.com/terra-clan/examkit/internal/assets"
	"github.com/terra-clan/examkit/internal/content"
	"github.com/terra-clan/examkit/internal/images"
	"github.com/terra-clan/examkit/internal/models"
)

type (
	Category       = models.Category
	Answer         = models.Answer
	Question       = models.Question
	Ticket         = models.Ticket
	Topic          = models.Topic
	Sign           = models.Sign
	SignCategory   = models.SignCategory
	Markup         = models.Markup
	MarkupCategory = models.MarkupCategory

	NotFoundError = content.NotFoundError
	DecodeError   = content.DecodeError
)

const (
	CategoryAB = models.CategoryAB
	CategoryCD = models.CategoryCD
)

var (
	ErrResourceNotFound = content.ErrResourceNotFound
	ErrDecode           = content.ErrDecode
)

// Kit exposes exam content loaded from an asset store
type Kit struct {
	content *content.Service
	images  *images.Resolver
	decoder images.Decoder
}

// Option configures a Kit
type Option func(*Kit)

// WithoutImageDecoding disables DecodeImage, for hosts that only need raw bytes
func WithoutImageDecoding() Option {
	return func(k *Kit) {
		k.decoder = nil
	}
}

// New creates a Kit over an asset store
func New(store assets.Store, opts ...Option) *Kit {
	k := &Kit{
		content: content.NewService(store),
		images:  images.NewResolver(store),
		decoder: images.StdDecoder{},
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// Open creates a Kit over an asset directory on disk
func Open(dir string, opts ...Option) (*Kit, error) {
	store, err := assets.NewDirStore(dir)
	if err != nil {
		return nil, err
	}
	return New(store, opts...), nil
}

// FromFS creates a Kit over an fs.FS such as an embed.FS
func FromFS(fsys fs.FS, opts ...Option) *Kit {
	return New(assets.NewFSStore(fsys), opts...)
}

// Categories returns all exam categories
func Categories() []Category {
	return models.Categories()
}

// GetTickets returns the tickets of a category ordered by number
func (k *Kit) GetTickets(ctx context.Context, category Category) ([]Ticket, error) {
	return k.content.Tickets(ctx, category)
}

// GetTopics returns the topics of a category
func (k *Kit) GetTopics(ctx context.Context, category Category) ([]Topic, error) {
	return k.content.Topics(ctx, category)
}

// GetAllQuestions returns every ticket question of a category
func (k *Kit) GetAllQuestions(ctx context.Context, category Category) ([]Question, error) {
	return k.content.AllQuestions(ctx, category)
}

// GetSigns returns the traffic sign catalog
func (k *Kit) GetSigns(ctx context.Context) ([]SignCategory, error) {
	return k.content.Signs(ctx)
}

// GetMarkups returns the road markup catalog
func (k *Kit) GetMarkups(ctx context.Context) ([]MarkupCategory, error) {
	return k.content.Markups(ctx)
}

// ResolveImage returns the bytes of the image an image path refers to.
// false means there is no image, which is not an error.
func (k *Kit) ResolveImage(ctx context.Context, imagePath string) ([]byte, bool) {
	return k.images.Resolve(ctx, imagePath)
}

// DecodeImage resolves and decodes an image.
// It reports false when the image is absent, undecodable, or decoding is disabled.
func (k *Kit) DecodeImage(ctx context.Context, imagePath string) (image.Image, bool) {
	if k.decoder == nil {
		return nil, false
	}
	data, ok := k.images.Resolve(ctx, imagePath)
	if !ok {
		return nil, false
	}
	img, err := k.decoder.Decode(data)
	if err != nil {
		return nil, false
	}
	return img, true
}

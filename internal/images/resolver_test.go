package images

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"testing"
	"testing/fstest"

	"github.com/terra-clan/examkit/internal/assets"
)

// countingStore records how often the store is touched
type countingStore struct {
	assets.Store
	reads int
}

func (s *countingStore) ReadFile(ctx context.Context, name string) ([]byte, error) {
	s.reads++
	return s.Store.ReadFile(ctx, name)
}

func newStore() *countingStore {
	return &countingStore{Store: assets.NewFSStore(fstest.MapFS{
		"images/A_B/q1.jpg":          {Data: []byte("a_b image")},
		"images/C_D/c1.jpg":          {Data: []byte("c_d image")},
		"images/markup/1.1.png":      {Data: []byte("markup image")},
		"images/A_B/no_image.jpg":    {Data: []byte("placeholder")},
		"images/signs/1.11.1.png":    {Data: []byte("sign image")},
		"images/unknown/mystery.jpg": {Data: []byte("mystery")},
	})}
}

func TestResolve(t *testing.T) {
	store := newStore()
	r := NewResolver(store)
	ctx := context.Background()

	tests := []struct {
		path string
		want string
	}{
		{"./images/A_B/q1.jpg", "a_b image"},
		{"images/C_D/c1.jpg", "c_d image"},
		{"/Resources/images/markup/1.1.png", "markup image"},
		{"./images/signs/1.11.1.png", "sign image"},
	}
	for _, tt := range tests {
		data, ok := r.Resolve(ctx, tt.path)
		if !ok {
			t.Errorf("%s: expected image", tt.path)
			continue
		}
		if string(data) != tt.want {
			t.Errorf("%s: got %q, want %q", tt.path, data, tt.want)
		}
	}
}

func TestResolveAbsent(t *testing.T) {
	store := newStore()
	r := NewResolver(store)
	ctx := context.Background()

	for _, path := range []string{
		"./images/A_B/missing.jpg",
		"./images/unknown/mystery.jpg",
		"q1.jpg",
		"",
		"./images/A_B/",
	} {
		if data, ok := r.Resolve(ctx, path); ok {
			t.Errorf("%q: expected absent, got %q", path, data)
		}
	}
}

func TestResolveNoImageSentinel(t *testing.T) {
	store := newStore()
	r := NewResolver(store)

	// the placeholder exists in the store but must never be served
	for _, path := range []string{"./images/A_B/no_image.jpg", "./images/no_image.jpg", "no_image"} {
		if _, ok := r.Resolve(context.Background(), path); ok {
			t.Errorf("%q: expected absent", path)
		}
	}
	if store.reads != 0 {
		t.Errorf("sentinel paths should not touch the store, got %d reads", store.reads)
	}
}

func TestResolveSingleLookup(t *testing.T) {
	store := newStore()
	r := NewResolver(store)

	r.Resolve(context.Background(), "./images/A_B/missing.jpg")
	if store.reads != 1 {
		t.Errorf("expected exactly one lookup, got %d", store.reads)
	}
}

type failingStore struct {
	assets.Store
}

func (failingStore) ReadFile(context.Context, string) ([]byte, error) {
	return nil, errors.New("connection refused")
}

func TestResolveStoreFailureIsAbsent(t *testing.T) {
	r := NewResolver(failingStore{})
	if _, ok := r.Resolve(context.Background(), "./images/A_B/q1.jpg"); ok {
		t.Error("store failure should resolve to absent")
	}
}

func TestLocate(t *testing.T) {
	r := NewResolver(nil)

	name, ok := r.Locate("./images/C_D/c1.jpg")
	if !ok || name != "images/C_D/c1.jpg" {
		t.Errorf("Locate = %q, %v", name, ok)
	}

	if _, ok := r.Locate("./images/A_B_extra/c1.jpg"); ok {
		t.Error("folder hint must match a whole path segment")
	}
}

func TestDigest(t *testing.T) {
	a := Digest([]byte("image"))
	if a != Digest([]byte("image")) {
		t.Error("digest is not deterministic")
	}
	if a == Digest([]byte("other")) {
		t.Error("different content gave the same digest")
	}
	if len(a) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(a))
	}
}

func TestStdDecoder(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}

	var d Decoder = StdDecoder{}
	info, err := d.DecodeConfig(buf.Bytes())
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if info.Format != "png" || info.Width != 3 || info.Height != 2 || info.Size != buf.Len() {
		t.Errorf("unexpected info: %+v", info)
	}

	decoded, err := d.Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if decoded.Bounds().Dx() != 3 {
		t.Errorf("unexpected bounds: %v", decoded.Bounds())
	}

	if _, err := d.DecodeConfig([]byte("not an image")); err == nil {
		t.Error("expected error for garbage input")
	}
}

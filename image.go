package sitekit

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"  // register decoder for DecodeConfig
	_ "image/jpeg" // register decoder for DecodeConfig
	_ "image/png"  // register decoder for DecodeConfig
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // register decoder for DecodeConfig
	_ "golang.org/x/image/webp" // register decoder for DecodeConfig

	"github.com/alnah/go-sitekit/internal/fileutil"
)

// DefaultRasterWidth is the pixel width SVG heroes are rasterized to.
const DefaultRasterWidth = 1600

// HeroImage is a card's resolved hero image.
type HeroImage struct {
	CardID string
	Source string // img_src as written
	Path   string // file on disk, empty for remote images
	Remote bool   // http(s) reference, not fetched
	MIME   string
	Data   []byte
	Width  int // pixels, 0 when unknown
	Height int
}

// DataURI embeds the image bytes, or returns the URL for remote images.
func (h *HeroImage) DataURI() string {
	if h.Remote {
		return h.Source
	}
	return "data:" + h.MIME + ";base64," + base64.StdEncoding.EncodeToString(h.Data)
}

// ImageResolver maps card img_src references to image bytes under a site
// root.
type ImageResolver struct {
	Root        string
	RasterWidth int
}

// NewImageResolver returns a resolver rooted at root. A non-positive
// rasterWidth selects DefaultRasterWidth.
func NewImageResolver(root string, rasterWidth int) *ImageResolver {
	if rasterWidth <= 0 {
		rasterWidth = DefaultRasterWidth
	}
	return &ImageResolver{Root: root, RasterWidth: rasterWidth}
}

// ResolveAll resolves every card image in order. The result is parallel to
// cards, with nil for cards without an image. The first failure aborts.
func (r *ImageResolver) ResolveAll(cards []Card) ([]*HeroImage, error) {
	images := make([]*HeroImage, len(cards))
	for i, c := range cards {
		img, err := r.Resolve(c)
		if err != nil {
			return nil, err
		}
		images[i] = img
	}
	return images, nil
}

// Resolve returns the card's hero image, or nil when the card has none.
// A leading "/" on img_src is dropped before joining with Root. SVG files
// are rasterized to PNG; other formats are passed through as read.
func (r *ImageResolver) Resolve(card Card) (*HeroImage, error) {
	src := strings.TrimSpace(card.ImageSrc)
	if src == "" {
		return nil, nil
	}
	if fileutil.IsURL(src) {
		return &HeroImage{CardID: card.ID, Source: src, Remote: true}, nil
	}

	path, err := fileutil.ResolveUnder(r.Root, src)
	if err != nil {
		return nil, fmt.Errorf("%w for card %s: %v", ErrImageNotFound, card.ID, err)
	}
	if !fileutil.FileExists(path) {
		return nil, fmt.Errorf("%w for card %s: %s", ErrImageNotFound, card.ID, path)
	}

	hero := &HeroImage{CardID: card.ID, Source: src, Path: path}

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		f, err := os.Open(path) // #nosec G304 -- resolved under the site root
		if err != nil {
			return nil, fmt.Errorf("%w for card %s: %v", ErrImageNotFound, card.ID, err)
		}
		defer f.Close()

		png, w, h, err := RasterizeSVG(f, r.RasterWidth)
		if err != nil {
			return nil, fmt.Errorf("card %s: %w", card.ID, err)
		}
		hero.Data, hero.MIME, hero.Width, hero.Height = png, "image/png", w, h
		return hero, nil
	}

	data, err := os.ReadFile(path) // #nosec G304 -- resolved under the site root
	if err != nil {
		return nil, fmt.Errorf("%w for card %s: %v", ErrImageNotFound, card.ID, err)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return nil, fmt.Errorf("%w for card %s: %s is %s", ErrUnsupportedImage, card.ID, path, mt.String())
	}
	hero.Data = data
	hero.MIME = mt.String()
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		hero.Width, hero.Height = cfg.Width, cfg.Height
	}
	return hero, nil
}

package sitekit

import (
	"strings"
	"time"
)

// Option configures a Builder.
type Option func(*Builder)

// builderConfig holds internal configuration for Builder.
type builderConfig struct {
	timeout     time.Duration
	styleInput  string // style name or CSS file path
	assetPath   string
	page        PageSettings
	rasterWidth int
}

const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("sitekit: WithTimeout duration must be positive")
	}
	return func(b *Builder) {
		b.cfg.timeout = d
	}
}

// WithStyle sets the stylesheet: a style name ("sampler") looked up in the
// asset path and the embedded styles, or a path to a CSS file.
func WithStyle(style string) Option {
	return func(b *Builder) {
		b.cfg.styleInput = strings.TrimSpace(style)
	}
}

// WithAssetPath sets a directory holding styles/ and templates/ overrides.
// Missing files fall back to the embedded assets.
func WithAssetPath(path string) Option {
	return func(b *Builder) {
		b.cfg.assetPath = path
	}
}

// WithPageSize sets the printed page size: letter, a4, or legal.
// An invalid size is reported by NewBuilder.
func WithPageSize(size string) Option {
	return func(b *Builder) {
		b.cfg.page.Size = strings.ToLower(strings.TrimSpace(size))
	}
}

// WithRasterWidth sets the pixel width SVG hero images are rasterized to.
func WithRasterWidth(px int) Option {
	return func(b *Builder) {
		b.cfg.rasterWidth = px
	}
}

// WithRenderer replaces the headless Chrome renderer.
// The Builder takes ownership and closes it in Close.
func WithRenderer(r Renderer) Option {
	return func(b *Builder) {
		b.renderer = r
	}
}

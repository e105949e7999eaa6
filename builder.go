package sitekit

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-sitekit/internal/assets"
	"github.com/alnah/go-sitekit/internal/fileutil"
)

// Input describes one sampler build.
type Input struct {
	Root     string // site root; img_src references resolve under it
	Cards    []Card
	Cover    Cover
	SiteURL  string // published site, for site-root links in card text
	HTMLOnly bool   // skip PDF rendering
}

// BuildResult holds the outputs of a build.
type BuildResult struct {
	HTML     []byte
	PDF      []byte // nil when Input.HTMLOnly is set
	Document *Document
	Warnings []string
}

// Builder turns cards into a sampler PDF.
// Create with NewBuilder, call Build, and Close when done.
type Builder struct {
	cfg      builderConfig
	loader   assets.AssetLoader
	css      string
	template string
	renderer Renderer
}

// NewBuilder creates a Builder. Styles and templates are resolved here so a
// bad asset path fails before any card is read. The browser is started
// lazily on the first PDF render.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		cfg: builderConfig{
			timeout:     defaultTimeout,
			rasterWidth: DefaultRasterWidth,
		},
		loader: assets.NewEmbeddedLoader(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if err := b.cfg.page.Validate(); err != nil {
		return nil, err
	}

	if b.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(b.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		b.loader = resolver
	}

	if err := b.resolveStyle(); err != nil {
		return nil, err
	}
	tmpl, err := b.loader.LoadTemplate(assets.DefaultTemplateName)
	if err != nil {
		return nil, fmt.Errorf("loading template: %w", err)
	}
	b.template = tmpl

	if b.renderer == nil {
		b.renderer = newRodConverter(b.cfg.timeout)
	}
	return b, nil
}

// resolveStyle turns the style input (name or path) into CSS content.
func (b *Builder) resolveStyle() error {
	input := b.cfg.styleInput
	if input == "" {
		input = assets.DefaultStyleName
	}

	if fileutil.IsFilePath(input) || strings.HasSuffix(strings.ToLower(input), ".css") {
		content, err := os.ReadFile(input) // #nosec G304 -- user-provided path
		if err != nil {
			return fmt.Errorf("%w: %q: %v", ErrStyleNotFound, input, err)
		}
		b.css = string(content)
		return nil
	}

	css, err := b.loader.LoadStyle(input)
	if err != nil {
		if errors.Is(err, assets.ErrStyleNotFound) {
			return fmt.Errorf("%w: %q (built-in: %s)", ErrStyleNotFound, input, strings.Join(assets.StyleNames(), ", "))
		}
		return fmt.Errorf("loading style %q: %w", input, err)
	}
	b.css = css
	return nil
}

// Build resolves every hero image, assembles the document, renders it to
// HTML and, unless HTMLOnly is set, to PDF. Nothing is written to disk:
// images are resolved before rendering, so a missing image fails the build
// before the caller touches its output file.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (b *Builder) Build(ctx context.Context, input Input) (result *BuildResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	if len(input.Cards) == 0 {
		return nil, fmt.Errorf("%w; PDF would be a ghost", ErrNoCards)
	}

	resolver := NewImageResolver(input.Root, b.cfg.rasterWidth)
	images, err := resolver.ResolveAll(input.Cards)
	if err != nil {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	doc, err := Assemble(input.Cover, input.Cards, images)
	if err != nil {
		return nil, err
	}

	html, err := doc.RenderHTML(RenderOptions{
		CSS:      b.css,
		Template: b.template,
		SiteURL:  input.SiteURL,
	})
	if err != nil {
		return nil, err
	}

	res := &BuildResult{
		HTML:     []byte(html),
		Document: doc,
		Warnings: remoteImageWarnings(input.Cards, images),
	}
	if input.HTMLOnly {
		return res, nil
	}

	ctx, cancel := context.WithTimeout(ctx, b.cfg.timeout)
	defer cancel()

	pdf, err := b.renderer.ToPDF(ctx, html, b.cfg.page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}
	res.PDF = pdf
	return res, nil
}

// Close releases resources (headless Chrome browser).
func (b *Builder) Close() error {
	if b.renderer != nil {
		return b.renderer.Close()
	}
	return nil
}

func remoteImageWarnings(cards []Card, images []*HeroImage) []string {
	var warnings []string
	for i, img := range images {
		if img != nil && img.Remote {
			warnings = append(warnings, fmt.Sprintf("card %s: remote image %s is loaded by the browser, not embedded", cards[i].ID, img.Source))
		}
	}
	return warnings
}

package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	flag "github.com/spf13/pflag"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/hints"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage     = errors.New("invalid usage")
	ErrWritePDF  = errors.New("failed to write PDF file")
	ErrWriteHTML = errors.New("failed to write HTML file")
)

// filePermissions: rw-r--r--, the PDF is published with the site.
const filePermissions = 0o644

// runBuildCmd parses build flags and runs the build.
func runBuildCmd(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stdout)
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: unexpected argument %q", ErrUsage, positional[0])
	}
	return runBuild(ctx, flags, env)
}

// runBuild renders the sampler and writes it under the site root.
func runBuild(ctx context.Context, flags *buildFlags, env *Environment) error {
	start := env.now()
	if !flags.common.quiet {
		warnUnknownEnvVars(env.Stderr)
	}

	cfg, cfgPath, err := resolveConfig(flags.common.config, env)
	if err != nil {
		return err
	}
	if err := mergeBuildFlags(flags, cfg); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	anchorRoot(cfg, env)
	if flags.common.verbose {
		logConfig(env, cfgPath, cfg)
	}

	cards, err := sitekit.LoadCards(cfg.Path(cfg.Sampler.Data))
	if err != nil {
		if errors.Is(err, sitekit.ErrNoCards) {
			return fmt.Errorf("%w%s", err, hints.ForNoCards())
		}
		return err
	}

	cover := coverFromConfig(cfg)
	stamp, err := sitekit.ReadUpdatedStamp(cfg.Path(cfg.Sampler.Page), cfg.Cover.StampFormat)
	if err != nil && !flags.common.quiet {
		fmt.Fprintf(env.Stderr, "warning: %v (cover stamp omitted)\n", err)
	}
	cover.Stamp = stamp

	builder, err := sitekit.NewBuilder(builderOptions(cfg, env)...)
	if err != nil {
		return err
	}
	defer func() { _ = builder.Close() }()

	result, err := builder.Build(ctx, sitekit.Input{
		Root:     cfg.Root,
		Cards:    cards,
		Cover:    cover,
		SiteURL:  cfg.Site.URL,
		HTMLOnly: flags.output.htmlOnly,
	})
	if err != nil {
		return withHints(err)
	}
	if !flags.common.quiet {
		for _, w := range result.Warnings {
			fmt.Fprintf(env.Stderr, "warning: %s\n", w)
		}
	}

	if err := writeOutputs(cfg, flags, result, env); err != nil {
		return err
	}

	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Built %d cards in %v\n", len(cards), env.now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// mergeBuildFlags applies explicitly set flags over cfg (CLI wins).
func mergeBuildFlags(flags *buildFlags, cfg *config.Config) error {
	if flags.project.root != "" {
		cfg.Root = flags.project.root
	}
	if flags.project.data != "" {
		cfg.Sampler.Data = flags.project.data
	}
	if flags.project.page != "" {
		cfg.Sampler.Page = flags.project.page
	}
	if flags.output.path != "" {
		cfg.PDF.Output = flags.output.path
	}
	if flags.render.pageSize != "" {
		cfg.PDF.PageSize = strings.ToLower(flags.render.pageSize)
	}
	if flags.render.style != "" {
		cfg.Assets.Style = flags.render.style
	}
	if flags.render.assetPath != "" {
		cfg.Assets.BasePath = flags.render.assetPath
	}
	if flags.render.siteURL != "" {
		cfg.Site.URL = flags.render.siteURL
	}
	if flags.render.rasterWidth != 0 {
		cfg.Images.RasterWidth = flags.render.rasterWidth
	}
	if flags.render.timeout != "" {
		d, err := time.ParseDuration(flags.render.timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: --timeout %q is not a positive duration", ErrUsage, flags.render.timeout)
		}
		cfg.PDF.Timeout = flags.render.timeout
	}
	return nil
}

func coverFromConfig(cfg *config.Config) sitekit.Cover {
	return sitekit.Cover{
		Title:   cfg.Cover.Title,
		Tagline: cfg.Cover.Tagline,
		Note:    cfg.Cover.Note,
	}
}

// builderOptions translates the resolved config into builder options.
func builderOptions(cfg *config.Config, env *Environment) []sitekit.Option {
	opts := []sitekit.Option{
		sitekit.WithPageSize(cfg.PDF.PageSize),
		sitekit.WithStyle(cfg.Assets.Style),
		sitekit.WithRasterWidth(cfg.Images.RasterWidth),
	}
	if cfg.Assets.BasePath != "" {
		opts = append(opts, sitekit.WithAssetPath(cfg.Path(cfg.Assets.BasePath)))
	}
	if d := cfg.TimeoutDuration(); d > 0 {
		opts = append(opts, sitekit.WithTimeout(d))
	}
	if env.Renderer != nil {
		opts = append(opts, sitekit.WithRenderer(env.Renderer))
	}
	return opts
}

// writeOutputs writes the PDF and, when asked, the intermediate HTML.
// Both are written atomically so a failed run keeps the previous files.
func writeOutputs(cfg *config.Config, flags *buildFlags, result *sitekit.BuildResult, env *Environment) error {
	pdfPath := cfg.Path(cfg.PDF.Output)

	if flags.output.html || flags.output.htmlOnly {
		htmlPath := strings.TrimSuffix(pdfPath, filepath.Ext(pdfPath)) + ".html"
		if err := fileutil.WriteFileAtomic(htmlPath, result.HTML, filePermissions); err != nil {
			return fmt.Errorf("%w: %v%s", ErrWriteHTML, err, hints.ForOutputDirectory())
		}
		if !flags.common.quiet {
			fmt.Fprintf(env.Stdout, "Wrote sampler HTML to %s\n", relToRoot(cfg.Root, htmlPath))
		}
	}

	if flags.output.htmlOnly {
		return nil
	}
	if err := fileutil.WriteFileAtomic(pdfPath, result.PDF, filePermissions); err != nil {
		return fmt.Errorf("%w: %v%s", ErrWritePDF, err, hints.ForOutputDirectory())
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Wrote sampler PDF to %s\n", relToRoot(cfg.Root, pdfPath))
	}
	return nil
}

// withHints appends an actionable hint for the failures users can fix.
func withHints(err error) error {
	switch {
	case errors.Is(err, sitekit.ErrBrowserConnect):
		return fmt.Errorf("%w%s", err, hints.ForBrowserConnect())
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%w%s", err, hints.ForTimeout())
	case errors.Is(err, sitekit.ErrImageNotFound):
		return fmt.Errorf("%w%s", err, hints.ForImageNotFound())
	}
	return err
}

func relToRoot(root, path string) string {
	if rel, err := filepath.Rel(root, path); err == nil && !strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(rel)
	}
	return path
}

func logConfig(env *Environment, path string, cfg *config.Config) {
	if path == "" {
		path = "(defaults)"
	}
	fmt.Fprintf(env.Stderr, "Config: %s\n", path)
	fmt.Fprintf(env.Stderr, "Root: %s\n", cfg.Root)
	fmt.Fprintf(env.Stderr, "Data: %s\n", cfg.Sampler.Data)
}

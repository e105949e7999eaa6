package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-sitekit/internal/config"
	"github.com/alnah/go-sitekit/internal/hints"
)

// envPrefix starts every environment variable sitekit reads.
const envPrefix = "SITEKIT_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring a config file.
type envConfig struct {
	ConfigPath  string        // SITEKIT_CONFIG: config file path
	Root        string        // SITEKIT_ROOT: site root
	SiteURL     string        // SITEKIT_SITE_URL: published site URL
	Data        string        // SITEKIT_DATA: card data file
	Page        string        // SITEKIT_PAGE: sampler page
	Output      string        // SITEKIT_OUTPUT: PDF output path
	PageSize    string        // SITEKIT_PAGE_SIZE: letter, a4, legal
	Style       string        // SITEKIT_STYLE: CSS style name or path
	AssetPath   string        // SITEKIT_ASSET_PATH: custom asset directory
	Timeout     time.Duration // SITEKIT_TIMEOUT: PDF generation timeout
	RasterWidth int           // SITEKIT_RASTER_WIDTH: SVG raster width in pixels
}

// knownEnvVars lists valid SITEKIT_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"SITEKIT_CONFIG":       true,
	"SITEKIT_ROOT":         true,
	"SITEKIT_SITE_URL":     true,
	"SITEKIT_DATA":         true,
	"SITEKIT_PAGE":         true,
	"SITEKIT_OUTPUT":       true,
	"SITEKIT_PAGE_SIZE":    true,
	"SITEKIT_STYLE":        true,
	"SITEKIT_ASSET_PATH":   true,
	"SITEKIT_TIMEOUT":      true,
	"SITEKIT_RASTER_WIDTH": true,
	"SITEKIT_CONTAINER":    true, // read by doctor
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("SITEKIT_CONFIG"),
		Root:       os.Getenv("SITEKIT_ROOT"),
		SiteURL:    os.Getenv("SITEKIT_SITE_URL"),
		Data:       os.Getenv("SITEKIT_DATA"),
		Page:       os.Getenv("SITEKIT_PAGE"),
		Output:     os.Getenv("SITEKIT_OUTPUT"),
		PageSize:   os.Getenv("SITEKIT_PAGE_SIZE"),
		Style:      os.Getenv("SITEKIT_STYLE"),
		AssetPath:  os.Getenv("SITEKIT_ASSET_PATH"),
	}

	if timeout := os.Getenv("SITEKIT_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}
	if width := os.Getenv("SITEKIT_RASTER_WIDTH"); width != "" {
		if w, err := strconv.Atoi(width); err == nil && w > 0 {
			cfg.RasterWidth = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized SITEKIT_* variables.
// Helps catch typos like SITEKIT_PAGESIZE instead of SITEKIT_PAGE_SIZE.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, envPrefix) {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig overrides config values with the environment.
// Flags are merged afterwards, giving: flags > env > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Root != "" {
		cfg.Root = env.Root
	}
	if env.SiteURL != "" {
		cfg.Site.URL = env.SiteURL
	}
	if env.Data != "" {
		cfg.Sampler.Data = env.Data
	}
	if env.Page != "" {
		cfg.Sampler.Page = env.Page
	}
	if env.Output != "" {
		cfg.PDF.Output = env.Output
	}
	if env.PageSize != "" {
		cfg.PDF.PageSize = strings.ToLower(env.PageSize)
	}
	if env.Style != "" {
		cfg.Assets.Style = env.Style
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
	if env.Timeout > 0 {
		cfg.PDF.Timeout = env.Timeout.String()
	}
	if env.RasterWidth > 0 {
		cfg.Images.RasterWidth = env.RasterWidth
	}
}

// resolveConfig loads the config file (explicit flag, SITEKIT_CONFIG, or
// discovery from the working directory) and applies the environment.
// The returned path is empty when defaults are used.
func resolveConfig(flagPath string, env *Environment) (*config.Config, string, error) {
	envCfg := loadEnvConfig()

	explicit := flagPath
	if explicit == "" {
		explicit = envCfg.ConfigPath
	}
	if explicit != "" && !filepath.IsAbs(explicit) {
		explicit = filepath.Join(env.dir(), explicit)
	}

	cfg, path, err := config.Discover(explicit, env.dir())
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, "", fmt.Errorf("%w%s", err, hints.ForConfigNotFound(config.SearchPaths(env.dir())))
		}
		return nil, "", fmt.Errorf("loading config: %w", err)
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, path, nil
}

// anchorRoot makes cfg.Root absolute against the working directory.
func anchorRoot(cfg *config.Config, env *Environment) {
	if !filepath.IsAbs(cfg.Root) {
		cfg.Root = filepath.Join(env.dir(), cfg.Root)
	}
}

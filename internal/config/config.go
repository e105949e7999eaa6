// Package config loads and validates sitekit configuration.
//
// A configuration file is optional: DefaultConfig describes the site layout
// the tool was written for, and a sitekit.yaml, sitekit.yml, or sitekit.toml
// file only needs to name what differs.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"

	"github.com/alnah/go-sitekit/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound = errors.New("config file not found")
	ErrConfigParse    = errors.New("failed to parse config")
	ErrConfigInvalid  = errors.New("invalid config")
)

// BaseName is the file name searched for, without extension.
const BaseName = "sitekit"

// Extensions are tried in this order in every search location.
var Extensions = []string{".yaml", ".yml", ".toml"}

// Config holds all configuration for building and linting the site.
type Config struct {
	Root    string        `yaml:"root" toml:"root" validate:"required,max=4096"`
	Site    SiteConfig    `yaml:"site" toml:"site"`
	Sampler SamplerConfig `yaml:"sampler" toml:"sampler"`
	PDF     PDFConfig     `yaml:"pdf" toml:"pdf"`
	Cover   CoverConfig   `yaml:"cover" toml:"cover"`
	Images  ImagesConfig  `yaml:"images" toml:"images"`
	Assets  AssetsConfig  `yaml:"assets" toml:"assets"`
	Lint    LintConfig    `yaml:"lint" toml:"lint"`
}

// SiteConfig describes the published site.
type SiteConfig struct {
	URL string `yaml:"url" toml:"url" validate:"omitempty,url,max=2048"` // prefix for site-root links in the PDF
}

// SamplerConfig locates the sampler inputs.
type SamplerConfig struct {
	Data     string `yaml:"data" toml:"data" validate:"required,max=4096"`
	Page     string `yaml:"page" toml:"page" validate:"required,max=4096"`
	MinCards int    `yaml:"minCards" toml:"minCards" validate:"min=1,max=1000"`
}

// PDFConfig defines the generated document.
type PDFConfig struct {
	Output   string   `yaml:"output" toml:"output" validate:"required,max=4096"`
	Aliases  []string `yaml:"aliases" toml:"aliases" validate:"dive,required,max=4096"` // other accepted filenames
	PageSize string   `yaml:"pageSize" toml:"pageSize" validate:"oneof=letter a4 legal"`
	Timeout  string   `yaml:"timeout" toml:"timeout" validate:"max=20"` // Go duration, empty = builder default
}

// CoverConfig holds the cover page text.
type CoverConfig struct {
	Title       string `yaml:"title" toml:"title" validate:"required,max=200"`
	Tagline     string `yaml:"tagline" toml:"tagline" validate:"max=500"`
	Note        string `yaml:"note" toml:"note" validate:"max=1000"`
	StampFormat string `yaml:"stampFormat" toml:"stampFormat" validate:"max=100"`
}

// ImagesConfig controls hero image handling.
type ImagesConfig struct {
	RasterWidth int `yaml:"rasterWidth" toml:"rasterWidth" validate:"min=64,max=8192"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath" toml:"basePath" validate:"max=4096"` // empty = embedded assets
	Style    string `yaml:"style" toml:"style" validate:"required,max=100"`
}

// LintConfig drives the lint rule sets.
type LintConfig struct {
	Collections       []CollectionConfig `yaml:"collections" toml:"collections" validate:"dive"`
	About             string             `yaml:"about" toml:"about" validate:"max=4096"`
	Navigation        string             `yaml:"navigation" toml:"navigation" validate:"required,max=4096"`
	Hidden            HiddenConfig       `yaml:"hidden" toml:"hidden"`
	PlaceholderAssets []string           `yaml:"placeholderAssets" toml:"placeholderAssets" validate:"dive,required,max=4096"`
}

// CollectionConfig is one content directory checked by the content rule.
type CollectionConfig struct {
	Dir         string `yaml:"dir" toml:"dir" validate:"required,max=4096"`
	RequireYear bool   `yaml:"requireYear" toml:"requireYear"`
}

// HiddenConfig describes the unlisted page.
type HiddenConfig struct {
	Route            string   `yaml:"route" toml:"route" validate:"required,max=200"`
	RequireUpdated   bool     `yaml:"requireUpdated" toml:"requireUpdated"`
	RequiredSnippets []string `yaml:"requiredSnippets" toml:"requiredSnippets" validate:"dive,required"`
}

// DefaultConfig returns the layout of the portfolio site.
func DefaultConfig() *Config {
	return &Config{
		Root: ".",
		Sampler: SamplerConfig{
			Data:     "_data/cds.yml",
			Page:     "critical-digital-studies-sampler/index.md",
			MinCards: 4,
		},
		PDF: PDFConfig{
			Output:   "assets/docs/Severns_CriticalDigitalStudies.pdf",
			Aliases:  []string{"assets/docs/Severns_CriticalDigitalStudies_Sampler.pdf"},
			PageSize: "letter",
		},
		Cover: CoverConfig{
			Title:       "Critical Digital Studies — Sampler",
			Tagline:     "Practice-based glimpses of how pedagogy, ethics, and tooling intertwine.",
			Note:        "Each subsequent page is a card: hero image, methods, outcomes, and the teach-with-this kit so a future instructor can reproduce the work without guessing.",
			StampFormat: "YYYY-MM-DD",
		},
		Images: ImagesConfig{RasterWidth: 1600},
		Assets: AssetsConfig{Style: "sampler"},
		Lint: LintConfig{
			Collections: []CollectionConfig{
				{Dir: "_projects", RequireYear: true},
				{Dir: "_teaching"},
			},
			About:      "about.md",
			Navigation: "_data/navigation.yml",
			Hidden: HiddenConfig{
				Route:          "critical-digital-studies-sampler",
				RequireUpdated: true,
				RequiredSnippets: []string{
					"{% include cds-card.html",
					"site.data.cds.cards",
				},
			},
			PlaceholderAssets: []string{
				"assets/images/cds/faceTimes-consent.svg",
				"assets/images/cds/mn42-panel.svg",
				"assets/images/cds/glitch-geometry-still.svg",
				"assets/images/cds/ds200412-still.svg",
			},
		},
	}
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their file key rather than the Go name.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("yaml"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks every field against its constraints.
// Called automatically by Load, but available for callers who build a
// Config by hand or after applying overrides.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("%w: %s", ErrConfigInvalid, strings.Join(msgs, "; "))
		}
		return fmt.Errorf("%w: %v", ErrConfigInvalid, err)
	}
	if c.PDF.Timeout != "" {
		d, err := time.ParseDuration(c.PDF.Timeout)
		if err != nil || d <= 0 {
			return fmt.Errorf("%w: pdf.timeout: %q is not a positive duration", ErrConfigInvalid, c.PDF.Timeout)
		}
	}
	return nil
}

// describe turns a validator failure into "key: reason".
func describe(fe validator.FieldError) string {
	// Namespace is "Config.pdf.pageSize"; drop the root type.
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + ": required"
	case "max":
		return fmt.Sprintf("%s: exceeds maximum %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s: below minimum %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s: must be one of %s, got %q", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("%s: not a valid URL", field)
	default:
		return fmt.Sprintf("%s: failed %s", field, fe.Tag())
	}
}

// TimeoutDuration returns the configured timeout, or zero when unset.
func (c *Config) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(c.PDF.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// Path resolves a configured path against Root. Absolute paths are kept.
func (c *Config) Path(rel string) string {
	if rel == "" || filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(c.Root, filepath.FromSlash(rel))
}

// PDFNames returns the output path followed by its aliases.
func (c *Config) PDFNames() []string {
	return append([]string{c.PDF.Output}, c.PDF.Aliases...)
}

// Load reads the file at path over DefaultConfig and validates the result.
// Files ending in .toml are decoded as TOML, everything else as YAML.
// Unknown keys are rejected in both formats.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = decodeTOML(data, cfg)
	} else {
		err = decodeYAML(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrConfigParse, path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeYAML(data []byte, cfg *Config) error {
	if yamlutil.IsBlank(data) {
		return nil
	}
	return yamlutil.UnmarshalStrict(data, cfg)
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.NewDecoder(bytes.NewReader(data)).Decode(cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

// SearchPaths lists the candidate files in lookup order: dir first, then
// the user config directory.
func SearchPaths(dir string) []string {
	paths := make([]string, 0, len(Extensions)*2)
	for _, ext := range Extensions {
		paths = append(paths, filepath.Join(dir, BaseName+ext))
	}
	if userDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range Extensions {
			paths = append(paths, filepath.Join(userDir, BaseName, BaseName+ext))
		}
	}
	return paths
}

// Find returns the first existing candidate from SearchPaths.
func Find(dir string) (string, error) {
	tried := SearchPaths(dir)
	for _, p := range tried {
		if fileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// Discover loads explicit when set; otherwise it searches from dir and
// falls back to DefaultConfig when nothing is found. The returned path is
// empty when defaults are used.
func Discover(explicit, dir string) (*Config, string, error) {
	if explicit != "" {
		cfg, err := Load(explicit)
		return cfg, explicit, err
	}
	path, err := Find(dir)
	if err != nil {
		return DefaultConfig(), "", nil
	}
	cfg, err := Load(path)
	return cfg, path, err
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// ---------------------------------------------------------------------------
// TestDefaultConfig - Historical site layout
// ---------------------------------------------------------------------------

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	checks := []struct {
		name string
		got  string
		want string
	}{
		{"root", cfg.Root, "."},
		{"sampler.data", cfg.Sampler.Data, "_data/cds.yml"},
		{"sampler.page", cfg.Sampler.Page, "critical-digital-studies-sampler/index.md"},
		{"pdf.output", cfg.PDF.Output, "assets/docs/Severns_CriticalDigitalStudies.pdf"},
		{"pdf.pageSize", cfg.PDF.PageSize, "letter"},
		{"lint.navigation", cfg.Lint.Navigation, "_data/navigation.yml"},
		{"lint.hidden.route", cfg.Lint.Hidden.Route, "critical-digital-studies-sampler"},
		{"cover.stampFormat", cfg.Cover.StampFormat, "YYYY-MM-DD"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %q, want %q", c.name, c.got, c.want)
		}
	}

	if cfg.Sampler.MinCards != 4 {
		t.Errorf("sampler.minCards = %d, want 4", cfg.Sampler.MinCards)
	}
	if cfg.Images.RasterWidth != 1600 {
		t.Errorf("images.rasterWidth = %d, want 1600", cfg.Images.RasterWidth)
	}
	if !cfg.Lint.Hidden.RequireUpdated {
		t.Error("lint.hidden.requireUpdated = false, want true")
	}
	if len(cfg.Lint.PlaceholderAssets) != 4 {
		t.Errorf("len(placeholderAssets) = %d, want 4", len(cfg.Lint.PlaceholderAssets))
	}
	for _, a := range cfg.Lint.PlaceholderAssets {
		if !strings.HasSuffix(a, ".svg") {
			t.Errorf("placeholder asset %q is not an .svg", a)
		}
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig().Validate() = %v, want nil", err)
	}
}

// ---------------------------------------------------------------------------
// TestValidate - Struct tag constraints
// ---------------------------------------------------------------------------

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		mutate   func(c *Config)
		wantErr  bool
		contains string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "missing data path", mutate: func(c *Config) { c.Sampler.Data = "" }, wantErr: true, contains: "sampler.data: required"},
		{name: "unknown page size", mutate: func(c *Config) { c.PDF.PageSize = "tabloid" }, wantErr: true, contains: "pdf.pageSize: must be one of"},
		{name: "min cards zero", mutate: func(c *Config) { c.Sampler.MinCards = 0 }, wantErr: true, contains: "sampler.minCards: below minimum"},
		{name: "raster width too large", mutate: func(c *Config) { c.Images.RasterWidth = 100000 }, wantErr: true, contains: "images.rasterWidth"},
		{name: "bad site url", mutate: func(c *Config) { c.Site.URL = "not a url" }, wantErr: true, contains: "site.url"},
		{name: "valid site url", mutate: func(c *Config) { c.Site.URL = "https://example.edu" }},
		{name: "empty placeholder entry", mutate: func(c *Config) { c.Lint.PlaceholderAssets = []string{""} }, wantErr: true, contains: "placeholderAssets"},
		{name: "collection without dir", mutate: func(c *Config) { c.Lint.Collections = []CollectionConfig{{}} }, wantErr: true, contains: "dir: required"},
		{name: "bad timeout", mutate: func(c *Config) { c.PDF.Timeout = "soon" }, wantErr: true, contains: "pdf.timeout"},
		{name: "negative timeout", mutate: func(c *Config) { c.PDF.Timeout = "-5s" }, wantErr: true, contains: "pdf.timeout"},
		{name: "good timeout", mutate: func(c *Config) { c.PDF.Timeout = "45s" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if !tt.wantErr {
				if err != nil {
					t.Fatalf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, ErrConfigInvalid) {
				t.Fatalf("Validate() error = %v, want ErrConfigInvalid", err)
			}
			if !strings.Contains(err.Error(), tt.contains) {
				t.Errorf("Validate() error = %q, want containing %q", err, tt.contains)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoad - YAML and TOML files over defaults
// ---------------------------------------------------------------------------

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("yaml overrides only named keys", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "sitekit.yaml", `
root: site
sampler:
  minCards: 2
pdf:
  pageSize: a4
  timeout: 90s
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Root != "site" {
			t.Errorf("Root = %q, want %q", cfg.Root, "site")
		}
		if cfg.Sampler.MinCards != 2 {
			t.Errorf("MinCards = %d, want 2", cfg.Sampler.MinCards)
		}
		if cfg.Sampler.Data != "_data/cds.yml" {
			t.Errorf("Data = %q, want default kept", cfg.Sampler.Data)
		}
		if cfg.PDF.PageSize != "a4" {
			t.Errorf("PageSize = %q, want a4", cfg.PDF.PageSize)
		}
		if cfg.TimeoutDuration() != 90*time.Second {
			t.Errorf("TimeoutDuration() = %v, want 90s", cfg.TimeoutDuration())
		}
		if !cfg.Lint.Hidden.RequireUpdated {
			t.Error("RequireUpdated lost its default")
		}
	})

	t.Run("toml file", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		path := writeFile(t, dir, "sitekit.toml", `
root = "site"

[lint.hidden]
route = "secret-page"
requireUpdated = false
`)
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Lint.Hidden.Route != "secret-page" {
			t.Errorf("Route = %q, want secret-page", cfg.Lint.Hidden.Route)
		}
		if cfg.Lint.Hidden.RequireUpdated {
			t.Error("RequireUpdated = true, want false")
		}
		if len(cfg.Lint.Hidden.RequiredSnippets) != 2 {
			t.Errorf("RequiredSnippets = %v, want defaults kept", cfg.Lint.Hidden.RequiredSnippets)
		}
	})

	t.Run("empty yaml yields defaults", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "sitekit.yml", "# nothing yet\n")
		cfg, err := Load(path)
		if err != nil {
			t.Fatalf("Load() error = %v", err)
		}
		if cfg.Root != "." {
			t.Errorf("Root = %q, want default", cfg.Root)
		}
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown yaml key", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "sitekit.yaml", "sampler:\n  dataa: x\n")
		_, err := Load(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("Load() error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown toml key", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "sitekit.toml", "[pdf]\noutptu = \"x.pdf\"\n")
		_, err := Load(path)
		if !errors.Is(err, ErrConfigParse) {
			t.Fatalf("Load() error = %v, want ErrConfigParse", err)
		}
		if !strings.Contains(err.Error(), "pdf.outptu") {
			t.Errorf("error = %q, want the unknown key named", err)
		}
	})

	t.Run("invalid values", func(t *testing.T) {
		t.Parallel()

		path := writeFile(t, t.TempDir(), "sitekit.yaml", "pdf:\n  pageSize: tabloid\n")
		_, err := Load(path)
		if !errors.Is(err, ErrConfigInvalid) {
			t.Errorf("Load() error = %v, want ErrConfigInvalid", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestFind / TestDiscover - Search order and fallback
// ---------------------------------------------------------------------------

// Uses t.Setenv for XDG_CONFIG_HOME, so it does not run in parallel.
func TestFind(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()

	if _, err := Find(dir); !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("Find() on empty dir error = %v, want ErrConfigNotFound", err)
	}

	userDir := filepath.Join(xdg, BaseName)
	if err := os.MkdirAll(userDir, 0o755); err != nil {
		t.Fatal(err)
	}
	userPath := writeFile(t, userDir, "sitekit.toml", "root = \"from-user\"\n")

	got, err := Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != userPath {
		t.Errorf("Find() = %q, want user config %q", got, userPath)
	}

	localPath := writeFile(t, dir, "sitekit.yml", "root: local\n")
	got, err = Find(dir)
	if err != nil {
		t.Fatalf("Find() error = %v", err)
	}
	if got != localPath {
		t.Errorf("Find() = %q, want working directory file %q", got, localPath)
	}
}

func TestDiscover(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	t.Run("falls back to defaults", func(t *testing.T) {
		cfg, path, err := Discover("", t.TempDir())
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if path != "" {
			t.Errorf("path = %q, want empty", path)
		}
		if cfg.Sampler.MinCards != 4 {
			t.Error("expected default config")
		}
	})

	t.Run("explicit path must exist", func(t *testing.T) {
		_, _, err := Discover(filepath.Join(t.TempDir(), "missing.yaml"), t.TempDir())
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("Discover() error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("explicit path is loaded", func(t *testing.T) {
		path := writeFile(t, t.TempDir(), "custom.yaml", "root: custom\n")
		cfg, got, err := Discover(path, t.TempDir())
		if err != nil {
			t.Fatalf("Discover() error = %v", err)
		}
		if got != path || cfg.Root != "custom" {
			t.Errorf("Discover() = (%q, root %q), want (%q, custom)", got, cfg.Root, path)
		}
	})
}

// ---------------------------------------------------------------------------
// TestPath / TestPDFNames - Path helpers
// ---------------------------------------------------------------------------

func TestPath(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Root = filepath.Join("srv", "site")

	if got, want := cfg.Path("_data/cds.yml"), filepath.Join("srv", "site", "_data", "cds.yml"); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
	abs := filepath.Join(t.TempDir(), "x.yml")
	if got := cfg.Path(abs); got != abs {
		t.Errorf("Path(abs) = %q, want unchanged", got)
	}
	if got := cfg.Path(""); got != "" {
		t.Errorf("Path(\"\") = %q, want empty", got)
	}
}

func TestPDFNames(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	names := cfg.PDFNames()
	if len(names) != 2 || names[0] != cfg.PDF.Output {
		t.Errorf("PDFNames() = %v, want output first then alias", names)
	}
	names[1] = "mutated"
	if cfg.PDF.Aliases[0] == "mutated" {
		t.Error("PDFNames() shares backing array with Aliases")
	}
}

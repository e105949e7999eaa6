package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/config"
)

const pdfRel = "assets/docs/Severns_CriticalDigitalStudies.pdf"

// ---------------------------------------------------------------------------
// TestBuild_WritesPDF - Happy path through runMain
// ---------------------------------------------------------------------------

func TestBuild_WritesPDF(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, healthySite())
	renderer := &fakeRenderer{result: []byte("%PDF-1.4 new")}
	env, stdout, stderr := testEnv(dir, renderer)

	code := runMain([]string{"sitekit", "build"}, env)
	if code != ExitSuccess {
		t.Fatalf("exit code = %d, want %d\nstderr: %s", code, ExitSuccess, stderr.String())
	}

	if got := readFile(t, dir, pdfRel); got != "%PDF-1.4 new" {
		t.Errorf("PDF content = %q, want the rendered bytes", got)
	}
	want := "Wrote sampler PDF to " + pdfRel
	if !strings.Contains(stdout.String(), want) {
		t.Errorf("stdout = %q, want %q", stdout.String(), want)
	}
	if renderer.getCalls() != 1 {
		t.Errorf("renderer calls = %d, want 1", renderer.getCalls())
	}
}

// ---------------------------------------------------------------------------
// TestBuild_Failures - Fatal paths leave the previous PDF in place
// ---------------------------------------------------------------------------

func TestBuild_Failures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		mutate     func(files map[string]string)
		renderErr  error
		wantCode   int
		wantStderr string
	}{
		{
			name: "zero cards",
			mutate: func(files map[string]string) {
				files["_data/cds.yml"] = "cards: []\n"
			},
			wantCode:   ExitIO,
			wantStderr: "PDF would be a ghost",
		},
		{
			name: "missing data file",
			mutate: func(files map[string]string) {
				delete(files, "_data/cds.yml")
			},
			wantCode:   ExitIO,
			wantStderr: "_data/cds.yml",
		},
		{
			name: "missing hero image",
			mutate: func(files map[string]string) {
				delete(files, "assets/images/cds/c.svg")
			},
			wantCode:   ExitIO,
			wantStderr: "for card c",
		},
		{
			name:       "browser unavailable",
			renderErr:  sitekit.ErrBrowserConnect,
			wantCode:   ExitBrowser,
			wantStderr: "hint:",
		},
		{
			name: "invalid config",
			mutate: func(files map[string]string) {
				files["sitekit.yaml"] = "root: .\npdf:\n  pageSize: tabloid\n"
			},
			wantCode:   ExitUsage,
			wantStderr: "invalid config",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			files := healthySite()
			if tt.mutate != nil {
				tt.mutate(files)
			}
			dir := setupTestDir(t, files)
			env, _, stderr := testEnv(dir, &fakeRenderer{err: tt.renderErr})

			code := runMain([]string{"sitekit", "build"}, env)
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d\nstderr: %s", code, tt.wantCode, stderr.String())
			}
			if !strings.Contains(stderr.String(), tt.wantStderr) {
				t.Errorf("stderr = %q, want containing %q", stderr.String(), tt.wantStderr)
			}
			if got := readFile(t, dir, pdfRel); got != "%PDF-1.4 previous" {
				t.Errorf("previous PDF was overwritten: %q", got)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestBuild_HTMLOutput - --html and --html-only
// ---------------------------------------------------------------------------

func TestBuild_HTMLOutput(t *testing.T) {
	t.Parallel()

	htmlRel := "assets/docs/Severns_CriticalDigitalStudies.html"

	t.Run("html-only skips the renderer", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, healthySite())
		renderer := &fakeRenderer{}
		env, stdout, stderr := testEnv(dir, renderer)

		if code := runMain([]string{"sitekit", "build", "--html-only"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
		}
		if renderer.getCalls() != 0 {
			t.Errorf("renderer calls = %d, want 0", renderer.getCalls())
		}
		html := readFile(t, dir, htmlRel)
		if strings.Count(html, `class="card"`) != 4 {
			t.Errorf("HTML should hold 4 card sections")
		}
		if !strings.Contains(html, "Updated 2024-05-01") {
			t.Errorf("HTML should carry the cover stamp")
		}
		if got := readFile(t, dir, pdfRel); got != "%PDF-1.4 previous" {
			t.Errorf("PDF should be untouched, got %q", got)
		}
		if !strings.Contains(stdout.String(), "Wrote sampler HTML to "+htmlRel) {
			t.Errorf("stdout = %q", stdout.String())
		}
	})

	t.Run("html alongside pdf", func(t *testing.T) {
		t.Parallel()

		dir := setupTestDir(t, healthySite())
		env, _, stderr := testEnv(dir, &fakeRenderer{})

		if code := runMain([]string{"sitekit", "build", "--html", "-q"}, env); code != ExitSuccess {
			t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
		}
		if _, err := os.Stat(filepath.Join(dir, filepath.FromSlash(htmlRel))); err != nil {
			t.Errorf("HTML not written: %v", err)
		}
		if got := readFile(t, dir, pdfRel); got != "%PDF-1.4 fake" {
			t.Errorf("PDF = %q, want the fake render", got)
		}
	})
}

// ---------------------------------------------------------------------------
// TestBuild_OutputFlag - --output and --root resolve under the root
// ---------------------------------------------------------------------------

func TestBuild_OutputFlag(t *testing.T) {
	t.Parallel()

	dir := setupTestDir(t, healthySite())
	env, stdout, stderr := testEnv(t.TempDir(), &fakeRenderer{})

	args := []string{"sitekit", "build", "--config", filepath.Join(dir, "sitekit.yaml"), "--root", dir, "-o", "out/sampler.pdf"}
	if code := runMain(args, env); code != ExitSuccess {
		t.Fatalf("exit code = %d\nstderr: %s", code, stderr.String())
	}
	if got := readFile(t, dir, "out/sampler.pdf"); got != "%PDF-1.4 fake" {
		t.Errorf("PDF = %q", got)
	}
	if !strings.Contains(stdout.String(), "Wrote sampler PDF to out/sampler.pdf") {
		t.Errorf("stdout = %q", stdout.String())
	}
}

// ---------------------------------------------------------------------------
// TestMergeBuildFlags - CLI flags override config
// ---------------------------------------------------------------------------

func TestMergeBuildFlags(t *testing.T) {
	t.Parallel()

	t.Run("set flags win", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &buildFlags{
			project: projectFlags{root: "/site", data: "cards.yml"},
			render:  renderFlags{pageSize: "A4", timeout: "2m", rasterWidth: 800, siteURL: "https://example.edu"},
			output:  outputFlags{path: "out.pdf"},
		}
		if err := mergeBuildFlags(flags, cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Root != "/site" || cfg.Sampler.Data != "cards.yml" || cfg.PDF.Output != "out.pdf" {
			t.Errorf("project flags not merged: %+v", cfg)
		}
		if cfg.PDF.PageSize != "a4" {
			t.Errorf("PageSize = %q, want a4", cfg.PDF.PageSize)
		}
		if cfg.PDF.Timeout != "2m" || cfg.Images.RasterWidth != 800 || cfg.Site.URL != "https://example.edu" {
			t.Errorf("render flags not merged: %+v", cfg)
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		if err := mergeBuildFlags(&buildFlags{}, cfg); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.PDF.Output != config.DefaultConfig().PDF.Output {
			t.Errorf("Output changed to %q", cfg.PDF.Output)
		}
	})

	t.Run("bad timeout is a usage error", func(t *testing.T) {
		t.Parallel()

		err := mergeBuildFlags(&buildFlags{render: renderFlags{timeout: "soon"}}, config.DefaultConfig())
		if !errors.Is(err, ErrUsage) {
			t.Errorf("error = %v, want ErrUsage", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWithHints - Actionable hints on common failures
// ---------------------------------------------------------------------------

func TestWithHints(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      error
		wantHint bool
	}{
		{name: "browser connect", err: sitekit.ErrBrowserConnect, wantHint: true},
		{name: "deadline", err: context.DeadlineExceeded, wantHint: true},
		{name: "missing image", err: sitekit.ErrImageNotFound, wantHint: true},
		{name: "other", err: errors.New("boom"), wantHint: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := withHints(tt.err)
			if !errors.Is(got, tt.err) {
				t.Errorf("withHints lost the original error: %v", got)
			}
			if has := strings.Contains(got.Error(), "hint:"); has != tt.wantHint {
				t.Errorf("hint present = %v, want %v (%q)", has, tt.wantHint, got)
			}
		})
	}
}

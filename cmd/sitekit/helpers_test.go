package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	sitekit "github.com/alnah/go-sitekit"
	"github.com/alnah/go-sitekit/internal/config"
)

// ---------------------------------------------------------------------------
// Test Infrastructure - Fake renderer and site fixtures
// ---------------------------------------------------------------------------

// fakeRenderer implements sitekit.Renderer without a browser.
type fakeRenderer struct {
	mu     sync.Mutex
	result []byte
	err    error
	calls  int
}

func (f *fakeRenderer) ToPDF(_ context.Context, _ string, _ sitekit.PageSettings) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.result != nil {
		return f.result, nil
	}
	return []byte("%PDF-1.4 fake"), nil
}

func (f *fakeRenderer) Close() error { return nil }

func (f *fakeRenderer) getCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

const samplerPage = `---
layout: page
title: Critical Digital Studies Sampler
noindex: true
sitemap: false
updated: "2024-05-01"
---
{% for card in site.data.cds.cards %}
  {% include cds-card.html card=card %}
{% endfor %}
`

const cardTemplate = `  - id: %s
    title: Card %s
    img_src: /assets/images/cds/%s.svg
    img_alt: Placeholder for %s
    methods: [Observe]
    outcomes: [Zine]
    teach:
      goal: Notice
      lab60: Walk
      assess: Reflect
`

const testSVG = `<svg xmlns="http://www.w3.org/2000/svg" width="200" height="100" viewBox="0 0 200 100"><rect width="200" height="100" fill="#369"/></svg>`

func cardsYAML(ids ...string) string {
	var b strings.Builder
	b.WriteString("cards:\n")
	for _, id := range ids {
		b.WriteString(strings.ReplaceAll(cardTemplate, "%s", id))
	}
	return b.String()
}

// healthySite has every file build and lint look for, plus a config file
// so discovery never reaches the user config directory.
func healthySite() map[string]string {
	files := map[string]string{
		"sitekit.yaml":         "root: .\n",
		"_data/cds.yml":        cardsYAML("a", "b", "c", "d"),
		"_data/navigation.yml": "main:\n  - title: Projects\n    url: /projects/\n",
	}
	files["critical-digital-studies-sampler/index.md"] = samplerPage
	files["assets/docs/Severns_CriticalDigitalStudies.pdf"] = "%PDF-1.4 previous"
	for _, id := range []string{"a", "b", "c", "d"} {
		files["assets/images/cds/"+id+".svg"] = testSVG
	}
	for _, a := range config.DefaultConfig().Lint.PlaceholderAssets {
		files[a] = testSVG
	}
	return files
}

// setupTestDir creates a temp directory with the given file structure.
func setupTestDir(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for rel, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatalf("failed to create dir for %s: %v", rel, err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write %s: %v", rel, err)
		}
	}
	return dir
}

// testEnv returns an environment rooted at dir with captured output.
func testEnv(dir string, r sitekit.Renderer) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	env := &Environment{
		Now:      func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) },
		Stdout:   &stdout,
		Stderr:   &stderr,
		Dir:      dir,
		Renderer: r,
	}
	return env, &stdout, &stderr
}

func readFile(t *testing.T, dir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	if err != nil {
		t.Fatalf("reading %s: %v", rel, err)
	}
	return string(data)
}

package lint

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-sitekit/internal/config"
)

const goodPage = `---
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

const goodCard = `  - id: %s
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

func cardsYAML(ids ...string) string {
	var b strings.Builder
	b.WriteString("cards:\n")
	for _, id := range ids {
		b.WriteString(strings.ReplaceAll(goodCard, "%s", id))
	}
	return b.String()
}

// newSite writes files under a temp root and returns the default config
// pointed at it.
func newSite(t *testing.T, files map[string]string) *config.Config {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatal(err)
		}
	}
	cfg := config.DefaultConfig()
	cfg.Root = root
	return cfg
}

// healthySite has every file the sampler rules look for.
func healthySite() map[string]string {
	files := map[string]string{
		"_data/cds.yml":        cardsYAML("a", "b", "c", "d"),
		"_data/navigation.yml": "main:\n  - title: Projects\n    url: /projects/\n",
	}
	files["critical-digital-studies-sampler/index.md"] = goodPage
	files["assets/docs/Severns_CriticalDigitalStudies.pdf"] = "%PDF-1.4"
	for _, a := range config.DefaultConfig().Lint.PlaceholderAssets {
		files[a] = "<svg/>"
	}
	return files
}

func runRule(t *testing.T, cfg *config.Config, name string) *Report {
	t.Helper()

	rules, err := Select([]string{name})
	if err != nil {
		t.Fatal(err)
	}
	rep, err := Run(cfg, rules)
	if err != nil {
		t.Fatalf("Run(%s): %v", name, err)
	}
	return rep
}

func messages(issues []Issue) []string {
	out := make([]string, len(issues))
	for i, is := range issues {
		out[i] = is.String()
	}
	return out
}

func hasMessage(issues []Issue, substr string) bool {
	for _, is := range issues {
		if strings.Contains(is.String(), substr) {
			return true
		}
	}
	return false
}

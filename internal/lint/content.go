package lint

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/frontmatter"
	"github.com/alnah/go-sitekit/internal/pipeline"
)

// page is a content record split into front matter and body.
type page struct {
	path   string
	doc    frontmatter.Document
	fields map[string]any
	err    error // malformed front matter
}

// collectionPages reads every Markdown file directly inside each configured
// collection. Missing collections are skipped.
func (c *checker) collectionPages(visit func(p page, requireYear bool)) error {
	for _, col := range c.cfg.Lint.Collections {
		dir := c.cfg.Path(col.Dir)
		if !fileutil.DirExists(dir) {
			continue
		}
		entries, err := os.ReadDir(dir)
		if err != nil {
			return fmt.Errorf("reading %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
				continue
			}
			path := filepath.Join(dir, e.Name())
			content, err := os.ReadFile(path) // #nosec G304 -- file under the site root
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			p := page{path: path, doc: frontmatter.Split(content)}
			if p.doc.Present {
				p.fields, p.err = p.doc.Fields()
			}
			if p.fields == nil {
				p.fields = map[string]any{}
			}
			visit(p, col.RequireYear)
		}
	}
	return nil
}

func checkContent(c *checker) error {
	return c.collectionPages(func(p page, requireYear bool) {
		subject := c.rel(p.path)
		if p.err != nil {
			c.errorf(subject, "front matter is not valid YAML")
			return
		}
		data := p.fields

		required := []string{"title", "summary", "featured"}
		if requireYear {
			required = append(required, "year")
		}
		var missing []string
		for _, key := range required {
			if _, ok := data[key]; !ok {
				missing = append(missing, key)
			}
		}
		if len(missing) > 0 {
			c.errorf(subject, "missing %s", strings.Join(missing, ", "))
		}

		if _, ok := data["hero"]; ok {
			if isBlank(data["hero_alt"]) {
				c.errorf(subject, "hero_alt missing")
			}
		} else if gallery, ok := data["gallery"].([]any); ok && len(gallery) > 0 {
			if !anyAlt(gallery) {
				c.warnf(subject, "gallery images missing alt text")
			}
		} else {
			c.errorf(subject, "need hero or gallery with alt text")
		}

		if isBlank(data["summary"]) {
			c.warnf(subject, "summary empty")
		}
		if _, ok := data["featured"].(bool); !ok {
			c.warnf(subject, "featured should be true/false")
		}
	})
}

func anyAlt(gallery []any) bool {
	for _, item := range gallery {
		if m, ok := item.(map[string]any); ok && !isBlank(m["alt"]) {
			return true
		}
	}
	return false
}

// isBlank mirrors YAML truthiness for the values front matter holds.
func isBlank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(t) == ""
	case bool:
		return !t
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func checkLinks(c *checker) error {
	return c.collectionPages(func(p page, _ bool) {
		for _, link := range pipeline.ExtractLinks([]byte(p.doc.Body)) {
			ref, ok := localReference(link.Destination)
			if !ok {
				continue
			}
			subject := c.rel(p.path)
			if link.Line > 0 {
				subject = fmt.Sprintf("%s:%d", subject, link.Line+bodyOffset(p.doc))
			}
			target, err := fileutil.ResolveUnder(c.cfg.Root, ref)
			if err != nil {
				c.warnf(subject, "link leaves the site -> %s", link.Destination)
				continue
			}
			if _, err := os.Stat(target); err != nil {
				c.warnf(subject, "link not found -> %s", link.Destination)
			}
		}
	})
}

// localReference returns the path part of a link that should exist in the
// site checkout. Absolute URLs, other schemes, anchors, and Liquid
// expressions are not checked.
func localReference(dest string) (string, bool) {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "//") {
		return "", false
	}
	if strings.Contains(dest, "{{") || strings.Contains(dest, "{%") {
		return "", false
	}
	u, err := url.Parse(dest)
	if err != nil || u.Scheme != "" {
		return "", false
	}
	ref, err := url.PathUnescape(u.Path)
	if err != nil {
		ref = u.Path
	}
	if strings.Trim(ref, "/") == "" {
		return "", false
	}
	return ref, true
}

// bodyOffset is the number of lines before the body.
func bodyOffset(doc frontmatter.Document) int {
	if !doc.Present {
		return 0
	}
	// Opening and closing delimiters plus the block itself.
	return strings.Count(doc.Raw, "\n") + 2
}

var docRef = regexp.MustCompile(`/assets/docs/([^"\)\s]+)`)

func checkDocs(c *checker) error {
	if c.cfg.Lint.About == "" {
		return nil
	}
	about := c.cfg.Path(c.cfg.Lint.About)
	content, err := os.ReadFile(about) // #nosec G304 -- file under the site root
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", about, err)
	}

	seen := make(map[string]bool)
	for _, m := range docRef.FindAllStringSubmatch(string(content), -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		if !fileutil.FileExists(c.cfg.Path(filepath.Join("assets", "docs", name))) {
			c.warnf(c.rel(about), "missing document assets/docs/%s", name)
		}
	}
	return nil
}

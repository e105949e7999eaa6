package lint

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/alnah/go-sitekit/internal/fileutil"
	"github.com/alnah/go-sitekit/internal/frontmatter"
)

func checkHidden(c *checker) error {
	path := c.cfg.Path(c.cfg.Sampler.Page)
	content, err := os.ReadFile(path) // #nosec G304 -- file under the site root
	if errors.Is(err, os.ErrNotExist) {
		c.errorf("", "Missing page: %s", c.rel(path))
		return errStop
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	subject := c.rel(path)
	doc := frontmatter.Split(content)
	if !doc.Present || !doc.Closed {
		c.errorf(subject, "No YAML front matter.")
	} else {
		if !doc.HasLine("noindex", "true") {
			c.errorf(subject, "Front matter must include: noindex: true")
		}
		if !doc.HasLine("sitemap", "false") {
			c.errorf(subject, "Front matter must include: sitemap: false")
		}
		if c.cfg.Lint.Hidden.RequireUpdated && !doc.HasKey("updated") {
			c.errorf(subject, "Front matter missing: updated (YYYY-MM-DD)")
		}
	}

	text := string(content)
	for _, snippet := range c.cfg.Lint.Hidden.RequiredSnippets {
		if !strings.Contains(text, snippet) {
			c.errorf(subject, "page should contain %q", snippet)
		}
	}
	return nil
}

// checkNav matches the route as plain text so a link is caught whatever
// shape the navigation data takes.
func checkNav(c *checker) error {
	path := c.cfg.Path(c.cfg.Lint.Navigation)
	content, err := os.ReadFile(path) // #nosec G304 -- file under the site root
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if strings.Contains(string(content), c.cfg.Lint.Hidden.Route) {
		c.errorf("", "Hidden page is referenced in %s; remove the link.", c.rel(path))
	}
	return nil
}

func checkAssets(c *checker) error {
	for _, asset := range c.cfg.Lint.PlaceholderAssets {
		if !fileutil.FileExists(c.cfg.Path(asset)) {
			c.errorf("", "Missing asset: %s", asset)
		}
	}

	for _, name := range c.cfg.PDFNames() {
		if fileutil.FileExists(c.cfg.Path(name)) {
			return nil
		}
	}
	c.errorf("", "Missing asset: %s", c.cfg.PDF.Output)
	return nil
}

package pipeline

import (
	"net/url"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// LinkOptions controls RewriteLinks.
type LinkOptions struct {
	// SiteURL is the published site ("https://example.edu"). Site-root and
	// relative links become absolute under it so they work from the PDF.
	SiteURL string
	// RootDir is the site checkout. Relative image sources not otherwise
	// rewritten become file:// URLs under it for the browser to load.
	RootDir string
}

// RewriteLinks rewrites a[href] and img[src] so they resolve outside the
// site: links point at the published site, local images at the checkout.
// With both options empty the HTML is returned unchanged.
//
// Left alone:
//   - absolute URLs and data:, file:, mailto: references
//   - anchors
//   - protocol-relative URLs
//   - references that climb out of RootDir
func RewriteLinks(htmlContent string, opts LinkOptions) (string, error) {
	if opts.SiteURL == "" && opts.RootDir == "" {
		return htmlContent, nil
	}

	var base *url.URL
	if opts.SiteURL != "" {
		u, err := url.Parse(strings.TrimRight(opts.SiteURL, "/") + "/")
		if err != nil {
			return "", err
		}
		base = u
	}

	root := ""
	if opts.RootDir != "" {
		abs, err := filepath.Abs(opts.RootDir)
		if err != nil {
			return "", err
		}
		root = abs
	}

	doc, isFragment, err := parseHTML(htmlContent)
	if err != nil {
		return "", err
	}

	rw := &rewriter{base: base, root: root}
	rw.walk(doc)

	return renderHTML(doc, isFragment)
}

type rewriter struct {
	base *url.URL
	root string
}

func (r *rewriter) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch n.DataAtom {
		case atom.A:
			r.rewriteAttr(n, "href", false)
		case atom.Img:
			r.rewriteAttr(n, "src", true)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		r.walk(c)
	}
}

func (r *rewriter) rewriteAttr(n *html.Node, key string, isImage bool) {
	for i, attr := range n.Attr {
		if attr.Key != key || !isSiteReference(attr.Val) {
			continue
		}
		if v, ok := r.resolve(attr.Val, isImage); ok {
			n.Attr[i].Val = v
		}
	}
}

// resolve prefers the local file for images and the published site for
// links, falling back to the other when only one option is configured.
func (r *rewriter) resolve(ref string, isImage bool) (string, bool) {
	if isImage && r.root != "" {
		if v, ok := r.toFileURL(ref); ok {
			return v, true
		}
	}
	if r.base != nil {
		rel, err := url.Parse(strings.TrimLeft(ref, "/"))
		if err != nil {
			return "", false
		}
		return r.base.ResolveReference(rel).String(), true
	}
	if r.root != "" {
		return r.toFileURL(ref)
	}
	return "", false
}

func (r *rewriter) toFileURL(ref string) (string, bool) {
	// Drop query and fragment: they are not part of the file name.
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	abs := filepath.Join(r.root, filepath.FromSlash(strings.TrimLeft(ref, "/")))
	if !isPathUnderDir(abs, r.root) {
		return "", false
	}
	return pathToFileURL(abs), true
}

// isSiteReference reports whether ref points inside the site: a site-root
// path or a relative path.
func isSiteReference(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if u, err := url.Parse(ref); err != nil || u.Scheme != "" {
		return false
	}
	return true
}

// parseHTML parses a full document or a fragment; the bool reports which.
func parseHTML(content string) (*html.Node, bool, error) {
	lower := strings.ToLower(strings.TrimSpace(content))
	if strings.HasPrefix(lower, "<!doctype") || strings.HasPrefix(lower, "<html") {
		doc, err := html.Parse(strings.NewReader(content))
		return doc, false, err
	}

	context := &html.Node{Type: html.ElementNode, DataAtom: atom.Body, Data: "body"}
	nodes, err := html.ParseFragment(strings.NewReader(content), context)
	if err != nil {
		return nil, true, err
	}
	container := &html.Node{Type: html.DocumentNode}
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, true, nil
}

// renderHTML renders fragments child by child so no <html><body> is added.
func renderHTML(doc *html.Node, isFragment bool) (string, error) {
	var buf strings.Builder
	if !isFragment {
		if err := html.Render(&buf, doc); err != nil {
			return "", err
		}
		return buf.String(), nil
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return buf.String(), nil
}

func isPathUnderDir(absPath, dir string) bool {
	cleanPath := filepath.Clean(absPath)
	cleanDir := filepath.Clean(dir)
	if !strings.HasSuffix(cleanDir, string(filepath.Separator)) {
		cleanDir += string(filepath.Separator)
	}
	return strings.HasPrefix(cleanPath+string(filepath.Separator), cleanDir)
}

func pathToFileURL(absPath string) string {
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(absPath)}
	return u.String()
}

// Package pipeline holds the HTML stages of sampler rendering:
//   - inline Markdown for card text via goldmark
//   - Markdown link extraction for the linter
//   - link rewriting on the rendered document via golang.org/x/net/html
//
// Page layout and PDF output live in the root sitekit package, which drives
// headless Chrome. This package only deals with document content.
package pipeline

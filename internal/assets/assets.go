// Package assets provides the stylesheet and page template for the sampler.
// Assets can be loaded from embedded files or a custom directory.
package assets

// DefaultStyleName is the built-in stylesheet.
const DefaultStyleName = "sampler"

// DefaultTemplateName is the built-in page template.
const DefaultTemplateName = "sampler"

var defaultLoader = NewEmbeddedLoader()

// LoadStyle loads a CSS file by name using the embedded loader.
// The name should not include the .css extension or path components.
func LoadStyle(name string) (string, error) {
	return defaultLoader.LoadStyle(name)
}

// LoadTemplate loads an HTML template by name using the embedded loader.
func LoadTemplate(name string) (string, error) {
	return defaultLoader.LoadTemplate(name)
}

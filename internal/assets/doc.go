// Package assets provides the CSS and HTML template used to lay out the
// sampler before it is printed to PDF.
//
// # Loaders
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in sampler.css and sampler.html
//	    ├── FilesystemLoader  - a custom directory on disk
//	    └── AssetResolver     - custom first, embedded as fallback
//
// A custom directory mirrors the embedded layout:
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css
//	└── templates/
//	    └── {name}.html
//
// Overriding only styles/sampler.css keeps the embedded template, and the
// other way round.
//
// # Security
//
// Asset names are limited to lowercase letters, digits, dashes and
// underscores. FilesystemLoader resolves symlinks and refuses paths that
// leave basePath.
package assets

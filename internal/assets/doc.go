// Package assets provides the card stylesheet, the card document template
// and font binaries used to synthesize quote card documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in card)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in card stylesheet and document
// template embedded at compile time. It carries no fonts: font files are
// supplied by the surrounding application.
//
// FilesystemLoader reads custom styles, templates and font files from a
// directory, with path traversal protection and symlink resolution.
//
// # Directory Structure
//
//	{basePath}/
//	├── styles/
//	│   └── {name}.css           # card layout rules
//	├── templates/
//	│   └── {name}.html          # card document template
//	└── {font files}             # read by LoadFont, e.g. Huiwenmincho-improved.woff2
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

// Package assets provides the legal text templates used in generated documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	TextLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in wording)
//	    ├── FilesystemLoader  - loads from a custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// Jurisdictions differ in how an acknowledgment must be worded, so every text
// can be overridden by dropping a file with the same name into a custom
// directory while the remaining texts keep their built-in wording.
//
// # Directory Structure
//
//	{basePath}/
//	└── legal/
//	    ├── disclaimer.tmpl      # Legal disclaimer
//	    ├── notarization.tmpl    # Acknowledgment before a notary
//	    └── instructions.tmpl    # Default key instructions text
//
// Texts are Go text/template sources executed with compose.LegalData.
//
// # Security
//
// Text names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

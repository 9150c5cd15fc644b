// Package assets provides the HTML templates and images used to build
// financial documents.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - built-in templates compiled into the binary
//	    ├── FilesystemLoader  - templates and images from a directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in contrato, garanzia and carta
// templates. It carries no images: logos and signatures are customer
// material and always come from disk.
//
// FilesystemLoader reads deployment assets, with path traversal protection
// and symlink resolution.
//
// AssetResolver is the loader used by the generator. It tries the
// FilesystemLoader first and falls back to EmbeddedLoader when an asset is
// not found, so a deployment can override any template while keeping the
// defaults for the rest. Template aliases (contrato/contratto) are tried
// within a tier before falling through to the next one.
//
// # Directory Structure
//
// Assets live side by side in one flat directory:
//
//	{basePath}/
//	├── contrato.html    # loan contract
//	├── garanzia.html    # guarantee letter
//	├── carta.html       # card agreement
//	├── logo.png         # company logo
//	└── sing_1.png       # signature
//
// # Security
//
// Asset names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets

package letterhead

import "errors"

// Sentinel errors for letterhead operations.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("letterhead template not found")

	// ErrInvalidKey indicates the key is empty or contains path separators
	// or dots.
	ErrInvalidKey = errors.New("invalid letterhead key")

	// ErrIncompleteTemplate indicates a template directory is missing one of
	// its required files.
	ErrIncompleteTemplate = errors.New("letterhead template missing required file")

	// ErrInvalidManifest indicates letterhead.yaml could not be decoded or
	// carries invalid values.
	ErrInvalidManifest = errors.New("invalid letterhead manifest")

	// ErrNoDefault indicates the registry's default key has no template.
	ErrNoDefault = errors.New("default letterhead not registered")

	// ErrInvalidBasePath indicates the configured base path is not a valid directory.
	ErrInvalidBasePath = errors.New("invalid base path")

	// ErrAssetRead indicates an I/O error occurred while reading a template file.
	ErrAssetRead = errors.New("failed to read letterhead file")

	// ErrPathTraversal indicates an attempt to access files outside the base path.
	ErrPathTraversal = errors.New("path traversal detected")
)

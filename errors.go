package epub

import "errors"

// Sentinel errors returned by the epub package.
var (
	// ErrInvalidBook indicates the Book fails a structural invariant
	// (empty title or identifier, no chapters, a dangling image reference
	// while embedding is enabled, or undetectable image data).
	ErrInvalidBook = errors.New("epub: invalid book")

	// ErrMalformedMarkup indicates a chapter body could not be embedded
	// as well-formed XML. The wrapped message names the 1-based chapter
	// position.
	ErrMalformedMarkup = errors.New("epub: malformed chapter markup")

	// ErrArchiveWrite indicates the underlying stream or file write failed
	// during assembly or output.
	ErrArchiveWrite = errors.New("epub: archive write failed")

	// ErrPathCollision indicates two entries resolved to the same archive
	// path. Paths are keyed by sequence position, so this signals an
	// internal bug rather than a recoverable input problem.
	ErrPathCollision = errors.New("epub: archive path collision")
)

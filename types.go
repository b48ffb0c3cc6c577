package epub

import (
	"time"

	"github.com/google/uuid"
)

// Book is the in-memory representation of a publication to be packaged.
// It is treated as immutable for the duration of one build call; the
// package copies everything it needs into the generated archive and holds
// no reference to the Book after a build returns.
type Book struct {
	// Title is the publication title. Required.
	Title string

	// Author is the dc:creator value. May be empty, in which case no
	// creator element is emitted.
	Author string

	// Description is the dc:description value. May be empty.
	Description string

	// Language is a BCP 47 language tag (e.g., "en", "pt-BR").
	// An empty value defaults to "en".
	Language string

	// Identifier is the publication's unique identifier (a URN, UUID,
	// or URI). Required. Use NewIdentifier for a fresh urn:uuid value.
	Identifier string

	// Cover is the optional cover image. When present it is always
	// embedded, independent of Options.EmbedImages, because the package
	// document references it structurally.
	Cover *Image

	// Chapters is the ordered chapter sequence. At least one chapter is
	// required. Order defines the spine and the table of contents; it is
	// the sole source of truth for chapter paths and identifiers.
	Chapters []Chapter
}

// Chapter is one content document in the publication. Chapters are
// identified by their 1-based position in Book.Chapters; titles never
// influence paths or identifiers.
type Chapter struct {
	// Title labels the chapter in the table of contents and the content
	// document head. An empty title falls back to "Chapter N".
	Title string

	// Body is the chapter content as an XHTML fragment (the markup that
	// goes inside <body>). It must be well-formed XML; the package
	// rejects markup it cannot embed rather than attempting repair.
	Body string

	// Images holds the inline image assets referenced by Body. Each
	// image's Ref must equal an <img src="..."> value in Body.
	Images []Image
}

// Image is a binary image asset carried into the archive.
// The package never mutates Data; bytes are copied into the output as-is.
type Image struct {
	// Ref is the reference string as it appears in a chapter body's
	// <img src="...">. Unused for the cover image.
	Ref string

	// MediaType is the MIME type (e.g., "image/jpeg"). When empty, the
	// type is sniffed from Data; JPEG, PNG, GIF, and WebP are recognised.
	MediaType string

	// Data is the raw image payload. Required.
	Data []byte
}

// Options configures a single build call.
type Options struct {
	// EmbedImages controls inline image packaging. When true, inline
	// image bytes are written to the archive and body references are
	// rewritten to the allocated paths. When false, inline references
	// are stripped from chapter bodies and no inline image entries are
	// produced. The cover is embedded either way.
	EmbedImages bool

	// Modified is the publication modification instant, emitted as the
	// dcterms:modified metadata value and stamped on every archive
	// entry. A zero value means time.Now; set it explicitly to make
	// rebuilds byte-identical.
	Modified time.Time
}

// modified returns the effective modification time in UTC, truncated to
// whole seconds to match the dcterms:modified resolution.
func (o Options) modified() time.Time {
	t := o.Modified
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Truncate(time.Second)
}

// NewIdentifier returns a fresh "urn:uuid:" identifier for books whose
// source provides no natural unique identifier.
func NewIdentifier() string {
	return "urn:uuid:" + uuid.NewString()
}

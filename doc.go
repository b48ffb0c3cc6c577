// Package epub assembles EPUB 3 publications from structured book content.
//
// The caller supplies a fully-populated [Book] — metadata, ordered chapters
// with XHTML-fragment bodies, and optionally cover and inline image bytes —
// and the package produces a conforming EPUB container: a ZIP archive whose
// first entry is the uncompressed "mimetype" file, followed by
// META-INF/container.xml, the package (OPF) document, a navigation document,
// one XHTML content document per chapter, and any embedded image binaries.
//
// The package never performs network I/O. Fetching book data, resolving
// chapter markup, downloading image bytes, and any authentication against a
// content source all belong to the caller.
//
// # Building
//
// Use [Build] for an in-memory archive, [BuildFile] to write a file, or
// [BuildTo] to stream into any io.Writer:
//
//	book := epub.Book{
//	    Title:      "My Story",
//	    Author:     "A. Writer",
//	    Identifier: epub.NewIdentifier(),
//	    Chapters: []epub.Chapter{
//	        {Title: "One", Body: "<p>It begins.</p>"},
//	    },
//	}
//	data, err := epub.Build(ctx, book, epub.Options{})
//
// # Images
//
// With Options.EmbedImages enabled, every schemeless <img src="..."> in a
// chapter body must match the Ref of an [Image] attached to that chapter;
// the reference is rewritten to the image's archive path and the bytes are
// packaged. With embedding disabled, inline image references are stripped
// instead. A cover image, when present, is always embedded regardless of the
// policy, since the package document references it structurally.
//
// # Determinism
//
// Building the same Book with the same [Options] twice yields byte-identical
// archives, provided Options.Modified is set; a zero Modified defaults to the
// current time. Chapter and image paths are derived solely from sequence
// position, never from titles or map iteration order.
//
// # Error Handling
//
// Failures surface as one of four sentinel kinds, selectable with errors.Is:
//   - [ErrInvalidBook] – the Book violates a structural invariant
//   - [ErrMalformedMarkup] – a chapter body is not well-formed XML
//   - [ErrArchiveWrite] – the underlying stream or file write failed
//   - [ErrPathCollision] – two entries resolved to the same archive path
//
// A failed build produces no output: [BuildFile] leaves the destination
// absent or untouched, never a partially-written archive.
package epub

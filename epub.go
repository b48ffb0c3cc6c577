package epub

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Build assembles the Book into an EPUB archive and returns it as an
// owned byte buffer.
//
// The Book is read but never retained; after Build returns, the caller
// may mutate or discard it freely.
func Build(ctx context.Context, book Book, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	if err := BuildTo(ctx, book, opts, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildFile assembles the Book into an EPUB archive at the given
// filesystem path. The archive is written to a temporary file in the
// destination directory and renamed into place only after a successful
// flush and sync, so a failed build leaves the destination absent or
// untouched — never a partially-written file with a valid ZIP signature.
func BuildFile(ctx context.Context, book Book, opts Options, path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".epub-*")
	if err != nil {
		return fmt.Errorf("%w: create temp file in %s: %v", ErrArchiveWrite, dir, err)
	}
	tmpPath := tmp.Name()

	bw := bufio.NewWriter(tmp)
	if err := BuildTo(ctx, book, opts, bw); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: flush %s: %v", ErrArchiveWrite, tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("%w: sync %s: %v", ErrArchiveWrite, tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: close %s: %v", ErrArchiveWrite, tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("%w: rename to %s: %v", ErrArchiveWrite, path, err)
	}
	return nil
}

// BuildTo assembles the Book into an EPUB archive streamed into w. Build
// and BuildFile are thin wrappers over this entry point; all assembly
// logic is shared.
//
// The pipeline validates the Book, allocates paths and identifiers,
// generates the XML documents, and writes the container in the order the
// format requires: mimetype first (stored), then container.xml, the
// package document, the navigation document, chapter documents in book
// order, and embedded images. Cancellation of ctx aborts between stages;
// nothing written so far is recalled, so callers needing all-or-nothing
// semantics should use Build or BuildFile.
func BuildTo(ctx context.Context, book Book, opts Options, w io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := book.Validate(); err != nil {
		return err
	}

	lay, err := newLayout(book, opts.EmbedImages)
	if err != nil {
		return err
	}

	docs, err := buildChapterDocs(ctx, book, lay, opts.EmbedImages)
	if err != nil {
		return err
	}

	// Resolved once so the package metadata and every archive entry
	// carry the same instant.
	mod := opts.modified()

	opf, err := buildPackageDoc(book, lay, mod)
	if err != nil {
		return err
	}
	nav := buildNavDoc(book, lay)

	if err := ctx.Err(); err != nil {
		return err
	}

	aw := newArchiveWriter(w, mod)
	if err := aw.writeMimetype(); err != nil {
		return err
	}
	if err := aw.add(containerPath, containerXML()); err != nil {
		return err
	}
	if err := aw.add(archivePath(opfHref), opf); err != nil {
		return err
	}
	if err := aw.add(archivePath(navHref), nav); err != nil {
		return err
	}
	for i, doc := range docs {
		if err := aw.add(archivePath(lay.chapters[i].href), doc); err != nil {
			return err
		}
	}
	for _, a := range lay.assets {
		if err := aw.add(archivePath(a.href), a.data); err != nil {
			return err
		}
	}
	return aw.close()
}

package epub

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// archiveWriter assembles the EPUB container over a zip.Writer. It is
// agnostic to entry count and size and streams each payload straight into
// the underlying writer. Entry paths are checked for duplicates
// defensively; the position-keyed layout makes collisions structurally
// impossible, so a hit indicates an internal bug.
type archiveWriter struct {
	zw       *zip.Writer
	modified time.Time
	seen     map[string]struct{}
}

func newArchiveWriter(w io.Writer, modified time.Time) *archiveWriter {
	return &archiveWriter{
		zw:       zip.NewWriter(w),
		modified: modified,
		seen:     make(map[string]struct{}),
	}
}

// writeMimetype writes the mimetype entry. It must be called before any
// other entry: the EPUB container format requires mimetype to be the
// first member, stored without compression, so readers can check it at a
// fixed offset. The header carries no timestamp, keeping the entry free
// of extra fields.
func (aw *archiveWriter) writeMimetype() error {
	return aw.write(&zip.FileHeader{
		Name:   mimetypePath,
		Method: zip.Store,
	}, []byte(mimetypeContent))
}

// add writes a deflate-compressed entry stamped with the build's
// modification time.
func (aw *archiveWriter) add(name string, data []byte) error {
	return aw.write(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: aw.modified,
	}, data)
}

func (aw *archiveWriter) write(fh *zip.FileHeader, data []byte) error {
	if !isSafeEntryPath(fh.Name) {
		return fmt.Errorf("%w: unsafe entry path %q", ErrPathCollision, fh.Name)
	}
	if _, dup := aw.seen[fh.Name]; dup {
		return fmt.Errorf("%w: %q", ErrPathCollision, fh.Name)
	}
	aw.seen[fh.Name] = struct{}{}

	w, err := aw.zw.CreateHeader(fh)
	if err != nil {
		return fmt.Errorf("%w: create entry %q: %v", ErrArchiveWrite, fh.Name, err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("%w: write entry %q: %v", ErrArchiveWrite, fh.Name, err)
	}
	return nil
}

// close flushes the central directory. The archive is not valid until
// close returns nil.
func (aw *archiveWriter) close() error {
	if err := aw.zw.Close(); err != nil {
		return fmt.Errorf("%w: close archive: %v", ErrArchiveWrite, err)
	}
	return nil
}

// isSafeEntryPath checks that an archive-internal path is relative,
// forward-slash separated, and cannot escape the archive root.
func isSafeEntryPath(p string) bool {
	if p == "" || strings.HasPrefix(p, "/") || strings.Contains(p, "\\") {
		return false
	}
	cleaned := path.Clean(p)
	if cleaned != p {
		return false
	}
	if cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return false
	}
	return true
}

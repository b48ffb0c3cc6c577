package epub

import (
	"archive/zip"
	"bytes"
	"context"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"testing"
	"time"
)

// testModified is the pinned modification instant used wherever a test
// needs reproducible output.
var testModified = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

// testBook returns a minimal valid two-chapter book.
func testBook() Book {
	return Book{
		Title:      "Test Book",
		Author:     "Test Author",
		Language:   "en",
		Identifier: "urn:test:book",
		Chapters: []Chapter{
			{Title: "One", Body: "<p>first</p>"},
			{Title: "Two", Body: "<p>second</p>"},
		},
	}
}

// pngBytes returns a valid 1x1 PNG payload.
func pngBytes(t *testing.T) []byte {
	t.Helper()
	return encodeImage(t, func(w io.Writer, img image.Image) error {
		return png.Encode(w, img)
	})
}

// jpegBytes returns a valid 1x1 JPEG payload.
func jpegBytes(t *testing.T) []byte {
	t.Helper()
	return encodeImage(t, func(w io.Writer, img image.Image) error {
		return jpeg.Encode(w, img, nil)
	})
}

// gifBytes returns a valid 1x1 GIF payload.
func gifBytes(t *testing.T) []byte {
	t.Helper()
	return encodeImage(t, func(w io.Writer, img image.Image) error {
		return gif.Encode(w, img, nil)
	})
}

func encodeImage(t *testing.T, encode func(io.Writer, image.Image) error) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := encode(&buf, image.NewRGBA(image.Rect(0, 0, 1, 1))); err != nil {
		t.Fatalf("encodeImage: %v", err)
	}
	return buf.Bytes()
}

// buildArchive builds the book and opens the result as a zip.Reader.
// It calls t.Fatal on any error.
func buildArchive(t *testing.T, book Book, opts Options) (*zip.Reader, []byte) {
	t.Helper()
	if opts.Modified.IsZero() {
		opts.Modified = testModified
	}
	data, err := Build(context.Background(), book, opts)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open built archive: %v", err)
	}
	return zr, data
}

// readEntry reads the named entry from a built archive.
func readEntry(t *testing.T, zr *zip.Reader, name string) []byte {
	t.Helper()
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("readEntry: open %s: %v", name, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			t.Fatalf("readEntry: read %s: %v", name, err)
		}
		return data
	}
	t.Fatalf("readEntry: entry %s not found", name)
	return nil
}

// entryNames returns the archive entry names in archive order.
func entryNames(zr *zip.Reader) []string {
	names := make([]string, len(zr.File))
	for i, f := range zr.File {
		names[i] = f.Name
	}
	return names
}

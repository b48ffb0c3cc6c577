package epub

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

// chapterShell is the minimal valid XHTML document wrapped around each
// chapter body: language, head title, body markup.
const chapterShell = `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xml:lang="%s" lang="%s">
<head>
  <title>%s</title>
</head>
<body>
%s
</body>
</html>
`

// buildChapterDocs generates the content document for every chapter.
// Generation is independent per chapter and runs on a bounded errgroup;
// results land in a slice slot keyed by chapter position, so completion
// order can never leak into spine or manifest order.
func buildChapterDocs(ctx context.Context, book Book, lay *layout, embedImages bool) ([][]byte, error) {
	docs := make([][]byte, len(book.Chapters))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i := range book.Chapters {
		i := i
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			doc, err := buildChapterDoc(book, i, lay, embedImages)
			if err != nil {
				return err
			}
			docs[i] = doc
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return docs, nil
}

// buildChapterDoc generates the content document for the chapter at
// 0-based index i. The body must pass the well-formedness check before
// image references are materialised; a body that cannot be embedded
// aborts the build with ErrMalformedMarkup naming the chapter position.
func buildChapterDoc(book Book, i int, lay *layout, embedImages bool) ([]byte, error) {
	ch := book.Chapters[i]

	if err := checkWellFormed(ch.Body); err != nil {
		return nil, fmt.Errorf("%w: chapter %d: %v", ErrMalformedMarkup, i+1, err)
	}

	body, err := rewriteChapterBody(ch.Body, embedImages, lay.refs[i])
	if err != nil {
		return nil, fmt.Errorf("%w: chapter %d: %v", ErrInvalidBook, i+1, err)
	}

	lang := normalizeLanguage(book.Language)
	title := html.EscapeString(chapterLabel(i, ch.Title))

	var buf bytes.Buffer
	fmt.Fprintf(&buf, chapterShell, lang, lang, title, body)
	return buf.Bytes(), nil
}

// chapterLabel returns the chapter's display label: its title, or the
// ordinal fallback "Chapter N" when the title is empty.
func chapterLabel(i int, title string) string {
	if t := strings.TrimSpace(title); t != "" {
		return t
	}
	return fmt.Sprintf("Chapter %d", i+1)
}

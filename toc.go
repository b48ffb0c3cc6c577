package epub

import (
	"bytes"
	"fmt"

	"golang.org/x/net/html"
)

// buildNavDoc generates the EPUB 3 navigation document: an ordered list
// with one link per chapter, in book order, labeled by the chapter title
// or its "Chapter N" fallback. Hrefs come from the layout, so they are
// identical to the manifest hrefs and the archive entry paths.
func buildNavDoc(book Book, lay *layout) []byte {
	lang := normalizeLanguage(book.Language)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<?xml version="1.0" encoding="utf-8"?>
<!DOCTYPE html>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops" xml:lang="%s" lang="%s">
<head>
  <title>%s</title>
</head>
<body>
  <nav epub:type="toc" id="toc">
    <h1>Table of Contents</h1>
    <ol>
`, lang, lang, html.EscapeString(book.Title))

	for i, ch := range book.Chapters {
		fmt.Fprintf(&buf, "      <li><a href=\"%s\">%s</a></li>\n",
			lay.chapters[i].href, html.EscapeString(chapterLabel(i, ch.Title)))
	}

	buf.WriteString(`    </ol>
  </nav>
</body>
</html>
`)
	return buf.Bytes()
}

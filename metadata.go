package epub

import (
	"strings"
	"time"
)

// defaultLanguage is emitted when the Book carries no language tag.
const defaultLanguage = "en"

// normalizeLanguage returns the trimmed BCP 47 tag, defaulting to "en".
func normalizeLanguage(lang string) string {
	if t := strings.TrimSpace(lang); t != "" {
		return t
	}
	return defaultLanguage
}

// formatModified renders a timestamp in the form dcterms:modified
// requires: UTC, second resolution, trailing Z.
func formatModified(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}

// buildOPFMetadata assembles the package document's metadata block:
// Dublin Core identifier/title/creator/language/description plus the
// required dcterms:modified meta. When a cover is present, the EPUB 2
// compatibility meta name="cover" is included so older readers locate it.
func buildOPFMetadata(book Book, hasCover bool, modified time.Time) opfMetadata {
	md := opfMetadata{
		XmlnsDC: "http://purl.org/dc/elements/1.1/",
		Identifier: opfIdentifier{
			ID:    uniqueIdentifierID,
			Value: book.Identifier,
		},
		Title:       book.Title,
		Language:    normalizeLanguage(book.Language),
		Creator:     strings.TrimSpace(book.Author),
		Description: strings.TrimSpace(book.Description),
		Metas: []opfMeta{
			{Property: "dcterms:modified", Value: formatModified(modified)},
		},
	}

	if hasCover {
		md.Metas = append(md.Metas, opfMeta{Name: "cover", Content: coverImageID})
	}

	return md
}

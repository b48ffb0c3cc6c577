package epub

import (
	"encoding/xml"
	"fmt"
	"time"
)

const (
	// epubVersion is the only EPUB version this package produces.
	epubVersion = "3.0"

	// uniqueIdentifierID is the xml id linking the package element's
	// unique-identifier attribute to the dc:identifier element.
	uniqueIdentifierID = "pub-id"

	opfMediaType = "application/oebps-package+xml"
)

// opfPackage is the root <package> element of the package document.
type opfPackage struct {
	XMLName          xml.Name    `xml:"package"`
	Xmlns            string      `xml:"xmlns,attr"`
	Version          string      `xml:"version,attr"`
	UniqueIdentifier string      `xml:"unique-identifier,attr"`
	Metadata         opfMetadata `xml:"metadata"`
	Manifest         opfManifest `xml:"manifest"`
	Spine            opfSpine    `xml:"spine"`
}

// opfMetadata holds the Dublin Core metadata block.
type opfMetadata struct {
	XmlnsDC     string        `xml:"xmlns:dc,attr"`
	Identifier  opfIdentifier `xml:"dc:identifier"`
	Title       string        `xml:"dc:title"`
	Language    string        `xml:"dc:language"`
	Creator     string        `xml:"dc:creator,omitempty"`
	Description string        `xml:"dc:description,omitempty"`
	Metas       []opfMeta     `xml:"meta"`
}

// opfIdentifier is the dc:identifier element carrying the publication's
// unique identifier.
type opfIdentifier struct {
	ID    string `xml:"id,attr"`
	Value string `xml:",chardata"`
}

// opfMeta is a <meta> element: either an EPUB 3 property/value pair or an
// EPUB 2 name/content pair.
type opfMeta struct {
	Property string `xml:"property,attr,omitempty"`
	Name     string `xml:"name,attr,omitempty"`
	Content  string `xml:"content,attr,omitempty"`
	Value    string `xml:",chardata"`
}

// opfManifest wraps the <manifest> element.
type opfManifest struct {
	Items []opfManifestItem `xml:"item"`
}

// opfManifestItem is a single <item> in the manifest.
type opfManifestItem struct {
	ID         string `xml:"id,attr"`
	Href       string `xml:"href,attr"`
	MediaType  string `xml:"media-type,attr"`
	Properties string `xml:"properties,attr,omitempty"`
}

// opfSpine wraps the <spine> element.
type opfSpine struct {
	ItemRefs []opfSpineItemRef `xml:"itemref"`
}

// opfSpineItemRef is a single <itemref> in the spine.
type opfSpineItemRef struct {
	IDRef string `xml:"idref,attr"`
}

// buildPackageDoc generates the package (OPF) document. The manifest lists
// the navigation document, every chapter document, and every embedded
// image with the ids, hrefs, and media types allocated by the layout; the
// spine lists chapter ids in book order. Because both the manifest and
// the archive assembler consume the same layout, every manifest href has
// a matching archive entry by construction.
func buildPackageDoc(book Book, lay *layout, modified time.Time) ([]byte, error) {
	items := make([]opfManifestItem, 0, 1+len(lay.chapters)+len(lay.assets))
	items = append(items, opfManifestItem{
		ID:         "nav",
		Href:       navHref,
		MediaType:  xhtmlMediaType,
		Properties: "nav",
	})
	for _, ch := range lay.chapters {
		items = append(items, opfManifestItem{
			ID:        ch.id,
			Href:      ch.href,
			MediaType: ch.mediaType,
		})
	}
	for _, a := range lay.assets {
		items = append(items, opfManifestItem{
			ID:         a.id,
			Href:       a.href,
			MediaType:  a.mediaType,
			Properties: a.properties,
		})
	}

	refs := make([]opfSpineItemRef, len(lay.chapters))
	for i, ch := range lay.chapters {
		refs[i] = opfSpineItemRef{IDRef: ch.id}
	}

	pkg := opfPackage{
		Xmlns:            "http://www.idpf.org/2007/opf",
		Version:          epubVersion,
		UniqueIdentifier: uniqueIdentifierID,
		Metadata:         buildOPFMetadata(book, lay.hasCover(), modified),
		Manifest:         opfManifest{Items: items},
		Spine:            opfSpine{ItemRefs: refs},
	}

	out, err := xml.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("epub: marshal package document: %w", err)
	}
	return append([]byte(xml.Header), out...), nil
}

package epub

import "fmt"

// Archive geometry. Content files live under a single package root; the
// container.xml rootfile points at the package document inside it.
const (
	contentRoot    = "OEBPS"
	opfHref        = "content.opf"
	navHref        = "nav.xhtml"
	coverImageID   = "cover-image"
	xhtmlMediaType = "application/xhtml+xml"
)

// resource is one allocated archive member: its manifest id, its href
// relative to the package document, the media type recorded in the
// manifest, and optional manifest properties.
type resource struct {
	id         string
	href       string
	mediaType  string
	properties string
}

// asset pairs an allocated image resource with its payload bytes.
type asset struct {
	resource
	data []byte
}

// layout is the single path authority for one build call. Every path and
// identifier that appears in the package document, the navigation
// document, a chapter body, or the archive itself is allocated here, so
// builders and the assembler cannot drift apart.
//
// Allocation is keyed purely by sequence position — chapter N maps to
// text/chapterNNN.xhtml, the Nth inline image in book order maps to
// images/imgNNN.<ext> — which makes the mapping deterministic and rules
// out path collisions structurally. The refs maps are lookup-only; no map
// is ever iterated when producing output.
type layout struct {
	chapters []resource // index i corresponds to Book.Chapters[i]
	assets   []asset    // cover first (when present), then inline images in book order
	refs     []map[string]string // per chapter: body reference → document-relative href
}

// newLayout allocates paths and identifiers for every member of the
// archive. Inline images are only allocated when embedding is enabled.
// Image media types are resolved here (sniffed from data when the caller
// left MediaType empty); unresolvable image data is an ErrInvalidBook.
func newLayout(book Book, embedImages bool) (*layout, error) {
	lay := &layout{
		chapters: make([]resource, len(book.Chapters)),
		refs:     make([]map[string]string, len(book.Chapters)),
	}

	for i := range book.Chapters {
		lay.chapters[i] = resource{
			id:        fmt.Sprintf("chapter%03d", i+1),
			href:      fmt.Sprintf("text/chapter%03d.xhtml", i+1),
			mediaType: xhtmlMediaType,
		}
	}

	if book.Cover != nil {
		mt, ext, err := resolveImageType(*book.Cover)
		if err != nil {
			return nil, fmt.Errorf("%w: cover image: %v", ErrInvalidBook, err)
		}
		lay.assets = append(lay.assets, asset{
			resource: resource{
				id:         coverImageID,
				href:       "images/cover." + ext,
				mediaType:  mt,
				properties: coverImageID,
			},
			data: book.Cover.Data,
		})
	}

	if !embedImages {
		return lay, nil
	}

	n := 0
	for i, ch := range book.Chapters {
		if len(ch.Images) == 0 {
			continue
		}
		refs := make(map[string]string, len(ch.Images))
		for _, img := range ch.Images {
			n++
			mt, ext, err := resolveImageType(img)
			if err != nil {
				return nil, fmt.Errorf("%w: chapter %d, image %q: %v", ErrInvalidBook, i+1, img.Ref, err)
			}
			href := fmt.Sprintf("images/img%03d.%s", n, ext)
			lay.assets = append(lay.assets, asset{
				resource: resource{
					id:        fmt.Sprintf("img%03d", n),
					href:      href,
					mediaType: mt,
				},
				data: img.Data,
			})
			// Chapter documents live under text/, one level below the
			// package root the href is relative to.
			refs[img.Ref] = "../" + href
		}
		lay.refs[i] = refs
	}

	return lay, nil
}

// hasCover reports whether a cover asset was allocated.
func (lay *layout) hasCover() bool {
	return len(lay.assets) > 0 && lay.assets[0].id == coverImageID
}

// archivePath converts a package-root-relative href into the ZIP-internal
// entry path. This is the only place the two forms meet.
func archivePath(href string) string {
	return contentRoot + "/" + href
}

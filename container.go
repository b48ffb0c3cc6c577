package epub

import "fmt"

const (
	// mimetypePath must be the first archive entry, stored uncompressed.
	mimetypePath = "mimetype"

	// mimetypeContent is the exact payload of the mimetype entry — no
	// newline, no trailing bytes.
	mimetypeContent = "application/epub+zip"

	// containerPath is the well-known location of container.xml.
	containerPath = "META-INF/container.xml"
)

// containerXML generates META-INF/container.xml, whose single rootfile
// points readers at the package document.
func containerXML() []byte {
	return fmt.Appendf(nil, `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="%s" media-type="%s"/>
  </rootfiles>
</container>
`, archivePath(opfHref), opfMediaType)
}

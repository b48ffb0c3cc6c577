package epub

import (
	"bytes"
	"fmt"
	"image"
	"strings"

	// Registered for image.DecodeConfig sniffing of cover and inline
	// image payloads whose media type the caller did not supply.
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// mediaTypeExtensions maps supported image media types to the file
// extension used in allocated archive paths.
var mediaTypeExtensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/svg+xml": "svg",
}

// formatMediaTypes maps image.DecodeConfig format names to media types.
var formatMediaTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"gif":  "image/gif",
	"webp": "image/webp",
}

// resolveImageType determines the media type and path extension for an
// image asset. A caller-supplied MediaType wins; otherwise the type is
// sniffed from the payload. SVG cannot be sniffed and must arrive with an
// explicit media type.
func resolveImageType(img Image) (mediaType, ext string, err error) {
	if mt := strings.TrimSpace(img.MediaType); mt != "" {
		e, ok := mediaTypeExtensions[mt]
		if !ok {
			return "", "", fmt.Errorf("unsupported image media type %q", mt)
		}
		return mt, e, nil
	}
	mt, err := detectImageMediaType(img.Data)
	if err != nil {
		return "", "", err
	}
	return mt, mediaTypeExtensions[mt], nil
}

// detectImageMediaType sniffs the media type of raw image bytes.
// JPEG, PNG, GIF, and WebP are recognised.
func detectImageMediaType(data []byte) (string, error) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("unrecognised image data: %v", err)
	}
	mt, ok := formatMediaTypes[format]
	if !ok {
		return "", fmt.Errorf("unsupported image format %q", format)
	}
	return mt, nil
}

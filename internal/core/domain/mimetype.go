package domain

import "slices"

// Well-known MIME types.
const (
	MimeTypeDrawing = "application/vnd.google-apps.drawing"
	MimeTypePDF     = "application/pdf"
	MimeTypePNG     = "image/png"
	MimeTypeJPEG    = "image/jpeg"
	MimeTypeGIF     = "image/gif"
	MimeTypeSVG     = "image/svg+xml"
	MimeTypeWebP    = "image/webp"
	MimeTypeBMP     = "image/bmp"
	MimeTypeTIFF    = "image/tiff"
)

var extensions = map[string]string{
	MimeTypePNG:  ".png",
	MimeTypeJPEG: ".jpg",
	MimeTypeGIF:  ".gif",
	MimeTypeSVG:  ".svg",
	MimeTypePDF:  ".pdf",
	MimeTypeWebP: ".webp",
	MimeTypeBMP:  ".bmp",
	MimeTypeTIFF: ".tiff",
}

// ExtensionFor returns the cache file extension for a MIME type.
func ExtensionFor(mimeType string) (string, bool) {
	ext, ok := extensions[mimeType]
	return ext, ok
}

// IsExportable reports whether Drive must convert the type server-side.
func IsExportable(mimeType string) bool {
	return mimeType == MimeTypeDrawing
}

// GuessMimeType picks the MIME type to request for a Drive file.
// Drawings become PDF when the caller supports it and PNG otherwise.
// Any other type must be in supported as-is.
func GuessMimeType(meta ImageMetadata, supported []string) (string, error) {
	if meta.MimeType == MimeTypeDrawing {
		if slices.Contains(supported, MimeTypePDF) {
			return MimeTypePDF, nil
		}
		return MimeTypePNG, nil
	}

	if slices.Contains(supported, meta.MimeType) {
		return meta.MimeType, nil
	}

	return "", &UnsupportedMimeTypeError{MimeType: meta.MimeType}
}

// Resolve derives the image to cache from remote metadata.
func Resolve(fileID string, meta ImageMetadata, supported []string) (ResolvedImage, error) {
	target, err := GuessMimeType(meta, supported)
	if err != nil {
		return ResolvedImage{}, err
	}

	ext, ok := ExtensionFor(target)
	if !ok {
		return ResolvedImage{}, &UnsupportedMimeTypeError{MimeType: target}
	}

	return ResolvedImage{
		FileID:         fileID,
		TargetMimeType: target,
		Extension:      ext,
		LastModified:   meta.ModifiedAt,
		Exportable:     meta.Exportable,
		ContentURL:     meta.ContentURL,
	}, nil
}

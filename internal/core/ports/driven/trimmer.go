package driven

// ImageTrimmer crops uniform-colour borders from image bytes.
type ImageTrimmer interface {
	// Trim returns the cropped image encoded in the same format.
	// Formats the trimmer cannot decode are returned unchanged.
	Trim(data []byte, mimeType string) ([]byte, error)
}

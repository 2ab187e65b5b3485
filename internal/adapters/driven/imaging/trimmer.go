// Package imaging crops uniform-colour borders from raster images.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/gif"

	"github.com/disintegration/imaging"

	"github.com/custodia-labs/driveimg/internal/core/domain"
	"github.com/custodia-labs/driveimg/internal/core/ports/driven"
)

// Ensure Trimmer implements the interface.
var _ driven.ImageTrimmer = (*Trimmer)(nil)

// JPEGQuality is used when re-encoding trimmed JPEG images.
const JPEGQuality = 95

// formats maps the trimmable MIME types to their encoder.
var formats = map[string]imaging.Format{
	domain.MimeTypePNG:  imaging.PNG,
	domain.MimeTypeJPEG: imaging.JPEG,
	domain.MimeTypeGIF:  imaging.GIF,
	domain.MimeTypeBMP:  imaging.BMP,
	domain.MimeTypeTIFF: imaging.TIFF,
}

// Trimmer removes borders that share the colour of the top-left pixel.
type Trimmer struct{}

// NewTrimmer creates a Trimmer.
func NewTrimmer() *Trimmer {
	return &Trimmer{}
}

// Trim crops PNG, JPEG, single-frame GIF, BMP and TIFF images.
// EXIF orientation is applied before cropping.
// Other formats, animated GIFs and fully uniform images are returned unchanged.
func (t *Trimmer) Trim(data []byte, mimeType string) ([]byte, error) {
	format, ok := formats[mimeType]
	if !ok {
		return data, nil
	}
	if format == imaging.GIF {
		animated, err := isAnimated(data)
		if err != nil {
			return nil, err
		}
		if animated {
			return data, nil
		}
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", format, err)
	}

	box, ok := contentBounds(img)
	if !ok || box == img.Bounds() {
		return data, nil
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, imaging.Crop(img, box), format, imaging.JPEGQuality(JPEGQuality)); err != nil {
		return nil, fmt.Errorf("encoding %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// isAnimated reports whether a GIF holds more than one frame.
func isAnimated(data []byte) (bool, error) {
	anim, err := gif.DecodeAll(bytes.NewReader(data))
	if err != nil {
		return false, fmt.Errorf("decoding GIF: %w", err)
	}
	return len(anim.Image) > 1, nil
}

// contentBounds returns the smallest rectangle holding every pixel that
// differs from the top-left pixel. ok is false for uniform images.
func contentBounds(img image.Image) (box image.Rectangle, ok bool) {
	b := img.Bounds()
	if b.Empty() {
		return b, false
	}

	bg := img.At(b.Min.X, b.Min.Y)
	minX, minY := b.Max.X, b.Max.Y
	maxX, maxY := b.Min.X-1, b.Min.Y-1

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if sameColor(img.At(x, y), bg) {
				continue
			}
			minX = min(minX, x)
			minY = min(minY, y)
			maxX = max(maxX, x)
			maxY = max(maxY, y)
		}
	}

	if maxX < minX {
		return b, false
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), true
}

func sameColor(a, b color.Color) bool {
	ar, ag, ab, aa := a.RGBA()
	br, bg, bb, ba := b.RGBA()
	return ar == br && ag == bg && ab == bb && aa == ba
}

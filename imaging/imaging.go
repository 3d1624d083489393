// ABOUTME: Image resize and encoding collaborator for the capture pipeline
// ABOUTME: Fits card photos within max bounds, preserving aspect ratio
package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"os"
	"strings"

	"github.com/disintegration/imaging"
)

// Processor implements pipeline.ImageProcessor over encoded data-URL
// images.
type Processor struct{}

// New returns an image processor.
func New() *Processor {
	return &Processor{}
}

// Resize decodes an encoded image, fits it within maxWidth x maxHeight
// preserving aspect ratio, and re-encodes in the requested format. Images
// already inside the bounds are not scaled up.
func (p *Processor) Resize(encoded string, maxWidth, maxHeight int, format string, quality int) (string, error) {
	img, err := decode(encoded)
	if err != nil {
		return "", fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > maxWidth || bounds.Dy() > maxHeight {
		img = imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos)
	}

	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return "", fmt.Errorf("failed to encode png: %w", err)
		}
		return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
			return "", fmt.Errorf("failed to encode jpeg: %w", err)
		}
		return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
	}
}

// FileToEncoded reads an image file into a base64 data URL.
func (p *Processor) FileToEncoded(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read image file: %w", err)
	}

	mime := "image/jpeg"
	if strings.HasSuffix(strings.ToLower(path), ".png") {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data), nil
}

func decode(encoded string) (image.Image, error) {
	raw := encoded
	if i := strings.Index(raw, ";base64,"); i >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}

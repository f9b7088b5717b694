package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// fitImage decodes raw image bytes and scales them to fit within
// maxWidth x maxHeight, preserving aspect ratio, re-encoded as PNG.
// It returns the encoded bytes plus the fitted dimensions.
func fitImage(raw []byte, maxWidth, maxHeight int) ([]byte, int, int, error) {
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width, height := fitDimensions(bounds.Dx(), bounds.Dy(), maxWidth, maxHeight)

	if width != bounds.Dx() || height != bounds.Dy() {
		dst := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		img = dst
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, 0, 0, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), width, height, nil
}

// fitDimensions scales (width, height) down to fit the bounds, keeping
// aspect ratio. Images already inside the bounds are left alone.
func fitDimensions(width, height, maxWidth, maxHeight int) (int, int) {
	if width <= maxWidth && height <= maxHeight {
		return width, height
	}

	widthScale := float64(maxWidth) / float64(width)
	heightScale := float64(maxHeight) / float64(height)

	scale := widthScale
	if heightScale < widthScale {
		scale = heightScale
	}

	return int(float64(width) * scale), int(float64(height) * scale)
}

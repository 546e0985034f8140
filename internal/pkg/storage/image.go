package storage

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"github.com/disintegration/imaging"

	// Register decoders for the formats uploads may arrive in.
	_ "image/gif"
	_ "image/png"
)

// ImageProcessor decodes uploaded images and produces bounded JPEG renditions.
type ImageProcessor struct {
	Quality int
}

// NewImageProcessor creates an ImageProcessor with the default JPEG quality.
func NewImageProcessor() *ImageProcessor {
	return &ImageProcessor{Quality: 80}
}

// FitJPEG decodes content, scales it down to fit within maxWidth x maxHeight
// (never scaling up), and re-encodes it as JPEG.
func (p *ImageProcessor) FitJPEG(content io.Reader, maxWidth, maxHeight int) (io.Reader, error) {
	img, _, err := image.Decode(content)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return p.encode(imaging.Fit(img, maxWidth, maxHeight, imaging.Lanczos))
}

func (p *ImageProcessor) encode(img image.Image) (io.Reader, error) {
	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf, nil
}

// Package ocr turns card sub-images into raw text. The recognizer is a
// boundary capability: callers treat empty output as empty input, never as
// an error, and all accuracy concerns stay on this side of the interface.
package ocr

import (
	"bytes"
	"context"
	"image"
	"image/png"

	"github.com/rotisserie/eris"

	"github.com/sells-group/cardscan-cli/internal/config"
)

// Extractor extracts text from a single card image.
type Extractor interface {
	ExtractText(ctx context.Context, img image.Image) (string, error)
}

// NewExtractor creates an Extractor based on config.
func NewExtractor(cfg config.OCRConfig) (Extractor, error) {
	switch cfg.Provider {
	case "gosseract", "":
		return NewGosseract(cfg.Language, cfg.DPI), nil
	case "command":
		return NewCommand(cfg.TesseractPath, cfg.Language), nil
	default:
		return nil, eris.Errorf("ocr: unknown provider %q", cfg.Provider)
	}
}

// encodePNG renders an image to PNG bytes for handoff to tesseract.
func encodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, eris.Wrap(err, "ocr: encode png")
	}
	return buf.Bytes(), nil
}

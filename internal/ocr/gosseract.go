package ocr

import (
	"context"
	"fmt"
	"image"

	"github.com/otiai10/gosseract/v2"
	"github.com/rotisserie/eris"
)

// Gosseract runs tesseract in-process via the gosseract bindings. A fresh
// client is created per recognition; clients are not safe to share.
type Gosseract struct {
	language      string
	dpi           int
	clientFactory func() *gosseract.Client
}

// NewGosseract creates a Gosseract extractor. An empty language defaults
// to "eng".
func NewGosseract(language string, dpi int) *Gosseract {
	if language == "" {
		language = "eng"
	}
	return &Gosseract{
		language:      language,
		dpi:           dpi,
		clientFactory: gosseract.NewClient,
	}
}

// ExtractText recognizes the text on one card image.
func (g *Gosseract) ExtractText(ctx context.Context, img image.Image) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	c := g.clientFactory()
	defer c.Close()

	if err := c.SetImageFromBytes(data); err != nil {
		return "", eris.Wrap(err, "ocr: set image")
	}
	if err := c.SetLanguage(g.language); err != nil {
		return "", eris.Wrapf(err, "ocr: set language %s", g.language)
	}
	if g.dpi > 0 {
		if err := c.SetVariable(gosseract.SettableVariable("user_defined_dpi"), fmt.Sprint(g.dpi)); err != nil {
			return "", eris.Wrap(err, "ocr: set dpi")
		}
	}

	text, err := c.Text()
	if err != nil {
		return "", eris.Wrap(err, "ocr: recognize text")
	}
	return text, nil
}

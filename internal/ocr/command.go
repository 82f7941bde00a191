package ocr

import (
	"bytes"
	"context"
	"image"
	"os/exec"

	"github.com/rotisserie/eris"
)

// Command shells out to the tesseract CLI, feeding the card image on stdin
// and reading recognized text from stdout. Useful where the cgo bindings
// are unavailable.
type Command struct {
	binPath  string
	language string
}

// NewCommand creates a Command extractor. If binPath is empty, "tesseract"
// is used; an empty language defaults to "eng".
func NewCommand(binPath, language string) *Command {
	if binPath == "" {
		binPath = "tesseract"
	}
	if language == "" {
		language = "eng"
	}
	return &Command{binPath: binPath, language: language}
}

// ExtractText runs `tesseract stdin stdout -l <lang>` on the PNG-encoded image.
func (c *Command) ExtractText(ctx context.Context, img image.Image) (string, error) {
	data, err := encodePNG(img)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, c.binPath, "stdin", "stdout", "-l", c.language)
	cmd.Stdin = bytes.NewReader(data)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", eris.Wrapf(err, "ocr: tesseract failed: %s", stderr.String())
	}

	return stdout.String(), nil
}

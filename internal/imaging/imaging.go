// Package imaging prepares scanned sheet images for OCR: loading, grid
// splitting, and a simple enhancement pass (grayscale, invert, binary
// threshold) that makes card-back text legible to the recognizer.
package imaging

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/rotisserie/eris"
	"golang.org/x/image/draw"
)

// DefaultThreshold is the binarization cutoff applied after inversion.
const DefaultThreshold = 140

// Load decodes a PNG or JPEG sheet scan from disk. A missing or unreadable
// file is a fatal input error for the sheet.
func Load(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "imaging: open %s", path)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, eris.Wrapf(err, "imaging: decode %s", path)
	}
	return img, nil
}

// SplitGrid crops a sheet into gridSize x gridSize card sub-images in
// row-major order. Remainder pixels on the right and bottom edges are
// discarded, matching integer division of the sheet dimensions.
func SplitGrid(img image.Image, gridSize int) []image.Image {
	if gridSize < 1 {
		gridSize = 1
	}
	b := img.Bounds()
	cardW := b.Dx() / gridSize
	cardH := b.Dy() / gridSize

	cards := make([]image.Image, 0, gridSize*gridSize)
	for row := 0; row < gridSize; row++ {
		for col := 0; col < gridSize; col++ {
			r := image.Rect(
				b.Min.X+col*cardW,
				b.Min.Y+row*cardH,
				b.Min.X+(col+1)*cardW,
				b.Min.Y+(row+1)*cardH,
			)
			card := image.NewRGBA(image.Rect(0, 0, cardW, cardH))
			draw.Copy(card, image.Point{}, img, r, draw.Src, nil)
			cards = append(cards, card)
		}
	}
	return cards
}

// Enhance converts a card crop to an inverted binary image: grayscale,
// invert, then threshold. Pixels below the cutoff go black, the rest white.
func Enhance(img image.Image, threshold uint8) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			g := color.GrayModel.Convert(img.At(x, y)).(color.Gray)
			inverted := 255 - g.Y
			v := uint8(0)
			if inverted >= threshold {
				v = 255
			}
			out.SetGray(x-b.Min.X, y-b.Min.Y, color.Gray{Y: v})
		}
	}
	return out
}

// Scale resizes a card crop by the given factor using bilinear
// interpolation. Small crops recognize better when upscaled before OCR.
func Scale(img image.Image, factor float64) image.Image {
	if factor <= 0 || factor == 1 {
		return img
	}
	b := img.Bounds()
	w := int(float64(b.Dx()) * factor)
	h := int(float64(b.Dy()) * factor)
	if w < 1 || h < 1 {
		return img
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.BiLinear.Scale(out, out.Bounds(), img, b, draw.Src, nil)
	return out
}

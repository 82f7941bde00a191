package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSheet(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	return img
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	assert.Error(t, err)
}

func TestLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, testSheet(30, 30)))
	require.NoError(t, f.Close())

	img, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 30, img.Bounds().Dx())
}

func TestSplitGrid_RowMajorOrder(t *testing.T) {
	cards := SplitGrid(testSheet(90, 90), 3)
	require.Len(t, cards, 9)
	for _, c := range cards {
		assert.Equal(t, 30, c.Bounds().Dx())
		assert.Equal(t, 30, c.Bounds().Dy())
	}

	// Card 0 starts at x=0, card 1 at x=30: red channel encodes source x.
	c0 := color.RGBAModel.Convert(cards[0].At(0, 0)).(color.RGBA)
	c1 := color.RGBAModel.Convert(cards[1].At(0, 0)).(color.RGBA)
	assert.Equal(t, uint8(0), c0.R)
	assert.Equal(t, uint8(30), c1.R)

	// Card 3 is the start of the second row: green channel encodes source y.
	c3 := color.RGBAModel.Convert(cards[3].At(0, 0)).(color.RGBA)
	assert.Equal(t, uint8(30), c3.G)
}

func TestSplitGrid_DiscardsRemainder(t *testing.T) {
	cards := SplitGrid(testSheet(91, 92), 3)
	require.Len(t, cards, 9)
	assert.Equal(t, 30, cards[0].Bounds().Dx())
	assert.Equal(t, 30, cards[0].Bounds().Dy())
}

func TestEnhance_Threshold(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 1))
	img.SetGray(0, 0, color.Gray{Y: 10})  // dark -> inverted 245 -> white
	img.SetGray(1, 0, color.Gray{Y: 250}) // light -> inverted 5 -> black

	out := Enhance(img, DefaultThreshold)
	assert.Equal(t, uint8(255), out.GrayAt(0, 0).Y)
	assert.Equal(t, uint8(0), out.GrayAt(1, 0).Y)
}

func TestScale(t *testing.T) {
	out := Scale(testSheet(10, 10), 2)
	assert.Equal(t, 20, out.Bounds().Dx())

	same := Scale(testSheet(10, 10), 1)
	assert.Equal(t, 10, same.Bounds().Dx())
}

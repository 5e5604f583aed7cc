package aegisweb

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/digitranslab/aegisweb/site"
)

func decodeJPEG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func TestRenderOGImageDefaultCard(t *testing.T) {
	data, err := renderOGImage(t.TempDir())
	require.NoError(t, err)

	img := decodeJPEG(t, data)
	assert.Equal(t, site.OGImageWidth, img.Bounds().Dx())
	assert.Equal(t, site.OGImageHeight, img.Bounds().Dy())
}

func TestRenderOGImageScalesSource(t *testing.T) {
	dir := t.TempDir()
	src := image.NewRGBA(image.Rect(0, 0, 400, 400))
	for y := 0; y < 400; y++ {
		for x := 0; x < 400; x++ {
			src.Set(x, y, color.RGBA{R: 200, G: 20, B: 20, A: 255})
		}
	}
	f, err := os.Create(filepath.Join(dir, "og-source.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, src))
	require.NoError(t, f.Close())

	data, err := renderOGImage(dir)
	require.NoError(t, err)

	img := decodeJPEG(t, data)
	assert.Equal(t, site.OGImageWidth, img.Bounds().Dx())
	assert.Equal(t, site.OGImageHeight, img.Bounds().Dy())

	r, g, _, _ := img.At(600, 315).RGBA()
	assert.Greater(t, r>>8, uint32(150), "source colour should survive scaling")
	assert.Less(t, g>>8, uint32(80))
}

func TestRenderOGImageRejectsCorruptSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "og-source.png"), []byte("not an image"), 0o644))

	_, err := renderOGImage(dir)
	assert.ErrorContains(t, err, "decode og source")
}

func TestCoverRect(t *testing.T) {
	// wide source: crop the sides
	r := coverRect(image.Rect(0, 0, 2400, 630), 1200, 630)
	assert.Equal(t, image.Rect(600, 0, 1800, 630), r)

	// tall source: crop top and bottom
	r = coverRect(image.Rect(0, 0, 1200, 1260), 1200, 630)
	assert.Equal(t, image.Rect(0, 315, 1200, 945), r)

	// exact ratio: untouched
	r = coverRect(image.Rect(0, 0, 600, 315), 1200, 630)
	assert.Equal(t, image.Rect(0, 0, 600, 315), r)
}

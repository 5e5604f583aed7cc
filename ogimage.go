package aegisweb

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/labstack/echo/v4"
	"golang.org/x/image/draw"

	"github.com/digitranslab/aegisweb/site"
)

const ogJPEGQuality = 85

// ogSourceNames are looked up in the static dir, first match wins.
var ogSourceNames = []string{"og-source.png", "og-source.jpg", "og-source.jpeg", "og-source.gif"}

var (
	ogBackground = color.RGBA{R: 0x0b, G: 0x12, B: 0x20, A: 0xff}
	ogAccent     = color.RGBA{R: 0x38, G: 0xbd, B: 0xf8, A: 0xff}
)

// renderOGImage produces the OpenGraph image as JPEG. A source image in
// staticDir is scaled to cover the card; otherwise a plain brand card is drawn.
func renderOGImage(staticDir string) ([]byte, error) {
	src, err := loadOGSource(staticDir)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, site.OGImageWidth, site.OGImageHeight))
	if src != nil {
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, coverRect(src.Bounds(), site.OGImageWidth, site.OGImageHeight), draw.Src, nil)
	} else {
		drawDefaultCard(dst)
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: ogJPEGQuality}); err != nil {
		return nil, fmt.Errorf("encode og image: %w", err)
	}
	return buf.Bytes(), nil
}

func loadOGSource(staticDir string) (image.Image, error) {
	for _, name := range ogSourceNames {
		path := filepath.Join(staticDir, name)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open og source: %w", err)
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("decode og source %s: %w", name, err)
		}
		return img, nil
	}
	return nil, nil
}

// coverRect returns the centered sub-rectangle of b with the w:h aspect ratio,
// so scaling it onto a w×h canvas fills the canvas without distortion.
func coverRect(b image.Rectangle, w, h int) image.Rectangle {
	sw, sh := b.Dx(), b.Dy()
	if sw*h > sh*w {
		cropW := sh * w / h
		x0 := b.Min.X + (sw-cropW)/2
		return image.Rect(x0, b.Min.Y, x0+cropW, b.Max.Y)
	}
	cropH := sw * h / w
	y0 := b.Min.Y + (sh-cropH)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+cropH)
}

func drawDefaultCard(dst *image.RGBA) {
	b := dst.Bounds()
	draw.Draw(dst, b, &image.Uniform{C: ogBackground}, image.Point{}, draw.Src)
	bar := image.Rect(b.Min.X, b.Max.Y-16, b.Max.X, b.Max.Y)
	draw.Draw(dst, bar, &image.Uniform{C: ogAccent}, image.Point{}, draw.Src)
}

// ogImageCache renders the image on first successful use. Failures are not
// cached, so a fixed og-source file is picked up on the next request.
type ogImageCache struct {
	staticDir string

	mu   sync.Mutex
	data []byte
}

func (c *ogImageCache) get() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data != nil {
		return c.data, nil
	}
	data, err := renderOGImage(c.staticDir)
	if err != nil {
		return nil, err
	}
	c.data = data
	return data, nil
}

func (a *App) handleOGImage(c echo.Context) error {
	data, err := a.ogImage()
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/jpeg", data)
}

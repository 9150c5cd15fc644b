package overlay

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder
	_ "image/jpeg" // JPEG decoder
	"image/png"

	_ "golang.org/x/image/bmp"  // BMP decoder
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // TIFF decoder
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/alnah/go-findoc/internal/grid"
)

// ImageSource supplies raw image bytes by asset name.
type ImageSource interface {
	LoadImage(name string) ([]byte, error)
}

var errEmptyImage = errors.New("image has no pixels")

// sourceImage is an image ready to be registered on a surface.
type sourceImage struct {
	name     string
	kind     string // fpdf image type: PNG, JPG or GIF
	data     []byte
	widthPx  int
	heightPx int
}

// sizeMM returns the drawn size, the natural size at 96 DPI times scale.
func (img *sourceImage) sizeMM(scale float64) (w, h float64) {
	return float64(img.widthPx) * grid.PxToMM * scale, float64(img.heightPx) * grid.PxToMM * scale
}

type cacheEntry struct {
	img *sourceImage
	err error
}

// imageCache loads and decodes each image reference at most once.
// Failures are cached too so a broken asset is reported per placement
// without being re-read.
type imageCache struct {
	src     ImageSource
	entries map[string]cacheEntry
}

func newImageCache(src ImageSource) *imageCache {
	return &imageCache{src: src, entries: make(map[string]cacheEntry)}
}

func (c *imageCache) get(name string) (*sourceImage, error) {
	if e, ok := c.entries[name]; ok {
		return e.img, e.err
	}

	img, err := c.load(name)
	c.entries[name] = cacheEntry{img: img, err: err}
	return img, err
}

func (c *imageCache) load(name string) (*sourceImage, error) {
	if c.src == nil {
		return nil, fmt.Errorf("loading %s: no image source configured", name)
	}
	data, err := c.src.LoadImage(name)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", name, err)
	}
	img, err := decodeImage(name, data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return img, nil
}

// decodeImage reads the pixel size of data. PNG, JPEG and GIF are passed
// through as-is; any other registered format is re-encoded as 8-bit PNG.
func decodeImage(name string, data []byte) (*sourceImage, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errEmptyImage
	}

	img := &sourceImage{name: name, data: data, widthPx: cfg.Width, heightPx: cfg.Height}
	switch format {
	case "png":
		img.kind = "PNG"
	case "jpeg":
		img.kind = "JPG"
	case "gif":
		img.kind = "GIF"
	default:
		converted, err := reencodePNG(data)
		if err != nil {
			return nil, fmt.Errorf("converting %s to png: %w", format, err)
		}
		img.kind = "PNG"
		img.data = converted
	}
	return img, nil
}

func reencodePNG(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

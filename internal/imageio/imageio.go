// Package imageio turns image files into the raw byte-buffer-plus-geometry
// form the hasher consumes. Container formats and pixel layouts are handled
// here and nowhere else; the hasher itself never touches a file.
package imageio

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/disintegration/imaging"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Raw is a decoded image reduced to bytes plus geometry: row-major pixels
// with interleaved channels, 1 (grayscale) or 4 (NRGBA).
type Raw struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
	Format   string // source container format ("jpeg", "png", ...)
	Size     int64  // encoded size in bytes
}

// Decode reads and decodes an image file. maxDim > 0 downscales the
// decoded image so its longest side is at most maxDim before flattening,
// which bounds hashing cost for very large sources.
func Decode(path string, maxDim int) (Raw, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Raw{}, fmt.Errorf("read %s: %w", path, err)
	}
	raw, err := DecodeBytes(data, maxDim)
	if err != nil {
		return Raw{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return raw, nil
}

// DecodeBytes decodes an in-memory encoded image. See Decode.
func DecodeBytes(data []byte, maxDim int) (Raw, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return Raw{}, err
	}

	if maxDim > 0 {
		b := img.Bounds()
		if b.Dx() > maxDim || b.Dy() > maxDim {
			img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
		}
	}

	raw := FromImage(img)
	raw.Format = format
	raw.Size = int64(len(data))
	return raw, nil
}

// FromImage flattens a decoded image into Raw. Grayscale images keep
// their single channel; everything else becomes 4-channel NRGBA.
func FromImage(img image.Image) Raw {
	if g, ok := img.(*image.Gray); ok {
		w := g.Rect.Dx()
		h := g.Rect.Dy()
		pix := g.Pix
		if g.Stride != w || g.Rect.Min != (image.Point{}) {
			pix = make([]byte, w*h)
			for y := 0; y < h; y++ {
				off := g.PixOffset(g.Rect.Min.X, g.Rect.Min.Y+y)
				copy(pix[y*w:(y+1)*w], g.Pix[off:off+w])
			}
		}
		return Raw{Pix: pix[:w*h], Width: w, Height: h, Channels: 1}
	}

	// imaging.Clone yields an NRGBA at the origin with a packed stride.
	n := imaging.Clone(img)
	return Raw{
		Pix:      n.Pix,
		Width:    n.Rect.Dx(),
		Height:   n.Rect.Dy(),
		Channels: 4,
	}
}

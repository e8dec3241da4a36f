//go:build ignore

// gen_fixtures creates small test images for a dedupe smoke test: an
// original, an exact byte copy, a lossy re-encode of the same scene, and
// unrelated images, so `fastdhash dedupe` has something to find.
// Usage: go run gen_fixtures.go <output_dir>
package main

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"math"
	"os"
	"path/filepath"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: gen_fixtures <output_dir>")
		os.Exit(1)
	}
	dir := os.Args[1]
	os.MkdirAll(filepath.Join(dir, "copies"), 0o755)

	scene := radial(320, 240)

	// Original and an exact byte copy.
	writePNG(filepath.Join(dir, "radial.png"), scene)
	orig, err := os.ReadFile(filepath.Join(dir, "radial.png"))
	if err != nil {
		fail(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "copies", "radial_copy.png"), orig, 0o644); err != nil {
		fail(err)
	}

	// Near duplicate: same scene, lossy re-encode.
	writeJPEG(filepath.Join(dir, "copies", "radial_q60.jpg"), scene, 60)

	// Unrelated images.
	writePNG(filepath.Join(dir, "gradient.png"), gradient(320, 240))
	writePNG(filepath.Join(dir, "gray.png"), grayStripes(200, 160))

	fmt.Fprintf(os.Stderr, "[gen_fixtures] created 5 fixtures in %s\n", dir)
}

func radial(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx := float64(w-1) / 2
	cy := float64(h-1) / 2
	maxD := math.Hypot(cx, cy)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			d := math.Hypot(float64(x)-cx, float64(y)-cy) / maxD
			v := uint8(255 * d)
			img.SetNRGBA(x, y, color.NRGBA{R: v, G: v / 2, B: 255 - v, A: 255})
		}
	}
	return img
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{
				R: uint8(x * 255 / w),
				G: uint8(y * 255 / h),
				B: 128,
				A: 255,
			})
		}
	}
	return img
}

func grayStripes(w, h int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := uint8(40)
			if (x/20)%2 == 0 {
				v = 220
			}
			img.SetGray(x, y, color.Gray{Y: v})
		}
	}
	return img
}

func writePNG(path string, img image.Image) {
	f, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		fail(err)
	}
}

func writeJPEG(path string, img image.Image, quality int) {
	f, err := os.Create(path)
	if err != nil {
		fail(err)
	}
	defer f.Close()
	if err := jpeg.Encode(f, img, &jpeg.Options{Quality: quality}); err != nil {
		fail(err)
	}
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

package render

import (
	"bytes"
	"fmt"
	"image"

	// Sources serve JPEG and PNG; register both decoders.
	_ "image/jpeg"
	_ "image/png"
)

// Grid is a single-channel intensity image, row-major, origin top-left.
// Values are luminance samples in [0, 255]. A Grid is never mutated
// after creation.
type Grid struct {
	W, H int
	Pix  []float64
}

// NewGrid allocates a zeroed w×h grid.
func NewGrid(w, h int) *Grid {
	return &Grid{W: w, H: h, Pix: make([]float64, w*h)}
}

// At returns the intensity at (x, y). No bounds checking.
func (g *Grid) At(x, y int) float64 {
	return g.Pix[y*g.W+x]
}

// Set writes the intensity at (x, y). No bounds checking.
func (g *Grid) Set(x, y int, v float64) {
	g.Pix[y*g.W+x] = v
}

// Decode converts raw image bytes into an intensity grid.
// Color images are collapsed to luminance using Rec. 601 weights.
func Decode(data []byte) (*Grid, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("decode image: empty %dx%d image", w, h)
	}

	g := NewGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, gr, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit channels; shift down to 0-255.
			lum := 0.299*float64(r>>8) + 0.587*float64(gr>>8) + 0.114*float64(b>>8)
			g.Set(x, y, lum)
		}
	}
	return g, nil
}

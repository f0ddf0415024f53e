// Package render converts intensity grids into fixed-size ASCII frames.
//
// The pipeline is crop → resample → normalize → character map. Every
// step is a pure function of its inputs: the same grid and config always
// produce a byte-identical frame.
package render

import (
	"fmt"
	"strings"
)

// DefaultRamp is the standard brightness gradient, darkest to brightest.
const DefaultRamp = " .:-=+*#%@"

// Config controls the output geometry and character palette.
// Fixed for the lifetime of a run.
type Config struct {
	Width  int
	Height int
	// Ramp is ordered darkest to brightest.
	Ramp string
	// CropFraction is the fraction of the grid's smaller dimension to
	// retain, centered. 1.0 keeps the full central square.
	CropFraction float64
}

// DefaultConfig matches the classic 80×24 terminal layout.
func DefaultConfig() Config {
	return Config{
		Width:        80,
		Height:       24,
		Ramp:         DefaultRamp,
		CropFraction: 1.0,
	}
}

// Frame is a rendered ASCII image: Height rows of exactly Width
// characters each, drawn from the configured ramp.
type Frame []string

// String joins the frame rows with newlines.
func (f Frame) String() string {
	return strings.Join(f, "\n")
}

// ConfigError reports a render configuration that can never produce a
// frame (empty ramp, degenerate crop). It recurs every cycle until the
// configuration is fixed, so callers should surface it loudly.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "render config: " + e.Reason
}

// Render converts a grid into an ASCII frame.
//
// Resampling is area-average: each output cell averages the source
// pixels inside its integer-aligned rectangle of the cropped region.
// Normalization stretches contrast against the resampled grid's own
// min/max each call; a flat grid maps every cell to 0.5, which lands on
// the ramp midpoint by the round-down index rule below.
func Render(g *Grid, cfg Config) (Frame, error) {
	if err := validate(cfg); err != nil {
		return nil, err
	}

	minDim := g.W
	if g.H < minDim {
		minDim = g.H
	}
	side := int(cfg.CropFraction * float64(minDim))
	if side < 1 {
		return nil, &ConfigError{Reason: fmt.Sprintf(
			"crop_fraction %g of %dx%d grid leaves nothing to render", cfg.CropFraction, g.W, g.H)}
	}
	x0 := (g.W - side) / 2
	y0 := (g.H - side) / 2

	cells := resample(g, x0, y0, side, cfg.Width, cfg.Height)
	normalize(cells)

	ramp := []rune(cfg.Ramp)
	frame := make(Frame, cfg.Height)
	var row strings.Builder
	for y := 0; y < cfg.Height; y++ {
		row.Reset()
		for x := 0; x < cfg.Width; x++ {
			row.WriteRune(ramp[rampIndex(cells[y*cfg.Width+x], len(ramp))])
		}
		frame[y] = row.String()
	}
	return frame, nil
}

func validate(cfg Config) error {
	if cfg.Width < 1 || cfg.Height < 1 {
		return &ConfigError{Reason: fmt.Sprintf("output size %dx%d is not positive", cfg.Width, cfg.Height)}
	}
	if len(cfg.Ramp) == 0 {
		return &ConfigError{Reason: "character ramp is empty"}
	}
	if cfg.CropFraction <= 0 || cfg.CropFraction > 1 {
		return &ConfigError{Reason: fmt.Sprintf("crop_fraction %g outside (0, 1]", cfg.CropFraction)}
	}
	return nil
}

// resample shrinks (or grows) the side×side region at (x0, y0) to an
// outW×outH cell grid. Output cell (cx, cy) covers source columns
// [x0+cx·side/outW, x0+(cx+1)·side/outW) under integer division, and
// likewise for rows; a cell always covers at least one pixel, so
// upsampling degrades to nearest-neighbor.
func resample(g *Grid, x0, y0, side, outW, outH int) []float64 {
	cells := make([]float64, outW*outH)
	for cy := 0; cy < outH; cy++ {
		sy0 := y0 + cy*side/outH
		sy1 := y0 + (cy+1)*side/outH
		if sy1 <= sy0 {
			sy1 = sy0 + 1
		}
		for cx := 0; cx < outW; cx++ {
			sx0 := x0 + cx*side/outW
			sx1 := x0 + (cx+1)*side/outW
			if sx1 <= sx0 {
				sx1 = sx0 + 1
			}

			sum := 0.0
			for y := sy0; y < sy1; y++ {
				for x := sx0; x < sx1; x++ {
					sum += g.At(x, y)
				}
			}
			cells[cy*outW+cx] = sum / float64((sy1-sy0)*(sx1-sx0))
		}
	}
	return cells
}

// normalize maps cells to [0, 1] in place using the observed min/max.
// A flat grid becomes all 0.5 rather than dividing by zero.
func normalize(cells []float64) {
	lo, hi := cells[0], cells[0]
	for _, v := range cells[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	if hi == lo {
		for i := range cells {
			cells[i] = 0.5
		}
		return
	}
	for i := range cells {
		cells[i] = (cells[i] - lo) / (hi - lo)
	}
}

// rampIndex maps a normalized intensity to a ramp index by round-down:
// floor(v·(n−1)) after clamping v to [0, 1]. v = 1.0 selects the last
// character; a 0.5 midpoint on a 10-character ramp selects index 4.
func rampIndex(v float64, n int) int {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	idx := int(v * float64(n-1))
	if idx >= n {
		idx = n - 1
	}
	return idx
}

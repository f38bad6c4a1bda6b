package matrixcolor

import "image/color"

// Color represents an RGBA color with components nominally in [0, 1]. Not
// premultiplied. Components are not required to be in range when passed to
// Apply; only the transformed output is clamped.
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	ColorWhite       = Color{1, 1, 1, 1}
	ColorBlack       = Color{0, 0, 0, 1}
	ColorTransparent = Color{}
)

// FromColor converts a standard color.Color to a straight-alpha Color.
// Premultiplied inputs are un-premultiplied; fully transparent inputs map
// to ColorTransparent.
func FromColor(c color.Color) Color {
	switch v := c.(type) {
	case Color:
		return v
	case color.NRGBA:
		return Color{
			R: float64(v.R) / 255,
			G: float64(v.G) / 255,
			B: float64(v.B) / 255,
			A: float64(v.A) / 255,
		}
	}
	r, g, b, a := c.RGBA()
	if a == 0 {
		return ColorTransparent
	}
	fa := float64(a)
	return Color{
		R: float64(r) / fa,
		G: float64(g) / fa,
		B: float64(b) / fa,
		A: fa / 0xffff,
	}
}

// NRGBA converts c to an 8-bit straight-alpha color, clamping each component.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// RGBA implements color.Color. The result is premultiplied, as the
// interface requires.
func (c Color) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// Clamped returns c with every component clamped to [0, 1].
func (c Color) Clamped() Color {
	return Color{clamp01(c.R), clamp01(c.G), clamp01(c.B), clamp01(c.A)}
}

func to8(v float64) uint8 {
	return uint8(clamp01(v)*255 + 0.5)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

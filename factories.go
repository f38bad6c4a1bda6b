package matrixcolor

import "math"

// DefaultDesaturation holds the Rec. 709 luminance weights used by
// Saturation, Desaturate and Colorize.
var DefaultDesaturation = [3]float64{0.2126, 0.7152, 0.0722}

// Luminance weights the hue rotation pivots around.
const (
	hueLumR = 0.213
	hueLumG = 0.715
	hueLumB = 0.072
)

// Brightness returns a matrix that adds b to the red, green and blue
// channels. b is expected in [-1, 1] but is not limited.
func Brightness(b float64) Matrix {
	return MustFromElements(
		1, 0, 0, 0, b,
		0, 1, 0, 0, b,
		0, 0, 1, 0, b,
		0, 0, 0, 1, 0,
	)
}

// Contrast returns a matrix that scales red, green and blue by c about 0.5.
// c=1 is unchanged, values in (0, 1) reduce contrast and values above 1
// increase it.
func Contrast(c float64) Matrix {
	t := 0.5 * (1 - c)
	return MustFromElements(
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	)
}

// Saturation returns a matrix that interpolates between the full color
// (level=1) and its luminance (level=0), using DefaultDesaturation.
// Levels above 1 oversaturate.
func Saturation(level float64) Matrix {
	return SaturationWeights(level, DefaultDesaturation)
}

// SaturationWeights is like Saturation but computes the gray value as
// desat[0]*R + desat[1]*G + desat[2]*B.
func SaturationWeights(level float64, desat [3]float64) Matrix {
	r, g, b := desat[0], desat[1], desat[2]
	mix := func(gray, ident float64) float64 {
		return level*ident + (1-level)*gray
	}
	return MustFromElements(
		mix(r, 1), mix(g, 0), mix(b, 0), 0, 0,
		mix(r, 0), mix(g, 1), mix(b, 0), 0, 0,
		mix(r, 0), mix(g, 0), mix(b, 1), 0, 0,
		0, 0, 0, 1, 0,
	)
}

// Desaturate returns a matrix that replaces red, green and blue with the
// color's luminance. It equals Saturation(0).
func Desaturate() Matrix {
	return Saturation(0)
}

// Hue returns a matrix that rotates hue by h degrees while keeping
// luminance constant. Grays are left unchanged.
func Hue(h float64) Matrix {
	rad := h * math.Pi / 180
	cos, sin := math.Cos(rad), math.Sin(rad)
	return MustFromElements(
		hueLumR+cos*(1-hueLumR)+sin*(-hueLumR),
		hueLumG+cos*(-hueLumG)+sin*(-hueLumG),
		hueLumB+cos*(-hueLumB)+sin*(1-hueLumB),
		0, 0,

		hueLumR+cos*(-hueLumR)+sin*0.143,
		hueLumG+cos*(1-hueLumG)+sin*0.140,
		hueLumB+cos*(-hueLumB)+sin*(-0.283),
		0, 0,

		hueLumR+cos*(-hueLumR)+sin*(-(1-hueLumR)),
		hueLumG+cos*(-hueLumG)+sin*hueLumG,
		hueLumB+cos*(1-hueLumB)+sin*hueLumB,
		0, 0,

		0, 0, 0, 1, 0,
	)
}

// Tint returns a matrix that keeps the given fraction of each channel: r of
// red, g of green and b of blue. Alpha is unchanged.
func Tint(r, g, b float64) Matrix {
	return MustFromElements(
		r, 0, 0, 0, 0,
		0, g, 0, 0, 0,
		0, 0, b, 0, 0,
		0, 0, 0, 1, 0,
	)
}

// Colorize returns a matrix that desaturates a color to its luminance L and
// then maps L=0 to black and L=1 to white, interpolating linearly between
// them. Only the R, G and B components of black and white are used.
func Colorize(black, white Color) Matrix {
	w := DefaultDesaturation
	row := func(lo, hi float64) [5]float64 {
		d := hi - lo
		return [5]float64{d * w[0], d * w[1], d * w[2], 0, lo}
	}
	r, g, b := row(black.R, white.R), row(black.G, white.G), row(black.B, white.B)
	return MustFromElements(
		r[0], r[1], r[2], r[3], r[4],
		g[0], g[1], g[2], g[3], g[4],
		b[0], b[1], b[2], b[3], b[4],
		0, 0, 0, 1, 0,
	)
}

// Invert returns a matrix that maps each of red, green and blue to one
// minus itself. Alpha is unchanged.
func Invert() Matrix {
	return MustFromElements(
		-1, 0, 0, 0, 1,
		0, -1, 0, 0, 1,
		0, 0, -1, 0, 1,
		0, 0, 0, 1, 0,
	)
}

// Opacity returns a matrix that multiplies alpha by o.
func Opacity(o float64) Matrix {
	return MustFromElements(
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, o, 0,
	)
}

// Sepia returns a matrix that desaturates and then tints toward brown.
func Sepia() Matrix {
	return Tint(1.0, 0.94, 0.76).Mul(Desaturate())
}

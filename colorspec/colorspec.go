// Package colorspec resolves textual and integer color specifications into
// normalized matrixcolor.Color values.
//
// Accepted strings are hex forms ("#rgb", "#rgba", "#rrggbb", "#rrggbbaa",
// with or without the leading '#') and SVG/CSS color names such as "navy".
package colorspec

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"

	"github.com/phanxgames/matrixcolor"
)

// ErrBadColor is returned for color specifications that cannot be resolved.
var ErrBadColor = errors.New("colorspec: bad color")

// Parse resolves a hex string or color name into an opaque-by-default Color.
func Parse(s string) (matrixcolor.Color, error) {
	spec := strings.TrimSpace(s)
	if spec == "" {
		return matrixcolor.Color{}, fmt.Errorf("%w: empty string", ErrBadColor)
	}
	if c, ok := colornames.Map[strings.ToLower(spec)]; ok {
		return matrixcolor.FromColor(c), nil
	}
	c, err := parseHex(strings.TrimPrefix(spec, "#"))
	if err != nil {
		return matrixcolor.Color{}, fmt.Errorf("%w: %q: %v", ErrBadColor, s, err)
	}
	return c, nil
}

// MustParse is like Parse but panics on error. It is intended for
// package-level color constants.
func MustParse(s string) matrixcolor.Color {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func parseHex(h string) (matrixcolor.Color, error) {
	var rgb, alpha string
	switch len(h) {
	case 3, 6:
		rgb = h
	case 4:
		rgb, alpha = h[:3], h[3:]
	case 8:
		rgb, alpha = h[:6], h[6:]
	default:
		return matrixcolor.Color{}, fmt.Errorf("hex color needs 3, 4, 6 or 8 digits, got %d", len(h))
	}
	if i := strings.IndexFunc(h, notHexDigit); i >= 0 {
		return matrixcolor.Color{}, fmt.Errorf("invalid hex digit %q", h[i])
	}

	// go-colorful reads one or two digits per channel from "#rgb" and
	// "#rrggbb".
	cf, err := colorful.Hex("#" + rgb)
	if err != nil {
		return matrixcolor.Color{}, err
	}
	out := matrixcolor.Color{R: cf.R, G: cf.G, B: cf.B, A: 1}
	if alpha != "" {
		v, err := strconv.ParseUint(alpha, 16, 8)
		if err != nil {
			return matrixcolor.Color{}, fmt.Errorf("alpha %q: %w", alpha, err)
		}
		if len(alpha) == 1 {
			v *= 17
		}
		out.A = float64(v) / 255
	}
	return out, nil
}

func notHexDigit(r rune) bool {
	switch {
	case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		return false
	}
	return true
}

// FromRGB8 builds an opaque Color from 0-255 integer components.
func FromRGB8(r, g, b int) (matrixcolor.Color, error) {
	return FromRGBA8(r, g, b, 255)
}

// FromRGBA8 builds a Color from 0-255 integer components.
func FromRGBA8(r, g, b, a int) (matrixcolor.Color, error) {
	for _, v := range [...]int{r, g, b, a} {
		if v < 0 || v > 255 {
			return matrixcolor.Color{}, fmt.Errorf("%w: component %d outside [0, 255]", ErrBadColor, v)
		}
	}
	return matrixcolor.Color{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// Colorize parses black and white and returns matrixcolor.Colorize of the
// two colors.
func Colorize(black, white string) (matrixcolor.Matrix, error) {
	lo, err := Parse(black)
	if err != nil {
		return matrixcolor.Matrix{}, fmt.Errorf("colorize black: %w", err)
	}
	hi, err := Parse(white)
	if err != nil {
		return matrixcolor.Matrix{}, fmt.Errorf("colorize white: %w", err)
	}
	return matrixcolor.Colorize(lo, hi), nil
}

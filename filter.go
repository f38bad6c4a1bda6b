package matrixcolor

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for GPU effects applied to a rendered image.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to
	// accommodate the effect. Zero means no padding.
	Padding() int
}

// Ebitengine uses premultiplied alpha; the shader un-premultiplies before
// applying the matrix and re-premultiplies the output.
const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	// Un-premultiply alpha.
	if c.a > 0 {
		c.rgb /= c.a
	}
	// Apply 4x5 color matrix (row-major, offset in elements 4,9,14,19).
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	// Clamp and re-premultiply.
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	return vec4(r*a, g*a, b*a, a)
}
`

// Compiled lazily on first use; filters are only applied from the draw
// goroutine.
var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("matrixcolor: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// ColorMatrixFilter applies a Matrix to an image with a Kage shader. Only the
// first 20 elements of Matrix are used.
type ColorMatrixFilter struct {
	Matrix      Matrix
	uniforms    map[string]any
	matrixF32   [20]float32 // persistent buffer to avoid per-frame slice escape
	matrixSlice []float32   // persistent slice header pointing into matrixF32
	shaderOp    ebiten.DrawRectShaderOptions
}

// NewColorMatrixFilter creates a color matrix filter initialized to the
// identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	return NewColorMatrixFilterFrom(Identity())
}

// NewColorMatrixFilterFrom creates a color matrix filter applying m.
func NewColorMatrixFilterFrom(m Matrix) *ColorMatrixFilter {
	f := &ColorMatrixFilter{
		Matrix:   m,
		uniforms: make(map[string]any, 1),
	}
	f.matrixSlice = f.matrixF32[:]
	f.uniforms["Matrix"] = f.matrixSlice
	return f
}

// SetMatrix replaces the filter's matrix.
func (f *ColorMatrixFilter) SetMatrix(m Matrix) { f.Matrix = m }

// SetBrightness sets the matrix to Brightness(b).
func (f *ColorMatrixFilter) SetBrightness(b float64) { f.Matrix = Brightness(b) }

// SetContrast sets the matrix to Contrast(c).
func (f *ColorMatrixFilter) SetContrast(c float64) { f.Matrix = Contrast(c) }

// SetSaturation sets the matrix to Saturation(s).
func (f *ColorMatrixFilter) SetSaturation(s float64) { f.Matrix = Saturation(s) }

// SetHue sets the matrix to Hue(h).
func (f *ColorMatrixFilter) SetHue(h float64) { f.Matrix = Hue(h) }

// Apply renders the color matrix transformation from src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorMatrixShader()
	f.loadUniforms()
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// loadUniforms converts the matrix to float32 in place. matrixSlice already
// points into matrixF32 and is stored in the uniforms map.
func (f *ColorMatrixFilter) loadUniforms() {
	for i := range f.matrixF32 {
		f.matrixF32[i] = float32(f.Matrix.e[i])
	}
}

// Padding returns 0; color matrix transforms don't expand the image bounds.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// FilterChain runs filters in order, ping-ponging between two scratch
// images that are reused across calls. A FilterChain is itself a Filter.
type FilterChain struct {
	Filters []Filter
	scratch [2]*ebiten.Image
}

// NewFilterChain creates a chain of the given filters.
func NewFilterChain(filters ...Filter) *FilterChain {
	return &FilterChain{Filters: filters}
}

// Apply renders src through every filter into dst. An empty chain copies
// src.
func (c *FilterChain) Apply(src, dst *ebiten.Image) {
	switch len(c.Filters) {
	case 0:
		dst.DrawImage(src, nil)
		return
	case 1:
		c.Filters[0].Apply(src, dst)
		return
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	current := src
	last := len(c.Filters) - 1
	for i, f := range c.Filters {
		if i == last {
			f.Apply(current, dst)
			break
		}
		target := c.scratchImage(i%2, w, h)
		f.Apply(current, target)
		current = target
	}
}

func (c *FilterChain) scratchImage(slot, w, h int) *ebiten.Image {
	img := c.scratch[slot]
	if img != nil {
		b := img.Bounds()
		if b.Dx() == w && b.Dy() == h {
			img.Clear()
			return img
		}
		img.Deallocate()
	}
	img = ebiten.NewImage(w, h)
	c.scratch[slot] = img
	return img
}

// Padding returns the cumulative padding of every filter in the chain.
func (c *FilterChain) Padding() int {
	return filterChainPadding(c.Filters)
}

// Collapse merges each run of consecutive ColorMatrixFilters into a single
// filter whose matrix is their composition, so the run costs one shader
// pass. The result differs from the uncollapsed chain only where an
// intermediate pass would have clamped a channel.
func (c *FilterChain) Collapse() {
	var out []Filter
	var run *ColorMatrixFilter
	runLen := 0
	for _, f := range c.Filters {
		cm, ok := f.(*ColorMatrixFilter)
		if !ok {
			if run != nil {
				out = append(out, run)
				run, runLen = nil, 0
			}
			out = append(out, f)
			continue
		}
		switch runLen {
		case 0:
			run = cm
		case 1:
			// Never mutate a filter the caller still holds.
			run = NewColorMatrixFilterFrom(cm.Matrix.Mul(run.Matrix))
		default:
			run.Matrix = cm.Matrix.Mul(run.Matrix)
		}
		runLen++
	}
	if run != nil {
		out = append(out, run)
	}
	c.Filters = out
}

// Dispose releases the chain's scratch images.
func (c *FilterChain) Dispose() {
	for i, img := range c.scratch {
		if img != nil {
			img.Deallocate()
			c.scratch[i] = nil
		}
	}
}

// filterChainPadding returns the cumulative padding required by a slice of
// filters.
func filterChainPadding(filters []Filter) int {
	pad := 0
	for _, f := range filters {
		pad += f.Padding()
	}
	return pad
}

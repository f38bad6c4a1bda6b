// Package matrixcolor implements color-matrix image transforms for
// [Ebitengine] games and visual novels.
//
// A [Matrix] is an affine RGBA transform of 4 rows by 5 columns (optionally
// 5x5). Build one with a named constructor and combine them:
//
//	m := matrixcolor.Hue(90).Mul(matrixcolor.Saturation(0.5))
//	out := m.Apply(matrixcolor.Color{R: 1, G: 0.5, B: 0.2, A: 1})
//
// In m.Mul(o) the right operand is applied first, so the example above
// desaturates before rotating hue. [Matrix.Times] accepts either a Matrix or
// a [Scalar] and dispatches to Mul or Scale.
//
// Apply clamps every output component to [0, 1] once, after the full
// computation.
//
// # Images
//
// [ApplyImage] runs a matrix over every pixel of an image.Image on the CPU,
// splitting rows across goroutines. On the GPU, [ColorMatrixFilter]
// applies a matrix with a Kage shader, and [Matrix.ColorM] converts to an
// ebiten colorm.ColorM for use with colorm.DrawImage.
//
// # Animation
//
// [Lerp] interpolates two matrices, and [MatrixTween] drives that
// interpolation over time with [gween] easing functions.
//
// Color strings such as "#f80" or "navy" are parsed by the colorspec
// subpackage, not here.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package matrixcolor

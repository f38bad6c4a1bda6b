package matrixcolor

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Matrix is an affine RGBA color transform stored row-major as 4 rows of 5
// coefficients:
//
//	R' = a*R + b*G + c*B + d*A + e
//	G' = f*R + g*G + h*B + i*A + j
//	B' = k*R + l*G + m*B + n*A + o
//	A' = p*R + q*G + r*B + s*A + t
//
// A Matrix may also carry an explicit fifth row (25 elements). A 20-element
// matrix behaves as if its fifth row were [0 0 0 0 1]. The fifth row only
// takes part in composition (Mul); Apply uses the first 20 elements.
//
// Matrix is an immutable value. Every operation returns a new Matrix. The
// zero value is the 20-element all-zero matrix.
type Matrix struct {
	e    [25]float64
	full bool // fifth row is explicit
}

// identityRow is the implicit fifth row of a 20-element matrix.
var identityRow = [5]float64{0, 0, 0, 0, 1}

// FromElements builds a Matrix from 20 or 25 row-major elements. Any other
// length returns an error wrapping ErrInvalidArgument.
func FromElements(seq []float64) (Matrix, error) {
	var m Matrix
	switch len(seq) {
	case 20:
		copy(m.e[:20], seq)
	case 25:
		copy(m.e[:], seq)
		m.full = true
	default:
		return Matrix{}, fmt.Errorf("%w: matrix needs 20 or 25 elements, got %d", ErrInvalidArgument, len(seq))
	}
	return m, nil
}

// MustFromElements is like FromElements but panics on a bad length. It is
// intended for matrix literals.
func MustFromElements(seq ...float64) Matrix {
	m, err := FromElements(seq)
	if err != nil {
		panic(err)
	}
	return m
}

// Identity returns the matrix that maps every color to itself.
func Identity() Matrix {
	var m Matrix
	m.e[0] = 1
	m.e[6] = 1
	m.e[12] = 1
	m.e[18] = 1
	return m
}

// Len returns the number of elements in m: 25 if it carries an explicit
// fifth row, 20 otherwise.
func (m Matrix) Len() int {
	if m.full {
		return 25
	}
	return 20
}

// Elements returns a copy of m's row-major elements.
func (m Matrix) Elements() []float64 {
	out := make([]float64, m.Len())
	copy(out, m.e[:])
	return out
}

// At returns the coefficient at row, col (both zero-based, up to 4). Row 4
// of a 20-element matrix reports the implicit [0 0 0 0 1].
func (m Matrix) At(row, col int) float64 {
	if row == 4 && !m.full {
		return identityRow[col]
	}
	return m.e[row*5+col]
}

// padded returns the 5x5 form of m.
func (m Matrix) padded() [25]float64 {
	p := m.e
	if !m.full {
		copy(p[20:], identityRow[:])
	}
	return p
}

// fromPadded trims a 5x5 result back to 20 elements when its fifth row is
// exactly the identity row.
func fromPadded(p [25]float64) Matrix {
	if p[20] == 0 && p[21] == 0 && p[22] == 0 && p[23] == 0 && p[24] == 1 {
		var m Matrix
		copy(m.e[:20], p[:20])
		return m
	}
	return Matrix{e: p, full: true}
}

// Mul returns the composition m·o. Applying the result is equivalent to
// applying o first and then m:
//
//	Apply(m.Mul(o), c) == Apply(m, Apply(o, c))
//
// as long as no intermediate channel leaves [0, 1] and o is affine. Both
// operands are treated as 5x5. The result keeps an explicit fifth row only
// when that row is not [0 0 0 0 1].
func (m Matrix) Mul(o Matrix) Matrix {
	a, b := m.padded(), o.padded()
	var c [25]float64
	for i := 0; i < 5; i++ {
		for j := 0; j < 5; j++ {
			var sum float64
			for k := 0; k < 5; k++ {
				sum += a[i*5+k] * b[k*5+j]
			}
			c[i*5+j] = sum
		}
	}
	return fromPadded(c)
}

// Scale returns m with every element multiplied by k. The implicit fifth
// row of a 20-element matrix is not an element and stays implicit.
func (m Matrix) Scale(k float64) Matrix {
	out := m
	for i := 0; i < m.Len(); i++ {
		out.e[i] *= k
	}
	return out
}

// Add returns the element-wise sum m + o over the first 20 elements. Both
// matrices must have the same length; a fifth row is taken from m.
func (m Matrix) Add(o Matrix) (Matrix, error) {
	return m.elementwise(o, "add", func(x, y float64) float64 { return x + y })
}

// Sub returns the element-wise difference m - o over the first 20 elements.
// Both matrices must have the same length; a fifth row is taken from m.
func (m Matrix) Sub(o Matrix) (Matrix, error) {
	return m.elementwise(o, "subtract", func(x, y float64) float64 { return x - y })
}

func (m Matrix) elementwise(o Matrix, op string, fn func(x, y float64) float64) (Matrix, error) {
	if m.full != o.full {
		return Matrix{}, fmt.Errorf("%w: cannot %s matrices of %d and %d elements", ErrInvalidArgument, op, m.Len(), o.Len())
	}
	out := m
	for i := 0; i < 20; i++ {
		out.e[i] = fn(m.e[i], o.e[i])
	}
	return out, nil
}

// Operand is the right-hand side of Times: either a Matrix or a Scalar.
// The set of implementations is closed.
type Operand interface {
	multiplyInto(left Matrix) Matrix
}

// Scalar is a plain number used as a Times operand.
type Scalar float64

func (s Scalar) multiplyInto(left Matrix) Matrix { return left.Scale(float64(s)) }

func (m Matrix) multiplyInto(left Matrix) Matrix { return left.Mul(m) }

// Times multiplies m by op: a Matrix operand composes (see Mul), a Scalar
// operand scales every element (see Scale).
func (m Matrix) Times(op Operand) Matrix {
	return op.multiplyInto(m)
}

// Apply transforms c by m and clamps each resulting component to [0, 1].
// Intermediate sums are not clamped.
func (m Matrix) Apply(c Color) Color {
	e := &m.e
	return Color{
		R: clamp01(e[0]*c.R + e[1]*c.G + e[2]*c.B + e[3]*c.A + e[4]),
		G: clamp01(e[5]*c.R + e[6]*c.G + e[7]*c.B + e[8]*c.A + e[9]),
		B: clamp01(e[10]*c.R + e[11]*c.G + e[12]*c.B + e[13]*c.A + e[14]),
		A: clamp01(e[15]*c.R + e[16]*c.G + e[17]*c.B + e[18]*c.A + e[19]),
	}
}

// Apply transforms c by m. It is shorthand for m.Apply(c).
func Apply(m Matrix, c Color) Color {
	return m.Apply(c)
}

// Equal reports whether m and o describe the same 5x5 transform. A
// 25-element matrix whose fifth row is [0 0 0 0 1] equals its 20-element
// counterpart.
func (m Matrix) Equal(o Matrix) bool {
	return m.padded() == o.padded()
}

// ApproxEqual reports whether every coefficient of the 5x5 forms of m and o
// differs by at most eps.
func (m Matrix) ApproxEqual(o Matrix, eps float64) bool {
	a, b := m.padded(), o.padded()
	for i := range a {
		if math.Abs(a[i]-b[i]) > eps {
			return false
		}
	}
	return true
}

// String formats m with rows separated by semicolons, e.g.
// "[1 0 0 0 0; 0 1 0 0 0; 0 0 1 0 0; 0 0 0 1 0]".
func (m Matrix) String() string {
	var b strings.Builder
	b.WriteByte('[')
	rows := m.Len() / 5
	for r := 0; r < rows; r++ {
		if r > 0 {
			b.WriteString("; ")
		}
		for c := 0; c < 5; c++ {
			if c > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(strconv.FormatFloat(m.e[r*5+c], 'g', -1, 64))
		}
	}
	b.WriteByte(']')
	return b.String()
}

package matrixcolor

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Lerp interpolates element-wise from a (t=0) to b (t=1). If either matrix
// has an explicit fifth row, both are interpolated as 5x5.
func Lerp(a, b Matrix, t float64) Matrix {
	pa, pb := a.padded(), b.padded()
	var out [25]float64
	for i := range out {
		out[i] = pa[i] + (pb[i]-pa[i])*t
	}
	if !a.full && !b.full {
		var m Matrix
		copy(m.e[:20], out[:20])
		return m
	}
	return fromPadded(out)
}

// MatrixTween animates every coefficient of a matrix from one value to
// another. Call Update(dt) each frame; the current matrix is returned and
// Done becomes true once the duration has elapsed, at which point the value
// is exactly the target matrix.
//
// There is no global animation manager. Callers update tweens themselves.
type MatrixTween struct {
	tweens  [25]*gween.Tween
	count   int
	full    bool
	instant bool
	to      Matrix
	current Matrix
	Done    bool
}

// NewMatrixTween creates a tween from one matrix to another over duration
// seconds using the easing function fn. A duration <= 0 is already Done and
// holds to.
func NewMatrixTween(from, to Matrix, duration float32, fn ease.TweenFunc) *MatrixTween {
	full := from.full || to.full
	pf, pt := from.padded(), to.padded()
	t := &MatrixTween{count: 20, full: full, to: to, current: from}
	if full {
		t.count = 25
	}
	for i := 0; i < t.count; i++ {
		t.tweens[i] = gween.New(float32(pf[i]), float32(pt[i]), duration, fn)
	}
	if duration <= 0 {
		t.instant = true
		t.current, t.Done = to, true
	}
	return t
}

// Update advances the tween by dt seconds and returns the current matrix.
// After Done is set, Update keeps returning the final value.
func (t *MatrixTween) Update(dt float32) Matrix {
	if t.Done {
		return t.current
	}
	var p [25]float64
	if !t.full {
		copy(p[20:], identityRow[:])
	}
	allDone := true
	for i := 0; i < t.count; i++ {
		val, finished := t.tweens[i].Update(dt)
		p[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	if allDone {
		// gween rounds through float32; finish on the exact target.
		t.current, t.Done = t.to, true
		return t.current
	}
	t.current = fromPadded(p)
	return t.current
}

// Value returns the matrix as of the last Update.
func (t *MatrixTween) Value() Matrix {
	return t.current
}

// Reset rewinds the tween to its starting value. A zero-duration tween
// finishes again immediately.
func (t *MatrixTween) Reset() {
	for i := 0; i < t.count; i++ {
		t.tweens[i].Reset()
	}
	if t.instant {
		t.current, t.Done = t.to, true
		return
	}
	t.Done = false
	t.Update(0)
}

// FilterTween animates the Matrix of a ColorMatrixFilter. Create one with
// TweenFilter and call Update(dt) each frame.
type FilterTween struct {
	tween  *MatrixTween
	target *ColorMatrixFilter
	Done   bool
}

// TweenFilter creates a FilterTween that moves f.Matrix to the target
// matrix over duration seconds using the easing function fn.
func TweenFilter(f *ColorMatrixFilter, to Matrix, duration float32, fn ease.TweenFunc) *FilterTween {
	return &FilterTween{
		tween:  NewMatrixTween(f.Matrix, to, duration, fn),
		target: f,
	}
}

// Update advances the tween by dt seconds and writes the result into the
// target filter.
func (g *FilterTween) Update(dt float32) {
	if g.Done {
		return
	}
	g.target.Matrix = g.tween.Update(dt)
	g.Done = g.tween.Done
}

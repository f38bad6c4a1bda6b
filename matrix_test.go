package matrixcolor

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertColor(t *testing.T, name string, got, want Color) {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("%s mismatch (-want +got):\n%s", name, diff)
	}
}

func assertElements(t *testing.T, name string, got Matrix, want []float64) {
	t.Helper()
	if diff := cmp.Diff(want, got.Elements(), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("%s elements mismatch (-want +got):\n%s", name, diff)
	}
}

var sampleColors = []Color{
	{0, 0, 0, 1},
	{1, 1, 1, 1},
	{0.25, 0.5, 0.75, 1},
	{0.9, 0.1, 0.3, 0.5},
	{0.4, 0.4, 0.4, 0},
}

// --- Construction ---

func TestFromElementsLengths(t *testing.T) {
	for _, n := range []int{0, 5, 19, 21, 24, 26} {
		_, err := FromElements(make([]float64, n))
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("FromElements(%d elements) err = %v, want ErrInvalidArgument", n, err)
		}
	}
	for _, n := range []int{20, 25} {
		m, err := FromElements(make([]float64, n))
		if err != nil {
			t.Fatalf("FromElements(%d elements): %v", n, err)
		}
		if m.Len() != n {
			t.Errorf("Len() = %d, want %d", m.Len(), n)
		}
	}
}

func TestFromElementsCopiesInput(t *testing.T) {
	seq := make([]float64, 20)
	seq[0] = 1
	m, err := FromElements(seq)
	if err != nil {
		t.Fatal(err)
	}
	seq[0] = 5
	if m.At(0, 0) != 1 {
		t.Errorf("matrix changed with its input slice: At(0,0) = %v", m.At(0, 0))
	}
}

func TestMustFromElementsPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for 19 elements")
		}
	}()
	MustFromElements(make([]float64, 19)...)
}

func TestIdentityElements(t *testing.T) {
	assertElements(t, "Identity", Identity(), []float64{
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
	})
}

func TestAtImplicitFifthRow(t *testing.T) {
	m := Identity()
	for col, want := range []float64{0, 0, 0, 0, 1} {
		if got := m.At(4, col); got != want {
			t.Errorf("At(4,%d) = %v, want %v", col, got, want)
		}
	}
}

func TestZeroValueMatrix(t *testing.T) {
	var m Matrix
	if m.Len() != 20 {
		t.Errorf("zero Matrix Len() = %d, want 20", m.Len())
	}
	assertColor(t, "zero apply", m.Apply(Color{0.5, 0.5, 0.5, 1}), Color{})
}

// --- Application ---

func TestApplyIdentity(t *testing.T) {
	for _, c := range sampleColors {
		assertColor(t, "identity", Apply(Identity(), c), c)
	}
}

func TestApplyFormula(t *testing.T) {
	m := MustFromElements(
		0.1, 0.2, 0.3, 0.4, 0.05,
		0.0, 0.5, 0.0, 0.0, 0.1,
		0.2, 0.0, 0.2, 0.0, 0.0,
		0.0, 0.0, 0.0, 0.5, 0.25,
	)
	c := Color{0.5, 0.4, 0.2, 1}
	want := Color{
		R: 0.1*0.5 + 0.2*0.4 + 0.3*0.2 + 0.4*1 + 0.05,
		G: 0.5*0.4 + 0.1,
		B: 0.2*0.5 + 0.2*0.2,
		A: 0.5 + 0.25,
	}
	assertColor(t, "formula", m.Apply(c), want)
}

func TestApplyClampsOutputOnly(t *testing.T) {
	// Inputs outside [0,1] are used as-is; only the result is clamped.
	got := Tint(0.5, 0.5, 0.5).Apply(Color{1.6, -0.4, 1.2, 1})
	assertColor(t, "unclamped input", got, Color{0.8, 0, 0.6, 1})
}

func TestBrightnessClamps(t *testing.T) {
	got := Brightness(2.0).Apply(Color{0.9, 0.9, 0.9, 1.0})
	assertColor(t, "over-bright", got, Color{1, 1, 1, 1})

	got = Brightness(-2.0).Apply(Color{0.9, 0.9, 0.9, 1.0})
	assertColor(t, "under-bright", got, Color{0, 0, 0, 1})
}

func TestOpacity(t *testing.T) {
	for _, c := range sampleColors {
		assertColor(t, "opacity(1)", Opacity(1).Apply(c), c)
		if a := Opacity(0).Apply(c).A; a != 0 {
			t.Errorf("opacity(0) alpha = %v, want 0", a)
		}
	}
	assertNear(t, "opacity(0.5).A", Opacity(0.5).Apply(Color{1, 1, 1, 0.8}).A, 0.4)
}

// --- Algebra ---

func TestMulComposition(t *testing.T) {
	a := Contrast(0.8)
	b := Saturation(0.5)
	c := Hue(40)
	colors := []Color{{0.4, 0.5, 0.6, 1}, {0.3, 0.35, 0.3, 0.7}, {0.5, 0.5, 0.5, 1}}
	for _, col := range colors {
		assertColor(t, "A*B", a.Mul(b).Apply(col), a.Apply(b.Apply(col)))
		assertColor(t, "A*B*C", a.Mul(b).Mul(c).Apply(col), a.Apply(b.Apply(c.Apply(col))))
	}
}

func TestMulRightOperandAppliedFirst(t *testing.T) {
	c := Color{0.4, 0.4, 0.4, 1}
	// Tint first: 0.4*0.5 + 0.2 = 0.4. Brightness first would give 0.3.
	got := Brightness(0.2).Mul(Tint(0.5, 0.5, 0.5)).Apply(c)
	assertNear(t, "R", got.R, 0.4)
}

func TestMulAssociative(t *testing.T) {
	a, b, c := Hue(75), Contrast(1.3), Brightness(-0.1)
	left := a.Mul(b).Mul(c)
	right := a.Mul(b.Mul(c))
	if !left.ApproxEqual(right, epsilon) {
		t.Errorf("(AB)C = %v, A(BC) = %v", left, right)
	}
}

func TestMulIdentity(t *testing.T) {
	m := Sepia()
	if !Identity().Mul(m).ApproxEqual(m, epsilon) || !m.Mul(Identity()).ApproxEqual(m, epsilon) {
		t.Error("identity should be neutral for Mul")
	}
}

func TestMulTrimsAffineResult(t *testing.T) {
	full := MustFromElements(
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	)
	if got := full.Mul(full).Len(); got != 20 {
		t.Errorf("Len() = %d, want 20 for affine product", got)
	}
}

func TestMulKeepsNonAffineFifthRow(t *testing.T) {
	m := MustFromElements(
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 2,
	)
	got := m.Mul(Brightness(0.1))
	if got.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", got.Len())
	}
	assertNear(t, "At(4,4)", got.At(4, 4), 2)
	assertNear(t, "At(0,4)", got.At(0, 4), 0.1)
}

func TestScaleElements(t *testing.T) {
	a := Hue(30)
	scaled := a.Scale(2)
	want := a.Elements()
	for i := range want {
		want[i] *= 2
	}
	assertElements(t, "A*2", scaled, want)
	if scaled.Len() != 20 {
		t.Errorf("Len() = %d, want 20", scaled.Len())
	}
}

func TestTimesDispatch(t *testing.T) {
	a, b := Hue(30), Saturation(0.2)
	if !a.Times(b).Equal(a.Mul(b)) {
		t.Error("Times(Matrix) should compose")
	}
	if !a.Times(Scalar(3)).Equal(a.Scale(3)) {
		t.Error("Times(Scalar) should scale")
	}
}

func TestAddSub(t *testing.T) {
	a, b := Brightness(0.25), Invert()
	sum, err := a.Add(b)
	if err != nil {
		t.Fatal(err)
	}
	ea, eb := a.Elements(), b.Elements()
	want := make([]float64, 20)
	for i := range want {
		want[i] = ea[i] + eb[i]
	}
	assertElements(t, "A+B", sum, want)

	diff, err := sum.Sub(b)
	if err != nil {
		t.Fatal(err)
	}
	if !diff.ApproxEqual(a, epsilon) {
		t.Errorf("(A+B)-B = %v, want %v", diff, a)
	}
}

func TestAddSubKeepLeftFifthRow(t *testing.T) {
	left := MustFromElements(
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	)
	right := MustFromElements(
		1, 0, 0, 0, 0.5,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0.25, 0, 0, 0, 3,
	)
	sum, err := left.Add(right)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Len() != 25 {
		t.Fatalf("Len() = %d, want 25", sum.Len())
	}
	assertNear(t, "sum At(0,0)", sum.At(0, 0), 2)
	assertNear(t, "sum At(0,4)", sum.At(0, 4), 0.5)
	assertNear(t, "sum At(4,0)", sum.At(4, 0), 0)
	assertNear(t, "sum At(4,4)", sum.At(4, 4), 1)

	diff, err := right.Sub(left)
	if err != nil {
		t.Fatal(err)
	}
	assertNear(t, "diff At(0,0)", diff.At(0, 0), 0)
	assertNear(t, "diff At(4,0)", diff.At(4, 0), 0.25)
	assertNear(t, "diff At(4,4)", diff.At(4, 4), 3)
}

func TestAddLengthMismatch(t *testing.T) {
	full := MustFromElements(make([]float64, 25)...)
	if _, err := Identity().Add(full); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Add err = %v, want ErrInvalidArgument", err)
	}
	if _, err := full.Sub(Identity()); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("Sub err = %v, want ErrInvalidArgument", err)
	}
}

func TestOperationsDoNotMutate(t *testing.T) {
	a := Hue(10)
	before := a.Elements()
	_ = a.Mul(Invert())
	_ = a.Scale(4)
	_, _ = a.Add(Invert())
	_, _ = a.Sub(Invert())
	assertElements(t, "after ops", a, before)

	out := a.Elements()
	out[0] = 99
	if a.At(0, 0) == 99 {
		t.Error("Elements should return a copy")
	}
}

func TestEqualIgnoresExplicitIdentityRow(t *testing.T) {
	full := MustFromElements(
		1, 0, 0, 0, 0,
		0, 1, 0, 0, 0,
		0, 0, 1, 0, 0,
		0, 0, 0, 1, 0,
		0, 0, 0, 0, 1,
	)
	if !full.Equal(Identity()) {
		t.Error("25-element identity should equal Identity()")
	}
	if full.Equal(Invert()) {
		t.Error("identity should not equal Invert()")
	}
}

func TestString(t *testing.T) {
	want := "[1 0 0 0 0; 0 1 0 0 0; 0 0 1 0 0; 0 0 0 1 0]"
	if got := Identity().String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

package matrixcolor

import "github.com/hajimehoshi/ebiten/v2/colorm"

// ColorM converts m to an Ebitengine colorm.ColorM, for drawing with
// colorm.DrawImage. Only the first 4 rows are carried over; ColorM keeps
// its own fixed affine fifth row.
func (m Matrix) ColorM() colorm.ColorM {
	var cm colorm.ColorM
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			cm.SetElement(i, j, m.e[i*5+j])
		}
	}
	return cm
}

// FromColorM returns the 20-element matrix held by cm.
func FromColorM(cm colorm.ColorM) Matrix {
	var m Matrix
	for i := 0; i < 4; i++ {
		for j := 0; j < 5; j++ {
			m.e[i*5+j] = cm.Element(i, j)
		}
	}
	return m
}

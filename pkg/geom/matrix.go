// Package geom implements the geometric resampling half of the engine:
// a small linear solver, projective 3x3 matrices, four-point perspective
// resampling and grid-mesh warping.
package geom

import (
	"math"

	"golang.org/x/image/math/f64"
)

// Mat3 is a row-major projective transform
//
//	| a b c |
//	| d e f |
//	| g h 1 |
//
// normalized so that the bottom-right entry is 1.
type Mat3 = f64.Mat3

// Point is a position in pixel space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Identity returns the identity transform.
func Identity() Mat3 {
	return Mat3{1, 0, 0, 0, 1, 0, 0, 0, 1}
}

// Normalize divides m by its bottom-right entry. A (near) zero entry leaves
// m unchanged.
func Normalize(m Mat3) Mat3 {
	w := m[8]
	if math.Abs(w) < pivotEpsilon || w == 1 {
		return m
	}
	for i := range m {
		m[i] /= w
	}
	return m
}

// TransformPoint maps (x,y) through m: x' = (ax+by+c)/w, y' = (dx+ey+f)/w
// with w = gx+hy+1.
func TransformPoint(m Mat3, x, y float64) (float64, float64) {
	w := m[6]*x + m[7]*y + m[8]
	if w == 0 {
		return math.Inf(1), math.Inf(1)
	}
	return (m[0]*x + m[1]*y + m[2]) / w, (m[3]*x + m[4]*y + m[5]) / w
}

// Mul returns a·b.
func Mul(a, b Mat3) Mat3 {
	var out Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out[r*3+c] = a[r*3]*b[c] + a[r*3+1]*b[3+c] + a[r*3+2]*b[6+c]
		}
	}
	return out
}

// ApproxEqual reports whether every entry of a and b differs by at most tol.
func ApproxEqual(a, b Mat3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

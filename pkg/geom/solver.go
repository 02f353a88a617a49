package geom

import "math"

// pivotEpsilon is the smallest pivot magnitude accepted before a system is
// declared singular.
const pivotEpsilon = 1e-10

// Solve solves the dense n x n system A·x = b by Gaussian elimination with
// partial pivoting. A and b are not modified. ok is false when a pivot
// magnitude falls below 1e-10 or the shapes disagree.
func Solve(a [][]float64, b []float64) (x []float64, ok bool) {
	n := len(b)
	if len(a) != n {
		return nil, false
	}
	// augmented copy
	m := make([][]float64, n)
	for i := range a {
		if len(a[i]) != n {
			return nil, false
		}
		row := make([]float64, n+1)
		copy(row, a[i])
		row[n] = b[i]
		m[i] = row
	}

	for col := 0; col < n; col++ {
		pivot := col
		best := math.Abs(m[col][col])
		for r := col + 1; r < n; r++ {
			if v := math.Abs(m[r][col]); v > best {
				best = v
				pivot = r
			}
		}
		if best < pivotEpsilon {
			return nil, false
		}
		m[col], m[pivot] = m[pivot], m[col]
		for r := col + 1; r < n; r++ {
			f := m[r][col] / m[col][col]
			if f == 0 {
				continue
			}
			for c := col; c <= n; c++ {
				m[r][c] -= f * m[col][c]
			}
		}
	}

	x = make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := m[r][n]
		for c := r + 1; c < n; c++ {
			sum -= m[r][c] * x[c]
		}
		x[r] = sum / m[r][r]
	}
	return x, true
}

// Invert3x3 inverts m by cofactor expansion. ok is false when |det| < 1e-10.
func Invert3x3(m Mat3) (inv Mat3, ok bool) {
	a, b, c := m[0], m[1], m[2]
	d, e, f := m[3], m[4], m[5]
	g, h, i := m[6], m[7], m[8]

	c00 := e*i - f*h
	c01 := -(d*i - f*g)
	c02 := d*h - e*g
	det := a*c00 + b*c01 + c*c02
	if math.Abs(det) < pivotEpsilon {
		return Mat3{}, false
	}
	invDet := 1 / det
	inv = Mat3{
		c00 * invDet, -(b*i - c*h) * invDet, (b*f - c*e) * invDet,
		c01 * invDet, (a*i - c*g) * invDet, -(a*f - c*d) * invDet,
		c02 * invDet, -(a*h - b*g) * invDet, (a*e - b*d) * invDet,
	}
	return inv, true
}

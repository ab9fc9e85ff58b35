package cv

// Vec2 is a 2-element column vector
type Vec2 [2]float64

// Mat2 is a 2x2 matrix stored in row-major order
type Mat2 [2][2]float64

// Diag2 returns a diagonal matrix with a on the diagonal
func Diag2(a float64) Mat2 {
	return Mat2{{a, 0}, {0, a}}
}

// Mul returns m*n
func (m Mat2) Mul(n Mat2) Mat2 {
	var out Mat2
	for i := 0; i < 2; i++ {
		for j := 0; j < 2; j++ {
			out[i][j] = m[i][0]*n[0][j] + m[i][1]*n[1][j]
		}
	}
	return out
}

// Add returns m+n
func (m Mat2) Add(n Mat2) Mat2 {
	return Mat2{
		{m[0][0] + n[0][0], m[0][1] + n[0][1]},
		{m[1][0] + n[1][0], m[1][1] + n[1][1]},
	}
}

// T returns transpose of m
func (m Mat2) T() Mat2 {
	return Mat2{
		{m[0][0], m[1][0]},
		{m[0][1], m[1][1]},
	}
}

// MulVec returns m*v
func (m Mat2) MulVec(v Vec2) Vec2 {
	return Vec2{
		m[0][0]*v[0] + m[0][1]*v[1],
		m[1][0]*v[0] + m[1][1]*v[1],
	}
}

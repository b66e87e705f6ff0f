package willowmap

import "math"

// Affine is a 2D affine matrix [a, b, c, d, tx, ty]:
//
//	| a  c  tx |
//	| b  d  ty |
//	| 0  0   1 |
type Affine [6]float64

// Identity is the identity affine matrix.
var Identity = Affine{1, 0, 0, 1, 0, 0}

// Mul returns p * c: c is applied first, then p.
func (p Affine) Mul(c Affine) Affine {
	return Affine{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

// Translate returns m * Translate(dx, dy). Like a canvas, later operations
// apply to coordinates before earlier ones.
func (m Affine) Translate(dx, dy float64) Affine {
	m[4] += m[0]*dx + m[2]*dy
	m[5] += m[1]*dx + m[3]*dy
	return m
}

// Scale returns m * Scale(sx, sy).
func (m Affine) Scale(sx, sy float64) Affine {
	m[0] *= sx
	m[1] *= sx
	m[2] *= sy
	m[3] *= sy
	return m
}

// Rotate returns m * Rotate(deg). Positive angles turn clockwise on screen
// (Y down).
func (m Affine) Rotate(deg float64) Affine {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return m.Mul(Affine{cos, sin, -sin, cos, 0, 0})
}

// Apply transforms the point (x, y).
func (m Affine) Apply(x, y float64) (float64, float64) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

// Invert returns the inverse matrix.
// Returns Identity if the matrix is singular (determinant ~ 0).
func (m Affine) Invert() Affine {
	det := m[0]*m[3] - m[2]*m[1]
	if det > -1e-12 && det < 1e-12 {
		return Identity
	}
	invDet := 1.0 / det
	a := m[3] * invDet
	b := -m[1] * invDet
	c := -m[2] * invDet
	d := m[0] * invDet
	return Affine{
		a, b, c, d,
		-(a*m[4] + c*m[5]),
		-(b*m[4] + d*m[5]),
	}
}

// rotateVec rotates v by deg degrees about the origin.
func rotateVec(v Vec2, deg float64) Vec2 {
	if deg == 0 {
		return v
	}
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// --- float32 matrices ---
//
// Physical draw calls are float32, matching GPU vertex precision. The
// Recorder keeps its matrix stack in this form so that precision loss at
// large coordinates is observable.

type affine32 [6]float32

var identity32 = affine32{1, 0, 0, 1, 0, 0}

func (p affine32) mul(c affine32) affine32 {
	return affine32{
		p[0]*c[0] + p[2]*c[1],
		p[1]*c[0] + p[3]*c[1],
		p[0]*c[2] + p[2]*c[3],
		p[1]*c[2] + p[3]*c[3],
		p[0]*c[4] + p[2]*c[5] + p[4],
		p[1]*c[4] + p[3]*c[5] + p[5],
	}
}

func (m affine32) translate(dx, dy float32) affine32 {
	m[4] += m[0]*dx + m[2]*dy
	m[5] += m[1]*dx + m[3]*dy
	return m
}

func (m affine32) scale(sx, sy float32) affine32 {
	m[0] *= sx
	m[1] *= sx
	m[2] *= sy
	m[3] *= sy
	return m
}

func (m affine32) rotate(deg float32) affine32 {
	sin, cos := math.Sincos(float64(deg) * math.Pi / 180)
	s, c := float32(sin), float32(cos)
	return m.mul(affine32{c, s, -s, c, 0, 0})
}

func (m affine32) apply(x, y float32) (float32, float32) {
	return m[0]*x + m[2]*y + m[4], m[1]*x + m[3]*y + m[5]
}

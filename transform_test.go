package willowmap

import (
	"math"
	"testing"
)

func TestAffineIdentityMul(t *testing.T) {
	m := Affine{2, 0, 0, 3, 10, 20}
	assertMatrix(t, "I*m", Identity.Mul(m), m)
	assertMatrix(t, "m*I", m.Mul(Identity), m)
}

func TestAffineTranslate(t *testing.T) {
	got := Identity.Translate(10, 20).Translate(5, -5)
	assertMatrix(t, "translate", got, Affine{1, 0, 0, 1, 15, 15})
}

func TestAffinePostMultiplyOrder(t *testing.T) {
	// Scale then translate: the translation is scaled.
	got := Identity.Scale(2, 2).Translate(10, 0)
	x, y := got.Apply(1, 1)
	assertNear(t, "x", x, 22)
	assertNear(t, "y", y, 2)
}

func TestAffineRotate90(t *testing.T) {
	got := Identity.Rotate(90)
	// cos(90)=0, sin(90)=1 → a=0, b=1, c=-1, d=0
	assertMatrix(t, "rot90", got, Affine{0, 1, -1, 0, 0, 0})
	x, y := got.Apply(1, 0)
	assertNear(t, "x", x, 0)
	assertNear(t, "y", y, 1)
}

func TestAffineInvert(t *testing.T) {
	m := Identity.Translate(100, -40).Rotate(33).Scale(1.5, 0.5)
	x, y := m.Apply(7, 9)
	ix, iy := m.Invert().Apply(x, y)
	assertNear(t, "x", ix, 7)
	assertNear(t, "y", iy, 9)
}

func TestAffineInvertSingularReturnsIdentity(t *testing.T) {
	assertMatrix(t, "singular", Affine{0, 0, 0, 0, 5, 5}.Invert(), Identity)
}

func TestRotateVecMatchesAffine(t *testing.T) {
	for _, deg := range []float64{0, 15, 90, -45, 270} {
		v := rotateVec(Vec2{3, -4}, deg)
		x, y := Identity.Rotate(deg).Apply(3, -4)
		assertNear(t, "x", v.X, x)
		assertNear(t, "y", v.Y, y)
	}
}

func TestAffine32MatchesAffine(t *testing.T) {
	m64 := Identity.Scale(2, 2).Translate(-3.5, 1.25).Rotate(30)
	m32 := identity32.scale(2, 2).translate(-3.5, 1.25).rotate(30)
	for i := range m64 {
		if math.Abs(float64(m32[i])-m64[i]) > 1e-5 {
			t.Errorf("[%d] = %v, want %v", i, m32[i], m64[i])
		}
	}
}

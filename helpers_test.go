package willowmap

import (
	"math"
	"testing"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
)

const epsilon = 1e-9

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > epsilon {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertMatrix(t *testing.T, name string, got, want Affine) {
	t.Helper()
	for i := range got {
		if math.Abs(got[i]-want[i]) > epsilon {
			t.Errorf("%s[%d] = %v, want %v (full: %v vs %v)", name, i, got[i], want[i], got, want)
		}
	}
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

// testProjection maps radians to map pixels by a power-of-two factor, so
// ToPixels and FromPixels round-trip exactly.
type testProjection struct {
	k        float64
	bounds   Rect
	scale    float64
	rotation float64
}

func newTestProjection(bounds Rect) *testProjection {
	return &testProjection{k: 1024, bounds: bounds, scale: 1}
}

func (p *testProjection) ToPixels(ll s2.LatLng) Vec2 {
	return Vec2{float64(ll.Lng) * p.k, float64(ll.Lat) * p.k}
}

func (p *testProjection) FromPixels(x, y float64) s2.LatLng {
	return s2.LatLng{Lat: s1.Angle(y / p.k), Lng: s1.Angle(x / p.k)}
}

func (p *testProjection) ScreenBounds() Rect { return p.bounds }
func (p *testProjection) Scale() float64     { return p.scale }
func (p *testProjection) Rotation() float64  { return p.rotation }

// at returns the position whose map pixel is (x, y).
func (p *testProjection) at(x, y float64) s2.LatLng {
	return p.FromPixels(x, y)
}

// pin is a 20x30 icon; drawing bounds are 20x60 with the anchor in the
// middle, hit bounds the upper 20x30.
func pin(name string) *Icon {
	return NewIcon(name, 20, 30, ColorWhite)
}

package ebitenhost

import (
	"math"
	"testing"

	"github.com/phanxgames/willowmap"
)

func newTestSurface(t *testing.T) *Surface {
	t.Helper()
	s, err := NewSurface(nil)
	if err != nil {
		t.Fatalf("NewSurface: %v", err)
	}
	return s
}

func TestSurfaceGeoMMatchesAffine(t *testing.T) {
	s := newTestSurface(t)
	m := willowmap.Identity

	s.Scale(2, 2)
	m = m.Scale(2, 2)
	s.Translate(-0.25, -0.75)
	m = m.Translate(-0.25, -0.75)
	s.Translate(400, 300)
	m = m.Translate(400, 300)
	s.Rotate(30)
	m = m.Rotate(30)
	s.Translate(-400, -300)
	m = m.Translate(-400, -300)

	g := s.GeoM()
	points := [][2]float64{{0, 0}, {10, 20}, {-350, 1200}, {799, 599}}
	for _, p := range points {
		gx, gy := g.Apply(p[0], p[1])
		ax, ay := m.Apply(p[0], p[1])
		if math.Abs(gx-ax) > 1e-3 || math.Abs(gy-ay) > 1e-3 {
			t.Errorf("point %v: GeoM = (%v, %v), Affine = (%v, %v)", p, gx, gy, ax, ay)
		}
	}
}

func TestSurfaceSaveRestore(t *testing.T) {
	s := newTestSurface(t)
	s.Translate(5, 5)
	s.Save()
	s.Scale(3, 3)
	s.Rotate(90)
	s.Restore()

	g := s.GeoM()
	x, y := g.Apply(1, 1)
	if x != 6 || y != 6 {
		t.Errorf("after Restore Apply(1,1) = (%v, %v), want (6, 6)", x, y)
	}
}

func TestSurfaceRestoreWithoutSavePanics(t *testing.T) {
	s := newTestSurface(t)
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	s.Restore()
}

func TestSurfaceSetTargetResets(t *testing.T) {
	s := newTestSurface(t)
	s.Save()
	s.Translate(100, 100)
	s.SetTarget(nil)

	g := s.GeoM()
	x, y := g.Apply(0, 0)
	if x != 0 || y != 0 {
		t.Errorf("Apply(0,0) = (%v, %v), want origin", x, y)
	}
	if len(s.stack) != 0 {
		t.Errorf("stack depth = %d, want 0", len(s.stack))
	}
}

func TestSurfaceFaceCache(t *testing.T) {
	s := newTestSurface(t)
	style := willowmap.DefaultLabelStyle()
	a := s.face(&style)
	b := s.face(&style)
	if a != b {
		t.Error("face should be cached per size and weight")
	}
	style.Bold = false
	if c := s.face(&style); c == a {
		t.Error("regular and bold faces should differ")
	}
}

func TestSurfaceDrawWithoutTargetIsNoop(t *testing.T) {
	s := newTestSurface(t)
	style := willowmap.DefaultLabelStyle()
	s.DrawIcon(willowmap.NewIcon("pin", 20, 30, willowmap.ColorWhite), 0, 0)
	s.DrawText("label", 0, 0, &style)
}

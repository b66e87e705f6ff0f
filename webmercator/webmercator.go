// Package webmercator implements willowmap.Projection for a slippy map in
// the Web Mercator projection (EPSG:3857) with 256-pixel tiles.
package webmercator

import (
	"math"

	"github.com/golang/geo/s1"
	"github.com/golang/geo/s2"
	"github.com/wroge/wgs84"

	"github.com/phanxgames/willowmap"
)

const (
	// TileSize is the edge length of one map tile in pixels.
	TileSize = 256
	// MaxLatitude is the latitude at which the projection becomes square.
	MaxLatitude = 85.05112878
	MinZoom     = 0.0
	MaxZoom     = 22.0

	// halfCircumference is the EPSG:3857 easting of the antimeridian.
	halfCircumference = 20037508.342789244
)

var (
	toMercator   = wgs84.EPSG().Transform(4326, 3857)
	fromMercator = wgs84.EPSG().Transform(3857, 4326)
)

// Map is a Web Mercator view: a center, a fractional zoom level, a rotation,
// and a transient pinch scale applied on top of the zoom while a gesture is
// in progress.
type Map struct {
	center   s2.LatLng
	zoom     float64
	rotation float64
	pinch    float64
	width    float64
	height   float64
}

// New returns a map of the given view size centered on center.
func New(center s2.LatLng, zoom float64, width, height int) *Map {
	m := &Map{pinch: 1}
	m.SetViewSize(width, height)
	m.ZoomTo(zoom)
	m.SetCenter(center)
	return m
}

// Center returns the geographic view center.
func (m *Map) Center() s2.LatLng { return m.center }

// Zoom returns the zoom level.
func (m *Map) Zoom() float64 { return m.zoom }

// ViewSize returns the view size in view pixels.
func (m *Map) ViewSize() (w, h float64) { return m.width, m.height }

// WorldSize returns the edge length of the whole world in map pixels.
func (m *Map) WorldSize() float64 {
	return TileSize * math.Exp2(m.zoom)
}

// SetCenter moves the view center, clamping latitude to the projection's
// range and wrapping longitude.
func (m *Map) SetCenter(ll s2.LatLng) {
	m.center = clampLatLng(ll)
}

// SetViewSize sets the view size in view pixels.
func (m *Map) SetViewSize(width, height int) {
	m.width = math.Max(0, float64(width))
	m.height = math.Max(0, float64(height))
}

// ZoomTo sets the zoom level, clamped to [MinZoom, MaxZoom].
func (m *Map) ZoomTo(z float64) {
	if math.IsNaN(z) {
		return
	}
	m.zoom = math.Min(MaxZoom, math.Max(MinZoom, z))
}

// SetRotation sets the map rotation in degrees, normalized to [0, 360).
func (m *Map) SetRotation(deg float64) {
	if math.IsNaN(deg) || math.IsInf(deg, 0) {
		return
	}
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	m.rotation = deg
}

// SetPinchScale sets the transient gesture scale. Non-positive values are
// ignored.
func (m *Map) SetPinchScale(s float64) {
	if s > 0 && !math.IsInf(s, 0) {
		m.pinch = s
	}
}

// CommitPinch folds the pinch scale into the zoom level and resets it.
func (m *Map) CommitPinch() {
	m.ZoomTo(m.zoom + math.Log2(m.pinch))
	m.pinch = 1
}

// Pan moves the map so that content shifts by (dx, dy) view pixels, as when
// the user drags the map.
func (m *Map) Pan(dx, dy float64) {
	sin, cos := math.Sincos(-m.rotation * math.Pi / 180)
	mx := (dx*cos - dy*sin) / m.pinch
	my := (dx*sin + dy*cos) / m.pinch

	c := m.ToPixels(m.center)
	world := m.WorldSize()
	y := math.Min(world, math.Max(0, c.Y-my))
	m.SetCenter(m.FromPixels(c.X-mx, y))
}

var _ willowmap.Projection = (*Map)(nil)

// ToPixels returns the map-pixel position of ll at the current zoom.
func (m *Map) ToPixels(ll s2.LatLng) willowmap.Vec2 {
	lat := clampLat(ll.Lat.Degrees())
	x, y, _ := toMercator(ll.Lng.Degrees(), lat, 0)
	world := m.WorldSize()
	return willowmap.Vec2{
		X: (x + halfCircumference) / (2 * halfCircumference) * world,
		Y: (halfCircumference - y) / (2 * halfCircumference) * world,
	}
}

// FromPixels returns the geographic position at map pixel (x, y).
func (m *Map) FromPixels(x, y float64) s2.LatLng {
	world := m.WorldSize()
	mx := x/world*(2*halfCircumference) - halfCircumference
	my := halfCircumference - y/world*(2*halfCircumference)
	lng, lat, _ := fromMercator(mx, my, 0)
	return clampLatLng(s2.LatLngFromDegrees(lat, lng))
}

// ScreenBounds returns the unrotated view rectangle in map pixels.
func (m *Map) ScreenBounds() willowmap.Rect {
	c := m.ToPixels(m.center)
	w := m.width / m.pinch
	h := m.height / m.pinch
	return willowmap.Rect{X: c.X - w/2, Y: c.Y - h/2, Width: w, Height: h}
}

// Scale returns the transient pinch scale.
func (m *Map) Scale() float64 { return m.pinch }

// Rotation returns the map rotation in degrees.
func (m *Map) Rotation() float64 { return m.rotation }

func clampLat(lat float64) float64 {
	return math.Min(MaxLatitude, math.Max(-MaxLatitude, lat))
}

func clampLatLng(ll s2.LatLng) s2.LatLng {
	lat := clampLat(ll.Lat.Degrees())
	return s2.LatLng{
		Lat: s1.Angle(lat) * s1.Degree,
		Lng: ll.Lng.Normalized(),
	}
}

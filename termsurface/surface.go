// Package termsurface renders a willowmap overlay onto a character-cell
// terminal through tcell. Each icon becomes one glyph in the cell under its
// center; labels are written as plain runs of text.
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/phanxgames/willowmap"
)

// Default cell size in view pixels. Terminal cells are roughly twice as tall
// as they are wide.
const (
	DefaultCellWidth  = 8.0
	DefaultCellHeight = 16.0
)

// Surface is a willowmap.Surface over a tcell screen. View pixels map to
// cells by dividing by the cell size.
type Surface struct {
	screen tcell.Screen
	cellW  float64
	cellH  float64

	m     willowmap.Affine
	stack []willowmap.Affine
}

// NewSurface creates a surface on screen with the given cell size in view
// pixels. Non-positive sizes fall back to the defaults.
func NewSurface(screen tcell.Screen, cellW, cellH float64) *Surface {
	if !(cellW > 0) {
		cellW = DefaultCellWidth
	}
	if !(cellH > 0) {
		cellH = DefaultCellHeight
	}
	return &Surface{screen: screen, cellW: cellW, cellH: cellH, m: willowmap.Identity}
}

// ViewSize returns the screen size in view pixels.
func (s *Surface) ViewSize() (w, h int) {
	cols, rows := s.screen.Size()
	return int(float64(cols) * s.cellW), int(float64(rows) * s.cellH)
}

// CellToView returns the view-pixel center of the cell (col, row).
func (s *Surface) CellToView(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// ViewToCell returns the cell containing the view pixel (x, y).
func (s *Surface) ViewToCell(x, y float64) (col, row int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// Reset clears the transform stack. Call once per frame.
func (s *Surface) Reset() {
	s.m = willowmap.Identity
	s.stack = s.stack[:0]
}

// Save pushes the current transform.
func (s *Surface) Save() {
	s.stack = append(s.stack, s.m)
}

// Restore pops the transform pushed by the matching Save.
func (s *Surface) Restore() {
	if len(s.stack) == 0 {
		panic("termsurface: Surface.Restore without Save")
	}
	s.m = s.stack[len(s.stack)-1]
	s.stack = s.stack[:len(s.stack)-1]
}

// Translate moves the origin.
func (s *Surface) Translate(dx, dy float32) {
	s.m = s.m.Translate(float64(dx), float64(dy))
}

// Scale scales about the origin.
func (s *Surface) Scale(sx, sy float32) {
	s.m = s.m.Scale(float64(sx), float64(sy))
}

// Rotate rotates by deg degrees about the origin.
func (s *Surface) Rotate(deg float32) {
	s.m = s.m.Rotate(float64(deg))
}

// DrawIcon puts the icon's glyph in the cell under the icon's center.
func (s *Surface) DrawIcon(icon *willowmap.Icon, x, y float32) {
	if !icon.Valid() {
		return
	}
	vx, vy := s.m.Apply(float64(x)+icon.Width/2, float64(y)+icon.Height/2)
	col, row := s.ViewToCell(vx, vy)

	glyph := icon.Glyph
	if glyph == 0 {
		glyph = '*'
	}
	s.screen.SetContent(col, row, glyph, nil, styleFor(icon.Tint, false))
}

// DrawText writes str on the row containing its baseline point.
func (s *Surface) DrawText(str string, x, y float32, style *willowmap.LabelStyle) {
	if str == "" || style == nil {
		return
	}
	vx, vy := s.m.Apply(float64(x), float64(y))
	col, row := s.ViewToCell(vx, vy)

	runes := []rune(str)
	switch style.Align {
	case willowmap.TextAlignCenter:
		col -= len(runes) / 2
	case willowmap.TextAlignRight:
		col -= len(runes)
	}
	st := styleFor(style.Color, style.Bold)
	for i, r := range runes {
		s.screen.SetContent(col+i, row, r, nil, st)
	}
}

func styleFor(c willowmap.Color, bold bool) tcell.Style {
	rgba := c.RGBA()
	st := tcell.StyleDefault.Bold(bold)
	if rgba.A == 0 {
		return st
	}
	return st.Foreground(tcell.NewRGBColor(int32(rgba.R), int32(rgba.G), int32(rgba.B)))
}

var _ willowmap.Surface = (*Surface)(nil)

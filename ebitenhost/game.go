// Package ebitenhost runs a willowmap overlay inside an Ebitengine window:
// mouse and touch input feed the gesture detector and router, unconsumed
// drags pan the map, and the overlay draws through a GeoM-backed Surface.
package ebitenhost

import (
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/rs/zerolog"

	"github.com/phanxgames/willowmap"
	"github.com/phanxgames/willowmap/webmercator"
)

const (
	wheelZoomStep  = 0.25
	keyRotateStep  = 15.0 // degrees
	infoWindowW    = 200
	infoWindowH    = 56
	infoWindowText = 14
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
}

// Game implements ebiten.Game around a willowmap Session.
type Game struct {
	Map     *webmercator.Map
	Session *willowmap.Session
	Info    *willowmap.InfoWindow

	Background color.Color
	GridColor  color.Color
	PopupColor color.Color

	surface *Surface
	log     zerolog.Logger
	touches []ebiten.TouchID
}

// NewGame wires o to m. Taps on markers focus them and open the info window;
// unconsumed drags pan m.
func NewGame(o *willowmap.Overlay, m *webmercator.Map, log zerolog.Logger) (*Game, error) {
	surface, err := NewSurface(nil)
	if err != nil {
		return nil, err
	}
	session := willowmap.NewSession(o, m)
	session.Pan = m.Pan

	info := willowmap.NewInfoWindow()
	info.Width = infoWindowW
	info.Height = infoWindowH
	session.Router.Popup = info

	return &Game{
		Map:        m,
		Session:    session,
		Info:       info,
		Background: color.RGBA{R: 0xe8, G: 0xe4, B: 0xd8, A: 0xff},
		GridColor:  color.RGBA{R: 0xc8, G: 0xc2, B: 0xb0, A: 0xff},
		PopupColor: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xf0},
		surface:    surface,
		log:        log.With().Str("component", "ebitenhost").Logger(),
	}, nil
}

// Update reads input and advances the session by one tick.
func (g *Game) Update() error {
	dt := time.Second / time.Duration(ebiten.TPS())

	pressed, x, y := g.pointer()
	g.Session.Update(pressed, x, y, dt)

	if _, wy := ebiten.Wheel(); wy != 0 {
		g.Map.ZoomTo(g.Map.Zoom() + wy*wheelZoomStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		g.Map.SetRotation(g.Map.Rotation() - keyRotateStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.Map.SetRotation(g.Map.Rotation() + keyRotateStep)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.Session.InjectCancel()
	}

	g.Info.Update(float32(dt.Seconds()))
	return nil
}

// pointer returns the primary pointer: the first touch if any, else the
// left mouse button.
func (g *Game) pointer() (pressed bool, x, y float64) {
	g.touches = ebiten.AppendTouchIDs(g.touches[:0])
	if len(g.touches) > 0 {
		tx, ty := ebiten.TouchPosition(g.touches[0])
		return true, float64(tx), float64(ty)
	}
	mx, my := ebiten.CursorPosition()
	return ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft), float64(mx), float64(my)
}

// Draw renders the tile grid, the overlay, and the info window.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(g.Background)

	vp := willowmap.Snapshot(g.Map)
	g.drawGrid(screen, vp)

	g.surface.SetTarget(screen)
	g.Session.Draw(g.surface)

	if g.Info.Visible() {
		g.drawInfo(screen, vp)
	}
}

// drawGrid strokes the tile boundaries so panning and rotation are visible
// without tile imagery.
func (g *Game) drawGrid(screen *ebiten.Image, vp willowmap.Viewport) {
	if vp.Empty() {
		return
	}
	cull := vp.CullBounds()
	const step = webmercator.TileSize

	for x := math.Floor(cull.X/step) * step; x <= cull.Right(); x += step {
		g.strokeMapLine(screen, vp, willowmap.Vec2{X: x, Y: cull.Y}, willowmap.Vec2{X: x, Y: cull.Bottom()})
	}
	for y := math.Floor(cull.Y/step) * step; y <= cull.Bottom(); y += step {
		g.strokeMapLine(screen, vp, willowmap.Vec2{X: cull.X, Y: y}, willowmap.Vec2{X: cull.Right(), Y: y})
	}
}

func (g *Game) strokeMapLine(screen *ebiten.Image, vp willowmap.Viewport, a, b willowmap.Vec2) {
	p0 := vp.MapToView(a)
	p1 := vp.MapToView(b)
	vector.StrokeLine(screen, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y), 1, g.GridColor, true)
}

// drawInfo draws the info window in its frame, scaled by the open/close
// animation.
func (g *Game) drawInfo(screen *ebiten.Image, vp willowmap.Viewport) {
	frame := g.Info.Frame(vp)
	sc := g.Info.Scale()

	vector.DrawFilledRect(screen,
		float32(frame.X), float32(frame.Y),
		float32(frame.Width), float32(frame.Height), g.PopupColor, true)

	if sc < 0.5 {
		return
	}
	style := &willowmap.LabelStyle{
		Size:  infoWindowText,
		Align: willowmap.TextAlignCenter,
		Bold:  true,
		Color: willowmap.Color{R: 0.1, G: 0.1, B: 0.1, A: 1},
	}
	s := g.surface
	s.Save()
	s.Translate(float32(frame.X+frame.Width/2), float32(frame.Y))
	s.Scale(float32(sc), float32(sc))
	s.DrawText(g.Info.Title, 0, 22, style)
	if g.Info.Body != "" {
		body := *style
		body.Bold = false
		body.Size = infoWindowText - 2
		s.DrawText(g.Info.Body, 0, 42, &body)
	}
	s.Restore()
}

// Layout tracks the window size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.Map.SetViewSize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens a window and runs g until it is closed.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return fmt.Errorf("ebitenhost: invalid window size %dx%d", cfg.Width, cfg.Height)
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	g.Map.SetViewSize(cfg.Width, cfg.Height)

	g.log.Info().Str("title", cfg.Title).Int("width", cfg.Width).Int("height", cfg.Height).Msg("starting")
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("ebitenhost: %w", err)
	}
	return nil
}

var _ ebiten.Game = (*Game)(nil)

package termsurface

import (
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"github.com/phanxgames/willowmap"
	"github.com/phanxgames/willowmap/webmercator"
)

const frameInterval = 100 * time.Millisecond // 10 FPS

// App runs an overlay in the terminal. The left mouse button taps, holds,
// and drags markers; dragging empty space pans; arrow keys pan, +/- zoom,
// [ and ] rotate, Esc cancels a drag, q quits.
type App struct {
	screen  tcell.Screen
	surface *Surface
	session *willowmap.Session
	mapView *webmercator.Map
	log     zerolog.Logger

	pressed bool
	mouseX  float64
	mouseY  float64

	// A press seen since the last Step, kept so a click that is released
	// within one tick still reaches the session as a press.
	latched        bool
	pressX, pressY float64
}

// NewApp wraps an initialized screen.
func NewApp(screen tcell.Screen, o *willowmap.Overlay, m *webmercator.Map, log zerolog.Logger) *App {
	a := &App{
		screen:  screen,
		surface: NewSurface(screen, DefaultCellWidth, DefaultCellHeight),
		mapView: m,
		log:     log.With().Str("component", "termsurface").Logger(),
	}
	a.session = willowmap.NewSession(o, m)
	a.session.Pan = m.Pan
	a.session.Tick = frameInterval
	a.session.Gestures.DeadZone = DefaultCellWidth
	a.resize()
	return a
}

// OpenScreen creates and initializes the terminal screen with mouse support.
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.EnableMouse()
	screen.Clear()
	return screen, nil
}

// Session returns the app's session.
func (a *App) Session() *willowmap.Session {
	return a.session
}

// Run loops until the user quits.
func (a *App) Run() error {
	defer a.screen.Fini()

	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.Step()
		default:
			if a.screen.HasPendingEvent() {
				if !a.HandleEvent(a.screen.PollEvent()) {
					return nil
				}
			} else {
				time.Sleep(time.Millisecond)
			}
		}
	}
}

// Step advances one frame and renders it.
func (a *App) Step() {
	pressed, x, y := a.pressed, a.mouseX, a.mouseY
	if a.latched {
		pressed, x, y = true, a.pressX, a.pressY
		a.latched = false
	}
	a.session.Update(pressed, x, y, frameInterval)
	a.Render()
}

// Render draws the overlay and a status line.
func (a *App) Render() {
	a.screen.Clear()
	a.surface.Reset()
	a.session.Draw(a.surface)

	status := fmt.Sprintf(" z%.1f rot %.0f° visible %d ", a.mapView.Zoom(), a.mapView.Rotation(), len(a.session.Overlay.Visible()))
	if f := a.session.Overlay.Focus(); f != nil {
		status += "| " + f.Title + " "
	}
	_, rows := a.screen.Size()
	style := tcell.StyleDefault.Reverse(true)
	for i, r := range []rune(status) {
		a.screen.SetContent(i, rows-1, r, nil, style)
	}
	a.screen.Show()
}

// HandleEvent applies one terminal event. It reports false when the user
// asked to quit.
func (a *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		a.resize()
		a.screen.Sync()
	case *tcell.EventMouse:
		col, row := ev.Position()
		a.mouseX, a.mouseY = a.surface.CellToView(col, row)
		pressed := ev.Buttons()&tcell.Button1 != 0
		if pressed && !a.pressed {
			a.latched = true
			a.pressX, a.pressY = a.mouseX, a.mouseY
		}
		a.pressed = pressed
		switch {
		case ev.Buttons()&tcell.WheelUp != 0:
			a.mapView.ZoomTo(a.mapView.Zoom() + 0.5)
		case ev.Buttons()&tcell.WheelDown != 0:
			a.mapView.ZoomTo(a.mapView.Zoom() - 0.5)
		}
	case *tcell.EventKey:
		return a.handleKey(ev)
	}
	return true
}

func (a *App) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC:
		return false
	case tcell.KeyEscape:
		a.session.InjectCancel()
	case tcell.KeyLeft:
		a.mapView.Pan(DefaultCellWidth*4, 0)
	case tcell.KeyRight:
		a.mapView.Pan(-DefaultCellWidth*4, 0)
	case tcell.KeyUp:
		a.mapView.Pan(0, DefaultCellHeight*2)
	case tcell.KeyDown:
		a.mapView.Pan(0, -DefaultCellHeight*2)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case '+', '=':
			a.mapView.ZoomTo(a.mapView.Zoom() + 1)
		case '-':
			a.mapView.ZoomTo(a.mapView.Zoom() - 1)
		case '[':
			a.mapView.SetRotation(a.mapView.Rotation() - 15)
		case ']':
			a.mapView.SetRotation(a.mapView.Rotation() + 15)
		}
	}
	return true
}

func (a *App) resize() {
	w, h := a.surface.ViewSize()
	a.mapView.SetViewSize(w, h)
	a.log.Debug().Int("width", w).Int("height", h).Msg("resized")
}

//go:build ebiten

package app

import (
	"sandfall/internal/render"
	"sandfall/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sand session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale int
	// cursor is the grid cell under the mouse, or -1,-1.
	cursorX, cursorY int
}

// keyNames binds ebiten keys to the session's key names.
var keyNames = map[ebiten.Key]string{
	ebiten.KeyQ:          "q",
	ebiten.KeyEscape:     "esc",
	ebiten.KeySpace:      " ",
	ebiten.KeyEnter:      "enter",
	ebiten.KeyN:          "n",
	ebiten.KeyBackspace:  "backspace",
	ebiten.KeyC:          "c",
	ebiten.KeyR:          "r",
	ebiten.KeyS:          "s",
	ebiten.KeyEqual:      "=",
	ebiten.KeyKPAdd:      "+",
	ebiten.KeyMinus:      "-",
	ebiten.KeyKPSubtract: "-",
	ebiten.KeyDigit1:     "1",
	ebiten.KeyDigit2:     "2",
	ebiten.KeyDigit3:     "3",
	ebiten.KeyDigit4:     "4",
	ebiten.KeyDigit5:     "5",
	ebiten.KeyDigit6:     "6",
	ebiten.KeyDigit7:     "7",
}

// New constructs a Game for the provided session.
func New(session *Session, scale, hudWidth int) *Game {
	size := session.World().Size()
	return &Game{
		session: session,
		painter: render.NewGridPainter(size.W, size.H),
		hud:     ui.NewHUD(session.World(), hudWidth),
		overlay: ui.NewOverlay(session.World(), scale),
		scale:   max(scale, 1),
		cursorX: -1,
		cursorY: -1,
	}
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	for key, name := range keyNames {
		if !inpututil.IsKeyJustPressed(key) {
			continue
		}
		if g.session.HandleKey(name) == CommandQuit {
			return ebiten.Termination
		}
	}

	size := g.session.World().Size()
	viewW := size.W * g.scale
	g.hud.Update(viewW)
	g.overlay.Update()

	mx, my := ebiten.CursorPosition()
	g.cursorX, g.cursorY = -1, -1
	if mx >= 0 && mx < viewW && !g.hud.Contains(mx, my) {
		g.cursorX, g.cursorY = render.ScreenToGrid(mx, my, g.scale, size.H)
		switch {
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft):
			g.session.Paint(g.cursorX, g.cursorY)
		case ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight):
			g.session.Erase(g.cursorX, g.cursorY)
		}
	}

	g.session.Advance()
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	w := g.session.World()
	g.painter.Blit(screen, w.Pixels(), g.scale)
	g.overlay.Draw(screen, g.cursorX, g.cursorY, w.BrushRadius(), g.session.Status().Swatch)
	g.hud.Draw(screen, w.Size().W*g.scale, g.scale, g.session.Status())
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.World().Size()
	return s.W*g.scale + g.hud.Width(), s.H * g.scale
}

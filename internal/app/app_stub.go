//go:build !ebiten

package app

import "errors"

// ErrNoGUI is returned by the headless Game.
var ErrNoGUI = errors.New("app: built without the ebiten tag")

// Game stands in for the ebiten host so importers build without a GPU stack.
type Game struct {
	session *Session
}

// New returns a Game whose Update always fails with ErrNoGUI.
func New(session *Session, _, _ int) *Game { return &Game{session: session} }

func (g *Game) Update() error { return ErrNoGUI }

func (g *Game) Draw(any) {}

// Layout reports the grid size at scale 1.
func (g *Game) Layout(int, int) (int, int) {
	s := g.session.World().Size()
	return s.W, s.H
}

package sand

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSize is returned when a grid cannot be allocated for the
// requested dimensions.
var ErrInvalidSize = errors.New("sand: invalid grid size")

// Grid stores width*height particles in row-major order, y=0 being the bottom
// row, together with a parallel RGBA buffer that mirrors every write.
type Grid struct {
	W, H   int
	cells  []Particle
	pixels []byte
}

// NewGrid allocates a grid filled with empty cells. It fails without
// allocating when either dimension is below one or the buffers would overflow.
func NewGrid(w, h int) (*Grid, error) {
	if w < 1 || h < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidSize, w, h)
	}
	if w > math.MaxInt/4/h {
		return nil, fmt.Errorf("%w: %dx%d overflows", ErrInvalidSize, w, h)
	}
	g := &Grid{W: w, H: h, cells: make([]Particle, w*h), pixels: make([]byte, 4*w*h)}
	g.Clear()
	return g, nil
}

// InBounds reports whether (x, y) lies inside the grid. Both upper bounds are
// exclusive.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// Index returns the linear slice index for in-bounds coordinates (x, y).
func (g *Grid) Index(x, y int) int { return y*g.W + x }

// Len returns the number of cells.
func (g *Grid) Len() int { return len(g.cells) }

// At returns a copy of the particle in cell i.
func (g *Grid) At(i int) Particle { return g.cells[i] }

// KindAt returns the kind at (x, y), or KindEmpty when out of bounds.
func (g *Grid) KindAt(x, y int) Kind {
	if !g.InBounds(x, y) {
		return KindEmpty
	}
	return g.cells[g.Index(x, y)].Kind
}

// Particles exposes the backing cells. Callers must treat it as read-only and
// use Set or Place to write.
func (g *Grid) Particles() []Particle { return g.cells }

// Pixels exposes the RGBA buffer, 4 bytes per cell, bottom row first.
func (g *Grid) Pixels() []byte { return g.pixels }

// Set writes p into cell i and marks it settled for the current tick. It is
// the write primitive used by the rule set.
func (g *Grid) Set(i int, p Particle) {
	p.Settled = true
	g.write(i, p)
}

// Place writes p into cell i without settling it, so the next tick processes
// it. Hosts use it between ticks.
func (g *Grid) Place(i int, p Particle) {
	p.Settled = false
	g.write(i, p)
}

// write is the only path that touches cells, keeping the color buffer in sync.
func (g *Grid) write(i int, p Particle) {
	g.cells[i] = p
	j := i * 4
	g.pixels[j] = p.Color.R
	g.pixels[j+1] = p.Color.G
	g.pixels[j+2] = p.Color.B
	g.pixels[j+3] = p.Color.A
}

// move puts mover into cell j and whatever j held into cell i. Both values
// are taken before either write.
func (g *Grid) move(i, j int, mover Particle) {
	displaced := g.cells[j]
	g.Set(j, mover)
	g.Set(i, displaced)
}

// ClearSettled resets the settled marker on every cell.
func (g *Grid) ClearSettled() {
	for i := range g.cells {
		g.cells[i].Settled = false
	}
}

// Clear resets every cell to Empty.
func (g *Grid) Clear() {
	e := newEmpty()
	for i := range g.cells {
		g.Place(i, e)
	}
}

// Fill replaces every cell with a fresh particle of kind k.
func (g *Grid) Fill(k Kind, rng Random) {
	g.FillRect(0, 0, g.W, g.H, k, rng)
}

// FillRect replaces the cells of the rectangle with lower-left corner (x, y)
// with fresh particles of kind k. The rectangle is clipped to the grid.
func (g *Grid) FillRect(x, y, w, h int, k Kind, rng Random) int {
	x0, y0 := max(x, 0), max(y, 0)
	x1, y1 := min(x+w, g.W), min(y+h, g.H)
	n := 0
	for yy := y0; yy < y1; yy++ {
		for xx := x0; xx < x1; xx++ {
			g.Place(g.Index(xx, yy), NewParticle(k, rng))
			n++
		}
	}
	return n
}

package sand

import (
	"fmt"

	"sandfall/internal/core"
)

// Census counts particles per kind.
type Census [kindCount]int

// Total returns the number of non-empty cells.
func (c Census) Total() int {
	n := 0
	for k, v := range c {
		if Kind(k) != KindEmpty {
			n += v
		}
	}
	return n
}

// Census counts the particles currently in the grid.
func (g *Grid) Census() Census {
	var c Census
	for _, p := range g.cells {
		if p.Kind.Valid() {
			c[p.Kind]++
		}
	}
	return c
}

// World hosts a grid, its rule set and random source as a core.Sim.
type World struct {
	cfg   Config
	grid  *Grid
	rules *Rules
	rng   *core.RNG
	// seed is the one the random source was last seeded with.
	seed int64

	tick uint64
	last Report
}

// New returns a world with the provided dimensions using defaults.
func New(w, h int) (*World, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a world configured from cfg. It fails when the grid
// cannot be allocated.
func NewWithConfig(cfg Config) (*World, error) {
	g, err := NewGrid(cfg.Width, cfg.Height)
	if err != nil {
		return nil, fmt.Errorf("new sand world: %w", err)
	}
	return &World{
		cfg:   cfg,
		grid:  g,
		rules: RulesFromParams(cfg.Params),
		rng:   core.NewRNG(cfg.Seed),
		seed:  cfg.Seed,
	}, nil
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "sand" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.grid.W, H: w.grid.H} }

// Pixels exposes the RGBA color buffer, bottom row first.
func (w *World) Pixels() []byte { return w.grid.Pixels() }

// Grid exposes the underlying grid.
func (w *World) Grid() *Grid { return w.grid }

// Config returns the active configuration.
func (w *World) Config() Config { return w.cfg }

// RNG exposes the world's random source.
func (w *World) RNG() *core.RNG { return w.rng }

// Seed returns the seed in effect since the last reset.
func (w *World) Seed() int64 { return w.seed }

// Tick returns the number of ticks run since the last reset.
func (w *World) Tick() uint64 { return w.tick }

// LastReport returns the summary of the most recent tick.
func (w *World) LastReport() Report { return w.last }

// Reset empties the grid and reseeds the random source. A zero seed falls
// back to the configured seed.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng.Reseed(effective)
	w.grid.Clear()
	w.tick = 0
	w.last = Report{}
}

// Step advances the simulation by one tick.
func (w *World) Step() {
	w.last = w.rules.Advance(w.grid, w.rng)
	w.tick++
}

// Clear resets every cell to Empty.
func (w *World) Clear() { w.grid.Clear() }

// Paint stamps kind k around (x, y) with the configured brush radius.
func (w *World) Paint(x, y int, k Kind) int {
	return w.grid.Stamp(w.rng, x, y, w.cfg.Params.BrushRadius, k)
}

// EraseAt empties the brush disc around (x, y).
func (w *World) EraseAt(x, y int) int {
	return w.grid.Erase(x, y, w.cfg.Params.BrushRadius)
}

// BrushRadius returns the current brush radius.
func (w *World) BrushRadius() int { return w.cfg.Params.BrushRadius }

// Census counts the particles currently in the world.
func (w *World) Census() Census { return w.grid.Census() }

// VelocityAt returns the velocity of the particle at (x, y). ok is false for
// empty or out-of-bounds cells.
func (w *World) VelocityAt(x, y int) (vx, vy float64, ok bool) {
	if w.grid.KindAt(x, y) == KindEmpty {
		return 0, 0, false
	}
	v := w.grid.cells[w.grid.Index(x, y)].Velocity
	return v.X, v.Y, true
}

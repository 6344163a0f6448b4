package app

import (
	"fmt"
	"time"

	"sandfall/internal/sims/sand"
	"sandfall/internal/ui"
)

// Command identifies a host action bound to a key.
type Command int

const (
	CommandNone Command = iota
	CommandQuit
	CommandPause
	CommandResume
	CommandStep
	CommandClear
	CommandRestart
	CommandReseed
	CommandBrushUp
	CommandBrushDown
	CommandSelect
)

// paintable lists the kinds bound to keys 1 through 7.
var paintable = []sand.Kind{
	sand.KindSand, sand.KindWater, sand.KindCoal, sand.KindOil,
	sand.KindFire, sand.KindSmoke, sand.KindSteam,
}

// Session holds the interactive state shared by the GUI and terminal hosts:
// the world, the selected brush kind and the pause/step toggles.
type Session struct {
	world    *sand.World
	selected sand.Kind
	paused   bool
	tickOnce bool
	seed     int64

	// setup repopulates the world after a reset, e.g. from a scenario.
	setup func(*sand.World)
	now   func() time.Time
}

// NewSession wraps w. setup may be nil.
func NewSession(w *sand.World, seed int64, setup func(*sand.World)) *Session {
	s := &Session{world: w, selected: sand.KindSand, seed: seed, setup: setup, now: time.Now}
	return s
}

// World returns the hosted world.
func (s *Session) World() *sand.World { return s.world }

// Selected returns the kind the brush paints.
func (s *Session) Selected() sand.Kind { return s.selected }

// Select changes the brush kind. Empty and unknown kinds are rejected.
func (s *Session) Select(k sand.Kind) bool {
	if !k.Valid() || k == sand.KindEmpty {
		return false
	}
	s.selected = k
	return true
}

// Paused reports whether automatic ticking is suspended.
func (s *Session) Paused() bool { return s.paused }

// Seed returns the seed used by the last reset.
func (s *Session) Seed() int64 { return s.seed }

// Reset reseeds and empties the world, then reruns the setup hook.
func (s *Session) Reset(seed int64) {
	s.seed = seed
	s.world.Reset(seed)
	if s.setup != nil {
		s.setup(s.world)
	}
	s.tickOnce = false
}

// Paint stamps the selected kind around (x, y).
func (s *Session) Paint(x, y int) int { return s.world.Paint(x, y, s.selected) }

// Erase empties the brush disc around (x, y).
func (s *Session) Erase(x, y int) int { return s.world.EraseAt(x, y) }

// AdjustBrush grows or shrinks the brush radius within its bounds.
func (s *Session) AdjustBrush(delta int) {
	s.world.SetIntParameter("brush_radius", s.world.BrushRadius()+delta)
}

// Advance steps the world unless paused; a pending single step runs even
// while paused. It reports whether a tick ran.
func (s *Session) Advance() bool {
	if s.paused && !s.tickOnce {
		return false
	}
	s.world.Step()
	s.tickOnce = false
	return true
}

// HandleKey applies the action bound to key, using Bubble Tea key names
// ("1", "+", " ", "backspace", ...), and returns it.
func (s *Session) HandleKey(key string) Command {
	switch key {
	case "q", "esc", "ctrl+c":
		return CommandQuit
	case " ", "space":
		s.paused = !s.paused
		return CommandPause
	case "enter":
		s.paused = false
		return CommandResume
	case "n":
		s.tickOnce = true
		return CommandStep
	case "backspace", "c":
		s.world.Clear()
		return CommandClear
	case "r":
		s.Reset(s.seed)
		return CommandRestart
	case "s":
		s.Reset(s.now().UnixNano())
		return CommandReseed
	case "+", "=":
		s.AdjustBrush(1)
		return CommandBrushUp
	case "-", "_":
		s.AdjustBrush(-1)
		return CommandBrushDown
	}
	if len(key) == 1 && key[0] >= '1' && key[0] <= '7' {
		s.Select(paintable[key[0]-'1'])
		return CommandSelect
	}
	return CommandNone
}

// Status summarizes the session for display.
func (s *Session) Status() ui.Status {
	state := "running"
	if s.paused {
		state = "paused"
	}
	census := s.world.Census()
	lines := []string{
		fmt.Sprintf("tick %d  %s", s.world.Tick(), state),
		fmt.Sprintf("brush r=%d  seed %d", s.world.BrushRadius(), s.seed),
	}
	row := ""
	for i, k := range paintable {
		row += fmt.Sprintf("%s %d", k, census[k])
		if i%2 == 1 || i == len(paintable)-1 {
			lines = append(lines, row)
			row = ""
			continue
		}
		row += "  "
	}
	return ui.Status{
		Title:  fmt.Sprintf("[%d] %s", indexOf(s.selected)+1, s.selected),
		Swatch: sand.NewParticle(s.selected, nil).Color,
		Lines:  lines,
	}
}

func indexOf(k sand.Kind) int {
	for i, p := range paintable {
		if p == k {
			return i
		}
	}
	return -1
}

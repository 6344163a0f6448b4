// Package scenario loads initial world layouts from YAML: a world config,
// optional Perlin-noise terrain and a list of shapes painted in order.
package scenario

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/aquilax/go-perlin"
	"gopkg.in/yaml.v3"

	"sandfall/internal/sims/sand"
)

var (
	// ErrUnknownScenario is returned when a name is neither a built-in
	// scenario nor a readable file.
	ErrUnknownScenario = errors.New("scenario: unknown scenario")
	// ErrInvalidScenario is returned for structurally invalid scenario files.
	ErrInvalidScenario = errors.New("scenario: invalid scenario")
)

//go:embed builtin/*.yaml
var builtinFS embed.FS

// Scenario describes an initial world.
type Scenario struct {
	Name        string      `yaml:"name"`
	Description string      `yaml:"description"`
	World       sand.Config `yaml:"world"`
	Terrain     *Terrain    `yaml:"terrain"`
	Shapes      []Shape     `yaml:"shapes"`
}

// Terrain raises a noise-shaped ground of one kind from the bottom row.
type Terrain struct {
	Kind sand.Kind `yaml:"kind"`
	// Base and Amplitude are fractions of the grid height.
	Base      float64 `yaml:"base"`
	Amplitude float64 `yaml:"amplitude"`
	// Scale is the noise frequency per cell.
	Scale   float64 `yaml:"scale"`
	Octaves int32   `yaml:"octaves"`
	// Seed overrides the world seed when non-zero.
	Seed int64 `yaml:"seed"`
}

// Shape is a filled region. Type is "rect" (X, Y lower-left corner, W, H) or
// "disc" (X, Y center, R radius).
type Shape struct {
	Type string    `yaml:"type"`
	Kind sand.Kind `yaml:"kind"`
	X    int       `yaml:"x"`
	Y    int       `yaml:"y"`
	W    int       `yaml:"w"`
	H    int       `yaml:"h"`
	R    int       `yaml:"r"`
}

// Parse decodes a scenario. Fields the document omits keep the defaults of
// sand.DefaultConfig.
func Parse(data []byte) (Scenario, error) {
	sc := Scenario{World: sand.DefaultConfig()}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return Scenario{}, fmt.Errorf("parse scenario: %w", err)
	}
	if err := sc.validate(); err != nil {
		return Scenario{}, err
	}
	return sc, nil
}

func (s Scenario) validate() error {
	if s.Terrain != nil && s.Terrain.Amplitude < 0 {
		return fmt.Errorf("%w: negative terrain amplitude", ErrInvalidScenario)
	}
	for i, sh := range s.Shapes {
		switch sh.Type {
		case "rect":
			if sh.W < 0 || sh.H < 0 {
				return fmt.Errorf("%w: shape %d has negative size", ErrInvalidScenario, i)
			}
		case "disc":
			if sh.R < 0 {
				return fmt.Errorf("%w: shape %d has negative radius", ErrInvalidScenario, i)
			}
		default:
			return fmt.Errorf("%w: shape %d has unknown type %q", ErrInvalidScenario, i, sh.Type)
		}
	}
	return nil
}

// Builtins lists the embedded scenario names in sorted order.
func Builtins() []string {
	entries, err := fs.ReadDir(builtinFS, "builtin")
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), path.Ext(e.Name())))
	}
	sort.Strings(names)
	return names
}

// Load resolves nameOrPath as a built-in scenario first, then as a file.
func Load(nameOrPath string) (Scenario, error) {
	if data, err := builtinFS.ReadFile("builtin/" + nameOrPath + ".yaml"); err == nil {
		return Parse(data)
	}
	data, err := os.ReadFile(nameOrPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Scenario{}, fmt.Errorf("%w: %s", ErrUnknownScenario, nameOrPath)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario %s: %w", nameOrPath, err)
	}
	sc, err := Parse(data)
	if err != nil {
		return Scenario{}, fmt.Errorf("%s: %w", nameOrPath, err)
	}
	return sc, nil
}

// Config returns the scenario's world config with flag-style overrides
// applied on top.
func (s Scenario) Config(overrides map[string]string) sand.Config {
	cfg := s.World
	sand.ApplyMap(&cfg, overrides)
	return cfg
}

// NewWorld builds a world from the scenario config and overrides and paints
// the scenario into it.
func (s Scenario) NewWorld(overrides map[string]string) (*sand.World, error) {
	w, err := sand.NewWithConfig(s.Config(overrides))
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", s.Name, err)
	}
	s.Apply(w)
	return w, nil
}

// Apply paints the terrain and then every shape, in order, into w. Painted
// particles are unsettled, so they move on the next tick.
func (s Scenario) Apply(w *sand.World) {
	g := w.Grid()
	if s.Terrain != nil {
		s.Terrain.paint(g, w.Seed(), w.RNG())
	}
	for _, sh := range s.Shapes {
		switch sh.Type {
		case "rect":
			g.FillRect(sh.X, sh.Y, sh.W, sh.H, sh.Kind, w.RNG())
		case "disc":
			g.FillDisc(sh.X, sh.Y, sh.R, sh.Kind, w.RNG())
		}
	}
}

func (t *Terrain) paint(g *sand.Grid, worldSeed int64, rng sand.Random) {
	seed := t.Seed
	if seed == 0 {
		seed = worldSeed
	}
	octaves := t.Octaves
	if octaves <= 0 {
		octaves = 3
	}
	scale := t.Scale
	if scale <= 0 {
		scale = 0.02
	}
	noise := perlin.NewPerlin(2, 2, octaves, seed)
	for x := 0; x < g.W; x++ {
		// Noise1D is zero on integer lattice points; the half-cell shift
		// keeps column 0 from always sitting at the base height.
		n := noise.Noise1D((float64(x) + 0.5) * scale)
		height := int((t.Base + t.Amplitude*n) * float64(g.H))
		g.FillRect(x, 0, 1, height, t.Kind, rng)
	}
}

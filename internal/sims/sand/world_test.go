package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sandfall/internal/core"
)

var (
	_ core.Sim                       = (*World)(nil)
	_ core.ParameterProvider         = (*World)(nil)
	_ core.ParameterControlsProvider = (*World)(nil)
	_ core.IntParameterSetter        = (*World)(nil)
	_ core.FloatParameterSetter      = (*World)(nil)
	_ Random                         = (*core.RNG)(nil)
)

func TestNewRejectsInvalidSize(t *testing.T) {
	_, err := New(0, 5)
	assert.ErrorIs(t, err, ErrInvalidSize)
}

func paintScene(w *World) {
	w.Paint(10, 30, KindSand)
	w.Paint(20, 30, KindWater)
	w.Paint(30, 30, KindOil)
	w.Paint(30, 10, KindCoal)
	w.Paint(30, 11, KindFire)
}

func TestWorldIsDeterministicPerSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed = 48, 40, 9

	a, err := NewWithConfig(cfg)
	require.NoError(t, err)
	b, err := NewWithConfig(cfg)
	require.NoError(t, err)

	for _, w := range []*World{a, b} {
		paintScene(w)
		for range 80 {
			w.Step()
		}
	}
	require.Equal(t, a.Pixels(), b.Pixels())
	assert.Equal(t, uint64(80), a.Tick())

	snapshot := append([]byte(nil), a.Pixels()...)
	a.Reset(0)
	assert.Zero(t, a.Tick())
	assert.Zero(t, a.Census().Total())
	paintScene(a)
	for range 80 {
		a.Step()
	}
	assert.Equal(t, snapshot, a.Pixels(), "Reset(0) replays the configured seed")
}

func TestWorldPaintAndErase(t *testing.T) {
	w, err := New(40, 40)
	require.NoError(t, err)
	assert.Equal(t, core.Size{W: 40, H: 40}, w.Size())
	assert.Equal(t, "sand", w.Name())

	placed := w.Paint(20, 20, KindSand)
	assert.Positive(t, placed)
	assert.Equal(t, placed, w.Census()[KindSand])

	w.EraseAt(20, 20)
	assert.Zero(t, w.Census().Total())

	w.Paint(20, 20, KindWater)
	w.Step()
	assert.Positive(t, w.LastReport().Dispatched)
	w.Clear()
	assert.Zero(t, w.Census().Total())
}

func TestWorldParameters(t *testing.T) {
	w, err := New(8, 8)
	require.NoError(t, err)

	p, ok := w.Parameters().Lookup("gravity")
	require.True(t, ok)
	assert.Equal(t, "1", p.Value)

	assert.True(t, w.SetFloatParameter("water_sink_chance", 3))
	assert.Equal(t, 1.0, w.Config().Params.WaterSinkChance)
	assert.True(t, w.SetFloatParameter("burn_rate", -1))
	assert.Zero(t, w.Config().Params.BurnRate)

	assert.True(t, w.SetIntParameter("brush_radius", 500))
	assert.Equal(t, 64, w.BrushRadius())

	assert.False(t, w.SetFloatParameter("brush_radius", 2), "type mismatch")
	assert.False(t, w.SetIntParameter("gravity", 2))
	assert.False(t, w.SetFloatParameter("nope", 1))
}

func TestResetTracksSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width, cfg.Height, cfg.Seed = 8, 8, 42
	w, err := NewWithConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, int64(42), w.Seed())

	w.Reset(7)
	assert.Equal(t, int64(7), w.Seed())
	p, ok := w.Parameters().Lookup("seed")
	require.True(t, ok)
	assert.Equal(t, "7", p.Value)

	w.Reset(0)
	assert.Equal(t, int64(42), w.Seed())
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":            "10",
		"h":            "-3",
		"seed":         "5",
		"smoke_chance": "0.5",
		"burn_rate":    "fast",
		"brush_radius": "3",
		"bogus":        "1",
	})
	def := DefaultConfig()
	assert.Equal(t, 10, cfg.Width)
	assert.Equal(t, def.Height, cfg.Height)
	assert.Equal(t, int64(5), cfg.Seed)
	assert.Equal(t, 0.5, cfg.Params.SmokeChance)
	assert.Equal(t, def.Params.BurnRate, cfg.Params.BurnRate)
	assert.Equal(t, 3, cfg.Params.BrushRadius)

	assert.Equal(t, def, FromMap(nil))
}

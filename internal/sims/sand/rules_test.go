package sand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quietParams() Params {
	p := DefaultParams()
	p.SmokeChance = 0
	return p
}

func run(r *Rules, g *Grid, rng Random, ticks int) {
	for range ticks {
		r.Advance(g, rng)
	}
}

func TestAdvanceEmptyGridIsNoop(t *testing.T) {
	rules := DefaultRules()
	rng := newRand(1)
	for _, dims := range [][2]int{{1, 1}, {4, 4}, {13, 7}} {
		g := mustGrid(t, dims[0], dims[1])
		want := append([]byte(nil), g.Pixels()...)
		for range 5 {
			rep := rules.Advance(g, rng)
			assert.Equal(t, g.Len(), rep.Dispatched)
			assert.Equal(t, g.Len(), rep.Count(OutcomeIdle))
		}
		assert.Equal(t, want, g.Pixels())
		for _, p := range g.Particles() {
			require.Equal(t, KindEmpty, p.Kind)
			require.False(t, p.Settled)
		}
	}
}

func TestEachParticleDispatchedOncePerTick(t *testing.T) {
	g := mustGrid(t, 16, 10)
	rng := newRand(3)
	g.FillRect(0, 0, 16, 2, KindWater, rng)
	g.FillRect(4, 5, 6, 3, KindSand, rng)
	g.FillRect(11, 6, 3, 2, KindOil, rng)
	rules := DefaultRules()

	for tick := 0; tick < 60; tick++ {
		before := g.Census()
		seen := make(map[int]int)
		var dispatched Census
		rep := rules.advance(g, rng, func(x, y int, p Particle) {
			seen[g.Index(x, y)]++
			dispatched[p.Kind]++
		})
		for i, n := range seen {
			require.Equal(t, 1, n, "tick %d cell %d", tick, i)
		}
		for _, k := range Kinds() {
			require.LessOrEqual(t, dispatched[k], before[k], "tick %d kind %v", tick, k)
		}
		require.Equal(t, len(seen), rep.Dispatched)
		for _, p := range g.Particles() {
			require.False(t, p.Settled, "markers are cleared after every tick")
		}
	}
}

func TestSweepIsSerpentine(t *testing.T) {
	g := mustGrid(t, 4, 3)
	var order [][2]int
	DefaultRules().advance(g, newRand(1), func(x, y int, _ Particle) {
		order = append(order, [2]int{x, y})
	})
	assert.Equal(t, [][2]int{
		{0, 0}, {1, 0}, {2, 0}, {3, 0},
		{3, 1}, {2, 1}, {1, 1}, {0, 1},
		{0, 2}, {1, 2}, {2, 2}, {3, 2},
	}, order)
}

func TestSandFallsToFloor(t *testing.T) {
	g := mustGrid(t, 1, 32)
	rng := newRand(5)
	g.Place(g.Index(0, 31), NewParticle(KindSand, rng))
	rules := DefaultRules()

	run(rules, g, rng, 32)
	assert.Equal(t, KindSand, g.KindAt(0, 0))

	run(rules, g, rng, 20)
	assert.Equal(t, KindSand, g.KindAt(0, 0), "sand at rest stays put")
	assert.Equal(t, 1, g.Census()[KindSand])
}

func TestSandPileConservesSand(t *testing.T) {
	g := mustGrid(t, 24, 24)
	rng := newRand(8)
	g.FillRect(6, 12, 10, 10, KindSand, rng)
	g.FillRect(0, 0, 24, 3, KindWater, rng)
	rules := RulesFromParams(quietParams())
	sand := g.Census()[KindSand]
	water := g.Census()[KindWater]

	for range 200 {
		rules.Advance(g, rng)
		c := g.Census()
		require.Equal(t, sand, c[KindSand])
		require.LessOrEqual(t, c[KindWater], water)
	}
	// Every sand grain ends up supported.
	for x := 0; x < g.W; x++ {
		for y := 1; y < g.H; y++ {
			if g.KindAt(x, y) == KindSand {
				assert.NotEqual(t, KindEmpty, g.KindAt(x, y-1), "floating sand at (%d,%d)", x, y)
			}
		}
	}
}

func TestWaterLevelsOut(t *testing.T) {
	g := mustGrid(t, 9, 20)
	rng := newRand(11)
	g.FillRect(4, 0, 1, 10, KindWater, rng)
	rules := DefaultRules()

	run(rules, g, rng, 300)

	c := g.Census()
	require.Equal(t, 10, c[KindWater], "water-only grids only ever swap")
	wet, top := 0, 0
	for x := 0; x < g.W; x++ {
		if g.KindAt(x, 0) == KindWater {
			wet++
		}
		for y := 0; y < g.H; y++ {
			if g.KindAt(x, y) == KindWater {
				top = max(top, y)
			}
		}
	}
	assert.GreaterOrEqual(t, wet, 5)
	assert.LessOrEqual(t, top, 3)
}

func TestSlideStopsAtObstacle(t *testing.T) {
	rules := DefaultRules()
	rng := newRand(2)

	g := mustGrid(t, 6, 1)
	w := NewParticle(KindWater, rng)
	w.Velocity.X = 3
	g.Place(0, w)
	g.Place(2, NewParticle(KindSand, rng))
	rules.Advance(g, rng)
	assert.Equal(t, KindWater, g.KindAt(0, 0))
	assert.Equal(t, KindEmpty, g.KindAt(3, 0))

	g = mustGrid(t, 6, 1)
	w.Velocity.X = -3
	g.Place(5, w)
	g.Place(3, NewParticle(KindSand, rng))
	rules.Advance(g, rng)
	assert.Equal(t, KindWater, g.KindAt(5, 0), "leftward slides check the cells to the left")
	assert.Equal(t, KindEmpty, g.KindAt(2, 0))

	g = mustGrid(t, 6, 1)
	w.Velocity.X = 3
	g.Place(0, w)
	rules.Advance(g, rng)
	require.Equal(t, KindWater, g.KindAt(3, 0))
	assert.Equal(t, 4.0, g.At(g.Index(3, 0)).Velocity.X)
	assert.Equal(t, KindEmpty, g.KindAt(0, 0))
}

func TestGranularSinkRelocatesLiquid(t *testing.T) {
	g := mustGrid(t, 5, 6)
	rng := newRand(4)
	g.FillRect(0, 0, 5, 1, KindWater, rng)
	g.Place(g.Index(2, 1), NewParticle(KindSand, rng))

	rep := DefaultRules().Advance(g, rng)

	assert.Equal(t, 1, rep.Count(OutcomeSank))
	assert.Equal(t, KindSand, g.KindAt(2, 0))
	assert.Equal(t, KindWater, g.KindAt(0, 1), "first empty cell of the window")
	assert.Equal(t, KindEmpty, g.KindAt(2, 1))
	assert.Equal(t, 5, g.Census()[KindWater])
}

func TestRelocateDiscardsWhenWindowFull(t *testing.T) {
	g := mustGrid(t, 30, 15)
	g.Fill(KindSand, nil)
	g.Place(g.Index(0, 14), newEmpty())
	before := g.Census()

	ok := relocate(g, NewParticle(KindWater, nil), 15, 0)
	assert.False(t, ok)
	assert.Equal(t, before, g.Census())

	g.Place(g.Index(14, 3), newEmpty())
	require.True(t, relocate(g, NewParticle(KindWater, nil), 15, 0))
	assert.Equal(t, KindWater, g.KindAt(14, 3))
}

func TestWaterSinksThroughOil(t *testing.T) {
	p := DefaultParams()
	p.WaterSinkChance = 1
	rules := RulesFromParams(p)
	rng := newRand(6)

	g := mustGrid(t, 1, 2)
	oil := NewParticle(KindOil, rng)
	oil.Velocity.X = 2
	g.Place(g.Index(0, 0), oil)
	g.Place(g.Index(0, 1), NewParticle(KindWater, rng))

	rep := rules.Advance(g, rng)
	assert.Equal(t, 1, rep.Count(OutcomeSank))
	assert.Equal(t, KindWater, g.KindAt(0, 0))
	require.Equal(t, KindOil, g.KindAt(0, 1))
	assert.Zero(t, g.At(g.Index(0, 1)).Velocity.X)

	p.WaterSinkChance = 0
	g = mustGrid(t, 1, 2)
	g.Place(g.Index(0, 0), NewParticle(KindOil, rng))
	g.Place(g.Index(0, 1), NewParticle(KindWater, rng))
	RulesFromParams(p).Advance(g, rng)
	assert.Equal(t, KindOil, g.KindAt(0, 0))
}

func TestCoalSinksAndRelocates(t *testing.T) {
	for _, liquid := range []Kind{KindWater, KindOil} {
		rng := newRand(14)
		g := mustGrid(t, 3, 2)
		g.FillRect(0, 0, 3, 1, liquid, rng)
		g.Place(g.Index(1, 1), NewParticle(KindCoal, rng))

		rep := DefaultRules().Advance(g, rng)
		assert.Equal(t, 1, rep.Count(OutcomeSank), "%v", liquid)
		require.Equal(t, KindCoal, g.KindAt(1, 0), "%v", liquid)
		assert.InDelta(t, -0.75, g.At(g.Index(1, 0)).Velocity.Y, 1e-9)
		assert.Equal(t, liquid, g.KindAt(0, 1), "first empty cell of the window")
		assert.Equal(t, KindEmpty, g.KindAt(1, 1), "coal leaves a hole instead of swapping")
		assert.Equal(t, 3, g.Census()[liquid])
	}
}

func TestOilFloatsUnlessItSinks(t *testing.T) {
	p := DefaultParams()
	p.OilSinkChance = 1
	rng := newRand(15)

	g := mustGrid(t, 1, 2)
	g.Place(g.Index(0, 0), NewParticle(KindWater, rng))
	g.Place(g.Index(0, 1), NewParticle(KindOil, rng))
	rep := RulesFromParams(p).Advance(g, rng)
	assert.Equal(t, 1, rep.Count(OutcomeSank))
	assert.Equal(t, KindOil, g.KindAt(0, 0))
	assert.Equal(t, KindWater, g.KindAt(0, 1), "oil swaps with the water it sinks into")

	p.OilSinkChance = 0
	rules := RulesFromParams(p)
	g = mustGrid(t, 1, 2)
	g.Place(g.Index(0, 0), NewParticle(KindWater, rng))
	g.Place(g.Index(0, 1), NewParticle(KindOil, rng))
	for range 20 {
		rep = rules.Advance(g, rng)
		require.Zero(t, rep.Count(OutcomeSank))
	}
	assert.Equal(t, KindWater, g.KindAt(0, 0))
	assert.Equal(t, KindOil, g.KindAt(0, 1))
}

func TestFireMeetsWater(t *testing.T) {
	rules := DefaultRules()
	rng := newRand(7)

	g := mustGrid(t, 2, 1)
	g.Place(0, NewParticle(KindFire, rng))
	g.Place(1, NewParticle(KindWater, rng))
	rep := rules.Advance(g, rng)
	c := g.Census()
	assert.Equal(t, 1, c[KindSteam])
	assert.Equal(t, 1, c[KindWater], "water is not consumed")
	assert.Zero(t, c[KindFire])
	assert.Equal(t, 1, rep.Count(OutcomeReacted))

	g = mustGrid(t, 1, 2)
	g.Place(g.Index(0, 0), NewParticle(KindWater, rng))
	g.Place(g.Index(0, 1), NewParticle(KindFire, rng))
	rules.Advance(g, rng)
	assert.Equal(t, KindSteam, g.KindAt(0, 1))
	assert.Equal(t, KindWater, g.KindAt(0, 0))
}

func TestFireIgnitesOil(t *testing.T) {
	p := quietParams()
	p.OilIgniteChance = 1
	rules := RulesFromParams(p)
	rng := newRand(8)

	g := mustGrid(t, 3, 1)
	g.Place(0, NewParticle(KindOil, rng))
	g.Place(1, NewParticle(KindFire, rng))
	g.Place(2, NewParticle(KindOil, rng))

	rules.Advance(g, rng)
	for x := 0; x < 3; x++ {
		assert.Equal(t, KindFire, g.KindAt(x, 0), "x=%d", x)
	}
	assert.InDelta(t, 0.97, g.At(1).LifeTime, 1e-9)

	// Oil flames burn out on the next tick; the source fire keeps going.
	rules.Advance(g, rng)
	assert.Equal(t, KindEmpty, g.KindAt(0, 0))
	assert.Equal(t, KindFire, g.KindAt(1, 0))
	assert.Equal(t, KindEmpty, g.KindAt(2, 0))
}

func TestFireIgnitesCoalForLongBurn(t *testing.T) {
	p := quietParams()
	p.CoalIgniteChance = 1
	rules := RulesFromParams(p)
	rng := newRand(9)

	g := mustGrid(t, 2, 1)
	g.Place(0, NewParticle(KindCoal, rng))
	g.Place(1, NewParticle(KindFire, rng))
	rules.Advance(g, rng)

	require.Equal(t, KindFire, g.KindAt(0, 0))
	assert.Equal(t, 10.0, g.At(0).LifeTime)
	assert.InDelta(t, 9.97, g.At(1).LifeTime, 1e-9)
}

func TestFireBurnsOut(t *testing.T) {
	rules := RulesFromParams(quietParams())
	rng := newRand(10)
	g := mustGrid(t, 1, 1)
	g.Place(0, NewParticle(KindFire, rng))

	run(rules, g, rng, 33)
	require.Equal(t, KindFire, g.KindAt(0, 0))
	rep := rules.Advance(g, rng)
	assert.Equal(t, KindEmpty, g.KindAt(0, 0))
	assert.Equal(t, 1, rep.Count(OutcomeExpired))
}

func TestGasRisesAndFades(t *testing.T) {
	rules := DefaultRules()
	for _, k := range []Kind{KindSmoke, KindSteam} {
		rng := newRand(12)
		g := mustGrid(t, 1, 10)
		g.Place(0, NewParticle(k, rng))

		run(rules, g, rng, 20)
		assert.Equal(t, k, g.KindAt(0, 9), "%v", k)

		run(rules, g, rng, 130)
		assert.Equal(t, 1, g.Census()[k], "%v", k)

		run(rules, g, rng, 60)
		assert.Zero(t, g.Census().Total(), "%v decays unconditionally", k)
	}
}

func TestGasDriftNeedsClearPath(t *testing.T) {
	rules := DefaultRules()
	g := mustGrid(t, 4, 1)
	smoke := NewParticle(KindSmoke, nil)
	g.Place(0, smoke)
	g.Place(1, NewParticle(KindSand, nil))

	p := smoke
	assert.False(t, rules.drift(g, &rules.gas, 0, 0, 0, 2, &p, 1))
	assert.Equal(t, KindSmoke, g.KindAt(0, 0))
	assert.Equal(t, KindEmpty, g.KindAt(2, 0))

	assert.False(t, rules.drift(g, &rules.gas, 0, 0, 0, 1, &p, 1), "target taken")

	g.Place(1, newEmpty())
	require.True(t, rules.drift(g, &rules.gas, 0, 0, 0, 2, &p, 1))
	assert.Equal(t, KindEmpty, g.KindAt(0, 0))
	assert.Equal(t, KindSmoke, g.KindAt(2, 0))
	assert.Equal(t, 1.0, g.At(2).Velocity.X)
}

func TestSmokeVentsInPriorityOrder(t *testing.T) {
	f := &DefaultRules().fire
	rng := newRand(16)
	for n := range smokeVents {
		g := mustGrid(t, 3, 3)
		g.Fill(KindSand, nil)
		g.Place(g.Index(1, 1), NewParticle(KindFire, rng))
		for _, o := range smokeVents[n:] {
			g.Place(g.Index(1+o.dx, 1+o.dy), newEmpty())
		}

		require.True(t, f.vent(g, rng, 1, 1), "vent %d", n)
		want := smokeVents[n]
		assert.Equal(t, KindSmoke, g.KindAt(1+want.dx, 1+want.dy), "vent %d", n)
		assert.Equal(t, 1, g.Census()[KindSmoke], "vent %d", n)
	}

	g := mustGrid(t, 3, 3)
	g.Fill(KindSand, nil)
	g.Place(g.Index(1, 1), NewParticle(KindFire, rng))
	g.Place(g.Index(1, 0), newEmpty())
	assert.False(t, f.vent(g, rng, 1, 1), "straight down is never a vent")
	assert.Zero(t, g.Census()[KindSmoke])

	g = mustGrid(t, 3, 3)
	g.Place(g.Index(0, 2), NewParticle(KindFire, rng))
	require.True(t, f.vent(g, rng, 0, 2))
	assert.Equal(t, KindSmoke, g.KindAt(1, 2), "out of bounds vents are skipped")
}

func TestEveryKindHasARule(t *testing.T) {
	rules := DefaultRules()
	rng := newRand(13)
	for _, k := range Kinds() {
		g := mustGrid(t, 3, 3)
		g.Place(g.Index(1, 1), NewParticle(k, rng))
		assert.NotPanics(t, func() { run(rules, g, rng, 3) }, "kind %v", k)
	}
}

func TestUnknownKindPanics(t *testing.T) {
	g := mustGrid(t, 1, 1)
	g.cells[0].Kind = kindCount
	assert.Panics(t, func() { DefaultRules().Advance(g, newRand(1)) })
}

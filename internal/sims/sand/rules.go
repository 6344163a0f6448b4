package sand

import (
	"fmt"
	"math"
)

// Outcome classifies what a single dispatch did to its particle.
type Outcome uint8

const (
	// OutcomeIdle means the particle stayed in its cell.
	OutcomeIdle Outcome = iota
	// OutcomeMoved means the particle traded places with an open cell.
	OutcomeMoved
	// OutcomeSank means the particle displaced a lighter liquid.
	OutcomeSank
	// OutcomeReacted means the particle changed kind through contact.
	OutcomeReacted
	// OutcomeExpired means the particle ran out of life.
	OutcomeExpired

	outcomeCount
)

var outcomeNames = [outcomeCount]string{"idle", "moved", "sank", "reacted", "expired"}

func (o Outcome) String() string {
	if o < outcomeCount {
		return outcomeNames[o]
	}
	return fmt.Sprintf("outcome(%d)", uint8(o))
}

// Outcomes lists every outcome in declaration order.
func Outcomes() []Outcome {
	out := make([]Outcome, outcomeCount)
	for i := range out {
		out[i] = Outcome(i)
	}
	return out
}

// Report summarizes one tick.
type Report struct {
	Dispatched int
	counts     [outcomeCount]int
}

// Count returns how many dispatches ended with outcome o.
func (r Report) Count(o Outcome) int {
	if o >= outcomeCount {
		return 0
	}
	return r.counts[o]
}

func (r *Report) add(o Outcome) {
	r.Dispatched++
	r.counts[o]++
}

// Rules is the per-kind rule set together with the tick scheduler.
type Rules struct {
	gravity  float64
	friction float64

	sand, water, coal, oil motion

	fire fireRule
	gas  gasRule
}

// DefaultRules returns the rule set built from DefaultParams.
func DefaultRules() *Rules { return RulesFromParams(DefaultParams()) }

// RulesFromParams builds a rule set from p.
func RulesFromParams(p Params) *Rules {
	return &Rules{
		gravity:  p.Gravity,
		friction: p.LiquidFriction,
		sand:     sandMotion(),
		water:    waterMotion(p.WaterSinkChance),
		coal:     coalMotion(),
		oil:      oilMotion(p.OilSinkChance),
		fire: fireRule{
			maxFall:      -2,
			coalChance:   p.CoalIgniteChance,
			oilChance:    p.OilIgniteChance,
			smokeChance:  p.SmokeChance,
			burnRate:     p.BurnRate,
			coalLifeTime: 10,
			oilLifeTime:  0.01,
		},
		gas: gasRule{
			maxSpread: 1,
			maxRise:   1,
			decay:     p.GasDecay,
			lift:      0.3,
			drag:      0.25,
		},
	}
}

// Advance runs one tick: a serpentine sweep dispatching every unsettled cell
// followed by clearing all settled markers.
func (r *Rules) Advance(g *Grid, rng Random) Report {
	return r.advance(g, rng, nil)
}

func (r *Rules) advance(g *Grid, rng Random, visit func(x, y int, p Particle)) Report {
	var rep Report
	for y := 0; y < g.H; y++ {
		if y%2 == 0 {
			for x := 0; x < g.W; x++ {
				r.visit(g, rng, x, y, visit, &rep)
			}
			continue
		}
		for x := g.W - 1; x >= 0; x-- {
			r.visit(g, rng, x, y, visit, &rep)
		}
	}
	g.ClearSettled()
	return rep
}

func (r *Rules) visit(g *Grid, rng Random, x, y int, hook func(x, y int, p Particle), rep *Report) {
	p := g.cells[g.Index(x, y)]
	if p.Settled {
		return
	}
	if hook != nil {
		hook(x, y, p)
	}
	rep.add(r.update(g, rng, x, y))
}

// update dispatches the cell at (x, y) to its kind's rule.
func (r *Rules) update(g *Grid, rng Random, x, y int) Outcome {
	i := g.Index(x, y)
	switch k := g.cells[i].Kind; k {
	case KindEmpty:
		g.Set(i, g.cells[i])
		return OutcomeIdle
	case KindSand:
		return r.fall(g, rng, &r.sand, x, y)
	case KindWater:
		return r.fall(g, rng, &r.water, x, y)
	case KindCoal:
		return r.fall(g, rng, &r.coal, x, y)
	case KindOil:
		return r.fall(g, rng, &r.oil, x, y)
	case KindFire:
		return r.burn(g, rng, x, y)
	case KindSmoke, KindSteam:
		return r.rise(g, rng, x, y)
	default:
		panic(fmt.Sprintf("sand: no rule for %v at (%d,%d)", k, x, y))
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round(v float64) int { return int(math.Round(v)) }

// lateral returns the column reached by horizontal speed vx, falling back to a
// single step in dir when the speed rounds to zero.
func lateral(x int, vx float64, dir int) int {
	if off := round(vx); off != 0 {
		return x + off
	}
	return x + dir
}

// blocked reports whether any cell strictly between columns x0 and x1 on row
// y is occupied.
func blocked(g *Grid, x0, x1, y int) bool {
	step := 1
	if x1 < x0 {
		step = -1
	}
	for x := x0 + step; x != x1; x += step {
		if g.cells[g.Index(x, y)].Kind != KindEmpty {
			return true
		}
	}
	return false
}

// pickDirection returns the sign of vx, or a random sign when vx is zero.
func pickDirection(vx float64, rng Random) int {
	switch {
	case vx > 0:
		return 1
	case vx < 0:
		return -1
	case rng.IntN(2) == 0:
		return -1
	default:
		return 1
	}
}

func chance(rng Random, p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return rng.Float64() < p
}

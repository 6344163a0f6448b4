package sand

type fireRule struct {
	maxFall      float64
	coalChance   float64
	oilChance    float64
	smokeChance  float64
	burnRate     float64
	coalLifeTime float64
	oilLifeTime  float64
}

type offset struct{ dx, dy int }

// smokeVents are the cells a fire may puff smoke into, in priority order.
var smokeVents = [...]offset{
	{0, 1}, {1, 1}, {-1, 1},
	{1, 0}, {-1, 0},
	{1, -1}, {-1, -1},
}

// fireReach is the order in which a fire inspects its neighborhood.
var fireReach = [...]offset{
	{0, -1},
	{1, 0}, {-1, 0},
	{0, 1},
	{1, -1}, {-1, -1},
	{1, 1}, {-1, 1},
}

// burn runs the fire rule: puff smoke, react with every neighbor, then sink
// one cell or smolder in place while burning down.
func (r *Rules) burn(g *Grid, rng Random, x, y int) Outcome {
	f := &r.fire
	i := g.Index(x, y)
	p := g.cells[i]

	if chance(rng, f.smokeChance*0.1) {
		f.vent(g, rng, x, y)
	}

	p.Velocity.Y = clamp(p.Velocity.Y, f.maxFall, 0)

	for _, o := range fireReach {
		nx, ny := x+o.dx, y+o.dy
		if !g.InBounds(nx, ny) {
			continue
		}
		j := g.Index(nx, ny)
		switch g.cells[j].Kind {
		case KindEmpty:
			if chance(rng, f.smokeChance) {
				g.Set(j, NewParticle(KindSmoke, rng))
			}
		case KindCoal:
			if chance(rng, f.coalChance) {
				p.LifeTime = f.coalLifeTime
				g.Set(j, f.ignite(rng, f.coalLifeTime))
			}
		case KindOil:
			if chance(rng, f.oilChance) {
				p.LifeTime = 1
				g.Set(j, f.ignite(rng, f.oilLifeTime))
			}
		case KindWater:
			g.Set(i, NewParticle(KindSteam, rng))
			return OutcomeReacted
		}
	}

	tx, ty := x+round(p.Velocity.X), y-1+round(p.Velocity.Y)
	if g.InBounds(tx, ty) {
		j := g.Index(tx, ty)
		switch target := g.cells[j].Kind; {
		case open(target):
			p.Velocity.Y -= r.gravity * 0.25
			p.LifeTime -= f.burnRate
			if p.LifeTime < 0 {
				g.move(i, j, f.ash(rng))
				return OutcomeExpired
			}
			g.move(i, j, p)
			return OutcomeMoved
		case target == KindWater:
			g.Set(i, NewParticle(KindSteam, rng))
			return OutcomeReacted
		}
	}

	p.LifeTime -= f.burnRate
	if p.LifeTime < 0 {
		g.Set(i, f.ash(rng))
		return OutcomeExpired
	}
	p.Velocity.Y += r.gravity
	g.Set(i, p)
	return OutcomeIdle
}

// vent puts one smoke particle into the first empty smokeVents cell around
// (x, y). It reports false when every vent is blocked.
func (f *fireRule) vent(g *Grid, rng Random, x, y int) bool {
	for _, o := range smokeVents {
		nx, ny := x+o.dx, y+o.dy
		if !g.InBounds(nx, ny) {
			continue
		}
		if j := g.Index(nx, ny); g.cells[j].Kind == KindEmpty {
			g.Set(j, NewParticle(KindSmoke, rng))
			return true
		}
	}
	return false
}

func (f *fireRule) ignite(rng Random, life float64) Particle {
	p := NewParticle(KindFire, rng)
	p.LifeTime = life
	return p
}

// ash is what a fire leaves when it burns out: rarely smoke, usually nothing.
func (f *fireRule) ash(rng Random) Particle {
	if chance(rng, f.smokeChance*0.25) {
		return NewParticle(KindSmoke, rng)
	}
	return newEmpty()
}

package sand

// fallStep scales horizontal speed and adds lift (in units of gravity) to the
// vertical speed after a straight-down move.
type fallStep struct {
	damp, lift float64
}

// kick adds push in the direction of travel and lift (in units of gravity)
// after a diagonal or sideways move.
type kick struct {
	push, lift float64
}

// motion parameterizes the shared movement of sand, water, coal and oil.
type motion struct {
	maxSpread float64
	maxFall   float64
	// spreadCap bounds the random spread chosen when the particle has no
	// horizontal speed.
	spreadCap float64

	drop     fallStep
	diag     kick
	opposite kick

	// liquid particles refresh their life time on vertical moves and may
	// slide sideways.
	liquid bool
	slide  float64

	sinksInto  [kindCount]bool
	sinkChance float64
	// relocate empties the source cell and moves the displaced liquid to the
	// nearest empty cell instead of swapping.
	relocate  bool
	sinkSpeed float64
	// stillDisplaced stops the displaced liquid's drift on a straight-down sink.
	stillDisplaced bool

	sinkDrop     fallStep
	sinkDiag     kick
	sinkOpposite kick
	sinkSlide    kick
}

const (
	relocateHalfWidth = 10
	relocateRows      = 10
)

func sandMotion() motion {
	m := motion{
		maxSpread:    2,
		maxFall:      -10,
		spreadCap:    2,
		drop:         fallStep{damp: 0.8, lift: -1},
		diag:         kick{push: 1, lift: 1},
		opposite:     kick{push: 1, lift: 1},
		sinkChance:   1,
		relocate:     true,
		sinkSpeed:    -2,
		sinkDrop:     fallStep{damp: 0.6, lift: -0.25},
		sinkDiag:     kick{push: 0.5, lift: 2},
		sinkOpposite: kick{push: 0.5, lift: 2},
	}
	m.sinksInto[KindWater] = true
	m.sinksInto[KindOil] = true
	return m
}

func coalMotion() motion {
	m := motion{
		maxSpread:    0,
		maxFall:      -10,
		spreadCap:    2,
		drop:         fallStep{damp: 0.8, lift: -1},
		diag:         kick{push: 1, lift: 1},
		opposite:     kick{push: 1, lift: 1},
		sinkChance:   1,
		relocate:     true,
		sinkSpeed:    -5,
		sinkDrop:     fallStep{damp: 0.3, lift: -0.75},
		sinkDiag:     kick{push: 0.2, lift: 1.5},
		sinkOpposite: kick{push: 0.2, lift: 1.5},
	}
	m.sinksInto[KindWater] = true
	m.sinksInto[KindOil] = true
	return m
}

func waterMotion(sinkChance float64) motion {
	m := motion{
		maxSpread:      8,
		maxFall:        -10,
		spreadCap:      8,
		drop:           fallStep{damp: 0.8, lift: -1},
		diag:           kick{push: 1, lift: 1},
		opposite:       kick{push: 1, lift: 1},
		liquid:         true,
		slide:          1,
		sinkChance:     sinkChance,
		sinkSpeed:      -10,
		stillDisplaced: true,
		sinkDrop:       fallStep{damp: 0.3, lift: -0.5},
		sinkDiag:       kick{push: 0.5, lift: 2},
		sinkOpposite:   kick{push: 1, lift: 2},
		sinkSlide:      kick{push: 0.5, lift: 2},
	}
	m.sinksInto[KindOil] = true
	return m
}

func oilMotion(sinkChance float64) motion {
	m := motion{
		maxSpread:    5,
		maxFall:      -10,
		spreadCap:    8,
		drop:         fallStep{damp: 0.8, lift: -1},
		diag:         kick{push: 0.5, lift: 1},
		opposite:     kick{push: 0.5, lift: 1},
		liquid:       true,
		slide:        0.5,
		sinkChance:   sinkChance,
		sinkSpeed:    -10,
		sinkDrop:     fallStep{damp: 0.3, lift: -0.5},
		sinkDiag:     kick{push: 0.25, lift: 2},
		sinkOpposite: kick{push: 0.25, lift: 0.5},
		sinkSlide:    kick{push: 0.25, lift: 2},
	}
	m.sinksInto[KindWater] = true
	return m
}

func (m *motion) sinks(target Kind, rng Random) bool {
	return m.sinksInto[target] && chance(rng, m.sinkChance)
}

func (m *motion) refresh(p *Particle) {
	if m.liquid {
		p.LifeTime = 1
	}
}

func (m *motion) capSink(v *Velocity) {
	if v.Y < m.sinkSpeed {
		v.Y = m.sinkSpeed
	}
}

// fall runs the shared granular/liquid rule for the particle at (x, y):
// straight down with drift, primary diagonal, opposite diagonal, then for
// liquids a blocked-path checked slide to either side.
func (r *Rules) fall(g *Grid, rng Random, m *motion, x, y int) Outcome {
	i := g.Index(x, y)
	p := g.cells[i]
	v := &p.Velocity
	v.X = clamp(v.X, -m.maxSpread, m.maxSpread)
	v.Y = clamp(v.Y, m.maxFall, 0)

	tx, ty := x+round(v.X), y-1+round(v.Y)
	if g.InBounds(tx, ty) {
		j := g.Index(tx, ty)
		target := g.cells[j].Kind
		if open(target) {
			m.refresh(&p)
			v.X *= m.drop.damp
			v.Y += m.drop.lift * r.gravity
			g.move(i, j, p)
			return OutcomeMoved
		}
		if m.sinks(target, rng) {
			m.refresh(&p)
			v.X *= m.sinkDrop.damp
			v.Y += m.sinkDrop.lift * r.gravity
			m.capSink(v)
			r.sink(g, m, i, j, tx, ty, p, m.stillDisplaced)
			return OutcomeSank
		}
	}

	dir := pickDirection(v.X, rng)
	if v.X == 0 {
		v.X = clamp(-float64(dir)*rng.Float64()*v.Y, -m.spreadCap, m.spreadCap)
	}

	ty = y - 1
	if o, ok := r.diagonal(g, rng, m, i, lateral(x, v.X, dir), ty, &p, dir, m.diag, m.sinkDiag); ok {
		return o
	}

	carried := v.X
	v.X *= -0.5
	if o, ok := r.diagonal(g, rng, m, i, lateral(x, v.X, -dir), ty, &p, -dir, m.opposite, m.sinkOpposite); ok {
		return o
	}

	if m.liquid {
		p.LifeTime -= r.friction
		v.X = carried
		if o, ok := r.slide(g, rng, m, i, x, y, lateral(x, v.X, dir), &p, dir); ok {
			return o
		}
		v.X *= -0.5
		if o, ok := r.slide(g, rng, m, i, x, y, lateral(x, v.X, -dir), &p, -dir); ok {
			return o
		}
	}

	v.Y += r.gravity
	v.X = 0
	g.Set(i, p)
	return OutcomeIdle
}

func (r *Rules) diagonal(g *Grid, rng Random, m *motion, i, tx, ty int, p *Particle, dir int, free, sunk kick) (Outcome, bool) {
	if !g.InBounds(tx, ty) {
		return OutcomeIdle, false
	}
	j := g.Index(tx, ty)
	target := g.cells[j].Kind
	switch {
	case open(target):
		m.refresh(p)
		p.Velocity.X += float64(dir) * free.push
		p.Velocity.Y += free.lift * r.gravity
		g.move(i, j, *p)
		return OutcomeMoved, true
	case m.sinks(target, rng):
		m.refresh(p)
		p.Velocity.X += float64(dir) * sunk.push
		p.Velocity.Y += sunk.lift * r.gravity
		m.capSink(&p.Velocity)
		r.sink(g, m, i, j, tx, ty, *p, false)
		return OutcomeSank, true
	}
	return OutcomeIdle, false
}

func (r *Rules) slide(g *Grid, rng Random, m *motion, i, x, y, tx int, p *Particle, dir int) (Outcome, bool) {
	if !g.InBounds(tx, y) {
		return OutcomeIdle, false
	}
	j := g.Index(tx, y)
	target := g.cells[j].Kind
	switch {
	case open(target):
		if blocked(g, x, tx, y) {
			return OutcomeIdle, false
		}
		if p.LifeTime < 0 {
			p.Velocity.X *= 0.5
		} else {
			p.Velocity.X += float64(dir) * m.slide
		}
		p.Velocity.Y += r.gravity
		g.move(i, j, *p)
		return OutcomeMoved, true
	case m.sinks(target, rng):
		p.LifeTime = 1
		p.Velocity.X += float64(dir) * m.sinkSlide.push
		p.Velocity.Y += m.sinkSlide.lift * r.gravity
		r.sink(g, m, i, j, tx, y, *p, false)
		return OutcomeSank, true
	}
	return OutcomeIdle, false
}

// sink puts p into cell j, which holds a lighter liquid. Liquids swap
// directly; granular particles leave an empty cell behind and the displaced
// liquid is moved to the first empty cell of the window above the target, or
// dropped when there is none.
func (r *Rules) sink(g *Grid, m *motion, i, j, tx, ty int, p Particle, still bool) {
	displaced := g.cells[j]
	if !m.relocate {
		if still {
			displaced.Velocity.X = 0
		}
		g.Set(j, p)
		g.Set(i, displaced)
		return
	}
	g.Set(j, p)
	g.Set(i, newEmpty())
	relocate(g, displaced, tx, ty)
}

// relocate scans rows ty..ty+10 and columns tx-10..tx+10 in row-major order
// and writes displaced into the first empty cell. It reports whether a cell
// was found.
func relocate(g *Grid, displaced Particle, tx, ty int) bool {
	for row := 0; row <= relocateRows; row++ {
		for col := -relocateHalfWidth; col <= relocateHalfWidth; col++ {
			nx, ny := tx+col, ty+row
			if !g.InBounds(nx, ny) {
				continue
			}
			k := g.Index(nx, ny)
			if g.cells[k].Kind == KindEmpty {
				g.Set(k, displaced)
				return true
			}
		}
	}
	return false
}

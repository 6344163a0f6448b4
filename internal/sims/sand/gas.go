package sand

type gasRule struct {
	maxSpread float64
	maxRise   float64
	decay     float64
	// lift is added to the rise speed on every upward move.
	lift float64
	// drag, in units of gravity, slows the rise on sideways moves and rests.
	drag float64
}

// rise runs the smoke and steam rule, the buoyant mirror of the liquid rule.
// Gases only ever trade places with empty cells and fade out over time.
func (r *Rules) rise(g *Grid, rng Random, x, y int) Outcome {
	gr := &r.gas
	i := g.Index(x, y)
	p := g.cells[i]

	p.LifeTime -= gr.decay
	if p.LifeTime < 0 {
		g.Set(i, newEmpty())
		return OutcomeExpired
	}

	v := &p.Velocity
	v.X = clamp(v.X, -gr.maxSpread, gr.maxSpread)
	v.Y = clamp(v.Y, 0, gr.maxRise)

	tx, ty := x+round(v.X), y+1+round(v.Y)
	if g.emptyAt(tx, ty) {
		v.X *= 0.6
		v.Y += gr.lift
		g.move(i, g.Index(tx, ty), p)
		return OutcomeMoved
	}

	dir := pickDirection(v.X, rng)
	if v.X == 0 {
		v.X = clamp(float64(dir)*rng.Float64()*v.Y, -gr.maxSpread, gr.maxSpread)
	}

	ty = y + 1
	tx = lateral(x, v.X, dir)
	if g.emptyAt(tx, ty) {
		v.X += float64(dir)
		v.Y += gr.lift
		g.move(i, g.Index(tx, ty), p)
		return OutcomeMoved
	}

	carried := v.X
	v.X *= -0.5
	tx = lateral(x, v.X, -dir)
	if g.emptyAt(tx, ty) {
		v.X -= float64(dir)
		v.Y += gr.lift
		g.move(i, g.Index(tx, ty), p)
		return OutcomeMoved
	}

	v.X = carried
	if r.drift(g, gr, i, x, y, lateral(x, v.X, dir), &p, dir) {
		return OutcomeMoved
	}
	v.X *= -0.5
	if r.drift(g, gr, i, x, y, lateral(x, v.X, -dir), &p, -dir) {
		return OutcomeMoved
	}

	v.Y -= r.gravity * gr.drag
	v.X = 0
	g.Set(i, p)
	return OutcomeIdle
}

func (r *Rules) drift(g *Grid, gr *gasRule, i, x, y, tx int, p *Particle, dir int) bool {
	if !g.emptyAt(tx, y) || blocked(g, x, tx, y) {
		return false
	}
	p.Velocity.X += float64(dir)
	p.Velocity.Y -= r.gravity * gr.drag
	g.move(i, g.Index(tx, y), *p)
	return true
}

func (g *Grid) emptyAt(x, y int) bool {
	return g.InBounds(x, y) && g.cells[g.Index(x, y)].Kind == KindEmpty
}

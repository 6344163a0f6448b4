package sand

import "math"

// Stamp drops up to radius particles of kind k at random offsets within the
// disc centered on (cx, cy). A particle lands only on an empty cell, or for
// fire also on coal or oil. It returns how many particles were placed.
func (g *Grid) Stamp(rng Random, cx, cy, radius int, k Kind) int {
	if !k.Valid() || k == KindEmpty {
		return 0
	}
	attempts := max(radius, 1)
	placed := 0
	for n := 0; n < attempts; n++ {
		x, y := discOffset(rng, cx, cy, radius)
		if !g.InBounds(x, y) {
			continue
		}
		i := g.Index(x, y)
		dst := g.cells[i].Kind
		if dst != KindEmpty && !(k == KindFire && flammable(dst)) {
			continue
		}
		g.Place(i, NewParticle(k, rng))
		placed++
	}
	return placed
}

// Erase empties every in-bounds cell within radius of (cx, cy) and returns how
// many non-empty cells were cleared.
func (g *Grid) Erase(cx, cy, radius int) int {
	r2 := radius * radius
	cleared := 0
	e := newEmpty()
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > r2 {
				continue
			}
			x, y := cx+dx, cy+dy
			if !g.InBounds(x, y) {
				continue
			}
			i := g.Index(x, y)
			if g.cells[i].Kind != KindEmpty {
				cleared++
			}
			g.Place(i, e)
		}
	}
	return cleared
}

// FillDisc replaces every in-bounds cell within radius of (cx, cy) with a
// fresh particle of kind k and returns how many cells were written.
func (g *Grid) FillDisc(cx, cy, radius int, k Kind, rng Random) int {
	r2 := radius * radius
	n := 0
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			x, y := cx+dx, cy+dy
			if dx*dx+dy*dy > r2 || !g.InBounds(x, y) {
				continue
			}
			g.Place(g.Index(x, y), NewParticle(k, rng))
			n++
		}
	}
	return n
}

// discOffset picks a uniformly distributed cell within radius of (cx, cy).
func discOffset(rng Random, cx, cy, radius int) (int, int) {
	if radius <= 0 {
		return cx, cy
	}
	r := float64(radius) * math.Sqrt(rng.Float64())
	theta := 2 * math.Pi * rng.Float64()
	// Truncating toward zero keeps the cell inside the disc.
	return cx + int(r*math.Cos(theta)), cy + int(r*math.Sin(theta))
}

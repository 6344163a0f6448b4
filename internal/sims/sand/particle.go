package sand

import "image/color"

// Random is the injectable source of randomness consumed by the rule set.
// *math/rand/v2.Rand and *core.RNG both satisfy it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

// Velocity holds a particle's per-tick offsets. Negative Y points down.
type Velocity struct {
	X, Y float64
}

// Particle is the value stored in every grid cell. Particles have no
// identity across ticks; they are copied on every write.
type Particle struct {
	Kind     Kind
	Color    color.RGBA
	Velocity Velocity
	// LifeTime is a decay counter for fire and gases and a sliding friction
	// counter for liquids.
	LifeTime float64
	// Settled is set once the particle has been processed in the current tick.
	Settled bool
}

var (
	emptyColor = color.RGBA{R: 80, G: 200, B: 255, A: 255}
	sandColor  = color.RGBA{R: 230, G: 205, B: 50, A: 255}
	waterColor = color.RGBA{R: 50, G: 120, B: 170, A: 255}
	oilColor   = color.RGBA{R: 130, G: 130, B: 105, A: 255}
	smokeColor = color.RGBA{R: 70, G: 70, B: 70, A: 255}
	steamColor = color.RGBA{R: 215, G: 215, B: 215, A: 255}
)

// EmptyColor is the fixed color of an empty cell.
func EmptyColor() color.RGBA { return emptyColor }

// NewParticle returns a fresh particle of kind k. Coal and Fire draw their
// shade from rng; rng may be nil for the other kinds.
func NewParticle(k Kind, rng Random) Particle {
	p := Particle{Kind: k, LifeTime: 1}
	switch k {
	case KindSand:
		p.Color = sandColor
	case KindWater:
		p.Color = waterColor
	case KindCoal:
		c := uint8(25)
		if rng != nil {
			c += uint8(rng.IntN(26))
		}
		p.Color = color.RGBA{R: c, G: c, B: c, A: 255}
	case KindOil:
		p.Color = oilColor
	case KindFire:
		g := uint8(100)
		if rng != nil {
			g += uint8(rng.IntN(101))
		}
		p.Color = color.RGBA{R: 230, G: g, B: 50, A: 255}
	case KindSmoke:
		p.Color = smokeColor
	case KindSteam:
		p.Color = steamColor
	default:
		p.Kind = KindEmpty
		p.Color = emptyColor
	}
	return p
}

func newEmpty() Particle {
	return Particle{Kind: KindEmpty, Color: emptyColor, LifeTime: 1}
}

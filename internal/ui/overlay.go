//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"sandfall/internal/core"
	"sandfall/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type velocityProvider interface {
	VelocityAt(x, y int) (vx, vy float64, ok bool)
}

// Overlay draws the brush outline and an optional particle velocity field on
// top of the simulation.
type Overlay struct {
	sim          core.Sim
	scale        int
	showVelocity bool
	pixel        *ebiten.Image

	samples    []sample
	cacheW     int
	cacheH     int
	cacheScale int
	span       float64
}

type sample struct {
	x, y   int
	sx, sy float64
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	o := &Overlay{sim: sim, scale: max(scale, 1)}
	o.pixel = ebiten.NewImage(1, 1)
	o.pixel.Fill(color.White)
	return o
}

// Update toggles the velocity field with V.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		o.showVelocity = !o.showVelocity
	}
}

// Draw renders the overlay. The brush ring is centered on grid cell (gx, gy).
func (o *Overlay) Draw(screen *ebiten.Image, gx, gy, radius int, tint color.RGBA) {
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}
	if o.showVelocity {
		if provider, ok := o.sim.(velocityProvider); ok {
			o.drawVelocityField(screen, provider, size)
		}
	}
	if gx >= 0 && gy >= 0 && gx < size.W && gy < size.H {
		o.drawBrush(screen, gx, gy, radius, size, tint)
	}
}

func (o *Overlay) drawBrush(screen *ebiten.Image, gx, gy, radius int, size core.Size, tint color.RGBA) {
	scale := float64(o.scale)
	cx := (float64(gx) + 0.5) * scale
	cy := (float64(size.H-1-gy) + 0.5) * scale
	r := math.Max(float64(radius), 0.5) * scale
	ring := render.Blend(tint, color.RGBA{R: 255, G: 255, B: 255, A: 255}, 0.4)
	ring.A = 170

	// One dot per few pixels of circumference.
	steps := max(int(2*math.Pi*r/3), 12)
	for i := 0; i < steps; i++ {
		theta := 2 * math.Pi * float64(i) / float64(steps)
		o.drawPoint(screen, cx+r*math.Cos(theta), cy+r*math.Sin(theta), math.Max(scale*0.6, 1.5), ring)
	}
}

func (o *Overlay) drawVelocityField(screen *ebiten.Image, provider velocityProvider, size core.Size) {
	if !o.ensureSamples(size) {
		return
	}

	const (
		calmThreshold    = 0.05
		maxSpeedEstimate = 10.0
		headAngle        = math.Pi / 6
	)
	scale := float64(o.scale)
	minLength := o.span * 0.3
	maxLength := o.span * 0.8

	for _, s := range o.samples {
		vx, vy, ok := provider.VelocityAt(s.x, s.y)
		if !ok {
			continue
		}
		// Screen y grows downward.
		vy = -vy
		speed := math.Hypot(vx, vy)
		if speed < calmThreshold {
			o.drawPoint(screen, s.sx, s.sy, math.Max(scale*0.75, 1), color.RGBA{R: 90, G: 130, B: 170, A: 120})
			continue
		}

		nx, ny := vx/speed, vy/speed
		normalized := math.Min(speed/maxSpeedEstimate, 1)
		length := minLength + (maxLength-minLength)*math.Sqrt(normalized)
		headLength := math.Min(length*0.3, scale*4.5)
		tipX, tipY := s.sx+nx*length*0.6, s.sy+ny*length*0.6
		tailX, tailY := s.sx-nx*length*0.4, s.sy-ny*length*0.4
		thickness := math.Max(scale*(0.65+0.4*normalized), 1)

		col := speedColor(normalized)
		o.drawLine(screen, tailX, tailY, tipX-nx*headLength, tipY-ny*headLength, thickness, col)

		angle := math.Atan2(ny, nx)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle+headAngle)*headLength, tipY-math.Sin(angle+headAngle)*headLength, thickness*0.85, col)
		o.drawLine(screen, tipX, tipY, tipX-math.Cos(angle-headAngle)*headLength, tipY-math.Sin(angle-headAngle)*headLength, thickness*0.85, col)
	}
}

func (o *Overlay) ensureSamples(size core.Size) bool {
	if o.cacheW == size.W && o.cacheH == size.H && o.cacheScale == o.scale && len(o.samples) > 0 {
		return true
	}

	const (
		targetSamples = 600.0
		minSpacing    = 4
		maxSpacing    = 16
	)
	spacing := int(math.Sqrt(float64(size.W*size.H) / targetSamples))
	spacing = min(max(spacing, minSpacing), maxSpacing)

	o.samples = o.samples[:0]
	for y := spacing / 2; y < size.H; y += spacing {
		for x := spacing / 2; x < size.W; x += spacing {
			o.samples = append(o.samples, sample{
				x:  x,
				y:  y,
				sx: (float64(x) + 0.5) * float64(o.scale),
				sy: (float64(size.H-1-y) + 0.5) * float64(o.scale),
			})
		}
	}
	o.cacheW, o.cacheH, o.cacheScale = size.W, size.H, o.scale
	o.span = float64(spacing * o.scale)
	return len(o.samples) > 0
}

func (o *Overlay) drawPoint(screen *ebiten.Image, x, y, size float64, col color.RGBA) {
	if size <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(size, size)
	op.GeoM.Translate(x-size*0.5, y-size*0.5)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

func (o *Overlay) drawLine(screen *ebiten.Image, x1, y1, x2, y2, thickness float64, col color.RGBA) {
	dx, dy := x2-x1, y2-y1
	length := math.Hypot(dx, dy)
	if length <= 1e-4 || thickness <= 0 {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(length, thickness)
	op.GeoM.Translate(0, -thickness/2)
	op.GeoM.Rotate(math.Atan2(dy, dx))
	op.GeoM.Translate(x1, y1)
	op.ColorScale.ScaleWithColor(col)
	screen.DrawImage(o.pixel, op)
}

// speedColor runs from calm blue to hot orange.
func speedColor(t float64) color.RGBA {
	calm := color.RGBA{R: 70, G: 160, B: 230, A: 210}
	hot := color.RGBA{R: 250, G: 140, B: 40, A: 230}
	return render.Blend(calm, hot, t)
}

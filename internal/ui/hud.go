//go:build ebiten

package ui

import (
	"image"
	"image/color"

	"sandfall/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

// HUD renders the status and parameter panel to the right of the sim view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int

	controls *Controls
	rows     []controlRow
	offsetX  int

	pixel *ebiten.Image
}

type controlRow struct {
	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, controls: NewControls(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	h.layout()
	return h
}

// Width returns the panel width in screen pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Contains reports whether the screen position lies on the panel.
func (h *HUD) Contains(x, y int) bool {
	return h != nil && h.width > 0 && x >= h.offsetX
}

// Update refreshes control values and handles clicks on the +/- buttons.
func (h *HUD) Update(offsetX int) {
	if h == nil {
		return
	}
	h.offsetX = offsetX
	h.controls.Refresh()
	if !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < offsetX {
		return
	}
	px := mx - offsetX
	for i, row := range h.rows {
		if pointInRect(px, my, row.minusRect) {
			h.controls.Adjust(i, -1)
			return
		}
		if pointInRect(px, my, row.plusRect) {
			h.controls.Adjust(i, 1)
			return
		}
	}
}

// Draw paints the panel anchored at offsetX.
func (h *HUD) Draw(screen *ebiten.Image, offsetX, scale int, status Status) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 20, A: 255})
	h.drawStatus(status)
	h.drawControls()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func (h *HUD) drawStatus(status Status) {
	face := basicfont.Face7x13
	y := panelPadding + headerBaseline
	h.fillRect(image.Rect(panelPadding, y-swatchSize+2, panelPadding+swatchSize, y+2), status.Swatch)
	text.Draw(h.panel, status.Title, face, panelPadding+swatchSize+buttonGap, y, textColor)
	for _, line := range status.Lines {
		y += statusLine
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
	}
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	if h.controls.Len() == 0 {
		text.Draw(h.panel, "No adjustable parameters", face, panelPadding, h.controlsTop(), dimColor)
		return
	}
	for i, row := range h.rows {
		state := h.controls.At(i)
		labelY := row.top + labelBaseline
		text.Draw(h.panel, state.Spec.Label, face, panelPadding, labelY, textColor)

		valueColor := textColor
		if !state.HasValue() {
			valueColor = dimColor
		}
		bounds := text.BoundString(face, state.Value)
		valueX := row.minusRect.Min.X - buttonGap - bounds.Dx()
		text.Draw(h.panel, state.Value, face, valueX, labelY, valueColor)

		h.drawButton(row.minusRect, "-", h.controls.CanAdjust(i, -1))
		h.drawButton(row.plusRect, "+", h.controls.CanAdjust(i, 1))
	}
}

func (h *HUD) drawButton(rect image.Rectangle, label string, enabled bool) {
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	h.fillRect(rect, bg)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := rect.Min.X + (rect.Dx()-bounds.Dx())/2
	y := rect.Min.Y + (rect.Dy()-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

func (h *HUD) fillRect(rect image.Rectangle, col color.RGBA) {
	if h.pixel == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(rect.Dx()), float64(rect.Dy()))
	op.GeoM.Translate(float64(rect.Min.X), float64(rect.Min.Y))
	op.ColorScale.ScaleWithColor(col)
	h.panel.DrawImage(h.pixel, op)
}

func (h *HUD) controlsTop() int {
	return panelPadding + headerBaseline + statusRows*statusLine + 14
}

func (h *HUD) layout() {
	if h.width <= 0 {
		return
	}
	h.rows = make([]controlRow, h.controls.Len())
	for i := range h.rows {
		top := h.controlsTop() + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := image.Rect(h.width-panelPadding-buttonSize, buttonY, h.width-panelPadding, buttonY+buttonSize)
		minus := image.Rect(plus.Min.X-buttonGap-buttonSize, buttonY, plus.Min.X-buttonGap, buttonY+buttonSize)
		h.rows[i] = controlRow{top: top, minusRect: minus, plusRect: plus}
	}
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return image.Pt(x, y).In(rect)
}

var (
	textColor = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor  = color.RGBA{R: 160, G: 160, B: 170, A: 255}
)

const (
	panelPadding   = 12
	lineHeight     = 32
	buttonSize     = 22
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 21
	swatchSize     = 12
	statusLine     = 16
	// statusRows reserves room for the status lines above the controls.
	statusRows = 6
)

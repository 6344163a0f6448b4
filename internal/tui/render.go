package tui

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"sandfall/internal/render"
)

// upperHalf draws the top grid row in the foreground and the row beneath it
// in the background.
const upperHalf = "▀"

type cellPair struct{ top, bottom color.RGBA }

// RenderHalfBlocks converts a bottom-row-first RGBA buffer of a w*h grid into
// terminal lines, two grid rows per line. Adjacent cells with the same colors
// share one styled run.
func RenderHalfBlocks(pixels []byte, w, h int) string {
	var sb strings.Builder
	sb.Grow(w * (h + 1) / 2 * 4)
	styles := map[cellPair]lipgloss.Style{}

	line := 0
	for top := h - 1; top >= 0; top -= 2 {
		if line > 0 {
			sb.WriteByte('\n')
		}
		line++
		bottom := top - 1

		x := 0
		for x < w {
			pair := pairAt(pixels, w, x, top, bottom)
			run := 1
			for x+run < w && pairAt(pixels, w, x+run, top, bottom) == pair {
				run++
			}
			style, ok := styles[pair]
			if !ok {
				style = lipgloss.NewStyle().Foreground(hex(pair.top))
				if bottom >= 0 {
					style = style.Background(hex(pair.bottom))
				}
				styles[pair] = style
			}
			sb.WriteString(style.Render(strings.Repeat(upperHalf, run)))
			x += run
		}
	}
	return sb.String()
}

func pairAt(pixels []byte, w, x, top, bottom int) cellPair {
	p := cellPair{top: render.PixelAt(pixels, w, x, top)}
	if bottom >= 0 {
		p.bottom = render.PixelAt(pixels, w, x, bottom)
	}
	return p
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}

// CellToGrid maps a terminal cell to the grid cell drawn in its upper half.
func CellToGrid(col, row, h int) (int, int) {
	return col, h - 1 - 2*row
}

package render

import "image/color"

// FlipRows copies a bottom-row-first RGBA buffer of w*h pixels into dst in
// top-row-first order. dst and src must both hold 4*w*h bytes.
func FlipRows(dst, src []byte, w, h int) {
	stride := 4 * w
	for y := 0; y < h; y++ {
		copy(dst[(h-1-y)*stride:(h-y)*stride], src[y*stride:(y+1)*stride])
	}
}

// PixelAt reads the color of grid cell (x, y) from a bottom-row-first buffer
// of width w. Out-of-range reads return transparent black.
func PixelAt(buf []byte, w, x, y int) color.RGBA {
	if x < 0 || y < 0 || x >= w {
		return color.RGBA{}
	}
	base := 4 * (y*w + x)
	if base+3 >= len(buf) {
		return color.RGBA{}
	}
	return color.RGBA{R: buf[base], G: buf[base+1], B: buf[base+2], A: buf[base+3]}
}

// ScreenToGrid maps a top-down screen position drawn at the given scale onto
// grid coordinates of a grid h cells tall, y=0 being the bottom row. The
// result may lie outside the grid.
func ScreenToGrid(sx, sy, scale, h int) (int, int) {
	if scale <= 0 {
		scale = 1
	}
	return floorDiv(sx, scale), h - 1 - floorDiv(sy, scale)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}

// Blend mixes two colors, t=0 giving a and t=1 giving b.
func Blend(a, b color.RGBA, t float64) color.RGBA {
	switch {
	case t <= 0:
		return a
	case t >= 1:
		return b
	}
	mix := func(x, y uint8) uint8 { return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5) }
	return color.RGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

package ui

import "image/color"

// Status is the host-supplied summary shown above the parameter controls.
type Status struct {
	Title  string
	Swatch color.RGBA
	Lines  []string
}

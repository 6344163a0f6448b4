package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a hosted simulation must implement.
// Pixels returns a row-major RGBA buffer of 4*W*H bytes; hosts must only read
// it between calls to Step.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Pixels() []byte
}

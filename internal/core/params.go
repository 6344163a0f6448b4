package core

// ParamType is the value kind of a tunable.
type ParamType string

const (
	ParamTypeInt   ParamType = "int"
	ParamTypeFloat ParamType = "float"
)

// Parameter is one tunable as reported to hosts. Value is preformatted.
type Parameter struct {
	Key   string
	Label string
	Type  ParamType
	Value string
}

// ParameterGroup is a named run of parameters shown together.
type ParameterGroup struct {
	Name   string
	Params []Parameter
}

// ParameterSnapshot is the current value of every tunable, grouped.
type ParameterSnapshot struct {
	Groups []ParameterGroup
}

// Lookup finds a parameter by key across all groups.
func (s ParameterSnapshot) Lookup(key string) (Parameter, bool) {
	for _, g := range s.Groups {
		for _, p := range g.Params {
			if p.Key == key {
				return p, true
			}
		}
	}
	return Parameter{}, false
}

// ParameterControl describes how a host may adjust a parameter. Step is the
// increment for one key press; Min and Max apply only when the matching Has
// flag is set.
type ParameterControl struct {
	Key   string
	Label string
	Type  ParamType
	Step  float64

	Min, Max       float64
	HasMin, HasMax bool
}

// Clamp bounds v to the control's limits.
func (c ParameterControl) Clamp(v float64) float64 {
	if c.HasMin {
		v = max(v, c.Min)
	}
	if c.HasMax {
		v = min(v, c.Max)
	}
	return v
}

// Sims opt into host parameter panels by implementing these.
type (
	ParameterProvider interface {
		Parameters() ParameterSnapshot
	}
	ParameterControlsProvider interface {
		ParameterControls() []ParameterControl
	}
	IntParameterSetter interface {
		SetIntParameter(key string, value int) bool
	}
	FloatParameterSetter interface {
		SetFloatParameter(key string, value float64) bool
	}
)

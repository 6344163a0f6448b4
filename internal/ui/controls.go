package ui

import (
	"math"
	"strconv"

	"sandfall/internal/core"
)

// Control is the host-side view of one adjustable parameter.
type Control struct {
	Spec  core.ParameterControl
	Value string

	intValue   int
	floatValue float64
	hasValue   bool
}

// HasValue reports whether the last refresh found a parseable value.
func (c *Control) HasValue() bool { return c.hasValue }

// Controls binds the adjustable parameters of a simulation to its setters.
// Both the GUI panel and the terminal host drive parameters through it.
type Controls struct {
	items       []Control
	provider    core.ParameterProvider
	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter
}

// NewControls inspects sim for parameter interfaces. A sim without
// adjustable parameters yields an empty set.
func NewControls(sim core.Sim) *Controls {
	c := &Controls{}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, spec := range provider.ParameterControls() {
			c.items = append(c.items, Control{Spec: spec, Value: "--"})
		}
	}
	c.provider, _ = sim.(core.ParameterProvider)
	c.intSetter, _ = sim.(core.IntParameterSetter)
	c.floatSetter, _ = sim.(core.FloatParameterSetter)
	c.Refresh()
	return c
}

// Len returns the number of controls.
func (c *Controls) Len() int { return len(c.items) }

// At returns control i.
func (c *Controls) At(i int) *Control { return &c.items[i] }

// Refresh reloads every control's value from the simulation's snapshot.
func (c *Controls) Refresh() {
	if c.provider == nil {
		return
	}
	snap := c.provider.Parameters()
	for i := range c.items {
		state := &c.items[i]
		param, ok := snap.Lookup(state.Spec.Key)
		state.hasValue = false
		state.Value = "--"
		if !ok {
			continue
		}
		switch state.Spec.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.Value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.Value = FormatFloat(state.Spec, parsed)
			state.hasValue = true
		}
	}
}

// CanAdjust reports whether stepping control i in direction would stay
// inside its bounds.
func (c *Controls) CanAdjust(i, direction int) bool {
	if i < 0 || i >= len(c.items) || direction == 0 {
		return false
	}
	state := &c.items[i]
	if !state.hasValue {
		return false
	}
	switch state.Spec.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return false
		}
		target := float64(state.intValue + direction*intStep(state.Spec))
		return inBounds(state.Spec, target, direction)
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return false
		}
		target := state.floatValue + float64(direction)*floatStep(state.Spec)
		return inBounds(state.Spec, target, direction)
	}
	return false
}

// Adjust steps control i by one increment in direction, clamped to its
// bounds, and reports whether the simulation accepted a new value.
func (c *Controls) Adjust(i, direction int) bool {
	if i < 0 || i >= len(c.items) || direction == 0 {
		return false
	}
	state := &c.items[i]
	if !state.hasValue {
		return false
	}
	switch state.Spec.Type {
	case core.ParamTypeInt:
		if c.intSetter == nil {
			return false
		}
		target := state.intValue + direction*intStep(state.Spec)
		target = int(math.Round(state.Spec.Clamp(float64(target))))
		if target == state.intValue || !c.intSetter.SetIntParameter(state.Spec.Key, target) {
			return false
		}
		state.intValue = target
		state.floatValue = float64(target)
		state.Value = strconv.Itoa(target)
		return true
	case core.ParamTypeFloat:
		if c.floatSetter == nil {
			return false
		}
		target := state.Spec.Clamp(state.floatValue + float64(direction)*floatStep(state.Spec))
		if math.Abs(target-state.floatValue) < 1e-9 || !c.floatSetter.SetFloatParameter(state.Spec.Key, target) {
			return false
		}
		state.floatValue = target
		state.Value = FormatFloat(state.Spec, target)
		return true
	}
	return false
}

// FormatFloat renders value with a precision matching the control's step.
func FormatFloat(ctrl core.ParameterControl, value float64) string {
	step := floatStep(ctrl)
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

func intStep(ctrl core.ParameterControl) int {
	if step := int(math.Round(ctrl.Step)); step > 0 {
		return step
	}
	return 1
}

func floatStep(ctrl core.ParameterControl) float64 {
	if ctrl.Step > 0 {
		return ctrl.Step
	}
	return 0.05
}

func inBounds(ctrl core.ParameterControl, target float64, direction int) bool {
	if ctrl.HasMin && direction < 0 && target < ctrl.Min-1e-9 {
		return false
	}
	if ctrl.HasMax && direction > 0 && target > ctrl.Max+1e-9 {
		return false
	}
	return true
}

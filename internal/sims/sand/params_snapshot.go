package sand

import (
	"strconv"

	"sandfall/internal/core"
)

// Parameters reports the current configuration grouped for presentation.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.seed),
				intParam("brush_radius", "Brush radius", params.BrushRadius),
			},
		},
		{
			Name: "Motion",
			Params: []core.Parameter{
				floatParam("gravity", "Gravity", params.Gravity),
				floatParam("liquid_friction", "Liquid friction", params.LiquidFriction),
				floatParam("water_sink_chance", "Water sink chance", params.WaterSinkChance),
				floatParam("oil_sink_chance", "Oil sink chance", params.OilSinkChance),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				floatParam("coal_ignite_chance", "Coal ignite chance", params.CoalIgniteChance),
				floatParam("oil_ignite_chance", "Oil ignite chance", params.OilIgniteChance),
				floatParam("smoke_chance", "Smoke chance", params.SmokeChance),
				floatParam("burn_rate", "Burn rate", params.BurnRate),
			},
		},
		{
			Name: "Gas",
			Params: []core.Parameter{
				floatParam("gas_decay", "Gas decay", params.GasDecay),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the parameters hosts may adjust at runtime.
func (w *World) ParameterControls() []core.ParameterControl {
	probability := func(key, label string) core.ParameterControl {
		return core.ParameterControl{Key: key, Label: label, Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true}
	}
	return []core.ParameterControl{
		{Key: "brush_radius", Label: "Brush radius", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
		probability("water_sink_chance", "Water sink chance"),
		probability("oil_sink_chance", "Oil sink chance"),
		probability("coal_ignite_chance", "Coal ignite chance"),
		probability("oil_ignite_chance", "Oil ignite chance"),
		probability("smoke_chance", "Smoke chance"),
		{Key: "burn_rate", Label: "Burn rate", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, HasMin: true},
		{Key: "gas_decay", Label: "Gas decay", Type: core.ParamTypeFloat, Step: 0.001, Min: 0, HasMin: true},
	}
}

// SetIntParameter updates an integer parameter, clamping to its control
// bounds. It reports whether the key is adjustable.
func (w *World) SetIntParameter(key string, value int) bool {
	ctrl, ok := w.control(key, core.ParamTypeInt)
	if !ok {
		return false
	}
	v := int(ctrl.Clamp(float64(value)))
	switch key {
	case "brush_radius":
		w.cfg.Params.BrushRadius = v
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a float parameter, clamping to its control bounds,
// and rebuilds the rule set. It reports whether the key is adjustable.
func (w *World) SetFloatParameter(key string, value float64) bool {
	ctrl, ok := w.control(key, core.ParamTypeFloat)
	if !ok {
		return false
	}
	dst, ok := w.cfg.Params.floatFields()[key]
	if !ok {
		return false
	}
	*dst = ctrl.Clamp(value)
	w.rules = RulesFromParams(w.cfg.Params)
	return true
}

func (w *World) control(key string, typ core.ParamType) (core.ParameterControl, bool) {
	for _, c := range w.ParameterControls() {
		if c.Key == key && c.Type == typ {
			return c, true
		}
	}
	return core.ParameterControl{}, false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

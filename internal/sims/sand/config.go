package sand

import "strconv"

// Params holds the tunable rates and probabilities of the rule set. The
// defaults reproduce the reference behavior.
type Params struct {
	Gravity float64 `yaml:"gravity"`

	WaterSinkChance float64 `yaml:"water_sink_chance"`
	OilSinkChance   float64 `yaml:"oil_sink_chance"`
	LiquidFriction  float64 `yaml:"liquid_friction"`

	CoalIgniteChance float64 `yaml:"coal_ignite_chance"`
	OilIgniteChance  float64 `yaml:"oil_ignite_chance"`
	SmokeChance      float64 `yaml:"smoke_chance"`
	BurnRate         float64 `yaml:"burn_rate"`

	GasDecay float64 `yaml:"gas_decay"`

	BrushRadius int `yaml:"brush_radius"`
}

// Config controls the sand world dimensions, seed and rule parameters.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`

	Params Params `yaml:"params"`
}

// DefaultParams returns the reference rule parameters.
func DefaultParams() Params {
	return Params{
		Gravity:          1,
		WaterSinkChance:  0.10,
		OilSinkChance:    0.05,
		LiquidFriction:   0.005,
		CoalIgniteChance: 0.01,
		OilIgniteChance:  0.3,
		SmokeChance:      0.010,
		BurnRate:         0.03,
		GasDecay:         0.005,
		BrushRadius:      6,
	}
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 192,
		Seed:   42,
		Params: DefaultParams(),
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Unknown keys and unparsable values are ignored.
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	ApplyMap(&c, cfg)
	return c
}

// ApplyMap overlays flag-style key/value pairs onto c.
func ApplyMap(c *Config, cfg map[string]string) {
	if cfg == nil {
		return
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["brush_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.BrushRadius = parsed
		}
	}
	for key, dst := range c.Params.floatFields() {
		v, ok := cfg[key]
		if !ok {
			continue
		}
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func (p *Params) floatFields() map[string]*float64 {
	return map[string]*float64{
		"gravity":            &p.Gravity,
		"water_sink_chance":  &p.WaterSinkChance,
		"oil_sink_chance":    &p.OilSinkChance,
		"liquid_friction":    &p.LiquidFriction,
		"coal_ignite_chance": &p.CoalIgniteChance,
		"oil_ignite_chance":  &p.OilIgniteChance,
		"smoke_chance":       &p.SmokeChance,
		"burn_rate":          &p.BurnRate,
		"gas_decay":          &p.GasDecay,
	}
}

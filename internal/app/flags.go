package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config represents the command-line parameters for the GUI host.
type Config struct {
	Scenario string
	Scale    int
	TPS      int
	Seed     int64
	Width    int
	Height   int
	HUDWidth int
	Sets     Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Scale: 3, TPS: 60, Seed: 42, Width: 256, Height: 192, HUDWidth: 260}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Scenario, "scenario", c.Scenario, "built-in scenario name or YAML file to load")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "seed for simulation reset")
	fs.IntVar(&c.Width, "w", c.Width, "grid width in cells")
	fs.IntVar(&c.Height, "h", c.Height, "grid height in cells")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "parameter panel width in pixels (0 hides it)")
	fs.Var(&c.Sets, "set", "parameter override key=value (repeatable)")
}

// Overrides collects repeated key=value flags.
type Overrides map[string]string

// String implements flag.Value.
func (o *Overrides) String() string {
	if o == nil || len(*o) == 0 {
		return ""
	}
	parts := make([]string, 0, len(*o))
	for k, v := range *o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Type names the value for pflag help output.
func (o *Overrides) Type() string { return "key=value" }

// Set implements flag.Value.
func (o *Overrides) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	key = strings.TrimSpace(key)
	if !ok || key == "" {
		return fmt.Errorf("override %q: want key=value", s)
	}
	if *o == nil {
		*o = Overrides{}
	}
	(*o)[key] = strings.TrimSpace(value)
	return nil
}

// Map returns the overrides merged over the size and seed flags, in the form
// sand.ApplyMap expects.
func (c *Config) Map() map[string]string {
	out := map[string]string{
		"w":    fmt.Sprint(c.Width),
		"h":    fmt.Sprint(c.Height),
		"seed": fmt.Sprint(c.Seed),
	}
	for k, v := range c.Sets {
		out[k] = v
	}
	return out
}

// ExplicitMap is like Map but keeps the size and seed only when they were set
// on fs, so a scenario's own dimensions survive the defaults.
func (c *Config) ExplicitMap(fs *flag.FlagSet) map[string]string {
	out := c.Map()
	for _, name := range []string{"w", "h", "seed"} {
		delete(out, name)
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "w", "h", "seed":
			out[f.Name] = f.Value.String()
		}
	})
	return out
}

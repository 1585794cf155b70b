package config

import "sort"

func preset(dt, duration float64, schemes ...string) *Config {
	cfg := DefaultConfig()
	cfg.Dt = dt
	cfg.Duration = duration
	if len(schemes) > 0 {
		cfg.Schemes = schemes
	}
	return cfg
}

var Presets = map[string]*Config{
	// dt=0.01 over ten seconds, x(t) = cos(t)
	"reference": preset(0.01, 10.0),
	"coarse":    preset(0.1, 10.0),
	"fine":      preset(0.001, 10.0),
	"long":      preset(0.01, 100.0),
	// w*dt > 2 puts Verlet outside its stability region
	"unstable": preset(2.1, 100.0),
	"all": preset(0.01, 20.0,
		"euler", "verlet", "extrapolated", "extrapolated-avg", "rk4", "propagator"),
	"modes": preset(0.01, 20.0, "verlet", "extrapolated", "extrapolated-avg"),
}

// GetPreset returns a copy so callers may adjust it freely.
func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Schemes = append([]string(nil), cfg.Schemes...)
	c.Sweep = append([]float64(nil), cfg.Sweep...)
	return &c
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

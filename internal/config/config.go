package config

import (
	"fmt"
	"os"

	"github.com/san-kum/stepbench/internal/dynamo"
	"github.com/san-kum/stepbench/internal/experiment"
	"github.com/san-kum/stepbench/internal/integrators"
	"gopkg.in/yaml.v3"
)

const (
	DefaultDt        = 0.01
	DefaultDuration  = 10.0
	DefaultMass      = 1.0
	DefaultStiffness = 1.0
	DefaultPos       = 1.0
)

type Config struct {
	Dt            float64         `yaml:"dt"`
	Duration      float64         `yaml:"duration"`
	Mass          float64         `yaml:"mass"`
	Stiffness     float64         `yaml:"stiffness"`
	InitState     InitStateConfig `yaml:"init_state"`
	Schemes       []string        `yaml:"schemes"`
	Extrapolation string          `yaml:"extrapolation"`
	Parallel      bool            `yaml:"parallel"`
	Sweep         []float64       `yaml:"sweep,omitempty"`
}

type InitStateConfig struct {
	Pos float64 `yaml:"pos"`
	Vel float64 `yaml:"vel"`
}

func DefaultConfig() *Config {
	return &Config{
		Dt:            DefaultDt,
		Duration:      DefaultDuration,
		Mass:          DefaultMass,
		Stiffness:     DefaultStiffness,
		InitState:     InitStateConfig{Pos: DefaultPos},
		Schemes:       append([]string(nil), experiment.DefaultSchemes...),
		Extrapolation: integrators.ModeExact.String(),
		Parallel:      true,
		Sweep:         []float64{0.1, 0.01, 0.001, 0.0001},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Run() dynamo.Config {
	return dynamo.Config{
		Dt:        c.Dt,
		Duration:  c.Duration,
		Mass:      c.Mass,
		Stiffness: c.Stiffness,
		X0:        c.InitState.Pos,
		V0:        c.InitState.Vel,
		Parallel:  c.Parallel,
	}
}

// Validate checks numeric bounds first, so the offending parameter is
// named, then the whole document against the schema.
func (c *Config) Validate() error {
	if err := c.Run().Validate(); err != nil {
		return err
	}
	return validateSchema(c)
}

// Experiment converts c into a runnable experiment configuration.
func (c *Config) Experiment() (experiment.Config, error) {
	if err := c.Validate(); err != nil {
		return experiment.Config{}, err
	}
	mode, err := integrators.ParseMode(c.Extrapolation)
	if err != nil {
		return experiment.Config{}, err
	}
	return experiment.Config{
		Run:     c.Run(),
		Schemes: append([]string(nil), c.Schemes...),
		Mode:    mode,
	}, nil
}

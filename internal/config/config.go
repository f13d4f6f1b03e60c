package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fricsim/internal/friction"
)

const (
	DefaultDt       = 0.001
	DefaultDuration = 5.0
	DefaultTheta    = 0.5
	DefaultTorque   = 1.0
	DefaultKp       = 40.0
	DefaultKi       = 2.0
	DefaultKd       = 8.0
)

type Config struct {
	Model            string           `yaml:"model"`
	Integrator       string           `yaml:"integrator"`
	Controller       string           `yaml:"controller"`
	Dt               float64          `yaml:"dt"`
	Duration         float64          `yaml:"duration"`
	Seed             int64            `yaml:"seed"`
	InitState        InitStateConfig  `yaml:"init_state"`
	ControllerParams ControllerConfig `yaml:"controller_params"`
	Friction         FrictionConfig   `yaml:"friction"`
}

type InitStateConfig struct {
	Pos   float64 `yaml:"pos"`
	Vel   float64 `yaml:"vel"`
	Theta float64 `yaml:"theta"`
	Omega float64 `yaml:"omega"`
}

type ControllerConfig struct {
	Kp     float64 `yaml:"kp"`
	Ki     float64 `yaml:"ki"`
	Kd     float64 `yaml:"kd"`
	Target float64 `yaml:"target"`
	Torque float64 `yaml:"torque"`
}

type FrictionConfig struct {
	Enabled bool            `yaml:"enabled"`
	Params  friction.Params `yaml:"params"`
}

func DefaultConfig() *Config {
	return &Config{
		Model:      "joint",
		Integrator: "rk4",
		Controller: "constant",
		Dt:         DefaultDt,
		Duration:   DefaultDuration,
		InitState: InitStateConfig{
			Theta: DefaultTheta,
		},
		ControllerParams: ControllerConfig{
			Kp:     DefaultKp,
			Ki:     DefaultKi,
			Kd:     DefaultKd,
			Torque: DefaultTorque,
		},
		Friction: FrictionConfig{
			Enabled: true,
			Params:  friction.DefaultParams(),
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) GetInitState() []float64 {
	switch c.Model {
	case "pendulum":
		return []float64{c.InitState.Theta, c.InitState.Omega}
	default:
		return []float64{c.InitState.Pos, c.InitState.Vel}
	}
}

func (c *Config) GetControllerParams(controlDim int) map[string]float64 {
	return map[string]float64{
		"dim":    float64(controlDim),
		"kp":     c.ControllerParams.Kp,
		"ki":     c.ControllerParams.Ki,
		"kd":     c.ControllerParams.Kd,
		"target": c.ControllerParams.Target,
		"torque": c.ControllerParams.Torque,
	}
}

// FrictionParams returns the configured friction parameters with the
// timestep pinned to the simulation dt; the friction integrator and the
// simulation loop must agree on it.
func (c *Config) FrictionParams() friction.Params {
	p := c.Friction.Params
	p.Dt = c.Dt
	return p
}

package config

import "github.com/san-kum/fricsim/internal/friction"

var Presets = map[string]map[string]*Config{
	"joint": {
		"stick": {
			Model: "joint", Integrator: "rk4", Controller: "constant", Dt: 0.001, Duration: 5.0,
			ControllerParams: ControllerConfig{Torque: 1.0},
			Friction:         FrictionConfig{Enabled: true, Params: friction.DefaultParams()},
		},
		"breakaway": {
			Model: "joint", Integrator: "rk4", Controller: "constant", Dt: 0.001, Duration: 5.0,
			ControllerParams: ControllerConfig{Torque: 5.0},
			Friction:         FrictionConfig{Enabled: true, Params: friction.DefaultParams()},
		},
		"servo": {
			Model: "joint", Integrator: "rk4", Controller: "pid", Dt: 0.001, Duration: 10.0,
			ControllerParams: ControllerConfig{Kp: 40.0, Ki: 2.0, Kd: 8.0, Target: 1.0},
			Friction:         FrictionConfig{Enabled: true, Params: friction.DefaultParams()},
		},
		"raw": {
			Model: "joint", Integrator: "rk4", Controller: "constant", Dt: 0.001, Duration: 5.0,
			ControllerParams: ControllerConfig{Torque: 5.0},
			Friction:         FrictionConfig{Enabled: false},
		},
	},
	"pendulum": {
		"settle": {
			Model: "pendulum", Integrator: "rk4", Dt: 0.001, Duration: 10.0,
			InitState: InitStateConfig{Theta: 1.0},
			Friction:  FrictionConfig{Enabled: true, Params: friction.DefaultParams()},
		},
		"track": {
			Model: "pendulum", Integrator: "rk4", Controller: "pid", Dt: 0.001, Duration: 10.0,
			InitState:        InitStateConfig{Theta: 0.0},
			ControllerParams: ControllerConfig{Kp: 60.0, Ki: 5.0, Kd: 12.0, Target: 0.8},
			Friction:         FrictionConfig{Enabled: true, Params: friction.DefaultParams()},
		},
	},
}

func GetPreset(model, preset string) *Config {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	cfg, ok := modelPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(model string) []string {
	modelPresets, ok := Presets[model]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(modelPresets))
	for name := range modelPresets {
		names = append(names, name)
	}
	return names
}

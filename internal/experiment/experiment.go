// Package experiment assembles a full simulation run from a config:
// model, integrator, controller, metrics, and the friction compensator.
package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/fricsim/internal/config"
	"github.com/san-kum/fricsim/internal/dynamo"
	"github.com/san-kum/fricsim/internal/friction"
	"github.com/san-kum/fricsim/internal/sim"
)

type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
	fric      *friction.State
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the config against the registry and builds the
// simulator. The friction table is precomputed here so Run never pays
// the Lambert W cost per step.
func (e *Experiment) Setup(reg *Registry) error {
	dyn, err := reg.GetModel(e.cfg.Model)
	if err != nil {
		return err
	}

	integrator, err := reg.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}

	params := e.cfg.GetControllerParams(dyn.ControlDim())
	controller, err := reg.GetController(e.cfg.Controller, params)
	if err != nil {
		return err
	}

	e.simulator = sim.New(dyn, integrator, controller)
	for _, m := range reg.DefaultMetrics(dyn, e.cfg.Model) {
		e.simulator.AddMetric(m)
	}

	if e.cfg.Friction.Enabled {
		e.fric = friction.NewState(e.cfg.FrictionParams())
		if err := e.fric.BuildTable(nil); err != nil {
			return fmt.Errorf("friction table: %w", err)
		}
		e.simulator.SetCompensator(e.fric)
	}

	return nil
}

func (e *Experiment) Run(ctx context.Context) (*dynamo.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}

	x0 := dynamo.State(e.cfg.GetInitState())

	simCfg := dynamo.DefaultConfig()
	simCfg.Dt = e.cfg.Dt
	simCfg.Duration = e.cfg.Duration
	simCfg.Seed = e.cfg.Seed

	return e.simulator.Run(ctx, x0, simCfg)
}

// Friction exposes the compensator state, nil when friction is
// disabled in the config.
func (e *Experiment) Friction() *friction.State {
	return e.fric
}

// GetSimulator returns the underlying simulator for adding observers.
func (e *Experiment) GetSimulator() *sim.Simulator {
	return e.simulator
}

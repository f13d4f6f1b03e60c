package sim

import (
	"context"
	"fmt"

	"github.com/san-kum/fricsim/internal/dynamo"
)

type Simulator struct {
	dyn         dynamo.System
	integrator  dynamo.Integrator
	controller  dynamo.Controller
	compensator dynamo.Compensator
	metrics     []dynamo.Metric
	observers   []dynamo.Observer
}

func New(dyn dynamo.System, integrator dynamo.Integrator, controller dynamo.Controller) *Simulator {
	return &Simulator{
		dyn:        dyn,
		integrator: integrator,
		controller: controller,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }

// SetCompensator routes every commanded torque through c before it
// reaches the integrator. c must have been built for the same timestep
// the simulation runs at; its internal state advances once per step.
func (s *Simulator) SetCompensator(c dynamo.Compensator) { s.compensator = c }

// Run advances the system from x0 for cfg.Duration at fixed steps of
// cfg.Dt. Each step the controller computes a torque, the compensator
// (when attached) corrects it from the measured position, and the
// integrator advances the state with the corrected torque. The friction
// torque removed at each step is recorded in Result.Frictions.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.State, cfg dynamo.Config) (*dynamo.Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	steps := int(cfg.Duration / cfg.Dt)
	result := &dynamo.Result{
		States:    make([]dynamo.State, 0, steps+1),
		Controls:  make([]dynamo.Control, 0, steps),
		Frictions: make([]float64, 0, steps),
		Times:     make([]float64, 0, steps+1),
		Metrics:   make(map[string]float64),
		Errors:    make([]error, 0),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	x := x0.Clone()
	t := 0.0

	result.States = append(result.States, x.Clone())
	result.Times = append(result.Times, t)

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return result, ctx.Err()
		default:
		}

		u := s.controller.Compute(x, t)

		friction := 0.0
		if s.compensator != nil && len(u) > 0 {
			corrected, err := s.compensator.Step(x[0], u[0])
			if err != nil {
				return result, fmt.Errorf("friction compensation at step %d: %w", i, err)
			}
			friction = u[0] - corrected
			u = append(dynamo.Control{corrected}, u[1:]...)
		}

		for _, m := range s.metrics {
			m.Observe(x, u, t)
		}
		for _, obs := range s.observers {
			obs.OnStep(x, u, t)
		}

		newX := s.integrator.Step(s.dyn, x, u, t, cfg.Dt)

		if cfg.ValidateState && !newX.IsValid() {
			err := dynamo.SimError{Time: t, Step: i, Err: dynamo.ErrInvalidState}
			result.Errors = append(result.Errors, err)
			break
		}

		x = newX
		t += cfg.Dt
		result.StepsTaken++

		result.States = append(result.States, x.Clone())
		result.Controls = append(result.Controls, u)
		result.Frictions = append(result.Frictions, friction)
		result.Times = append(result.Times, t)
	}

	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	return result, nil
}

func (s *Simulator) validateConfig(cfg dynamo.Config) error {
	if cfg.Dt <= 0 {
		return fmt.Errorf("dt must be positive, got %f", cfg.Dt)
	}
	if cfg.Duration <= 0 {
		return fmt.Errorf("duration must be positive, got %f", cfg.Duration)
	}
	return nil
}

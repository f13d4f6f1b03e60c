// Package automation runs scripted simulation batches: YAML scenarios
// of sequential runs, and Monte Carlo trials that estimate how often a
// joint sticks under perturbed initial conditions.
package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/fricsim/internal/config"
	"github.com/san-kum/fricsim/internal/dynamo"
	"github.com/san-kum/fricsim/internal/experiment"
	"github.com/san-kum/fricsim/internal/friction"
)

// Scenario is a named sequence of simulation runs.
type Scenario struct {
	Name        string          `yaml:"name"`
	Description string          `yaml:"description"`
	Steps       []config.Config `yaml:"steps"`
}

func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %q has no steps", scenario.Name)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. Each step is a full run
// config; missing fields fall back to the usual defaults.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]*dynamo.Result, error) {
	results := make([]*dynamo.Result, 0, len(scenario.Steps))

	for i := range scenario.Steps {
		step := fillDefaults(&scenario.Steps[i])

		exp := experiment.New(step)
		if err := exp.Setup(registry); err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		results = append(results, result)
	}

	return results, nil
}

func fillDefaults(step *config.Config) *config.Config {
	cfg := *step
	if cfg.Model == "" {
		cfg.Model = "joint"
	}
	if cfg.Integrator == "" {
		cfg.Integrator = "rk4"
	}
	if cfg.Controller == "" {
		cfg.Controller = "none"
	}
	if cfg.Dt == 0 {
		cfg.Dt = config.DefaultDt
	}
	if cfg.Duration == 0 {
		cfg.Duration = config.DefaultDuration
	}
	if cfg.Friction.Enabled && cfg.Friction.Params == (friction.Params{}) {
		cfg.Friction.Params = friction.DefaultParams()
	}
	return &cfg
}

// MonteCarloConfig perturbs the applied torque and initial state around
// a base config to probe stick/slip sensitivity.
type MonteCarloConfig struct {
	Base         *config.Config
	Perturbation float64
	NumTrials    int
	Seed         int64
}

type MonteCarloResult struct {
	TrialID    int
	Torque     float64
	FinalState dynamo.State
	Stuck      bool
}

// RunMonteCarlo runs perturbed trials. A trial counts as stuck when the
// final velocity stays below the breakaway velocity.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	wbrk := cfg.Base.FrictionParams().Wbrk
	results := make([]MonteCarloResult, 0, cfg.NumTrials)

	for trial := 0; trial < cfg.NumTrials; trial++ {
		trialCfg := *cfg.Base
		trialCfg.ControllerParams.Torque += (rng.Float64() - 0.5) * 2 * cfg.Perturbation
		trialCfg.InitState.Vel += (rng.Float64() - 0.5) * 2 * cfg.Perturbation * 0.01

		exp := experiment.New(&trialCfg)
		if err := exp.Setup(registry); err != nil {
			return nil, err
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return nil, err
		}

		var final dynamo.State
		stuck := false
		if len(result.States) > 0 {
			final = result.States[len(result.States)-1]
			if len(final) > 1 {
				stuck = math.Abs(final[1]) < wbrk
			}
		}

		results = append(results, MonteCarloResult{
			TrialID:    trial,
			Torque:     trialCfg.ControllerParams.Torque,
			FinalState: final,
			Stuck:      stuck,
		})
	}

	return results, nil
}

// StickFraction returns the share of trials that ended stuck.
func StickFraction(results []MonteCarloResult) float64 {
	if len(results) == 0 {
		return 0
	}
	stuck := 0
	for _, r := range results {
		if r.Stuck {
			stuck++
		}
	}
	return float64(stuck) / float64(len(results))
}

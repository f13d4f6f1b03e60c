package experiment

import (
	"fmt"
	"sort"

	"github.com/san-kum/fricsim/internal/controllers"
	"github.com/san-kum/fricsim/internal/dynamo"
	"github.com/san-kum/fricsim/internal/integrators"
	"github.com/san-kum/fricsim/internal/metrics"
	"github.com/san-kum/fricsim/internal/physics"
)

type Registry struct {
	models      map[string]func() dynamo.System
	integrators map[string]func() dynamo.Integrator
	controllers map[string]func(map[string]float64) dynamo.Controller
}

func NewRegistry() *Registry {
	r := &Registry{
		models:      make(map[string]func() dynamo.System),
		integrators: make(map[string]func() dynamo.Integrator),
		controllers: make(map[string]func(map[string]float64) dynamo.Controller),
	}

	r.models["joint"] = func() dynamo.System { return physics.NewJoint() }
	r.models["pendulum"] = func() dynamo.System { return physics.NewPendulum() }

	r.integrators["euler"] = func() dynamo.Integrator { return integrators.NewEuler() }
	r.integrators["rk4"] = func() dynamo.Integrator { return integrators.NewRK4() }

	r.controllers["none"] = func(params map[string]float64) dynamo.Controller {
		dim := int(params["dim"])
		if dim == 0 {
			dim = 1
		}
		return controllers.NewNone(dim)
	}
	r.controllers["constant"] = func(params map[string]float64) dynamo.Controller {
		return controllers.NewConstant(params["torque"])
	}
	r.controllers["pid"] = func(params map[string]float64) dynamo.Controller {
		return controllers.NewPID(params["kp"], params["ki"], params["kd"], params["target"])
	}
	r.controllers["lqr"] = func(params map[string]float64) dynamo.Controller {
		return controllers.NewJointLQR(params["target"])
	}

	return r
}

func (r *Registry) GetModel(name string) (dynamo.System, error) {
	fn, ok := r.models[name]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetIntegrator(name string) (dynamo.Integrator, error) {
	fn, ok := r.integrators[name]
	if !ok {
		return nil, fmt.Errorf("unknown integrator: %s", name)
	}
	return fn(), nil
}

func (r *Registry) GetController(name string, params map[string]float64) (dynamo.Controller, error) {
	fn, ok := r.controllers[name]
	if !ok {
		return nil, fmt.Errorf("unknown controller: %s", name)
	}
	return fn(params), nil
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.models))
	for name := range r.models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultMetrics picks the standard set for a model. The chatter dead
// band matches the velocity noise floor of a millisecond timestep.
func (r *Registry) DefaultMetrics(dyn dynamo.System, model string) []dynamo.Metric {
	ms := []dynamo.Metric{
		metrics.NewChatter(1e-4),
		metrics.NewDissipation(),
		metrics.NewControlEffort(),
		metrics.NewStability(1e3),
	}
	if model == "pendulum" {
		ms = append(ms, metrics.NewEnergyDrift(dyn))
	}
	return ms
}

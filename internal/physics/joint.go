package physics

import (
	"fmt"

	"github.com/san-kum/fricsim/internal/dynamo"
)

// Joint is a motor-driven rotary joint: a rotor inertia with a viscous
// load and no gravity term. The simplest plant for studying stiction.
type Joint struct {
	Inertia float64
	Viscous float64
}

func NewJoint() *Joint {
	return &Joint{
		Inertia: 1.0,
		Viscous: 0.0,
	}
}

func (j *Joint) StateDim() int {
	return 2
}

func (j *Joint) ControlDim() int {
	return 1
}

func (j *Joint) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	omega := x[1]

	torque := 0.0
	if len(u) > 0 {
		torque = u[0]
	}
	alpha := (torque - j.Viscous*omega) / j.Inertia

	return dynamo.State{omega, alpha}
}

func (j *Joint) GetParams() map[string]float64 {
	return map[string]float64{
		"inertia": j.Inertia,
		"viscous": j.Viscous,
	}
}

func (j *Joint) SetParam(name string, value float64) error {
	switch name {
	case "inertia":
		j.Inertia = value
	case "viscous":
		j.Viscous = value
	default:
		return fmt.Errorf("unknown param: %s", name)
	}
	return nil
}

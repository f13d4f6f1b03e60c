package controllers

import "github.com/san-kum/fricsim/internal/dynamo"

type None struct {
	dim int
}

func NewNone(dim int) *None {
	return &None{
		dim: dim,
	}
}

func (n *None) Compute(x dynamo.State, t float64) dynamo.Control {
	return make(dynamo.Control, n.dim)
}

// Constant commands a fixed torque, the canonical input for stiction
// and break-away experiments.
type Constant struct {
	Torque float64
}

func NewConstant(torque float64) *Constant {
	return &Constant{Torque: torque}
}

func (c *Constant) Compute(x dynamo.State, t float64) dynamo.Control {
	return dynamo.Control{c.Torque}
}

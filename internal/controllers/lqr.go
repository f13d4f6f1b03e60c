package controllers

import "github.com/san-kum/fricsim/internal/dynamo"

type LQR struct {
	K      [][]float64
	Target dynamo.State
}

func NewLQR(k [][]float64, target dynamo.State) *LQR {
	return &LQR{K: k, Target: target}
}

func (l *LQR) Compute(x dynamo.State, t float64) dynamo.Control {
	u := make(dynamo.Control, len(l.K))

	for i := range u {
		for j := range x {
			target := 0.0
			if j < len(l.Target) {
				target = l.Target[j]
			}
			u[i] -= l.K[i][j] * (x[j] - target)
		}
	}

	return u
}

// NewJointLQR returns position-hold state feedback for the unit-inertia
// joint, tuned firm enough to fight stiction without saturating.
func NewJointLQR(target float64) *LQR {
	k := [][]float64{
		{31.62, 10.0},
	}
	return NewLQR(k, dynamo.State{target, 0})
}

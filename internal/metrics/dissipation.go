package metrics

import (
	"math"

	"github.com/san-kum/fricsim/internal/dynamo"
)

// Dissipation accumulates |u·ω|·dt, the mechanical energy the applied
// torque exchanges with the joint over the run.
type Dissipation struct {
	name  string
	total float64
	prevT float64
	first bool
}

func NewDissipation() *Dissipation {
	return &Dissipation{
		name:  "dissipation",
		first: true,
	}
}

func (d *Dissipation) Name() string {
	return d.name
}

func (d *Dissipation) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) < 2 || len(u) < 1 {
		return
	}

	if d.first {
		d.first = false
		d.prevT = t
		return
	}

	dt := t - d.prevT
	d.prevT = t
	if dt <= 0 {
		return
	}

	d.total += math.Abs(u[0]*x[1]) * dt
}

func (d *Dissipation) Value() float64 {
	return d.total
}

func (d *Dissipation) Reset() {
	d.total = 0
	d.prevT = 0
	d.first = true
}

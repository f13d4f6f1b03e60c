package friction

import (
	"math"

	"github.com/san-kum/fricsim/internal/lambert"
	"github.com/san-kum/fricsim/internal/lut"
)

// State is the per-joint friction integrator. It owns the joint's
// dry-friction table and the bristle-deflection error carried between
// steps. A State serves exactly one joint and must be stepped in
// simulation order; it is not safe for concurrent use.
type State struct {
	p Params
	d derived

	e     float64 // bristle-deflection error
	pPrev float64 // last measured position
	first bool    // no velocity history yet

	table *lut.Table[float64]
}

// NewState returns a fresh integrator for the given parameter set.
// BuildTable must be called before the first Step.
func NewState(p Params) *State {
	return &State{
		p:     p,
		d:     p.derive(),
		first: true,
		table: lut.New[float64](lut.Zero),
	}
}

// Params returns the parameter set the state was built with.
func (s *State) Params() Params {
	return s.p
}

// Table exposes the dry-friction table for inspection.
func (s *State) Table() *lut.Table[float64] {
	return s.table
}

// BuildTable precomputes the dry-friction torque over the reachable band
// of auxiliary velocities by inverting the stiction relation with the
// Lambert W principal branch. Passing nil selects [lambert.W0].
//
// The closed form solved at each sample point w* is
//
//	dry(w*) = -(wbrk/Z) · W₀( -Z/wbrk · Tsc/den · exp((Z·Tc - w*)/(wbrk·den)) )
//
// Degenerate parameter sets produce an inverted or collapsed domain and
// surface here as a build error.
func (s *State) BuildTable(w0 func(float64) float64) error {
	if w0 == nil {
		w0 = lambert.W0
	}

	z, den, tsc := s.d.z, s.d.den, s.d.tsc
	tc, wbrk := s.p.Tc, s.p.Wbrk

	dry := func(wAst float64) float64 {
		lambArg := -z / wbrk * tsc / den * math.Exp((z*tc-wAst)/(wbrk*den))
		return -(wbrk / z) * w0(lambArg)
	}

	return s.table.Build(s.d.min, s.d.max, s.p.TableStep, dry)
}

// Step advances the friction integrator by one timestep and returns the
// commanded torque minus the friction torque.
//
// pos is the joint position measured this step; torque is the torque
// accumulated so far (motor plus any other contributions). The first
// call assumes zero velocity since there is no position history yet.
// Calling Step before BuildTable returns lut.ErrNotBuilt.
func (s *State) Step(pos, torque float64) (float64, error) {
	w := 0.0
	if s.first {
		s.first = false
	} else {
		w = (pos - s.pPrev) / s.p.Dt
	}

	wAst := w + s.d.z*s.p.Kf*s.e
	tAst := wAst / s.d.z

	var tf float64
	switch {
	case tAst > s.p.Ts:
		dry, err := s.table.Eval(wAst)
		if err != nil {
			return 0, err
		}
		tf = dry + (s.p.Tc+s.p.Tv*wAst)/s.d.den
	case tAst < -s.p.Ts:
		dry, err := s.table.Eval(-wAst)
		if err != nil {
			return 0, err
		}
		tf = -dry + (-s.p.Tc+s.p.Tv*wAst)/s.d.den
	default:
		// inside the stiction band: pure bristle elasticity, no lookup
		tf = tAst
	}

	s.e = s.d.z * (s.p.Bf*s.e + tf*s.p.Dt)
	s.pPrev = pos

	return torque - tf, nil
}

// Reset clears the integrator state while keeping the built table, so
// the same State can replay a fresh trajectory.
func (s *State) Reset() {
	s.e = 0
	s.pPrev = 0
	s.first = true
}

package metrics

import (
	"math"
	"testing"

	"github.com/san-kum/fricsim/internal/dynamo"
)

func TestChatterCountsReversals(t *testing.T) {
	m := NewChatter(0.001)

	// velocity flips sign every step, well outside the dead band
	for i := 0; i < 10; i++ {
		w := 0.1
		if i%2 == 1 {
			w = -0.1
		}
		m.Observe(dynamo.State{0, w}, dynamo.Control{0}, float64(i)*0.001)
	}

	// 9 reversals over 9 ms
	want := 9.0 / 0.009
	if math.Abs(m.Value()-want) > 1e-6 {
		t.Errorf("chatter = %f, want %f", m.Value(), want)
	}
}

func TestChatterDeadBand(t *testing.T) {
	m := NewChatter(0.01)

	// oscillation entirely inside the dead band must not count
	for i := 0; i < 10; i++ {
		w := 0.005
		if i%2 == 1 {
			w = -0.005
		}
		m.Observe(dynamo.State{0, w}, dynamo.Control{0}, float64(i)*0.001)
	}

	if m.Value() != 0 {
		t.Errorf("chatter = %f, want 0 inside dead band", m.Value())
	}
}

func TestChatterSteadyMotion(t *testing.T) {
	m := NewChatter(0.001)

	for i := 0; i < 100; i++ {
		m.Observe(dynamo.State{0, 1.0}, dynamo.Control{0}, float64(i)*0.001)
	}

	if m.Value() != 0 {
		t.Errorf("chatter = %f, want 0 for steady motion", m.Value())
	}
}

func TestChatterReset(t *testing.T) {
	m := NewChatter(0.001)
	m.Observe(dynamo.State{0, 1}, dynamo.Control{}, 0)
	m.Observe(dynamo.State{0, -1}, dynamo.Control{}, 0.001)

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("chatter after reset = %f, want 0", m.Value())
	}
}

func TestDissipation(t *testing.T) {
	m := NewDissipation()

	// constant torque 2 at constant velocity 3, observed at 1 ms spacing
	for i := 0; i < 11; i++ {
		m.Observe(dynamo.State{0, 3.0}, dynamo.Control{2.0}, float64(i)*0.001)
	}

	want := 2.0 * 3.0 * 0.010
	if math.Abs(m.Value()-want) > 1e-9 {
		t.Errorf("dissipation = %f, want %f", m.Value(), want)
	}

	m.Reset()
	if m.Value() != 0 {
		t.Errorf("dissipation after reset = %f, want 0", m.Value())
	}
}

func TestControlEffort(t *testing.T) {
	m := NewControlEffort()

	m.Observe(dynamo.State{0, 0}, dynamo.Control{2.0}, 0)
	m.Observe(dynamo.State{0, 0}, dynamo.Control{-4.0}, 0.001)

	if math.Abs(m.Value()-3.0) > 1e-12 {
		t.Errorf("control effort = %f, want 3.0", m.Value())
	}
}

func TestStability(t *testing.T) {
	m := NewStability(10.0)

	m.Observe(dynamo.State{1, 1}, dynamo.Control{}, 0)
	m.Observe(dynamo.State{100, 0}, dynamo.Control{}, 0.001)

	if math.Abs(m.Value()-0.5) > 1e-12 {
		t.Errorf("stability = %f, want 0.5", m.Value())
	}
}

type flatSystem struct{}

func (f *flatSystem) Derive(x dynamo.State, u dynamo.Control, t float64) dynamo.State {
	return dynamo.State{0, 0}
}
func (f *flatSystem) StateDim() int   { return 2 }
func (f *flatSystem) ControlDim() int { return 1 }
func (f *flatSystem) Energy(x dynamo.State) float64 {
	return x[1] * x[1]
}

func TestEnergyDrift(t *testing.T) {
	dyn := &flatSystem{}
	m := NewEnergyDrift(dyn)

	m.Observe(dynamo.State{0, 1}, dynamo.Control{}, 0)
	m.Observe(dynamo.State{0, 2}, dynamo.Control{}, 0.001)

	// energy went from 1 to 4: 300% drift
	if math.Abs(m.Value()-3.0) > 1e-12 {
		t.Errorf("energy drift = %f, want 3.0", m.Value())
	}
}

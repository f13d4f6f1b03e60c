package physics

import (
	"math"
	"testing"

	"github.com/san-kum/fricsim/internal/dynamo"
)

func TestJointDimensions(t *testing.T) {
	j := NewJoint()

	if j.StateDim() != 2 {
		t.Errorf("expected state dim 2, got %d", j.StateDim())
	}
	if j.ControlDim() != 1 {
		t.Errorf("expected control dim 1, got %d", j.ControlDim())
	}
}

func TestJointTorqueResponse(t *testing.T) {
	j := NewJoint()
	j.Inertia = 2.0

	dx := j.Derive(dynamo.State{0, 0}, dynamo.Control{4.0}, 0)

	if dx[0] != 0 {
		t.Errorf("expected zero velocity, got %f", dx[0])
	}
	if math.Abs(dx[1]-2.0) > 1e-12 {
		t.Errorf("expected acceleration 2.0, got %f", dx[1])
	}
}

func TestJointViscousLoad(t *testing.T) {
	j := NewJoint()
	j.Viscous = 0.5

	dx := j.Derive(dynamo.State{0, 2.0}, dynamo.Control{0}, 0)

	if math.Abs(dx[1]+1.0) > 1e-12 {
		t.Errorf("expected viscous deceleration -1.0, got %f", dx[1])
	}
}

func TestJointSetParam(t *testing.T) {
	j := NewJoint()

	if err := j.SetParam("inertia", 3.0); err != nil {
		t.Fatalf("set inertia: %v", err)
	}
	if j.Inertia != 3.0 {
		t.Errorf("inertia = %f, want 3.0", j.Inertia)
	}

	if err := j.SetParam("bogus", 1.0); err == nil {
		t.Error("expected error for unknown param")
	}
}

func TestPendulumEquilibrium(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(dynamo.State{0, 0}, dynamo.Control{0}, 0)

	if math.Abs(dx[0]) > 1e-10 {
		t.Errorf("expected zero velocity at equilibrium, got %f", dx[0])
	}
	if math.Abs(dx[1]) > 1e-10 {
		t.Errorf("expected zero acceleration at equilibrium, got %f", dx[1])
	}
}

func TestPendulumGravity(t *testing.T) {
	p := NewPendulum()
	p.Damping = 0

	dx := p.Derive(dynamo.State{math.Pi / 2, 0}, dynamo.Control{0}, 0)

	expectedAccel := -p.Gravity / p.Length
	if math.Abs(dx[1]-expectedAccel) > 1e-6 {
		t.Errorf("expected acceleration %f, got %f", expectedAccel, dx[1])
	}
}

func TestPendulumEnergy(t *testing.T) {
	p := NewPendulum()

	e := p.Energy(dynamo.State{math.Pi / 4, 0})

	want := p.Mass * p.Gravity * p.Length * (1 - math.Cos(math.Pi/4))
	if math.Abs(e-want) > 1e-10 {
		t.Errorf("energy = %f, want %f", e, want)
	}
}

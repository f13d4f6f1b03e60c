package friction

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/fricsim/internal/lut"
)

func builtState(t *testing.T) *State {
	t.Helper()
	s := NewState(DefaultParams())
	if err := s.BuildTable(nil); err != nil {
		t.Fatalf("build table: %v", err)
	}
	return s
}

func TestTableDomain(t *testing.T) {
	s := builtState(t)

	min, max := s.Table().Domain()
	if min >= max {
		t.Fatalf("inverted table domain: [%v, %v]", min, max)
	}

	d := s.p.derive()
	if min != d.min || max != d.max {
		t.Errorf("table domain [%v, %v], want [%v, %v]", min, max, d.min, d.max)
	}
	if s.Table().Len() < 2 {
		t.Errorf("table too small: %d samples", s.Table().Len())
	}
}

// dry(domainMin) must equal Tsc/den so that the table branch meets the
// elastic branch without a jump at T* = Ts.
func TestTableBoundaryValue(t *testing.T) {
	s := builtState(t)

	d := s.p.derive()
	got, err := s.Table().Eval(d.min)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}

	want := d.tsc / d.den
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("dry(min) = %v, want %v", got, want)
	}
}

func TestTableMonotoneDecay(t *testing.T) {
	s := builtState(t)

	prev := math.Inf(1)
	for i := 0; i < s.Table().Len(); i++ {
		_, y := s.Table().Sample(i)
		if y < 0 {
			t.Fatalf("sample %d: dry torque negative: %v", i, y)
		}
		if y > prev {
			t.Fatalf("sample %d: dry torque not decreasing: %v > %v", i, y, prev)
		}
		prev = y
	}
}

func TestStepBeforeBuild(t *testing.T) {
	s := NewState(DefaultParams())

	// drive T* past Ts so the table branch is taken
	if _, err := s.Step(0, 0); err != nil {
		t.Fatalf("first step (elastic branch): %v", err)
	}
	if _, err := s.Step(10, 0); !errors.Is(err, lut.ErrNotBuilt) {
		t.Errorf("error = %v, want lut.ErrNotBuilt", err)
	}
}

func TestBuildRejectsDegenerateParams(t *testing.T) {
	p := DefaultParams()
	p.LambArgThreshold = -1e6 // pushes the derived max below min

	s := NewState(p)
	if err := s.BuildTable(nil); !errors.Is(err, lut.ErrBadDomain) {
		t.Errorf("error = %v, want lut.ErrBadDomain", err)
	}
}

func TestFirstStepAssumesZeroVelocity(t *testing.T) {
	for _, pos := range []float64{0, -3.7, 12.34} {
		s := builtState(t)

		out, err := s.Step(pos, 1.5)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		// w = 0 and e = 0 give w* = 0, so the elastic branch yields Tf = 0
		if out != 1.5 {
			t.Errorf("first step at pos %v: torque = %v, want 1.5 unchanged", pos, out)
		}
	}
}

// Torque must be continuous across the T* = ±Ts branch boundaries.
func TestBranchContinuity(t *testing.T) {
	p := DefaultParams()
	d := p.derive()

	// probe: two steps on a fresh state; the second step sees w = pos/dt
	probe := func(t *testing.T, wAst float64) float64 {
		s := builtState(t)
		if _, err := s.Step(0, 0); err != nil {
			t.Fatalf("step: %v", err)
		}
		out, err := s.Step(wAst*p.Dt, 0)
		if err != nil {
			t.Fatalf("step: %v", err)
		}
		return out
	}

	const eps = 1e-9
	for _, boundary := range []float64{d.z * p.Ts, -d.z * p.Ts} {
		below := probe(t, boundary*(1-eps))
		above := probe(t, boundary*(1+eps))
		if math.Abs(above-below) > 1e-5 {
			t.Errorf("torque jump %v across boundary w* = %v", above-below, boundary)
		}
	}
}

func TestDeterministicReplay(t *testing.T) {
	run := func() []float64 {
		s := NewState(DefaultParams())
		if err := s.BuildTable(nil); err != nil {
			t.Fatalf("build table: %v", err)
		}

		out := make([]float64, 0, 500)
		for i := 0; i < 500; i++ {
			ti := float64(i) * s.p.Dt
			pos := 0.3 * math.Sin(5*ti)
			torque := 2 * math.Cos(3*ti)

			v, err := s.Step(pos, torque)
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			out = append(out, v)
		}
		return out
	}

	a := run()
	b := run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("step %d: outputs differ: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestResetReplays(t *testing.T) {
	s := builtState(t)

	run := func() []float64 {
		out := make([]float64, 0, 200)
		for i := 0; i < 200; i++ {
			pos := 0.1 * math.Sin(float64(i)*0.01)
			v, err := s.Step(pos, 1.0)
			if err != nil {
				t.Fatalf("step %d: %v", i, err)
			}
			out = append(out, v)
		}
		return out
	}

	a := run()
	s.Reset()
	b := run()

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("step %d: replay after Reset differs: %v vs %v", i, a[i], b[i])
		}
	}
}

// A constant torque below the static friction level must not move the
// joint beyond its bristle deflection.
func TestStictionHolds(t *testing.T) {
	s := builtState(t)

	const (
		inertia = 1.0
		torque  = 1.0 // below Ts = 2.5
	)

	pos, vel := 0.0, 0.0
	for i := 0; i < 2000; i++ {
		corrected, err := s.Step(pos, torque)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		vel += corrected / inertia * s.p.Dt
		pos += vel * s.p.Dt
	}

	if math.Abs(vel) > 0.01 {
		t.Errorf("joint creeping under sub-stiction torque: vel = %v", vel)
	}
	if math.Abs(pos) > 0.01 {
		t.Errorf("joint moved beyond bristle deflection: pos = %v", pos)
	}
}

// A constant torque above the static friction level must break the joint
// away and settle near the viscous steady-state velocity.
func TestBreakaway(t *testing.T) {
	s := builtState(t)

	const (
		inertia = 1.0
		torque  = 5.0 // above Ts = 2.5
	)

	pos, vel := 0.0, 0.0
	for i := 0; i < 4000; i++ {
		corrected, err := s.Step(pos, torque)
		if err != nil {
			t.Fatalf("step %d: %v", i, err)
		}
		vel += corrected / inertia * s.p.Dt
		pos += vel * s.p.Dt
	}

	if vel < 0.5 {
		t.Errorf("joint did not break away: vel = %v", vel)
	}
}

func BenchmarkStep(b *testing.B) {
	s := NewState(DefaultParams())
	if err := s.BuildTable(nil); err != nil {
		b.Fatalf("build table: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		pos := 0.3 * math.Sin(float64(i)*0.001)
		if _, err := s.Step(pos, 1.0); err != nil {
			b.Fatal(err)
		}
	}
}

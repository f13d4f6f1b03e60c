package lambert

import (
	"math"
	"testing"
)

func TestW0KnownValues(t *testing.T) {
	// omega constant: W0(1)
	const omega = 0.5671432904097838

	tests := []struct {
		arg  float64
		want float64
	}{
		{0, 0},
		{1, omega},
		{math.E, 1},
		{2 * math.E * math.E, 2},
		{10, 1.7455280027406994},
	}

	for _, tt := range tests {
		got := W0(tt.arg)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("W0(%v) = %v, want %v", tt.arg, got, tt.want)
		}
	}
}

func TestW0InverseProperty(t *testing.T) {
	args := []float64{-0.3, -0.1, -0.01, 0.001, 0.1, 0.5, 1, 2, 5, 100, 1e6}

	for _, x := range args {
		w := W0(x)
		back := w * math.Exp(w)
		if math.Abs(back-x) > 1e-9*(1+math.Abs(x)) {
			t.Errorf("W0(%v) = %v, but w*exp(w) = %v", x, w, back)
		}
	}
}

func TestW0BelowBranchPoint(t *testing.T) {
	for _, x := range []float64{-1, -0.5, MinArg - 1e-6} {
		if got := W0(x); !math.IsNaN(got) {
			t.Errorf("W0(%v) = %v, want NaN", x, got)
		}
	}
}

func TestW0NearBranchPoint(t *testing.T) {
	// W0 approaches -1 from above as x approaches -1/e
	x := MinArg + 1e-10
	w := W0(x)
	if w < -1 || w > -0.99 {
		t.Errorf("W0(%v) = %v, want value just above -1", x, w)
	}
}

func TestW0Monotone(t *testing.T) {
	prev := W0(MinArg)
	for x := MinArg + 0.01; x < 10; x += 0.01 {
		w := W0(x)
		if w <= prev {
			t.Fatalf("W0 not increasing at x=%v: %v <= %v", x, w, prev)
		}
		prev = w
	}
}

func BenchmarkW0(b *testing.B) {
	for i := 0; i < b.N; i++ {
		W0(float64(i%1000) * 0.01)
	}
}

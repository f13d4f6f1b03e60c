package lut

import (
	"errors"
	"math"
	"testing"
)

func TestBuildSamplesExact(t *testing.T) {
	tbl := New[float64](Zero)
	if err := tbl.Build(0, 1, 0.1, func(x float64) float64 { return x * x }); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if tbl.Len() != 11 {
		t.Fatalf("expected 11 samples, got %d", tbl.Len())
	}

	for i := 0; i < tbl.Len(); i++ {
		x, y := tbl.Sample(i)
		got, err := tbl.Eval(x)
		if err != nil {
			t.Fatalf("eval at sample %d: %v", i, err)
		}
		if got != y {
			t.Errorf("sample %d: eval(%v) = %v, want stored %v", i, x, got, y)
		}
	}
}

func TestLinearBetweenSamples(t *testing.T) {
	tbl := New[float64](Zero)
	if err := tbl.Build(0, 2, 0.5, func(x float64) float64 { return math.Exp(x) }); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	for i := 0; i < tbl.Len()-1; i++ {
		x0, y0 := tbl.Sample(i)
		x1, y1 := tbl.Sample(i + 1)

		x := x0 + 0.3*(x1-x0)
		want := y0 + (y1-y0)*(x-x0)/(x1-x0)

		got, err := tbl.Eval(x)
		if err != nil {
			t.Fatalf("eval: %v", err)
		}
		if math.Abs(got-want) > 1e-12 {
			t.Errorf("eval(%v) = %v, want %v", x, got, want)
		}
	}
}

func TestOutOfBoundsPolicies(t *testing.T) {
	identity := func(x float64) float64 { return x }

	tests := []struct {
		name    string
		policy  OutOfBounds
		arg     float64
		want    float64
		wantErr error
	}{
		{"zero above", Zero, 2.0, 0, nil},
		{"zero below", Zero, -1.0, 0, nil},
		{"bound above", BoundValue, 2.0, 1.0, nil},
		{"bound below", BoundValue, -1.0, 0.0, nil},
		{"fail above", Fail, 2.0, 0, ErrOutOfRange},
		{"fail below", Fail, -1.0, 0, ErrOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tbl := New[float64](tt.policy)
			if err := tbl.Build(0, 1, 0.1, identity); err != nil {
				t.Fatalf("build failed: %v", err)
			}

			got, err := tbl.Eval(tt.arg)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("eval(%v) error = %v, want %v", tt.arg, err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("eval(%v) = %v, want %v", tt.arg, got, tt.want)
			}
		})
	}
}

func TestBuildRejectsBadDomain(t *testing.T) {
	identity := func(x float64) float64 { return x }

	tbl := New[float64](Zero)
	if err := tbl.Build(1, 0, 0.1, identity); !errors.Is(err, ErrBadDomain) {
		t.Errorf("inverted domain: error = %v, want ErrBadDomain", err)
	}
	if !tbl.Empty() {
		t.Error("table should stay empty after rejected build")
	}

	if err := tbl.Build(0, 1, 0, identity); !errors.Is(err, ErrBadDomain) {
		t.Errorf("zero step: error = %v, want ErrBadDomain", err)
	}

	if err := tbl.Build(0, 1, -0.1, identity); !errors.Is(err, ErrBadDomain) {
		t.Errorf("negative step: error = %v, want ErrBadDomain", err)
	}

	if _, err := tbl.Eval(0.5); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("eval on empty table: error = %v, want ErrNotBuilt", err)
	}
}

func TestEvalEmptyZeroValue(t *testing.T) {
	var tbl Table[float64]

	if !tbl.Empty() {
		t.Error("zero-value table should be empty")
	}
	if _, err := tbl.Eval(0); !errors.Is(err, ErrNotBuilt) {
		t.Errorf("error = %v, want ErrNotBuilt", err)
	}
}

// The last sample may fall short of max when max is not reachable by an
// integer number of steps. Values between the last sample and max must
// return the last sample's value unchanged, not extrapolate.
func TestUnreachableMaxFlat(t *testing.T) {
	tbl := New[float64](Fail)
	if err := tbl.Build(0, 0.95, 0.3, func(x float64) float64 { return 2 * x }); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	if tbl.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", tbl.Len())
	}

	lastX, lastY := tbl.Sample(tbl.Len() - 1)
	if math.Abs(lastX-0.9) > 1e-12 {
		t.Fatalf("last sample x = %v, want 0.9", lastX)
	}

	got, err := tbl.Eval(0.94)
	if err != nil {
		t.Fatalf("eval inside domain past last sample: %v", err)
	}
	if got != lastY {
		t.Errorf("eval(0.94) = %v, want flat %v", got, lastY)
	}
}

func TestRebuildReplacesContent(t *testing.T) {
	tbl := New[float64](Zero)
	if err := tbl.Build(0, 1, 0.5, func(x float64) float64 { return x }); err != nil {
		t.Fatalf("build failed: %v", err)
	}
	if err := tbl.Build(0, 2, 1, func(x float64) float64 { return -x }); err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}

	if tbl.Len() != 3 {
		t.Errorf("expected 3 samples after rebuild, got %d", tbl.Len())
	}
	got, err := tbl.Eval(2)
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if got != -2 {
		t.Errorf("eval(2) = %v, want -2", got)
	}
}

func TestFloat32Table(t *testing.T) {
	tbl := New[float32](BoundValue)
	if err := tbl.Build(0, 1, 0.25, func(x float32) float32 { return 1 - x }); err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got, err := tbl.Eval(float32(0.5))
	if err != nil {
		t.Fatalf("eval: %v", err)
	}
	if math.Abs(float64(got)-0.5) > 1e-6 {
		t.Errorf("eval(0.5) = %v, want 0.5", got)
	}
}

func BenchmarkEval(b *testing.B) {
	tbl := New[float64](Zero)
	if err := tbl.Build(0, 10, 0.001, math.Sin); err != nil {
		b.Fatalf("build failed: %v", err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		x := float64(i%10000) * 0.001
		if _, err := tbl.Eval(x); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkEvalVsDirect(b *testing.B) {
	b.Run("table", func(b *testing.B) {
		tbl := New[float64](Zero)
		if err := tbl.Build(-5, 5, 0.001, math.Tanh); err != nil {
			b.Fatalf("build failed: %v", err)
		}
		b.ResetTimer()
		for i := 0; i < b.N; i++ {
			tbl.Eval(float64(i%10000)*0.001 - 5)
		}
	})
	b.Run("direct", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			math.Tanh(float64(i%10000)*0.001 - 5)
		}
	})
}

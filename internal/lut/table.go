// Package lut provides a precomputed value table for fast approximate
// evaluation of expensive scalar functions.
//
// A [Table] samples a function at a fixed resolution over a closed domain
// and answers later evaluations by linear interpolation between the two
// surrounding samples. Behavior outside the domain is selected at
// construction via [OutOfBounds].
//
// f(min) is always part of the table, but f(max) is included only when max
// is reachable from min by an integer number of steps. Queries between the
// last sample and max return the last sample's value unchanged.
package lut

import (
	"errors"
	"math"

	"golang.org/x/exp/constraints"
)

// Errors returned by table operations.
var (
	// ErrNotBuilt indicates Eval was called before a successful Build.
	ErrNotBuilt = errors.New("lut: table not built")

	// ErrOutOfRange indicates an out-of-domain argument under the Fail policy.
	ErrOutOfRange = errors.New("lut: argument out of range")

	// ErrBadDomain indicates an inverted domain or non-positive step.
	ErrBadDomain = errors.New("lut: invalid domain or step")
)

// OutOfBounds selects what Eval returns for arguments outside the domain.
type OutOfBounds int

const (
	// Zero returns the additive identity.
	Zero OutOfBounds = iota
	// BoundValue returns the value at the nearest boundary sample.
	BoundValue
	// Fail returns ErrOutOfRange.
	Fail
)

type sample[T constraints.Float] struct {
	x, y T
}

// Table stores precomputed values of a function for fast lookup.
// The zero value is an empty table with the Zero out-of-bounds policy.
// Once built, a Table is safe for concurrent Eval calls as long as no
// goroutine is concurrently rebuilding it.
type Table[T constraints.Float] struct {
	min, max, step T
	samples        []sample[T]
	outOfBounds    OutOfBounds
}

// New returns an empty table with the given out-of-bounds policy.
func New[T constraints.Float](policy OutOfBounds) *Table[T] {
	return &Table[T]{outOfBounds: policy}
}

// Build evaluates f at min + i*step for every i that stays within [min, max]
// and stores the results, replacing any previous content. It returns
// ErrBadDomain if min > max or step is not positive, leaving the table
// unbuilt.
func (t *Table[T]) Build(min, max, step T, f func(T) T) error {
	if min > max || step <= 0 {
		return ErrBadDomain
	}

	n := int(math.Floor(float64((max-min)/step))) + 1

	t.min = min
	t.max = max
	t.step = step
	t.samples = make([]sample[T], n)

	for i := range t.samples {
		x := min + T(i)*step
		t.samples[i] = sample[T]{x: x, y: f(x)}
	}

	return nil
}

// Eval returns the approximate function value at x.
//
// Inside [min, max] the result is the linear interpolation of the two
// surrounding samples; at or past the last sample the last value is
// returned exactly. Outside the domain the out-of-bounds policy applies.
func (t *Table[T]) Eval(x T) (T, error) {
	if len(t.samples) == 0 {
		return 0, ErrNotBuilt
	}

	last := len(t.samples) - 1

	if x < t.min || x > t.max {
		switch t.outOfBounds {
		case Zero:
			return 0, nil
		case BoundValue:
			if x < t.min {
				return t.samples[0].y, nil
			}
			return t.samples[last].y, nil
		default:
			return 0, ErrOutOfRange
		}
	}

	i := int((x - t.min) / t.step)
	if i > last {
		i = last
	}

	if i == last {
		return t.samples[i].y, nil
	}

	s0, s1 := t.samples[i], t.samples[i+1]
	return s0.y + (s1.y-s0.y)*(x-s0.x)/(s1.x-s0.x), nil
}

// Empty reports whether the table has not been built.
func (t *Table[T]) Empty() bool {
	return len(t.samples) == 0
}

// Len returns the number of stored samples.
func (t *Table[T]) Len() int {
	return len(t.samples)
}

// Domain returns the domain bounds the table was built over.
func (t *Table[T]) Domain() (min, max T) {
	return t.min, t.max
}

// Step returns the sampling resolution.
func (t *Table[T]) Step() T {
	return t.step
}

// Sample returns the i-th precomputed point.
func (t *Table[T]) Sample(i int) (x, y T) {
	s := t.samples[i]
	return s.x, s.y
}

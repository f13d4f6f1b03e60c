package metrics

import (
	"math"

	"github.com/san-kum/fricsim/internal/dynamo"
)

// Chatter counts velocity sign reversals per second. A joint resting
// under a discontinuous friction law flips its velocity sign every few
// steps; a chattering-free model drives this rate toward zero.
//
// Reversals are only counted once the velocity magnitude has left the
// dead band since the last flip, so numerical noise around zero does
// not register.
type Chatter struct {
	name     string
	deadBand float64

	lastSign int
	armed    bool
	flips    int
	t0, t1   float64
	samples  int
}

func NewChatter(deadBand float64) *Chatter {
	return &Chatter{
		name:     "chatter",
		deadBand: deadBand,
	}
}

func (c *Chatter) Name() string {
	return c.name
}

func (c *Chatter) Observe(x dynamo.State, u dynamo.Control, t float64) {
	if len(x) < 2 {
		return
	}
	w := x[1]

	if c.samples == 0 {
		c.t0 = t
	}
	c.t1 = t
	c.samples++

	if math.Abs(w) <= c.deadBand {
		return
	}

	sign := 1
	if w < 0 {
		sign = -1
	}

	if c.armed && sign != c.lastSign {
		c.flips++
	}
	c.lastSign = sign
	c.armed = true
}

// Value returns sign reversals per second over the observed window.
func (c *Chatter) Value() float64 {
	span := c.t1 - c.t0
	if span <= 0 {
		return 0
	}
	return float64(c.flips) / span
}

func (c *Chatter) Reset() {
	c.lastSign = 0
	c.armed = false
	c.flips = 0
	c.t0 = 0
	c.t1 = 0
	c.samples = 0
}

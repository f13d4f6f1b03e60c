// Package friction implements a chattering-free dry-friction torque model
// for rotary joints with high stiction.
//
// Classical Coulomb friction switches sign discontinuously at zero
// velocity, which makes fixed-step simulations oscillate ("chatter")
// whenever a joint hovers near rest. This package instead follows the
// exponential stiction formulation of Cisneros et al. ("Reliable
// chattering-free simulation of friction torque in joints presenting
// high stiction"): microscopic bristle deflection is carried as a
// spring-damper error term, and the implicit dry-friction relation is
// solved in closed form with the Lambert W function.
//
// The Lambert W inversion is still transcendental, so each joint
// precomputes it once into a [lut.Table] over the physically reachable
// band of auxiliary velocities. A simulation then calls [State.Step]
// once per timestep with the measured position and commanded torque and
// receives the friction-corrected torque, paying only a table lookup.
//
// Typical use:
//
//	s := friction.NewState(friction.DefaultParams())
//	if err := s.BuildTable(nil); err != nil { ... }
//	for each step {
//	    torque, err = s.Step(pos, torque)
//	}
package friction

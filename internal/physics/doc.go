// Package physics provides the joint plant models driven by the
// simulation loop.
//
// Each model implements the [dynamo.System] interface with state
// x = [position, velocity] and control u[0] = applied torque:
//
//   - [Joint]: motor-driven rotary joint (inertia + viscous load)
//   - [Pendulum]: gravity pendulum actuated at the pivot
//
// Friction is deliberately NOT part of these models: the plant sees only
// the torque left over after the friction compensator has run, which is
// how the correction is applied in the real control loop.
//
// Both models implement [dynamo.Configurable] for runtime parameter
// adjustment; Pendulum also implements [dynamo.Hamiltonian].
package physics

// Package dynamo provides core simulation primitives for actuated joints.
//
// The package defines the fundamental interfaces and types for numerical
// simulation of ordinary differential equations (ODEs):
//
//   - [State]: vector representing system state
//   - [System]: interface for ODE systems (dX/dt = f(X, u, t))
//   - [Integrator]: numerical integrator interface
//   - [Controller]: feedback controller interface
//   - [Compensator]: per-step torque correction applied between the
//     controller and the integrator (friction models)
//
// # Example
//
//	dyn := physics.NewJoint()
//	integ := integrators.NewRK4()
//	s := sim.New(dyn, integ, nil)
//	result, _ := s.Run(ctx, x0, cfg)
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. For parallel simulations,
// use the sim package's Ensemble type, which safely manages multiple runs.
package dynamo

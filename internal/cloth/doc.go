// Package cloth implements a mass-spring deformable-body engine intended
// to be driven once per display frame by a renderer.
//
// A [World] owns flat particle and spring arrays plus the simulation
// parameters (gravity, wind, damping, sub-steps, solver choice). Each
// fixed tick runs the pipeline
//
//	applyForces -> solveSprings -> integrate -> solveConstraints
//
// once per sub-step. Eight interchangeable integration schemes are
// provided, selected with [World.SetSolver]:
//
//   - [SolverExplicitEuler]: unstable, kept for comparison
//   - [SolverSymplecticEuler]: semi-implicit, the cheap stable choice
//   - [SolverVerlet]: position-based Stormer-Verlet
//   - [SolverTimeCorrectedVerlet]: Verlet with variable-dt correction
//   - [SolverRK2], [SolverRK4]: multi-stage Runge-Kutta, re-evaluating
//     acceleration at hypothetical states through the adjacency index
//   - [SolverImplicitEuler]: Euler with a 1/(1+dt) velocity damp
//   - [SolverVelocityVerlet]: two-pass kick-drift-kick with a force
//     re-evaluation between the passes
//
// # Stability
//
// The spring solve is explicit: large stiffness combined with a large
// sub-step produces exploding states. The engine does not detect or
// clamp this; hosts pick sub-step counts and stiffness conservatively.
//
// # Memory layout
//
// Particle and spring storage is contiguous and exposed raw through
// [World.ParticleBuffer] and [World.SpringBuffer] so a renderer can
// consume positions without copying. See [Particle] for the exact
// field order.
package cloth

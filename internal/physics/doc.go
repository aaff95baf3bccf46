// Package physics models the forces acting on a water-propelled bottle
// rocket.
//
// The model is a set of pure functions over a [Config] and a [State]
// snapshot:
//
//   - [AirPressure]: two-regime cushion pressure (adiabatic expansion while
//     water remains, stepwise relaxation afterwards)
//   - [WaterMassFlowRate]: Bernoulli outflow through the nozzle
//   - [Thrust]: momentum thrust in the water and air-blowdown phases
//   - [Drag], [GravityForce], [Acceleration]: the ballistic terms
//
// Nothing here owns state or time. The flight loop in internal/flight calls
// these functions once per timestep; every function is deterministic in its
// inputs and safe to call in isolation.
package physics

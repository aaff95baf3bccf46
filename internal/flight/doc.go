// Package flight advances a water rocket through its powered and ballistic
// phases with a fixed-step, velocity-first Euler integrator.
//
// A flight passes through three phases inferred from the state itself:
// water thrust while water remains, air blowdown while the cushion stays
// above atmospheric pressure, and unpowered coast until ground impact or
// the time cap. No explicit phase tag exists; the force model's computed
// mass and pressure decide.
//
//	traj, err := flight.Run(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	sum := traj.Summary()
//
// [Run] is single-threaded and allocation-light; running many flights
// back-to-back (sweeps, batches) is safe because configurations and states
// are plain values.
package flight

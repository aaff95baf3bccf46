package flight

import (
	"context"
	"math"

	"github.com/san-kum/waterrocket/internal/physics"
)

// Run simulates one flight of the rocket described by cfg, from launch to
// ground impact or the configured time cap. The returned trajectory starts
// with the launch state at index 0; every later state is derived from the
// previous state and cfg alone, so equal configs yield identical
// trajectories.
//
// The context is checked between steps; on cancellation the partial
// trajectory is returned along with ctx.Err().
func Run(ctx context.Context, cfg physics.Config) (*Trajectory, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	steps := int(cfg.MaxTime / cfg.TimeStep)
	traj := &Trajectory{States: make([]physics.State, 0, steps+1)}

	s := physics.InitialState(cfg)
	traj.States = append(traj.States, s)

	for (s.Altitude >= 0 || s.VerticalVelocity > 0) && s.Time < cfg.MaxTime {
		select {
		case <-ctx.Done():
			return traj, ctx.Err()
		default:
		}

		s = step(cfg, s)

		if s.Altitude < 0 && s.VerticalVelocity < 0 {
			// Ground impact inside this step: record touchdown, not a
			// negative altitude.
			s.Altitude = 0
			traj.States = append(traj.States, s)
			break
		}
		traj.States = append(traj.States, s)
	}

	return traj, nil
}

// step advances the state by one fixed timestep. The update order is
// load-bearing for reproducibility: water leaves and the cushion grows,
// pressure is recomputed on that intermediate state, accelerations come
// from the recomputed pressure, and velocities integrate before positions
// (velocity-first Euler).
func step(cfg physics.Config, s physics.State) physics.State {
	next := s
	dt := cfg.TimeStep

	if s.WaterMass > 0 {
		expelled := physics.WaterMassFlowRate(cfg, s) * dt
		next.WaterMass = math.Max(0, s.WaterMass-expelled)
		// Grow the cushion by the volume actually vacated, so it never
		// exceeds the bottle even on the final expulsion step.
		next.AirVolume = s.AirVolume + (s.WaterMass-next.WaterMass)/cfg.WaterDensity
	}

	next.AirPressure = physics.AirPressure(cfg, next)

	av, ah := physics.Acceleration(cfg, next)
	next.VerticalAccel = av
	next.HorizontalAccel = ah

	next.VerticalVelocity = s.VerticalVelocity + av*dt
	next.Altitude = s.Altitude + next.VerticalVelocity*dt
	next.HorizontalVelocity = s.HorizontalVelocity + ah*dt
	next.Distance = s.Distance + next.HorizontalVelocity*dt

	next.Time = s.Time + dt
	return next
}

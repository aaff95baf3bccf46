package flight

import "github.com/san-kum/waterrocket/internal/physics"

// Trajectory is the ordered record of one flight, index 0 the launch state.
// It is write-once: [Run] builds it, consumers only read it.
type Trajectory struct {
	States []physics.State
}

func (t *Trajectory) Len() int { return len(t.States) }

// Last returns the final recorded state, the zero State for an empty
// trajectory.
func (t *Trajectory) Last() physics.State {
	if len(t.States) == 0 {
		return physics.State{}
	}
	return t.States[len(t.States)-1]
}

// Series extracts one scalar per state, in flight order. Plotting and
// export consumers use it to pull columns without copying states around.
func (t *Trajectory) Series(f func(physics.State) float64) []float64 {
	out := make([]float64, len(t.States))
	for i, s := range t.States {
		out[i] = f(s)
	}
	return out
}

// Summary holds the derived scalars of one flight.
type Summary struct {
	ApogeeHeight    float64 `json:"apogee_height"`
	ApogeeTime      float64 `json:"apogee_time"`
	MaxVelocity     float64 `json:"max_velocity"`
	MaxVelocityTime float64 `json:"max_velocity_time"`
	MaxAccel        float64 `json:"max_accel"`
	MaxAccelTime    float64 `json:"max_accel_time"`
	ExpulsionTime   float64 `json:"water_expulsion_time"`
	FlightTime      float64 `json:"flight_time"`
	Range           float64 `json:"range"`
}

// Summary scans the trajectory once and derives the flight scalars. The
// first occurrence wins for every extremum; the expulsion time is the first
// instant water mass reaches zero, defaulting to the launch time when the
// rocket flew dry from the start. The scan is pure, so repeated calls
// return identical values.
func (t *Trajectory) Summary() Summary {
	var sum Summary
	if len(t.States) == 0 {
		return sum
	}

	first := t.States[0]
	sum.ApogeeHeight = first.Altitude
	sum.ApogeeTime = first.Time
	sum.MaxVelocity = first.VerticalVelocity
	sum.MaxVelocityTime = first.Time
	sum.MaxAccel = first.VerticalAccel
	sum.MaxAccelTime = first.Time
	sum.ExpulsionTime = first.Time

	expelled := false
	for _, s := range t.States {
		if s.Altitude > sum.ApogeeHeight {
			sum.ApogeeHeight = s.Altitude
			sum.ApogeeTime = s.Time
		}
		if s.VerticalVelocity > sum.MaxVelocity {
			sum.MaxVelocity = s.VerticalVelocity
			sum.MaxVelocityTime = s.Time
		}
		if s.VerticalAccel > sum.MaxAccel {
			sum.MaxAccel = s.VerticalAccel
			sum.MaxAccelTime = s.Time
		}
		if !expelled && s.WaterMass <= 0 {
			sum.ExpulsionTime = s.Time
			expelled = true
		}
	}

	last := t.States[len(t.States)-1]
	sum.FlightTime = last.Time
	sum.Range = last.Distance
	return sum
}

package physics

import "math"

// Ratio of specific heats for air, for the adiabatic law P*V^gamma = const.
const gamma = 1.4

// TotalMass is the instantaneous rocket mass: dry bottle, payload, and the
// water still on board. Water is the only time-varying term.
func TotalMass(cfg Config, s State) float64 {
	return cfg.BottleMass + cfg.PayloadMass + s.WaterMass
}

// WaterMassFlowRate returns the rate (kg/s) at which water leaves the
// nozzle. Bernoulli gives the exit velocity from the pressure differential
// across the nozzle; no water or no positive differential means no flow,
// never backflow.
func WaterMassFlowRate(cfg Config, s State) float64 {
	if s.WaterMass <= 0 {
		return 0
	}
	dp := s.AirPressure - cfg.Atmospheric
	if dp <= 0 {
		return 0
	}
	exitVelocity := math.Sqrt(2 * dp / cfg.WaterDensity)
	return cfg.WaterDensity * cfg.NozzleArea() * exitVelocity
}

// AirPressure computes the cushion pressure for s under the two-regime
// model. While water remains the cushion expands adiabatically from the
// launch references; once the water is gone the pressure relaxes step by
// step toward the full bottle volume through the fixed launch volume ratio.
// Both regimes floor at atmospheric pressure.
func AirPressure(cfg Config, s State) float64 {
	if s.WaterMass > 0 {
		if s.AirVolume <= 0 {
			// Fully water-filled bottle: no cushion to expand yet.
			return math.Max(s.AirPressure, cfg.Atmospheric)
		}
		p := s.InitialAirPressure * math.Pow(s.InitialAirVolume/s.AirVolume, gamma)
		return math.Max(p, cfg.Atmospheric)
	}
	p := s.AirPressure * (s.InitialAirVolume / cfg.BottleVolume)
	return math.Max(p, cfg.Atmospheric)
}

// Thrust returns the total thrust magnitude (N). While water remains, the
// momentum flux of the expelled water drives the rocket; afterwards the
// residual compressed air blows down through the nozzle at its own density
// P/(R*T). The driving differential is clamped at zero before the square
// root, so thrust is never negative for any reachable state.
func Thrust(cfg Config, s State) float64 {
	if s.WaterMass > 0 {
		dp := math.Max(0, s.AirPressure-cfg.Atmospheric)
		exitVelocity := math.Sqrt(2 * dp / cfg.WaterDensity)
		return WaterMassFlowRate(cfg, s) * exitVelocity
	}

	if s.AirPressure <= cfg.Atmospheric {
		return 0
	}
	airDensity := s.AirPressure / (cfg.GasConstant * cfg.Temperature)
	dp := math.Max(0, s.AirPressure-cfg.Atmospheric)
	exitVelocity := math.Sqrt(2 * dp / airDensity)
	massFlow := airDensity * cfg.NozzleArea() * exitVelocity
	return massFlow * exitVelocity
}

// Drag returns the aerodynamic drag force on the vertical axis, signed to
// oppose the current vertical velocity; zero velocity gives exactly zero
// drag. The horizontal axis carries no drag term in this model.
func Drag(cfg Config, s State) float64 {
	v := s.VerticalVelocity
	force := 0.5 * cfg.AirDensity * v * v * cfg.DragCoeff * cfg.CrossSection()
	if v > 0 {
		return -force
	}
	return force
}

// ThrustComponents splits a thrust magnitude along the launch angle:
// 0 degrees is straight up, positive angles tilt downrange.
func ThrustComponents(cfg Config, thrust float64) (vertical, horizontal float64) {
	angle := cfg.LaunchAngle * math.Pi / 180
	return thrust * math.Cos(angle), thrust * math.Sin(angle)
}

// GravityForce is the rocket's weight, negative (downward).
func GravityForce(cfg Config, s State) float64 {
	return -TotalMass(cfg, s) * cfg.Gravity
}

// NetForce sums the vertical forces (thrust component, drag, weight) and
// the horizontal force (thrust component only).
func NetForce(cfg Config, s State) (vertical, horizontal float64) {
	tv, th := ThrustComponents(cfg, Thrust(cfg, s))
	return tv + Drag(cfg, s) + GravityForce(cfg, s), th
}

// Acceleration converts the net force into per-axis acceleration for the
// current total mass.
func Acceleration(cfg Config, s State) (vertical, horizontal float64) {
	fv, fh := NetForce(cfg, s)
	m := TotalMass(cfg, s)
	return fv / m, fh / m
}

package physics

// State is one snapshot of the rocket along its flight. States are plain
// values: the flight loop derives each snapshot from the previous one and
// never mutates a recorded state.
type State struct {
	Time float64 // s since launch

	Altitude           float64 // m above the launch plane
	Distance           float64 // m downrange
	VerticalVelocity   float64 // m/s, positive up
	HorizontalVelocity float64 // m/s, positive downrange
	VerticalAccel      float64 // m/s^2
	HorizontalAccel    float64 // m/s^2

	WaterMass   float64 // kg of water still on board
	AirVolume   float64 // m^3 occupied by the air cushion
	AirPressure float64 // Pa, absolute

	// Launch references for the pressure laws. Fixed by InitialState and
	// never rewritten afterwards.
	InitialAirVolume   float64 // m^3
	InitialAirPressure float64 // Pa
}

// InitialState derives the launch state from cfg: the bottle splits into
// water and air by the fill fraction and the cushion charges to atmospheric
// plus gauge pressure. Deterministic: equal configs yield bit-identical
// states.
func InitialState(cfg Config) State {
	waterVolume := cfg.BottleVolume * cfg.WaterFraction
	airVolume := cfg.BottleVolume * (1 - cfg.WaterFraction)
	pressure := cfg.Atmospheric + cfg.GaugePressure

	return State{
		WaterMass:          waterVolume * cfg.WaterDensity,
		AirVolume:          airVolume,
		AirPressure:        pressure,
		InitialAirVolume:   airVolume,
		InitialAirPressure: pressure,
	}
}

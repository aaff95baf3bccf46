// Package report renders flight results as human-readable text.
package report

import (
	"fmt"
	"io"

	"github.com/san-kum/waterrocket/internal/config"
	"github.com/san-kum/waterrocket/internal/flight"
)

// Write prints the post-flight summary block: peak figures with the times
// they occurred, followed by the rocket parameters the flight was run with.
func Write(w io.Writer, cfg *config.Config, sum flight.Summary) error {
	_, err := fmt.Fprintf(w, `=== WATER ROCKET SIMULATION SUMMARY ===
Maximum Height: %.2f m at %.2f s
Maximum Velocity: %.2f m/s at %.2f s
Maximum Acceleration: %.2f m/s² at %.2f s
Water Expulsion Time: %.2f s
Total Flight Time: %.2f s
Downrange Distance: %.2f m

Rocket Parameters:
- Bottle Volume: %.1f L
- Water Fill: %.1f%%
- Initial Pressure: %.1f kPa
- Nozzle Diameter: %.1f mm
- Launch Angle: %.1f°
- Payload Mass: %.2f kg
- Rocket Mass (empty): %.2f kg
========================================
`,
		sum.ApogeeHeight, sum.ApogeeTime,
		sum.MaxVelocity, sum.MaxVelocityTime,
		sum.MaxAccel, sum.MaxAccelTime,
		sum.ExpulsionTime,
		sum.FlightTime,
		sum.Range,
		cfg.BottleVolume,
		cfg.WaterFraction*100,
		cfg.GaugePressure,
		cfg.NozzleDiameter,
		cfg.LaunchAngle,
		cfg.PayloadMass,
		cfg.BottleMass,
	)
	return err
}

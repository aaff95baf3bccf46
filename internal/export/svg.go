// Package export renders flights as standalone SVG drawings.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/waterrocket/internal/flight"
)

// FlightSVG draws the flight path, altitude over downrange distance, as a
// standalone SVG with a ground line and launch, apogee and touchdown
// markers. Returns "" when there are not enough states to draw.
func FlightSVG(traj *flight.Trajectory, width, height int) string {
	if traj.Len() < 2 {
		return ""
	}

	maxAlt, maxDist := 0.0, 0.0
	apogeeIdx := 0
	for i, s := range traj.States {
		if s.Altitude > maxAlt {
			maxAlt = s.Altitude
			apogeeIdx = i
		}
		if s.Distance > maxDist {
			maxDist = s.Distance
		}
	}
	if maxAlt <= 0 {
		maxAlt = 1
	}
	if maxDist <= 0 {
		maxDist = 1
	}

	// Headroom so the apogee marker is not clipped at the top edge.
	scaleAlt := maxAlt * 1.1
	scaleDist := maxDist * 1.08

	w, h := float64(width), float64(height)
	px := func(d float64) float64 { return d / scaleDist * w }
	py := func(alt float64) float64 { return h - 2 - alt/scaleAlt*(h-2) }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<line x1="0" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#555555" stroke-width="1"/>
<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M`,
		width, height, width, height, py(0), w, py(0)))

	for i, s := range traj.States {
		x, y := px(s.Distance), py(s.Altitude)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	marker := func(fill, label string, d, alt float64) {
		x, y := px(d), py(alt)
		sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="3" fill="%s"/>
<text x="%.1f" y="%.1f" font-family="monospace" font-size="11" fill="#cccccc">%s</text>
`, x, y, fill, x+6, y-4, label))
	}

	launch := traj.States[0]
	apogee := traj.States[apogeeIdx]
	impact := traj.States[traj.Len()-1]

	marker("#00ff88", "launch", launch.Distance, launch.Altitude)
	marker("#ffffff", fmt.Sprintf("apogee %.1f m", apogee.Altitude), apogee.Distance, apogee.Altitude)
	marker("#ff4444", fmt.Sprintf("touchdown %.1f m", impact.Distance), impact.Distance, impact.Altitude)

	sb.WriteString("</svg>")
	return sb.String()
}

package viz

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/waterrocket/internal/flight"
	"github.com/san-kum/waterrocket/internal/physics"
)

const (
	liveWidth   = 64
	liveHeight  = 22
	ticksPerSec = 30
)

var (
	canvasStyle = lipgloss.NewStyle().Padding(1, 2)
	statsStyle  = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 2).
			Width(45)
)

type TickMsg time.Time

// param is one launch setting tunable from the live view. Adjusting one
// re-flies the rocket and restarts playback from launch.
type param struct {
	name   string
	format func(cfg physics.Config) string
	adjust func(cfg physics.Config, dir int) physics.Config
}

var liveParams = []param{
	{
		name:   "fill",
		format: func(c physics.Config) string { return fmt.Sprintf("%.0f%%", c.WaterFraction*100) },
		adjust: func(c physics.Config, dir int) physics.Config {
			c.WaterFraction = clamp(c.WaterFraction+0.05*float64(dir), 0.05, 0.95)
			return c
		},
	},
	{
		name:   "pressure",
		format: func(c physics.Config) string { return fmt.Sprintf("%.0f kPa", c.GaugePressure/1000) },
		adjust: func(c physics.Config, dir int) physics.Config {
			c.GaugePressure = clamp(c.GaugePressure+25000*float64(dir), 50000, 1200000)
			return c
		},
	},
	{
		name:   "angle",
		format: func(c physics.Config) string { return fmt.Sprintf("%.1f°", c.LaunchAngle) },
		adjust: func(c physics.Config, dir int) physics.Config {
			c.LaunchAngle = clamp(c.LaunchAngle+2.5*float64(dir), 0, 85)
			return c
		},
	},
	{
		name:   "nozzle",
		format: func(c physics.Config) string { return fmt.Sprintf("%.1f mm", c.NozzleDiameter*1000) },
		adjust: func(c physics.Config, dir int) physics.Config {
			c.NozzleDiameter = clamp(c.NozzleDiameter+0.001*float64(dir), 0.002, 0.03)
			return c
		},
	},
}

// Model replays a simulated flight in the terminal. The trajectory is
// computed up front; playback walks the recorded states, so scrubbing and
// pausing never touch the physics.
type Model struct {
	cfg       physics.Config
	traj      *flight.Trajectory
	sum       flight.Summary
	altSeries []float64
	canvas    *Canvas
	frame     int
	running   bool
	speed     float64
	selected  int
	err       error
	showHelp  bool
}

func NewModel(cfg physics.Config, traj *flight.Trajectory) Model {
	return Model{
		cfg:       cfg,
		traj:      traj,
		sum:       traj.Summary(),
		altSeries: traj.Series(func(s physics.State) float64 { return s.Altitude }),
		canvas:    NewCanvas(liveWidth, liveHeight),
		running:   true,
		speed:     1.0,
	}
}

func (m Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(time.Second/ticksPerSec, func(t time.Time) tea.Msg { return TickMsg(t) })
}

// Update handles input and advances playback.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.frame = 0
			m.running = true
		case "[", "left":
			m.running = false
			m.frame = clampInt(m.frame-m.stride(), 0, m.traj.Len()-1)
		case "]", "right":
			m.running = false
			m.frame = clampInt(m.frame+m.stride(), 0, m.traj.Len()-1)
		case "+", "=":
			if m.speed < 8 {
				m.speed *= 2
			}
		case "-", "_":
			if m.speed > 0.25 {
				m.speed /= 2
			}
		case "tab":
			m.selected = (m.selected + 1) % len(liveParams)
		case "up", "k":
			m.refly(1)
		case "down", "j":
			m.refly(-1)
		case "t":
			NextTheme()
		case "?":
			m.showHelp = !m.showHelp
		}
	case TickMsg:
		if m.running {
			m.frame += m.stride()
			if m.frame >= m.traj.Len() {
				m.frame = m.traj.Len() - 1
				m.running = false
			}
		}
		return m, tick()
	}
	return m, nil
}

// refly adjusts the selected launch setting, re-runs the flight, and
// restarts playback.
func (m *Model) refly(dir int) {
	cfg := liveParams[m.selected].adjust(m.cfg, dir)
	traj, err := flight.Run(context.Background(), cfg)
	if err != nil {
		m.err = err
		return
	}
	m.cfg = cfg
	m.traj = traj
	m.sum = traj.Summary()
	m.altSeries = traj.Series(func(s physics.State) float64 { return s.Altitude })
	m.frame = 0
	m.running = true
	m.err = nil
}

// stride is how many recorded states one tick advances at the current
// playback speed.
func (m Model) stride() int {
	n := int(m.speed / (ticksPerSec * m.cfg.TimeStep))
	if n < 1 {
		n = 1
	}
	return n
}

// View renders the flight canvas beside the stats panel.
func (m Model) View() string {
	if m.traj.Len() == 0 {
		return "no flight data\n"
	}
	st := m.traj.States[clampInt(m.frame, 0, m.traj.Len()-1)]

	m.drawFrame()
	canvasView := canvasStyle.Render(m.canvas.String())

	var s strings.Builder
	s.WriteString(HeaderStyle.Render("WATER ROCKET") + "\n")
	s.WriteString(m.statusLine(st) + "\n\n")

	if m.frame > 0 {
		hist := downsample(m.altSeries[:clampInt(m.frame, 1, len(m.altSeries))], 120)
		if len(hist) > 1 {
			chart := asciigraph.Plot(hist, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption("Altitude"))
			s.WriteString(GraphStyle.Render(chart) + "\n\n")
		}
	}

	s.WriteString(LabelStyle.Render("Time") + ValueStyle.Render(fmt.Sprintf("%.2f s", st.Time)) + "\n")
	s.WriteString(LabelStyle.Render("Altitude") + ValueStyle.Render(fmt.Sprintf("%.1f m", st.Altitude)) + "\n")
	s.WriteString(LabelStyle.Render("Velocity") + ValueStyle.Render(fmt.Sprintf("%.1f m/s", st.VerticalVelocity)) + "\n")
	s.WriteString(LabelStyle.Render("Pressure") + ValueStyle.Render(fmt.Sprintf("%.0f kPa", st.AirPressure/1000)) + "\n")

	water := 0.0
	if launch := m.traj.States[0].WaterMass; launch > 0 {
		water = st.WaterMass / launch
	}
	s.WriteString(LabelStyle.Render("Water") + ProgressBar(water, 16) + "\n\n")

	s.WriteString(Subtle.Render(fmt.Sprintf("apogee %.1f m   range %.1f m   %gx", m.sum.ApogeeHeight, m.sum.Range, m.speed)) + "\n")

	s.WriteString("\nLAUNCH SETTINGS\n")
	for i, p := range liveParams {
		line := fmt.Sprintf("%-10s %s", p.name, p.format(m.cfg))
		if i == m.selected {
			s.WriteString(ActiveParamStyle.Render("> "+line) + "\n")
		} else {
			s.WriteString("  " + LabelStyle.Render(line) + "\n")
		}
	}
	if m.err != nil {
		s.WriteString(StatusDown.Render(fmt.Sprintf("\n%v", m.err)) + "\n")
	}

	s.WriteString(HelpStyle.Render("\n─────────────────────\nSP:Pause R:Relaunch Q:Quit\nTab:Setting ↑↓:Adjust +/-:Speed\n[ ]:Scrub T:Theme ?:Help"))

	statsView := statsStyle.Render(s.String())
	mainView := lipgloss.JoinHorizontal(lipgloss.Top, canvasView, statsView)
	if m.showHelp {
		return `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume playback    ║
║  R        - Relaunch from t=0        ║
║  Q        - Quit                     ║
║  Tab      - Cycle launch settings    ║
║  Up/K     - Increase setting         ║
║  Down/J   - Decrease setting         ║
║  [ / ]    - Scrub back / forward     ║
║  + / -    - Playback speed           ║
║  T        - Cycle color theme        ║
║  ?        - Toggle this help         ║
╚══════════════════════════════════════╝
` + "\n\n" + mainView
	}
	return mainView
}

// drawFrame renders the track flown so far plus the rocket marker.
func (m *Model) drawFrame() {
	m.canvas.Clear()
	sw, sh := m.canvas.SubWidth(), m.canvas.SubHeight()
	m.canvas.DrawLine(0, sh-1, sw-1, sh-1)

	maxAlt := m.sum.ApogeeHeight
	if maxAlt <= 0 {
		maxAlt = 1
	}
	maxDist := m.sum.Range
	if maxDist <= 0 {
		maxDist = 1
	}

	end := clampInt(m.frame, 0, m.traj.Len()-1)

	// One segment per dot column is plenty; full-resolution redraws are
	// wasted at 30 ticks a second.
	stride := m.traj.Len() / (sw * 2)
	if stride < 1 {
		stride = 1
	}

	px, py := dotCoords(m.traj.States[0], maxDist, maxAlt, sw, sh)
	for i := stride; i <= end; i += stride {
		x, y := dotCoords(m.traj.States[i], maxDist, maxAlt, sw, sh)
		m.canvas.DrawLine(px, py, x, y)
		px, py = x, y
	}

	x, y := dotCoords(m.traj.States[end], maxDist, maxAlt, sw, sh)
	m.canvas.DrawLine(px, py, x, y)
	m.canvas.Set(x, y-1)
	m.canvas.Set(x-1, y)
	m.canvas.Set(x+1, y)
}

func (m Model) statusLine(st physics.State) string {
	var status string
	switch {
	case st.WaterMass > 0:
		status = StatusBoost.Render("WATER BOOST")
	case st.AirPressure > m.cfg.Atmospheric:
		status = StatusBoost.Render("AIR BOOST")
	case st.VerticalVelocity > 0:
		status = StatusCoast.Render("COAST")
	case st.Altitude > 0:
		status = StatusDescent.Render("DESCENT")
	default:
		status = StatusDown.Render("TOUCHDOWN")
	}
	if !m.running && st.Altitude > 0 {
		status += Subtle.Render("  (paused)")
	}
	return status
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

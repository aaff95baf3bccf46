// Package viz renders flights in the terminal.
//
// Two surfaces are provided:
//
//   - [Model]: an interactive Bubble Tea replay of a simulated flight,
//     with scrubbing, playback speed control, and launch settings that
//     re-fly the rocket when adjusted
//   - [AltitudeChart], [VelocityChart], [PressureChart], [GroundTrack]:
//     one-shot ASCII charts for post-flight output
//
// # Key Bindings
//
//	Space - Pause/Resume playback
//	R     - Relaunch from t=0
//	Tab   - Cycle launch settings
//	↑/↓   - Adjust the selected setting (re-flies)
//	[ ]   - Scrub back/forward
//	+ -   - Playback speed
//	?     - Show help overlay
//
// The [Canvas] type is a Braille-based pixel surface shared by the replay
// view and the ground-track chart.
package viz

// Package viz is the terminal front end of sortstep.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: bars, highlights, narration, step counter and notifications
//   - [TUISink]: forwards scheduler frames, notifications and control state
//     into the running program
//   - Theme selection with 4 built-in color schemes
//
// # Key Bindings
//
//	Enter/Space - Start sorting with the selected algorithm
//	S           - Stop the animation
//	K           - Skip to the sorted result
//	A           - Add a number (1-100)
//	G           - Generate a random list (size 1-25)
//	R           - Reset the list
//	Tab/←/→     - Select algorithm
//	T           - Cycle color themes
//	Q           - Quit
//
// Start, add, generate, reset and algorithm selection are disabled while an
// animation runs; stop and skip only work while it runs.
package viz

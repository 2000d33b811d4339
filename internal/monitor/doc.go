// Package monitor runs a beacon page: a grid of value widgets and status
// indicators rendered in the terminal.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm Architecture
// (Model-Update-View pattern):
//
//   - Model: Holds UI state (layout, selection, view mode)
//   - Update: Processes messages (keystrokes, readings, config reloads)
//   - View: Renders the current state to a string for display
//
// # Key Components
//
//	Page   - Owns the source registry, source pollers and indicator instances
//	Model  - The Bubble Tea model that draws a Page
//	Layout - Card grid sizing for the current terminal
//
// # Message Flow
//
// Pollers never touch widget state. They read in their own goroutine and post
// a Reading to the page channel:
//
//  1. waitForReading() blocks on Page.Readings
//  2. readingMsg arrives and Page.Handle applies it, dropping stale generations
//  3. View() re-renders the grid
//
// A Page can also be driven without a terminal by draining Readings and
// calling Handle directly, which is how `beacon watch` works.
//
// # Keyboard Shortcuts
//
//	q, Ctrl+C   - Quit
//	r           - Refresh sources
//	arrows/hjkl - Move selection
//	Enter       - Expand widget detail view
//	Esc         - Collapse / go back
//	?           - Toggle help overlay
package monitor
